package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardService_Load(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	snap, err := s.board.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Activities)

	a, b := twoActivities(t, s)
	child, err := s.activities.AddActivity(ctx, NewActivity{Name: "Child", ParentID: &a.ID})
	require.NoError(t, err)
	d, err := s.deps.CreateDependency(ctx, child.ID, b.ID, domain.FinishToStart)
	require.NoError(t, err)
	m, err := s.milestones.CreateMilestone(ctx, b.ID, "Ship", domain.MustDate("2024-04-01"))
	require.NoError(t, err)

	snap, err = s.board.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Activities, 3)
	_, ok := snap.Activity(child.ID)
	assert.True(t, ok)
	_, ok = snap.Dependency(d.ID)
	assert.True(t, ok)
	_, ok = snap.Milestone(m.ID)
	assert.True(t, ok)
	assert.Equal(t, 1, snap.CountChildren(a.ID))
}

type snapshotErrUoW struct {
	db.UnitOfWork
	err error
}

func (u snapshotErrUoW) ReadSnapshot(context.Context, db.TxFunc) error { return u.err }

func TestBoardService_LoadFailure(t *testing.T) {
	want := errors.New("board locked")
	snap, err := NewBoardService(snapshotErrUoW{err: want}).Load(context.Background())
	assert.ErrorIs(t, err, want)
	assert.Nil(t, snap)
}
