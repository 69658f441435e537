package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoActivities(t *testing.T, s *testServices) (*domain.Activity, *domain.Activity) {
	t.Helper()
	ctx := context.Background()
	a, err := s.activities.CreateActivity(ctx, "A")
	require.NoError(t, err)
	b, err := s.activities.CreateActivity(ctx, "B")
	require.NoError(t, err)
	return a, b
}

func TestDependencyService_Create(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	a, b := twoActivities(t, s)

	d, err := s.deps.CreateDependency(ctx, a.ID, b.ID, domain.FinishToStart)
	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)

	got, err := s.deps.GetDependency(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.FromActivityID)
	assert.Equal(t, b.ID, got.ToActivityID)
	assert.Equal(t, domain.FinishToStart, got.Type)

	ss, err := s.deps.CreateDependency(ctx, a.ID, b.ID, domain.StartToStart)
	require.NoError(t, err, "a different type between the same pair is allowed")
	assert.NotEqual(t, d.ID, ss.ID)

	all, err := s.deps.ListDependencies(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDependencyService_Create_Rejects(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	a, b := twoActivities(t, s)

	_, err := s.deps.CreateDependency(ctx, a.ID, a.ID, domain.FinishToStart)
	assert.ErrorIs(t, err, domain.ErrSelfDependency)

	_, err = s.deps.CreateDependency(ctx, a.ID, "ghost", domain.FinishToStart)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = s.deps.CreateDependency(ctx, a.ID, b.ID, domain.DependencyType("SF"))
	assert.ErrorIs(t, err, domain.ErrInvalidDependencyType)

	_, err = s.deps.CreateDependency(ctx, a.ID, b.ID, domain.FinishToStart)
	require.NoError(t, err)
	_, err = s.deps.CreateDependency(ctx, a.ID, b.ID, domain.FinishToStart)
	assert.ErrorIs(t, err, ErrDuplicateDependency)

	all, err := s.deps.ListDependencies(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDependencyService_SetType(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	a, b := twoActivities(t, s)

	d, err := s.deps.CreateDependency(ctx, a.ID, b.ID, domain.FinishToStart)
	require.NoError(t, err)

	ff, err := s.deps.SetDependencyType(ctx, d.ID, domain.FinishToFinish)
	require.NoError(t, err)
	assert.Equal(t, domain.FinishToFinish, ff.Type)

	got, err := s.deps.GetDependency(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FinishToFinish, got.Type)

	same, err := s.deps.SetDependencyType(ctx, d.ID, domain.FinishToFinish)
	require.NoError(t, err)
	assert.Equal(t, d.ID, same.ID)

	_, err = s.deps.SetDependencyType(ctx, d.ID, domain.DependencyType("nope"))
	assert.ErrorIs(t, err, domain.ErrInvalidDependencyType)

	_, err = s.deps.SetDependencyType(ctx, "ghost", domain.StartToStart)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDependencyService_SetType_RejectsCollision(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	a, b := twoActivities(t, s)

	fs, err := s.deps.CreateDependency(ctx, a.ID, b.ID, domain.FinishToStart)
	require.NoError(t, err)
	_, err = s.deps.CreateDependency(ctx, a.ID, b.ID, domain.StartToStart)
	require.NoError(t, err)

	_, err = s.deps.SetDependencyType(ctx, fs.ID, domain.StartToStart)
	assert.ErrorIs(t, err, ErrDuplicateDependency)
}

func TestDependencyService_Delete(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	a, b := twoActivities(t, s)

	d, err := s.deps.CreateDependency(ctx, a.ID, b.ID, domain.StartToStart)
	require.NoError(t, err)

	require.NoError(t, s.deps.DeleteDependency(ctx, d.ID))
	assert.Equal(t, "dependency.delete", s.observer.last().Name)

	_, err = s.deps.GetDependency(ctx, d.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.deps.DeleteDependency(ctx, d.ID), repository.ErrNotFound)

	// Endpoints are untouched.
	_, err = s.activities.GetActivity(ctx, a.ID)
	assert.NoError(t, err)
}
