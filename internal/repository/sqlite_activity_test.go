package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteActivityRepo(db)
	ctx := context.Background()

	a := testutil.NewTestActivity("Design", testutil.WithDates("2024-02-05", "2024-02-16"), testutil.WithColor("#ff8800"))
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Design", got.Name)
	assert.Nil(t, got.ParentID)
	assert.Equal(t, "2024-02-05", domain.FormatDate(got.StartDate))
	assert.Equal(t, "2024-02-16", domain.FormatDate(got.EndDate))
	assert.Equal(t, "#ff8800", got.Color)
	assert.False(t, got.Collapsed)
	assert.True(t, a.CreatedAt.Equal(got.CreatedAt))
}

func TestActivityRepo_UndatedRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteActivityRepo(db)
	ctx := context.Background()

	a := testutil.NewTestActivity("Someday", testutil.WithDates("", "2024-03-01"))
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.StartDate)
	require.NotNil(t, got.EndDate)
}

func TestActivityRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteActivityRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivityRepo_ListOrdersBySortOrderThenInsertion(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteActivityRepo(db)
	ctx := context.Background()

	c := testutil.NewTestActivity("C", testutil.WithSortOrder(2))
	a := testutil.NewTestActivity("A", testutil.WithSortOrder(0))
	b1 := testutil.NewTestActivity("B1", testutil.WithSortOrder(1))
	b2 := testutil.NewTestActivity("B2", testutil.WithSortOrder(1))
	for _, x := range []*domain.Activity{c, a, b1, b2} {
		require.NoError(t, repo.Create(ctx, x))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"A", "B1", "B2", "C"}, names(all))
}

func TestActivityRepo_ListChildrenAndNextSortOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteActivityRepo(db)
	ctx := context.Background()

	next, err := repo.NextSortOrder(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, next)

	parent := testutil.NewTestActivity("Parent", testutil.WithSortOrder(4))
	require.NoError(t, repo.Create(ctx, parent))
	child := testutil.NewTestActivity("Child", testutil.WithParent(parent.ID), testutil.WithSortOrder(7))
	require.NoError(t, repo.Create(ctx, child))

	next, err = repo.NextSortOrder(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, next)

	next, err = repo.NextSortOrder(ctx, &parent.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, next)

	kids, err := repo.ListChildren(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, kids, 1)
	assert.Equal(t, child.ID, kids[0].ID)
	require.NotNil(t, kids[0].ParentID)
	assert.Equal(t, parent.ID, *kids[0].ParentID)
}

func TestActivityRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteActivityRepo(db)
	ctx := context.Background()

	parent := testutil.NewTestActivity("Parent")
	a := testutil.NewTestActivity("Task")
	require.NoError(t, repo.Create(ctx, parent))
	require.NoError(t, repo.Create(ctx, a))

	a.Name = "Renamed"
	a.ParentID = &parent.ID
	a.Collapsed = true
	a.SortOrder = 3
	a.StartDate = domain.DatePtr(domain.MustDate("2024-05-01"))
	require.NoError(t, repo.Update(ctx, a))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, parent.ID, got.ParentKey())
	assert.True(t, got.Collapsed)
	assert.Equal(t, 3, got.SortOrder)
	assert.Equal(t, "2024-05-01", domain.FormatDate(got.StartDate))

	got.ParentID = nil
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, again.IsRoot())
}

func TestActivityRepo_UpdateAndDeleteMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteActivityRepo(db)
	ctx := context.Background()

	ghost := testutil.NewTestActivity("Ghost")
	assert.ErrorIs(t, repo.Update(ctx, ghost), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, ghost.ID), ErrNotFound)
}

func TestActivityRepo_RejectsUnknownParent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteActivityRepo(db)

	orphan := testutil.NewTestActivity("Orphan", testutil.WithParent("nope"))
	assert.Error(t, repo.Create(context.Background(), orphan))
}

func names(as []*domain.Activity) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.Name
	}
	return out
}
