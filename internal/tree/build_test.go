package tree

import (
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_GroupsByParentAndSortOrder(t *testing.T) {
	f := Build([]*domain.Activity{
		act("b", "", 1),
		act("a", "", 0),
		act("a2", "a", 5),
		act("a1", "a", 2),
	})

	require.Equal(t, 4, f.Len())
	roots := f.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, "a", roots[0].ID)
	assert.Equal(t, "b", roots[1].ID)

	children := f.Children("a")
	require.Len(t, children, 2)
	assert.Equal(t, "a1", children[0].ID)
	assert.Equal(t, "a2", children[1].ID)

	p, ok := f.Parent("a2")
	require.True(t, ok)
	assert.Equal(t, "a", p.ID)
	assert.Equal(t, 1, f.Depth("a2"))
	assert.Equal(t, []string{"a1", "a2"}, f.Descendants("a"))
}

func TestBuild_TiesKeepFetchOrder(t *testing.T) {
	f := Build([]*domain.Activity{
		act("x", "", 0),
		act("y", "", 0),
		act("z", "", 0),
	})
	assert.Equal(t, []string{"x", "y", "z"}, ids(Flatten(f)))
}

func TestBuild_DanglingParentBecomesRoot(t *testing.T) {
	f := Build([]*domain.Activity{
		act("a", "", 0),
		act("orphan", "gone", 1),
	})

	_, nested := f.Parent("orphan")
	assert.False(t, nested)
	assert.Len(t, f.Roots(), 2)
}

func TestBuild_ParentCycleStillListsEveryActivityOnce(t *testing.T) {
	f := Build([]*domain.Activity{
		act("root", "", 0),
		act("x", "z", 0),
		act("y", "x", 0),
		act("z", "y", 0),
		act("self", "self", 1),
	})

	rows := FlattenAll(f)
	assert.ElementsMatch(t, []string{"root", "x", "y", "z", "self"}, ids(rows))

	// x is the earliest fetched member of the cycle, so it is detached.
	_, nested := f.Parent("x")
	assert.False(t, nested)
	assert.Equal(t, []string{"y", "x"}, f.Ancestors("z"))
}

func TestBuild_DuplicateIDsKeepFirst(t *testing.T) {
	first := act("a", "", 0)
	f := Build([]*domain.Activity{first, act("a", "", 3), nil})

	require.Equal(t, 1, f.Len())
	got, ok := f.Activity("a")
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestValidateParent(t *testing.T) {
	f := Build([]*domain.Activity{
		act("a", "", 0),
		act("b", "a", 0),
		act("c", "b", 0),
		act("d", "", 1),
	})

	c := "c"
	a := "a"
	d := "d"
	missing := "missing"
	assert.ErrorIs(t, ValidateParent(f, "a", &c), ErrCycle, "cannot move under a descendant")
	assert.ErrorIs(t, ValidateParent(f, "a", &a), ErrCycle, "cannot move under itself")
	assert.ErrorIs(t, ValidateParent(f, "a", &missing), ErrUnknownActivity)
	assert.ErrorIs(t, ValidateParent(f, "missing", &a), ErrUnknownActivity)
	assert.NoError(t, ValidateParent(f, "c", &d))
	assert.NoError(t, ValidateParent(f, "c", nil))
}
