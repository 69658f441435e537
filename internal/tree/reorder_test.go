package tree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorder_PerParentCounters(t *testing.T) {
	order := []*domain.Activity{
		act("b", "", 1),
		act("a", "", 0),
		act("a2", "a", 1),
		act("a1", "a", 0),
		act("c", "", 2),
	}

	assigned := Assign(order)
	assert.Equal(t, map[string]int{"b": 0, "a": 1, "a2": 0, "a1": 1, "c": 2}, assigned)

	edits := Reorder(order)
	got := make(map[string]int)
	for _, e := range edits {
		require.NotNil(t, e.SortOrder)
		assert.Nil(t, e.ParentID, "reorder never reparents")
		assert.False(t, e.ClearParent)
		got[e.ID] = *e.SortOrder
	}
	assert.Equal(t, map[string]int{"b": 0, "a": 1, "a2": 0, "a1": 1}, got, "c keeps its order and is not emitted")
}

// TestReorder_Property_ContiguousPerParent checks that after any drag the
// ids are unchanged and each parent's members get exactly 0..k-1.
func TestReorder_Property_ContiguousPerParent(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 200; trial++ {
		acts := randomActivities(rng, rng.Intn(25)+1)
		visible := Activities(Flatten(Build(acts)))
		moved := Move(visible, rng.Intn(len(visible)), rng.Intn(len(visible)))

		require.Len(t, moved, len(visible))
		assert.ElementsMatch(t, Activities(Flatten(Build(acts))), moved, "trial %d: ids preserved", trial)

		updated := Apply(moved, Reorder(moved))
		groups := make(map[string][]int)
		for _, a := range updated {
			groups[a.ParentKey()] = append(groups[a.ParentKey()], a.SortOrder)
		}
		for parent, orders := range groups {
			sort.Ints(orders)
			for i, v := range orders {
				assert.Equal(t, i, v, "trial %d: parent %q orders %v", trial, parent, orders)
			}
		}
	}
}

func TestMove(t *testing.T) {
	order := []*domain.Activity{act("a", "", 0), act("b", "", 1), act("c", "", 2), act("d", "", 3)}

	got := Move(order, 0, 2)
	assert.Equal(t, []string{"b", "c", "a", "d"}, activityIDs(got))
	assert.Equal(t, []string{"a", "b", "c", "d"}, activityIDs(order), "input untouched")

	got = Move(order, 3, -5)
	assert.Equal(t, []string{"d", "a", "b", "c"}, activityIDs(got))

	assert.Empty(t, Move(nil, 0, 1))
}

func TestShift_SwapsWithSiblingAcrossChildren(t *testing.T) {
	order := []*domain.Activity{
		act("a", "", 0),
		act("a1", "a", 0),
		act("b", "", 1),
	}

	up := Shift(order, "b", -1)
	assert.Equal(t, []string{"b", "a1", "a"}, activityIDs(up))

	edits := Reorder(up)
	got := map[string]int{}
	for _, e := range edits {
		got[e.ID] = *e.SortOrder
	}
	assert.Equal(t, map[string]int{"b": 0, "a": 1}, got)

	assert.Equal(t, activityIDs(order), activityIDs(Shift(order, "a", -1)), "first sibling cannot move up")
	assert.Equal(t, activityIDs(order), activityIDs(Shift(order, "a1", 1)), "only child cannot move")
}

func activityIDs(acts []*domain.Activity) []string {
	out := make([]string, len(acts))
	for i, a := range acts {
		out[i] = a.ID
	}
	return out
}
