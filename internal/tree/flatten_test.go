package tree

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_PreorderWithDepth(t *testing.T) {
	f := Build([]*domain.Activity{
		act("a", "", 0),
		act("a1", "a", 0),
		act("a1x", "a1", 0),
		act("a2", "a", 1),
		act("b", "", 1),
	})

	rows := Flatten(f)
	assert.Equal(t, []string{"a", "a1", "a1x", "a2", "b"}, ids(rows))
	assert.Equal(t, []int{0, 1, 2, 1, 0}, []int{rows[0].Depth, rows[1].Depth, rows[2].Depth, rows[3].Depth, rows[4].Depth})
	assert.True(t, rows[0].HasChildren)
	assert.False(t, rows[4].HasChildren)
}

func TestFlatten_CollapsedHidesSubtreeOnly(t *testing.T) {
	a1 := act("a1", "a", 0)
	a1.Collapsed = true
	f := Build([]*domain.Activity{
		act("a", "", 0),
		a1,
		act("a1x", "a1", 0),
		act("a1y", "a1x", 0),
		act("a2", "a", 1),
	})

	assert.Equal(t, []string{"a", "a1", "a2"}, ids(Flatten(f)))
	assert.Equal(t, []string{"a", "a1", "a1x", "a1y", "a2"}, ids(FlattenAll(f)))
}

func TestFlatten_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	f := Build(randomActivities(rng, 40))
	assert.Equal(t, Flatten(f), Flatten(f))
}

// TestFlatten_Property_ExcludesExactlyCollapsedDescendants checks, over
// random forests, that each node appears once unless it is a strict
// descendant of a collapsed node, with depth equal to its structural depth.
func TestFlatten_Property_ExcludesExactlyCollapsedDescendants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		acts := randomActivities(rng, rng.Intn(30)+1)
		f := Build(acts)
		rows := Flatten(f)

		seen := make(map[string]int)
		for _, r := range rows {
			seen[r.Activity.ID]++
			assert.Equal(t, f.Depth(r.Activity.ID), r.Depth, "trial %d: depth of %s", trial, r.Activity.ID)
		}

		for _, a := range acts {
			hidden := false
			for _, anc := range f.Ancestors(a.ID) {
				p, _ := f.Activity(anc)
				if p.Collapsed {
					hidden = true
					break
				}
			}
			if hidden {
				assert.Zero(t, seen[a.ID], "trial %d: %s should be hidden", trial, a.ID)
			} else {
				assert.Equal(t, 1, seen[a.ID], "trial %d: %s should appear once", trial, a.ID)
			}
		}
	}
}

func TestIndexOfAndActivities(t *testing.T) {
	rows := Flatten(Build([]*domain.Activity{act("a", "", 0), act("b", "", 1)}))
	assert.Equal(t, 1, IndexOf(rows, "b"))
	assert.Equal(t, -1, IndexOf(rows, "zz"))
	require.Len(t, Activities(rows), 2)
}
