// Package tree rebuilds the activity hierarchy from parent back-references
// and computes the structural edits (reorder, indent, outdent, promote, demote)
// the editor can commit. Everything here is pure: inputs are never mutated.
package tree

import (
	"sort"

	"github.com/alexanderramin/gantt/internal/domain"
)

const noParent = -1

// Forest is an arena of activities with index-based parent/child links.
type Forest struct {
	nodes []node
	index map[string]int
	roots []int
}

type node struct {
	activity *domain.Activity
	parent   int
	children []int
}

// Build groups activities by ParentID. Activities whose parent is missing
// become roots, as do activities only reachable through a parent cycle, so
// every activity appears exactly once. Siblings are ordered by SortOrder
// with ties broken by fetch order.
func Build(activities []*domain.Activity) *Forest {
	f := &Forest{index: make(map[string]int, len(activities))}
	for _, a := range activities {
		if a == nil {
			continue
		}
		if _, dup := f.index[a.ID]; dup {
			continue
		}
		f.index[a.ID] = len(f.nodes)
		f.nodes = append(f.nodes, node{activity: a, parent: noParent})
	}

	for i := range f.nodes {
		a := f.nodes[i].activity
		if a.ParentID == nil {
			continue
		}
		if p, ok := f.index[*a.ParentID]; ok && p != i {
			f.nodes[i].parent = p
		}
	}

	f.breakCycles()

	for i := range f.nodes {
		if p := f.nodes[i].parent; p != noParent {
			f.nodes[p].children = append(f.nodes[p].children, i)
		} else {
			f.roots = append(f.roots, i)
		}
	}
	f.sortSiblings(f.roots)
	for i := range f.nodes {
		f.sortSiblings(f.nodes[i].children)
	}
	return f
}

// breakCycles detaches the earliest-fetched node of every parent cycle.
func (f *Forest) breakCycles() {
	const (
		unseen = iota
		onPath
		settled
	)
	state := make([]int, len(f.nodes))
	for start := range f.nodes {
		if state[start] != unseen {
			continue
		}
		var path []int
		cur := start
		for cur != noParent && state[cur] == unseen {
			state[cur] = onPath
			path = append(path, cur)
			cur = f.nodes[cur].parent
		}
		if cur != noParent && state[cur] == onPath {
			cut := cur
			for i := len(path) - 1; i >= 0 && path[i] != cur; i-- {
				if path[i] < cut {
					cut = path[i]
				}
			}
			f.nodes[cut].parent = noParent
		}
		for _, i := range path {
			state[i] = settled
		}
	}
}

func (f *Forest) sortSiblings(ids []int) {
	sort.SliceStable(ids, func(i, j int) bool {
		return f.nodes[ids[i]].activity.SortOrder < f.nodes[ids[j]].activity.SortOrder
	})
}

// Len returns the number of activities in the forest.
func (f *Forest) Len() int { return len(f.nodes) }

// Has reports whether id is part of the forest.
func (f *Forest) Has(id string) bool {
	_, ok := f.index[id]
	return ok
}

// Activity returns the activity with the given id.
func (f *Forest) Activity(id string) (*domain.Activity, bool) {
	i, ok := f.index[id]
	if !ok {
		return nil, false
	}
	return f.nodes[i].activity, true
}

// Roots returns the top-level activities in order.
func (f *Forest) Roots() []*domain.Activity {
	return f.activities(f.roots)
}

// Children returns the direct children of id in order.
func (f *Forest) Children(id string) []*domain.Activity {
	i, ok := f.index[id]
	if !ok {
		return nil
	}
	return f.activities(f.nodes[i].children)
}

// Parent returns the structural parent of id. Dangling or cyclic parent
// references resolve to no parent.
func (f *Forest) Parent(id string) (*domain.Activity, bool) {
	i, ok := f.index[id]
	if !ok || f.nodes[i].parent == noParent {
		return nil, false
	}
	return f.nodes[f.nodes[i].parent].activity, true
}

// Siblings returns the ordered group id belongs to, id included.
func (f *Forest) Siblings(id string) []*domain.Activity {
	i, ok := f.index[id]
	if !ok {
		return nil
	}
	if p := f.nodes[i].parent; p != noParent {
		return f.activities(f.nodes[p].children)
	}
	return f.activities(f.roots)
}

// Depth returns 0 for top-level activities.
func (f *Forest) Depth(id string) int {
	return len(f.Ancestors(id))
}

// Ancestors lists the ids from the parent of id up to its root.
func (f *Forest) Ancestors(id string) []string {
	i, ok := f.index[id]
	if !ok {
		return nil
	}
	var out []string
	for p := f.nodes[i].parent; p != noParent; p = f.nodes[p].parent {
		out = append(out, f.nodes[p].activity.ID)
	}
	return out
}

// Descendants lists every strict descendant of id in preorder.
func (f *Forest) Descendants(id string) []string {
	i, ok := f.index[id]
	if !ok {
		return nil
	}
	var out []string
	var walk func(int)
	walk = func(n int) {
		for _, c := range f.nodes[n].children {
			out = append(out, f.nodes[c].activity.ID)
			walk(c)
		}
	}
	walk(i)
	return out
}

func (f *Forest) activities(ids []int) []*domain.Activity {
	out := make([]*domain.Activity, len(ids))
	for k, i := range ids {
		out[k] = f.nodes[i].activity
	}
	return out
}
