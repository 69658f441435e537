package tree

import "github.com/alexanderramin/gantt/internal/domain"

// Row is one line of the flattened view.
type Row struct {
	Activity    *domain.Activity
	Depth       int
	HasChildren bool
}

// Flatten walks the forest depth-first in preorder. A collapsed node still
// emits itself but hides its whole subtree.
func Flatten(f *Forest) []Row {
	return f.flatten(true)
}

// FlattenAll is Flatten with every node treated as expanded.
func FlattenAll(f *Forest) []Row {
	return f.flatten(false)
}

func (f *Forest) flatten(honorCollapse bool) []Row {
	rows := make([]Row, 0, len(f.nodes))
	var walk func(i, depth int)
	walk = func(i, depth int) {
		n := f.nodes[i]
		rows = append(rows, Row{Activity: n.activity, Depth: depth, HasChildren: len(n.children) > 0})
		if honorCollapse && n.activity.Collapsed {
			return
		}
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	for _, r := range f.roots {
		walk(r, 0)
	}
	return rows
}

// Activities strips rows down to their activities.
func Activities(rows []Row) []*domain.Activity {
	out := make([]*domain.Activity, len(rows))
	for i, r := range rows {
		out[i] = r.Activity
	}
	return out
}

// IndexOf returns the row index of id, or -1.
func IndexOf(rows []Row, id string) int {
	for i, r := range rows {
		if r.Activity.ID == id {
			return i
		}
	}
	return -1
}
