package tree

import "github.com/alexanderramin/gantt/internal/domain"

// Assign scans order once, keeping one running counter per parent, and
// returns the sort order each activity receives. Parents are not changed.
func Assign(order []*domain.Activity) map[string]int {
	counters := make(map[string]int)
	out := make(map[string]int, len(order))
	for _, a := range order {
		key := a.ParentKey()
		out[a.ID] = counters[key]
		counters[key]++
	}
	return out
}

// Reorder returns edits for the activities whose sort order changes when
// the visible order becomes order.
func Reorder(order []*domain.Activity) []Edit {
	assigned := Assign(order)
	var edits []Edit
	for _, a := range order {
		if v := assigned[a.ID]; v != a.SortOrder {
			edits = append(edits, Edit{ID: a.ID, SortOrder: intPtr(v)})
		}
	}
	return edits
}

// Move returns a copy of order with the element at from moved to index to.
// Out-of-range indexes are clamped.
func Move(order []*domain.Activity, from, to int) []*domain.Activity {
	out := append([]*domain.Activity(nil), order...)
	if len(out) == 0 {
		return out
	}
	from = clamp(from, 0, len(out)-1)
	to = clamp(to, 0, len(out)-1)
	if from == to {
		return out
	}
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]*domain.Activity{moved}, out[to:]...)...)
	return out
}

// Shift swaps id with its previous (delta < 0) or next (delta > 0) sibling
// inside order, leaving other rows in place. This is the keyboard path; its
// result feeds Reorder exactly like a pointer drop.
func Shift(order []*domain.Activity, id string, delta int) []*domain.Activity {
	out := append([]*domain.Activity(nil), order...)
	at := -1
	for i, a := range out {
		if a.ID == id {
			at = i
			break
		}
	}
	if at < 0 || delta == 0 {
		return out
	}
	key := out[at].ParentKey()
	step := 1
	if delta < 0 {
		step = -1
	}
	for i := at + step; i >= 0 && i < len(out); i += step {
		if out[i].ParentKey() == key {
			out[at], out[i] = out[i], out[at]
			break
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
