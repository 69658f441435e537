package tree

import "github.com/alexanderramin/gantt/internal/domain"

// Indent makes id a child of its immediately preceding sibling, placed after
// that sibling's existing children. The first sibling yields no edits.
func Indent(f *Forest, id string) ([]Edit, error) {
	if !f.Has(id) {
		return nil, ErrUnknownActivity
	}
	siblings := f.Siblings(id)
	pos := position(siblings, id)
	if pos <= 0 {
		return nil, nil
	}
	prev := siblings[pos-1]
	if err := ValidateParent(f, id, &prev.ID); err != nil {
		return nil, err
	}
	return []Edit{{
		ID:        id,
		ParentID:  strPtr(prev.ID),
		SortOrder: intPtr(nextSortOrder(f.Children(prev.ID))),
	}}, nil
}

// Outdent moves id up one level, directly after its former parent. The new
// sibling group is renumbered; only changed sort orders are emitted.
// Top-level activities yield no edits.
func Outdent(f *Forest, id string) ([]Edit, error) {
	if !f.Has(id) {
		return nil, ErrUnknownActivity
	}
	parent, ok := f.Parent(id)
	if !ok {
		return nil, nil
	}
	grandparent, hasGrandparent := f.Parent(parent.ID)

	var group []*domain.Activity
	var newParent *string
	if hasGrandparent {
		group = f.Children(grandparent.ID)
		newParent = strPtr(grandparent.ID)
	} else {
		group = f.Roots()
	}
	if err := ValidateParent(f, id, newParent); err != nil {
		return nil, err
	}

	self, _ := f.Activity(id)
	var order []*domain.Activity
	for _, a := range group {
		order = append(order, a)
		if a.ID == parent.ID {
			order = append(order, self)
		}
	}

	var edits []Edit
	for i, a := range order {
		if a.ID == id {
			e := Edit{ID: id, SortOrder: intPtr(i)}
			if newParent == nil {
				e.ClearParent = true
			} else {
				e.ParentID = newParent
			}
			edits = append(edits, e)
			continue
		}
		if a.SortOrder != i {
			edits = append(edits, Edit{ID: a.ID, SortOrder: intPtr(i)})
		}
	}
	return edits, nil
}

// Demote nests a top-level activity under the previous top-level activity.
func Demote(f *Forest, id string) ([]Edit, error) {
	if !f.Has(id) {
		return nil, ErrUnknownActivity
	}
	if _, nested := f.Parent(id); nested {
		return nil, ErrNotTopLevel
	}
	if len(f.Children(id)) > 0 {
		return nil, ErrHasChildren
	}
	roots := f.Roots()
	pos := position(roots, id)
	if pos <= 0 {
		return nil, ErrFirstTopLevel
	}
	prev := roots[pos-1]
	if err := ValidateParent(f, id, &prev.ID); err != nil {
		return nil, err
	}
	return []Edit{{
		ID:        id,
		ParentID:  strPtr(prev.ID),
		SortOrder: intPtr(nextSortOrder(f.Children(prev.ID))),
	}}, nil
}

// Promote clears the parent, appending the activity to the top level.
// Top-level activities yield no edits.
func Promote(f *Forest, id string) ([]Edit, error) {
	if !f.Has(id) {
		return nil, ErrUnknownActivity
	}
	self, _ := f.Activity(id)
	if self.ParentID == nil {
		return nil, nil
	}
	return []Edit{{
		ID:          id,
		ClearParent: true,
		SortOrder:   intPtr(nextSortOrder(f.Roots())),
	}}, nil
}

func position(group []*domain.Activity, id string) int {
	for i, a := range group {
		if a.ID == id {
			return i
		}
	}
	return -1
}
