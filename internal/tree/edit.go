package tree

import (
	"errors"

	"github.com/alexanderramin/gantt/internal/domain"
)

var (
	// ErrUnknownActivity indicates an id that is not in the forest.
	ErrUnknownActivity = errors.New("unknown activity")

	// ErrCycle indicates a reparent that would place an activity under itself.
	ErrCycle = errors.New("an activity cannot be moved under itself or one of its descendants")

	// ErrHasChildren rejects demoting an activity that still has children.
	ErrHasChildren = errors.New("cannot demote an activity that has children; remove its children first")

	// ErrFirstTopLevel rejects demoting the first top-level activity.
	ErrFirstTopLevel = errors.New("cannot demote the first top-level activity; there is no activity above it")

	// ErrNotTopLevel rejects demoting an activity that is already nested.
	ErrNotTopLevel = errors.New("only top-level activities can be demoted")
)

// Edit is one structural change to commit for an activity.
type Edit struct {
	ID          string
	ParentID    *string
	ClearParent bool
	SortOrder   *int
}

// Patch converts the edit into the store's partial update.
func (e Edit) Patch() domain.ActivityPatch {
	return domain.ActivityPatch{
		ParentID:    e.ParentID,
		ClearParent: e.ClearParent,
		SortOrder:   e.SortOrder,
	}
}

// Apply returns copies of activities with edits applied. Activities without
// an edit are returned as-is.
func Apply(activities []*domain.Activity, edits []Edit) []*domain.Activity {
	byID := make(map[string]Edit, len(edits))
	for _, e := range edits {
		byID[e.ID] = e
	}
	out := make([]*domain.Activity, len(activities))
	for i, a := range activities {
		e, ok := byID[a.ID]
		if !ok {
			out[i] = a
			continue
		}
		c := a.Clone()
		c.Apply(e.Patch())
		out[i] = c
	}
	return out
}

// ValidateParent confirms that moving id under newParent keeps the forest
// acyclic by walking the ancestor chain of newParent. A nil newParent is the
// top level and always valid.
func ValidateParent(f *Forest, id string, newParent *string) error {
	if !f.Has(id) {
		return ErrUnknownActivity
	}
	if newParent == nil {
		return nil
	}
	if !f.Has(*newParent) {
		return ErrUnknownActivity
	}
	if *newParent == id {
		return ErrCycle
	}
	for _, anc := range f.Ancestors(*newParent) {
		if anc == id {
			return ErrCycle
		}
	}
	return nil
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

// nextSortOrder is one past the largest sort order in group.
func nextSortOrder(group []*domain.Activity) int {
	next := 0
	for _, a := range group {
		if a.SortOrder >= next {
			next = a.SortOrder + 1
		}
	}
	return next
}
