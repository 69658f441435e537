package domain

import "time"

// Activity is a schedulable unit positioned on the timeline by its dates.
// The tree is reconstructed from ParentID; there are no child pointers.
type Activity struct {
	ID        string
	ParentID  *string
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	Collapsed bool
	SortOrder int
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot reports whether the activity sits on the top level.
func (a *Activity) IsRoot() bool {
	return a.ParentID == nil
}

// ParentKey returns the parent id, or "" for top-level activities.
func (a *Activity) ParentKey() string {
	if a.ParentID == nil {
		return ""
	}
	return *a.ParentID
}

// IsDated reports whether at least one of the dates is set.
func (a *Activity) IsDated() bool {
	return a.StartDate != nil || a.EndDate != nil
}

// Span returns the start and end used for drawing. A bar with a single
// date collapses onto that date. ok is false when neither date is set.
func (a *Activity) Span() (start, end time.Time, ok bool) {
	switch {
	case a.StartDate != nil && a.EndDate != nil:
		return *a.StartDate, *a.EndDate, true
	case a.StartDate != nil:
		return *a.StartDate, *a.StartDate, true
	case a.EndDate != nil:
		return *a.EndDate, *a.EndDate, true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// ValidateDates enforces start <= end when both are present.
func (a *Activity) ValidateDates() error {
	if a.StartDate != nil && a.EndDate != nil && a.StartDate.After(*a.EndDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (a *Activity) Clone() *Activity {
	c := *a
	if a.ParentID != nil {
		p := *a.ParentID
		c.ParentID = &p
	}
	if a.StartDate != nil {
		s := *a.StartDate
		c.StartDate = &s
	}
	if a.EndDate != nil {
		e := *a.EndDate
		c.EndDate = &e
	}
	return &c
}

// ActivityPatch is a partial update. Nil fields are left unchanged.
// ClearParent moves the activity to the top level and wins over ParentID.
type ActivityPatch struct {
	Name        *string
	StartDate   *time.Time
	EndDate     *time.Time
	Collapsed   *bool
	ParentID    *string
	ClearParent bool
	SortOrder   *int
	Color       *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ActivityPatch) IsEmpty() bool {
	return p.Name == nil && p.StartDate == nil && p.EndDate == nil &&
		p.Collapsed == nil && p.ParentID == nil && !p.ClearParent &&
		p.SortOrder == nil && p.Color == nil
}

// TouchesParent reports whether the patch reassigns the parent.
func (p ActivityPatch) TouchesParent() bool {
	return p.ParentID != nil || p.ClearParent
}

// Apply writes the patch onto a.
func (a *Activity) Apply(p ActivityPatch) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.StartDate != nil {
		d := Day(*p.StartDate)
		a.StartDate = &d
	}
	if p.EndDate != nil {
		d := Day(*p.EndDate)
		a.EndDate = &d
	}
	if p.Collapsed != nil {
		a.Collapsed = *p.Collapsed
	}
	if p.ClearParent {
		a.ParentID = nil
	} else if p.ParentID != nil {
		id := *p.ParentID
		a.ParentID = &id
	}
	if p.SortOrder != nil {
		a.SortOrder = *p.SortOrder
	}
	if p.Color != nil {
		a.Color = *p.Color
	}
}
