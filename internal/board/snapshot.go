// Package board composes a fetched snapshot of activities, dependencies and
// milestones into drawable geometry: visible rows, bars, routed links and
// milestone markers on one timeline scale.
package board

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// Snapshot is one full fetch of the store. It is replaced wholesale after
// every mutation, never patched.
type Snapshot struct {
	Activities   []*domain.Activity
	Dependencies []*domain.Dependency
	Milestones   []*domain.Milestone
}

// Dates returns every known activity and milestone date.
func (s *Snapshot) Dates() []time.Time {
	if s == nil {
		return nil
	}
	var out []time.Time
	for _, a := range s.Activities {
		if a.StartDate != nil {
			out = append(out, *a.StartDate)
		}
		if a.EndDate != nil {
			out = append(out, *a.EndDate)
		}
	}
	for _, m := range s.Milestones {
		if m.Date != nil {
			out = append(out, *m.Date)
		}
	}
	return out
}

// Activity finds an activity by id.
func (s *Snapshot) Activity(id string) (*domain.Activity, bool) {
	if s == nil {
		return nil, false
	}
	for _, a := range s.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Dependency finds a dependency by id.
func (s *Snapshot) Dependency(id string) (*domain.Dependency, bool) {
	if s == nil {
		return nil, false
	}
	for _, d := range s.Dependencies {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

// Milestone finds a milestone by id.
func (s *Snapshot) Milestone(id string) (*domain.Milestone, bool) {
	if s == nil {
		return nil, false
	}
	for _, m := range s.Milestones {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// CountChildren returns the number of direct children of id.
func (s *Snapshot) CountChildren(id string) int {
	if s == nil {
		return 0
	}
	n := 0
	for _, a := range s.Activities {
		if a.ParentID != nil && *a.ParentID == id {
			n++
		}
	}
	return n
}

// CountLinks returns the number of dependencies touching id.
func (s *Snapshot) CountLinks(id string) int {
	if s == nil {
		return 0
	}
	n := 0
	for _, d := range s.Dependencies {
		if d.FromActivityID == id || d.ToActivityID == id {
			n++
		}
	}
	return n
}

// CountMilestones returns the number of milestones owned by id.
func (s *Snapshot) CountMilestones(id string) int {
	if s == nil {
		return 0
	}
	n := 0
	for _, m := range s.Milestones {
		if m.ActivityID == id {
			n++
		}
	}
	return n
}
