package testutil

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/google/uuid"
)

// Activity options
type ActivityOption func(*domain.Activity)

func WithParent(id string) ActivityOption {
	return func(a *domain.Activity) {
		a.ParentID = &id
	}
}

// WithDates sets both dates from YYYY-MM-DD strings. An empty string leaves
// that end unset.
func WithDates(start, end string) ActivityOption {
	return func(a *domain.Activity) {
		a.StartDate = optionalDate(start)
		a.EndDate = optionalDate(end)
	}
}

func WithSortOrder(i int) ActivityOption {
	return func(a *domain.Activity) {
		a.SortOrder = i
	}
}

func WithCollapsed() ActivityOption {
	return func(a *domain.Activity) {
		a.Collapsed = true
	}
}

func WithColor(c string) ActivityOption {
	return func(a *domain.Activity) {
		a.Color = c
	}
}

func NewTestActivity(name string, opts ...ActivityOption) *domain.Activity {
	now := time.Now().UTC().Truncate(time.Second)
	a := &domain.Activity{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func NewTestDependency(fromID, toID string, typ domain.DependencyType) *domain.Dependency {
	return &domain.Dependency{
		ID:             uuid.New().String(),
		FromActivityID: fromID,
		ToActivityID:   toID,
		Type:           typ,
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}
}

func NewTestMilestone(activityID, name, date string) *domain.Milestone {
	return &domain.Milestone{
		ID:         uuid.New().String(),
		ActivityID: activityID,
		Name:       name,
		Date:       optionalDate(date),
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	d := domain.MustDate(s)
	return &d
}
