package domain

import "time"

// Milestone is a point-in-time marker owned by one activity.
// Date is nil when the stored value could not be parsed.
type Milestone struct {
	ID         string
	ActivityID string
	Name       string
	Date       *time.Time
	CreatedAt  time.Time
}
