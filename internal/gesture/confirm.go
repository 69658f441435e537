package gesture

import (
	"context"
	"fmt"
	"strings"
)

// ConfirmAction is the destructive mutation a request will issue.
type ConfirmAction int

const (
	ConfirmDeleteActivity ConfirmAction = iota + 1
	ConfirmDeleteDependency
	ConfirmDeleteMilestone
)

// ConfirmRequest is a destructive action awaiting the user's answer.
type ConfirmRequest struct {
	Action   ConfirmAction
	TargetID string
	Title    string
	Message  string
}

// Pending returns the request awaiting confirmation, or nil.
func (c *Controller) Pending() *ConfirmRequest { return c.pending }

// Cancel drops the pending request.
func (c *Controller) Cancel() { c.pending = nil }

// RequestDeleteActivity asks to delete id. The message spells out what the
// store will cascade.
func (c *Controller) RequestDeleteActivity(id string) error {
	a, ok := c.snapshot.Activity(id)
	if !ok {
		return ErrNotVisible
	}
	var parts []string
	if n := c.snapshot.CountChildren(id); n > 0 {
		parts = append(parts, plural(n, "child activity", "child activities"))
	}
	if n := c.snapshot.CountLinks(id); n > 0 {
		parts = append(parts, plural(n, "dependency", "dependencies"))
	}
	if n := c.snapshot.CountMilestones(id); n > 0 {
		parts = append(parts, plural(n, "milestone", "milestones"))
	}
	msg := "This cannot be undone."
	if len(parts) > 0 {
		msg = "Also deletes " + strings.Join(parts, ", ") + ". " + msg
	}
	c.pending = &ConfirmRequest{
		Action:   ConfirmDeleteActivity,
		TargetID: id,
		Title:    fmt.Sprintf("Delete activity %q?", displayName(a.Name)),
		Message:  msg,
	}
	return nil
}

// ClickDependency asks to delete the clicked link.
func (c *Controller) ClickDependency(id string) error {
	d, ok := c.snapshot.Dependency(id)
	if !ok {
		return fmt.Errorf("dependency %s: %w", id, ErrNotVisible)
	}
	from, to := d.FromActivityID, d.ToActivityID
	if a, ok := c.snapshot.Activity(from); ok {
		from = displayName(a.Name)
	}
	if a, ok := c.snapshot.Activity(to); ok {
		to = displayName(a.Name)
	}
	c.pending = &ConfirmRequest{
		Action:   ConfirmDeleteDependency,
		TargetID: id,
		Title:    "Delete dependency?",
		Message:  fmt.Sprintf("%s %s → %s", d.Type, from, to),
	}
	return nil
}

// DoubleClickMilestone asks to delete the milestone.
func (c *Controller) DoubleClickMilestone(id string) error {
	m, ok := c.snapshot.Milestone(id)
	if !ok {
		return fmt.Errorf("milestone %s: %w", id, ErrNotVisible)
	}
	c.pending = &ConfirmRequest{
		Action:   ConfirmDeleteMilestone,
		TargetID: id,
		Title:    fmt.Sprintf("Delete milestone %q?", displayName(m.Name)),
		Message:  "This cannot be undone.",
	}
	return nil
}

// Confirm issues exactly one delete for the pending request and refetches.
func (c *Controller) Confirm(ctx context.Context) error {
	req := c.pending
	if req == nil {
		return ErrNothingPending
	}
	c.pending = nil

	var name string
	var mutate func(context.Context) error
	switch req.Action {
	case ConfirmDeleteActivity:
		name = "delete-activity"
		mutate = func(ctx context.Context) error { return c.ports.Activities.DeleteActivity(ctx, req.TargetID) }
	case ConfirmDeleteDependency:
		name = "delete-dependency"
		mutate = func(ctx context.Context) error { return c.ports.Dependencies.DeleteDependency(ctx, req.TargetID) }
	case ConfirmDeleteMilestone:
		name = "delete-milestone"
		mutate = func(ctx context.Context) error { return c.ports.Milestones.DeleteMilestone(ctx, req.TargetID) }
	default:
		return ErrNothingPending
	}

	_, err := c.commit(ctx, name, map[string]any{"id": req.TargetID}, Outcome{}, mutate)
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(untitled)"
	}
	return name
}
