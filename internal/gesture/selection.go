package gesture

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/tree"
)

// Key is a keyboard command understood by the controller.
type Key int

const (
	KeyDelete Key = iota + 1
	KeyBackspace
	KeyEscape
	KeyMoveUp
	KeyMoveDown
	KeyIndent
	KeyOutdent
	KeyToggleCollapse
)

// Focus enables keyboard handling.
func (c *Controller) Focus() { c.focused = true }

// Blur disables keyboard handling.
func (c *Controller) Blur() { c.focused = false }

// Focused reports whether keyboard handling is enabled.
func (c *Controller) Focused() bool { return c.focused }

// Selected returns the selected activity id, or "".
func (c *Controller) Selected() string { return c.selected }

// Select marks id as selected without firing the select handler.
func (c *Controller) Select(id string) {
	if _, ok := c.snapshot.Activity(id); ok {
		c.selected = id
	}
}

// ClearSelection drops the selection.
func (c *Controller) ClearSelection() { c.selected = "" }

// SelectRelative moves the selection delta visible rows, starting at the top
// when nothing is selected.
func (c *Controller) SelectRelative(delta int) {
	rows := c.view.Rows
	if len(rows) == 0 {
		return
	}
	i := tree.IndexOf(rows, c.selected)
	if i < 0 {
		c.selected = rows[0].Activity.ID
		return
	}
	i = min(max(i+delta, 0), len(rows)-1)
	c.selected = rows[i].Activity.ID
}

func (c *Controller) selectActivity(id string) {
	c.selected = id
	if c.onSelect != nil {
		c.onSelect(id)
	}
}

// HandleKey runs a keyboard command against the selection. It reports false
// when the controller is not focused or the key does not apply.
func (c *Controller) HandleKey(ctx context.Context, k Key) (bool, error) {
	if !c.focused {
		return false, nil
	}
	if k == KeyEscape {
		c.selected = ""
		c.pending = nil
		return true, nil
	}
	if c.selected == "" {
		return false, nil
	}

	switch k {
	case KeyDelete, KeyBackspace:
		return true, c.RequestDeleteActivity(c.selected)
	case KeyMoveUp:
		return true, c.Shift(ctx, c.selected, -1)
	case KeyMoveDown:
		return true, c.Shift(ctx, c.selected, 1)
	case KeyIndent:
		return true, c.Indent(ctx, c.selected)
	case KeyOutdent:
		return true, c.Outdent(ctx, c.selected)
	case KeyToggleCollapse:
		return true, c.ToggleCollapse(ctx, c.selected)
	default:
		return false, nil
	}
}

// Shift is the keyboard reorder: it swaps id with its neighbouring sibling
// and recomputes sort orders exactly like a dropped row drag.
func (c *Controller) Shift(ctx context.Context, id string, delta int) error {
	if _, ok := c.view.RowOf(id); !ok {
		return ErrNotVisible
	}
	edits := tree.Reorder(tree.Shift(c.view.Order(), id, delta))
	return c.applyEdits(ctx, "keyboard.reorder", id, edits)
}

// Indent nests id under its preceding sibling.
func (c *Controller) Indent(ctx context.Context, id string) error {
	return c.structural(ctx, "indent", id, tree.Indent)
}

// Outdent moves id up one level.
func (c *Controller) Outdent(ctx context.Context, id string) error {
	return c.structural(ctx, "outdent", id, tree.Outdent)
}

// Demote nests a top-level id under the previous top-level activity.
func (c *Controller) Demote(ctx context.Context, id string) error {
	return c.structural(ctx, "demote", id, tree.Demote)
}

// Promote moves id to the top level.
func (c *Controller) Promote(ctx context.Context, id string) error {
	return c.structural(ctx, "promote", id, tree.Promote)
}

// structural computes the edits on the current forest. Rejected edits are
// returned unchanged and nothing is committed.
func (c *Controller) structural(ctx context.Context, name, id string, op func(*tree.Forest, string) ([]tree.Edit, error)) error {
	edits, err := op(c.view.Forest, id)
	if err != nil {
		return err
	}
	return c.applyEdits(ctx, name, id, edits)
}

func (c *Controller) applyEdits(ctx context.Context, name, id string, edits []tree.Edit) error {
	if len(edits) == 0 {
		return nil
	}
	fields := map[string]any{"activity_id": id, "edits": len(edits)}
	_, err := c.commit(ctx, name, fields, Outcome{}, func(ctx context.Context) error {
		return c.ports.Activities.ApplyEdits(ctx, edits)
	})
	return err
}

// ToggleCollapse flips the collapsed flag of id.
func (c *Controller) ToggleCollapse(ctx context.Context, id string) error {
	a, ok := c.snapshot.Activity(id)
	if !ok {
		return ErrNotVisible
	}
	collapsed := !a.Collapsed
	fields := map[string]any{"activity_id": id, "collapsed": collapsed}
	_, err := c.commit(ctx, "toggle-collapse", fields, Outcome{}, func(ctx context.Context) error {
		_, err := c.ports.Activities.UpdateActivity(ctx, id, domain.ActivityPatch{Collapsed: &collapsed})
		return err
	})
	return err
}

// CreateActivity adds an undated top-level activity and selects it.
func (c *Controller) CreateActivity(ctx context.Context, name string) (*domain.Activity, error) {
	var created *domain.Activity
	_, err := c.commit(ctx, "create-activity", map[string]any{"name": name}, Outcome{}, func(ctx context.Context) error {
		var err error
		created, err = c.ports.Activities.CreateActivity(ctx, name)
		return err
	})
	if created != nil {
		c.Select(created.ID)
	}
	return created, err
}

// AddMilestone creates a milestone on activityID.
func (c *Controller) AddMilestone(ctx context.Context, activityID, name string, date time.Time) error {
	if _, ok := c.snapshot.Activity(activityID); !ok {
		return ErrNotVisible
	}
	fields := map[string]any{"activity_id": activityID, "date": date.Format(domain.DateLayout)}
	_, err := c.commit(ctx, "create-milestone", fields, Outcome{}, func(ctx context.Context) error {
		_, err := c.ports.Milestones.CreateMilestone(ctx, activityID, name, date)
		return err
	})
	return err
}

// CycleDependencyType retypes a link FS -> SS -> FF -> FS. This is the only
// way the board produces FF links.
func (c *Controller) CycleDependencyType(ctx context.Context, id string) error {
	d, ok := c.snapshot.Dependency(id)
	if !ok {
		return fmt.Errorf("dependency %s: %w", id, ErrNotVisible)
	}
	next := nextType(d.Type)
	fields := map[string]any{"dependency_id": id, "type": string(next)}
	_, err := c.commit(ctx, "retype-dependency", fields, Outcome{}, func(ctx context.Context) error {
		_, err := c.ports.Dependencies.SetDependencyType(ctx, id, next)
		return err
	})
	return err
}

func nextType(t domain.DependencyType) domain.DependencyType {
	types := domain.DependencyTypes
	for i, v := range types {
		if v == t {
			return types[(i+1)%len(types)]
		}
	}
	return types[0]
}
