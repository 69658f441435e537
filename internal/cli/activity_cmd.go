package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/board"
	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/service"
	"github.com/alexanderramin/gantt/internal/tree"
	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"act", "a"},
		Short:   "Manage activities",
	}

	cmd.AddCommand(
		newActivityAddCmd(app),
		newActivityListCmd(app),
		newActivityShowCmd(app),
		newActivityUpdateCmd(app),
		newActivityRemoveCmd(app),
		newActivityStructureCmd(app, "indent", "Indented", "Nest an activity under its previous sibling", tree.Indent),
		newActivityStructureCmd(app, "outdent", "Outdented", "Move an activity up one level, after its parent", tree.Outdent),
		newActivityStructureCmd(app, "demote", "Demoted", "Make a top-level activity the last child of the one above", tree.Demote),
		newActivityStructureCmd(app, "promote", "Promoted", "Move a nested activity to the end of the top level", tree.Promote),
		newActivityMoveCmd(app),
		newActivityToggleCmd(app),
	)

	return cmd
}

func newActivityAddCmd(app *App) *cobra.Command {
	var parent, start, end, color string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a new activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in := service.NewActivity{Name: args[0], Color: color}

			if parent != "" {
				p, err := resolveActivity(ctx, app, parent)
				if err != nil {
					return err
				}
				in.ParentID = &p.ID
			}
			var err error
			if in.StartDate, err = optionalDate(start); err != nil {
				return err
			}
			if in.EndDate, err = optionalDate(end); err != nil {
				return err
			}

			a, err := app.Activities.AddActivity(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created activity %s %s\n", formatter.Bold(a.Name), formatter.TruncID(a.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Parent activity (id, prefix or name)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&color, "color", "", "Bar color (#rrggbb)")

	return cmd
}

func newActivityListCmd(app *App) *cobra.Command {
	var visible bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the activity tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			activities, err := app.Activities.ListActivities(cmd.Context())
			if err != nil {
				return err
			}
			f := tree.Build(activities)
			rows := tree.FlattenAll(f)
			if visible {
				rows = tree.Flatten(f)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActivityTree(rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&visible, "visible", false, "Hide the children of collapsed activities")

	return cmd
}

func newActivityShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ACTIVITY",
		Short: "Show activity details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}
			snap, err := app.Board.Load(ctx)
			if err != nil {
				return err
			}

			detail := formatter.ActivityDetail{
				Activity: a,
				Names:    activityNames(snap.Activities),
			}
			if a.ParentID != nil {
				detail.Parent, _ = snap.Activity(*a.ParentID)
			}
			detail.Children = tree.Build(snap.Activities).Children(a.ID)
			for _, d := range snap.Dependencies {
				if d.FromActivityID == a.ID || d.ToActivityID == a.ID {
					detail.Links = append(detail.Links, d)
				}
			}
			for _, m := range snap.Milestones {
				if m.ActivityID == a.ID {
					detail.Milestones = append(detail.Milestones, m)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActivityDetail(detail))
			return nil
		},
	}
}

func newActivityUpdateCmd(app *App) *cobra.Command {
	var name, start, end, color, parent string
	var topLevel bool

	cmd := &cobra.Command{
		Use:   "update ACTIVITY",
		Short: "Rename, reschedule or reparent an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}

			var patch domain.ActivityPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("color") {
				patch.Color = &color
			}
			if flags.Changed("start") {
				if patch.StartDate, err = requiredDate("start", start); err != nil {
					return err
				}
			}
			if flags.Changed("end") {
				if patch.EndDate, err = requiredDate("end", end); err != nil {
					return err
				}
			}
			switch {
			case topLevel:
				patch.ClearParent = true
			case flags.Changed("parent"):
				p, err := resolveActivity(ctx, app, parent)
				if err != nil {
					return err
				}
				patch.ParentID = &p.ID
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update; pass at least one of --name, --start, --end, --color, --parent, --top-level")
			}

			updated, err := app.Activities.UpdateActivity(ctx, a.ID, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s %s  %s\n",
				formatter.Bold(updated.Name), formatter.TruncID(updated.ID), formatter.DateRange(updated))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&color, "color", "", "Bar color (#rrggbb)")
	cmd.Flags().StringVar(&parent, "parent", "", "New parent activity")
	cmd.Flags().BoolVar(&topLevel, "top-level", false, "Move the activity to the top level")
	cmd.MarkFlagsMutuallyExclusive("parent", "top-level")

	return cmd
}

func newActivityRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ACTIVITY",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an activity with its subtree, links and milestones",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}
			snap, err := app.Board.Load(ctx)
			if err != nil {
				return err
			}

			ok, err := confirmDelete(app, yes,
				fmt.Sprintf("Delete activity %q?", a.Name),
				cascadeSummary(snap, a.ID))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}

			if err := app.Activities.DeleteActivity(ctx, a.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted activity %s %s\n", formatter.Bold(a.Name), formatter.TruncID(a.ID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// newActivityStructureCmd wires one of the tree reparent operations to a
// subcommand. The edits are computed on the current forest and committed in
// one transaction.
func newActivityStructureCmd(app *App, use, done, short string, op func(*tree.Forest, string) ([]tree.Edit, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ACTIVITY",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			activities, err := app.Activities.ListActivities(ctx)
			if err != nil {
				return err
			}
			a, err := matchActivity(activities, args[0])
			if err != nil {
				return err
			}
			edits, err := op(tree.Build(activities), a.ID)
			if err != nil {
				return err
			}
			if err := applyEdits(ctx, app, edits); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", done, formatter.Bold(a.Name))
			return nil
		},
	}
}

func newActivityMoveCmd(app *App) *cobra.Command {
	var up, down bool
	var steps int

	cmd := &cobra.Command{
		Use:   "move ACTIVITY",
		Short: "Move an activity up or down among its siblings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if up == down {
				return fmt.Errorf("pass exactly one of --up or --down")
			}
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			ctx := cmd.Context()
			activities, err := app.Activities.ListActivities(ctx)
			if err != nil {
				return err
			}
			a, err := matchActivity(activities, args[0])
			if err != nil {
				return err
			}

			delta := 1
			if up {
				delta = -1
			}
			order := tree.Activities(tree.FlattenAll(tree.Build(activities)))
			for range steps {
				order = tree.Shift(order, a.ID, delta)
			}
			if err := applyEdits(ctx, app, tree.Reorder(order)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s\n", formatter.Bold(a.Name))
			return nil
		},
	}

	cmd.Flags().BoolVar(&up, "up", false, "Move toward the top")
	cmd.Flags().BoolVar(&down, "down", false, "Move toward the bottom")
	cmd.Flags().IntVar(&steps, "steps", 1, "Number of siblings to move past")

	return cmd
}

func newActivityToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ACTIVITY",
		Short: "Collapse or expand an activity's children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}
			collapsed := !a.Collapsed
			if _, err := app.Activities.UpdateActivity(ctx, a.ID, domain.ActivityPatch{Collapsed: &collapsed}); err != nil {
				return err
			}
			state := "Expanded"
			if collapsed {
				state = "Collapsed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, formatter.Bold(a.Name))
			return nil
		},
	}
}

func applyEdits(ctx context.Context, app *App, edits []tree.Edit) error {
	if len(edits) == 0 {
		return nil
	}
	return app.Activities.ApplyEdits(ctx, edits)
}

// cascadeSummary describes what deleting id takes with it.
func cascadeSummary(snap *board.Snapshot, id string) string {
	var parts []string
	if n := len(tree.Build(snap.Activities).Descendants(id)); n > 0 {
		parts = append(parts, count(n, "nested activity", "nested activities"))
	}
	if n := snap.CountLinks(id); n > 0 {
		parts = append(parts, count(n, "dependency", "dependencies"))
	}
	if n := snap.CountMilestones(id); n > 0 {
		parts = append(parts, count(n, "milestone", "milestones"))
	}
	if len(parts) == 0 {
		return "This cannot be undone."
	}
	return "Also deletes " + strings.Join(parts, ", ") + ". This cannot be undone."
}

func count(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

func optionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func requiredDate(flag, s string) (*time.Time, error) {
	d, err := optionalDate(s)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	if d == nil {
		return nil, fmt.Errorf("--%s requires a date", flag)
	}
	return d, nil
}
