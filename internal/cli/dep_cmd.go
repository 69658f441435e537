package cli

import (
	"fmt"

	"github.com/alexanderramin/gantt/internal/board"
	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/spf13/cobra"
)

func newDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dep",
		Aliases: []string{"dependency", "link"},
		Short:   "Manage dependencies between activities",
	}

	cmd.AddCommand(
		newDepAddCmd(app),
		newDepListCmd(app),
		newDepRemoveCmd(app),
		newDepSetTypeCmd(app),
		newDepRouteCmd(app),
	)

	return cmd
}

func newDepAddCmd(app *App) *cobra.Command {
	typ := dependencyTypeFlag{value: domain.FinishToStart}

	cmd := &cobra.Command{
		Use:   "add FROM TO",
		Short: "Link two activities (default finish-to-start)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			from, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}
			to, err := resolveActivity(ctx, app, args[1])
			if err != nil {
				return err
			}

			d, err := app.Dependencies.CreateDependency(ctx, from.ID, to.ID, typ.value)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Linked %s %s → %s %s\n",
				formatter.TypeBadge(d.Type), formatter.Bold(from.Name), formatter.Bold(to.Name), formatter.TruncID(d.ID))
			return nil
		},
	}

	cmd.Flags().VarP(&typ, "type", "t", "Dependency type (FS, SS or FF)")

	return cmd
}

func newDepListCmd(app *App) *cobra.Command {
	var of string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snap, err := app.Board.Load(ctx)
			if err != nil {
				return err
			}
			deps := snap.Dependencies
			if of != "" {
				a, err := matchActivity(snap.Activities, of)
				if err != nil {
					return err
				}
				deps = nil
				for _, d := range snap.Dependencies {
					if d.FromActivityID == a.ID || d.ToActivityID == a.ID {
						deps = append(deps, d)
					}
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDependencyList(deps, activityNames(snap.Activities)))
			return nil
		},
	}

	cmd.Flags().StringVar(&of, "activity", "", "Only links touching this activity")

	return cmd
}

func newDepRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm DEPENDENCY",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a dependency",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := resolveDependency(ctx, app, args[0])
			if err != nil {
				return err
			}
			ok, err := confirmDelete(app, yes,
				fmt.Sprintf("Delete %s dependency %s?", d.Type.Label(), formatter.ShortID(d.ID)),
				"This cannot be undone.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}
			if err := app.Dependencies.DeleteDependency(ctx, d.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted dependency %s\n", formatter.TruncID(d.ID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newDepSetTypeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-type DEPENDENCY TYPE",
		Short: "Change a dependency's type (FS, SS or FF)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := domain.ParseDependencyType(args[1])
			if err != nil {
				return err
			}
			d, err := resolveDependency(ctx, app, args[0])
			if err != nil {
				return err
			}
			updated, err := app.Dependencies.SetDependencyType(ctx, d.ID, t)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dependency %s is now %s (%s)\n",
				formatter.TruncID(updated.ID), formatter.TypeBadge(updated.Type), updated.Type.Label())
			return nil
		},
	}
}

func newDepRouteCmd(app *App) *cobra.Command {
	var zoom granularityFlag

	cmd := &cobra.Command{
		Use:   "route DEPENDENCY",
		Short: "Print the routed waypoints of a dependency on the current board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g := zoom.or(app.Config.Zoom())
			d, err := resolveDependency(ctx, app, args[0])
			if err != nil {
				return err
			}
			snap, err := app.Board.Load(ctx)
			if err != nil {
				return err
			}

			view := board.Compose(snap, boardLayout(app.Config, g)(snap))
			for _, p := range view.Links {
				if p.DependencyID == d.ID {
					fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoute(d, p, activityNames(snap.Activities)))
					return nil
				}
			}
			return fmt.Errorf("dependency %s is not drawn: an endpoint is hidden under a collapsed parent or lacks the anchor date", formatter.ShortID(d.ID))
		},
	}

	cmd.Flags().Var(&zoom, "zoom", "Zoom level to route at (week or month)")

	return cmd
}
