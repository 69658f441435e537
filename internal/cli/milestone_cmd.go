package cli

import (
	"fmt"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/spf13/cobra"
)

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "milestone",
		Aliases: []string{"ms"},
		Short:   "Manage milestones",
	}

	cmd.AddCommand(
		newMilestoneAddCmd(app),
		newMilestoneListCmd(app),
		newMilestoneRemoveCmd(app),
	)

	return cmd
}

func newMilestoneAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add ACTIVITY NAME DATE",
		Short: "Add a milestone to an activity",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date, err := domain.ParseDate(args[2])
			if err != nil {
				return err
			}
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}
			m, err := app.Milestones.CreateMilestone(ctx, a.ID, args[1], date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added milestone %s %s on %s %s\n",
				formatter.StyleYellow.Render("◆"), formatter.Bold(m.Name), domain.FormatDate(m.Date), formatter.TruncID(m.ID))
			return nil
		},
	}
}

func newMilestoneListCmd(app *App) *cobra.Command {
	var of string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List milestones by date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snap, err := app.Board.Load(ctx)
			if err != nil {
				return err
			}
			ms := snap.Milestones
			if of != "" {
				a, err := matchActivity(snap.Activities, of)
				if err != nil {
					return err
				}
				ms = nil
				for _, m := range snap.Milestones {
					if m.ActivityID == a.ID {
						ms = append(ms, m)
					}
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMilestoneList(ms, activityNames(snap.Activities)))
			return nil
		},
	}

	cmd.Flags().StringVar(&of, "activity", "", "Only milestones of this activity")

	return cmd
}

func newMilestoneRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm MILESTONE",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a milestone",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := resolveMilestone(ctx, app, args[0])
			if err != nil {
				return err
			}
			ok, err := confirmDelete(app, yes, fmt.Sprintf("Delete milestone %q?", m.Name), "This cannot be undone.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}
			if err := app.Milestones.DeleteMilestone(ctx, m.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted milestone %s %s\n", formatter.Bold(m.Name), formatter.TruncID(m.ID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
