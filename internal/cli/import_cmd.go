package cli

import (
	"fmt"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/tree"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import activities, dependencies and milestones from a YAML plan",
		Long: `Import a plan file. Activities are appended after the existing top level.

Example:
  activities:
    - ref: design
      name: Design
      start: 2024-01-01
      end: 2024-01-10
      milestones:
        - name: Review
          date: 2024-01-08
    - ref: build
      name: Build
  dependencies:
    - from: design
      to: build
      type: FS`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportPlan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d activities, %d dependencies, %d milestones\n",
				len(res.Activities), res.DependencyCount, res.MilestoneCount)
			fmt.Fprint(out, formatter.FormatActivityTree(tree.FlattenAll(tree.Build(res.Activities))))
			return nil
		},
	}
}
