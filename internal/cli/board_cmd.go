package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var errNotInteractive = errors.New("the board needs an interactive terminal")

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive timeline",
		Long: `Open the interactive timeline.

Drag a bar to move it, drag its first or last cell to resize, and drag from
the dot before or after a selected bar onto another row to link the two.
Drag along an undated row to schedule it. Drag names to reorder them.
Click a link to delete it; double-click a milestone to delete it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			m, err := newBoardModel(cmd.Context(), app)
			if err != nil {
				return err
			}
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}
