package cli

import (
	"fmt"

	"github.com/alexanderramin/gantt/internal/board"
	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/gesture"
	"github.com/spf13/cobra"
)

func newZoomCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "zoom [week|month]",
		Short:     "Show or set the timeline zoom level",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(domain.GranularityWeek), string(domain.GranularityMonth)},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintf(out, "Zoom: %s\n", formatter.Bold(string(app.Config.Zoom())))
				return nil
			}
			g, err := domain.ParseGranularity(args[0])
			if err != nil {
				return err
			}
			app.Config.UI.Zoom = string(g)
			if err := app.saveConfig(); err != nil {
				return fmt.Errorf("saving zoom: %w", err)
			}
			fmt.Fprintf(out, "Zoom set to %s\n", formatter.Bold(string(g)))
			return nil
		},
	}
}

// boardLayout derives the board layout from configuration at zoom g.
func boardLayout(cfg config.Config, g domain.Granularity) gesture.LayoutFunc {
	return func(s *board.Snapshot) board.Layout {
		return board.NewLayout(s, board.LayoutOptions{
			Granularity: g,
			ColumnWidth: cfg.ColumnWidth(g),
			RowHeight:   cfg.UI.RowHeight,
			HandleWidth: cfg.UI.CellPixels,
			Gap:         cfg.Routing.Gap,
			PaddingDays: cfg.UI.PaddingDays,
		})
	}
}
