package cli

import (
	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Activities   service.ActivityService
	Dependencies service.DependencyService
	Milestones   service.MilestoneService
	Board        service.BoardService
	Import       service.ImportService

	Config     config.Config
	SaveConfig func(config.Config) error
	Observer   service.UseCaseObserver

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// saveConfig persists a.Config when a saver is wired.
func (a *App) saveConfig() error {
	if a.SaveConfig == nil {
		return nil
	}
	return a.SaveConfig(a.Config)
}

// NewRootCmd creates the top-level "gantt" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "gantt",
		Short:         "Timeline planner with dependencies and milestones",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newActivityCmd(app),
		newDepCmd(app),
		newMilestoneCmd(app),
		newImportCmd(app),
		newZoomCmd(app),
		newBoardCmd(app),
	)

	return root
}
