package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/gantt/internal/cli"
	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.Database.Path, db.Options{BusyTimeout: cfg.Database.BusyTimeoutMS})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	observer, closeLog, err := newObserver(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	// Wire repositories
	activityRepo := repository.NewSQLiteActivityRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Activities:   service.NewActivityService(activityRepo, uow, observer),
		Dependencies: service.NewDependencyService(depRepo, activityRepo, observer),
		Milestones:   service.NewMilestoneService(milestoneRepo, activityRepo, observer),
		Board:        service.NewBoardService(uow),
		Import:       service.NewImportService(uow, observer),

		Config:     cfg,
		SaveConfig: config.Save,
		Observer:   observer,
	}

	// The board only runs on an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(context.Background())
}

// newObserver returns the use-case logger selected by cfg. The returned
// func closes the log file, if one was opened.
func newObserver(cfg config.LogConfig) (service.UseCaseObserver, func(), error) {
	if !cfg.Enabled {
		return service.NoopUseCaseObserver{}, func() {}, nil
	}
	if cfg.File == "" {
		return service.NewLogUseCaseObserver(os.Stderr), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return service.NewLogUseCaseObserver(f), func() { f.Close() }, nil
}
