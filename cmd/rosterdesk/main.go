package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/rosterdesk/internal/cli"
	"github.com/alexanderramin/rosterdesk/internal/config"
	"github.com/alexanderramin/rosterdesk/internal/db"
	"github.com/alexanderramin/rosterdesk/internal/logger"
	"github.com/alexanderramin/rosterdesk/internal/repository"
	"github.com/alexanderramin/rosterdesk/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.ResolvePath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log := logger.New("rosterdesk", cfg.Log, os.Stderr)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	log.Debug().Str("db_path", cfg.DBPath).Msg("database ready")

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(log)

	app := &cli.App{
		Roster:    service.NewRosterService(repository.NewSQLiteRosterRepo(database), uow, observer),
		Schedules: service.NewScheduleService(repository.NewSQLiteScheduleRepo(database), uow, observer),
		Editor: service.NewEditorService(uow, service.EditorConfig{
			UndoLimit:      cfg.UndoLimit,
			MaxSuggestions: cfg.MaxSuggestions,
		}, observer),
	}

	// Prompts only run when stdin is a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
