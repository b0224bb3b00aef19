package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/bmo/internal/cli"
	"github.com/alexanderramin/bmo/internal/config"
	"github.com/alexanderramin/bmo/internal/db"
	"github.com/alexanderramin/bmo/internal/logger"
	"github.com/alexanderramin/bmo/internal/repository"
	"github.com/alexanderramin/bmo/internal/service"
	"github.com/alexanderramin/bmo/internal/viewstate"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configFlag reads --config ahead of cobra, which needs the loaded config
// to build its commands. Every other argument is left for cobra.
func configFlag(args []string) string {
	fs := pflag.NewFlagSet("bmo", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}

func run() error {
	cfg, err := config.Load(configFlag(os.Args[1:]))
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer log.Close()

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	alertRepo := repository.NewSQLiteAlertRepo(database)
	prefRepo := repository.NewSQLitePreferenceRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewSlogUseCaseObserver(log.Logger)

	store := viewstate.NewStore(prefRepo, log.Logger)
	store.Load(context.Background())

	app := &cli.App{
		Alerts:  service.NewAlertService(alertRepo, uow, observer),
		Imports: service.NewImportService(uow, observer),
		Prefs:   prefRepo,
		State:   store,
		Config:  cfg,
		Logger:  log.Logger,
	}

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	log.Debug("starting", "db", cfg.Database.Path, "log", log.Path)
	return cli.NewRootCmd(app).Execute()
}
