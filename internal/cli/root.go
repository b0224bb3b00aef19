package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/bmo/internal/cli/formatter"
	"github.com/alexanderramin/bmo/internal/config"
	"github.com/alexanderramin/bmo/internal/repository"
	"github.com/alexanderramin/bmo/internal/service"
	"github.com/alexanderramin/bmo/internal/viewstate"
	"github.com/spf13/cobra"
)

// App holds the services and settings shared by every command.
type App struct {
	Alerts  service.AlertService
	Imports service.ImportService
	Prefs   repository.PreferenceRepo
	State   *viewstate.Store

	Config *config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// Now is the clock used for relative dates. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *App) dateFormat() string {
	if a.Config == nil || a.Config.UI.DateFormat == "" {
		return formatter.DefaultDateFormat
	}
	return a.Config.UI.DateFormat
}

func (a *App) sidebarWidth() int {
	if a.Config == nil || a.Config.UI.SidebarWidth < 1 {
		return 30
	}
	return a.Config.UI.SidebarWidth
}

func (a *App) feedConfig() config.FeedConfig {
	if a.Config == nil {
		return config.FeedConfig{}
	}
	return a.Config.Feed
}

func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "bmo",
		Short:         "Alert center for the BMO portal",
		Long:          "bmo browses, filters and triages portal alerts from the terminal.\nRun without arguments on a terminal to open the interactive view.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runTUI(cmd.Context(), app)
		},
	}

	root.PersistentFlags().String("config", "", "Config file (default ~/.config/bmo/config.yaml)")

	root.AddCommand(
		newAlertsCmd(app),
		newFeedCmd(app),
		newNavCmd(app),
		newPrefsCmd(app),
	)

	return root
}
