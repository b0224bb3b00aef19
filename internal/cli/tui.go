package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexanderramin/bmo/internal/feed"
	"github.com/alexanderramin/bmo/internal/viewstate"
	tea "github.com/charmbracelet/bubbletea"
)

// runTUI starts the full-screen alert center and blocks until the user quits.
func runTUI(ctx context.Context, app *App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen(), tea.WithContext(ctx))

	if app.State != nil {
		log := app.logger()
		unsubscribe := app.State.Subscribe(func(st viewstate.State) {
			attrs := []any{
				"category", st.ActiveCategoryID,
				"sub", st.ActiveSubCategoryID,
				"subsub", st.ActiveSubSubCategoryID,
				"sidebar_collapsed", st.SidebarCollapsed,
			}
			if st.OpenModal != nil {
				attrs = append(attrs, "modal", string(st.OpenModal.Type))
			}
			log.Debug("view state changed", attrs...)
		})
		defer unsubscribe()
	}

	stop, err := startFeedRefresh(ctx, app, func(msg feedImportedMsg) { p.Send(msg) })
	if err != nil {
		return err
	}
	defer stop()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running alert center: %w", err)
	}
	return nil
}

// startFeedRefresh re-imports the configured feed in the background, on file
// change and on the configured schedule, reporting each run to send.
func startFeedRefresh(ctx context.Context, app *App, send func(feedImportedMsg)) (stop func(), err error) {
	cfg := app.feedConfig()
	if cfg.Path == "" || (!cfg.Watch && cfg.Schedule == "") {
		return func() {}, nil
	}

	var mu sync.Mutex
	reimport := func() {
		mu.Lock()
		defer mu.Unlock()
		res, err := app.Imports.ImportFile(ctx, cfg.Path)
		if err != nil {
			app.logger().Warn("feed refresh failed", "path", cfg.Path, "error", err)
		}
		send(feedImportedMsg{result: res, err: err})
	}

	var sched *feed.Scheduler
	if cfg.Schedule != "" {
		sched, err = feed.Schedule(cfg.Schedule, reimport, app.logger())
		if err != nil {
			return nil, err
		}
	}

	if cfg.Watch {
		go func() {
			if err := feed.Watch(ctx, cfg.Path, reimport, feed.WithLogger(app.logger())); err != nil {
				app.logger().Warn("feed watch stopped", "path", cfg.Path, "error", err)
			}
		}()
	}

	return func() {
		if sched != nil {
			sched.Stop()
		}
	}, nil
}
