package feed

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce absorbs the burst of events a single save produces.
const DefaultDebounce = 300 * time.Millisecond

type watchConfig struct {
	debounce time.Duration
	logger   *slog.Logger
}

// WatchOption tunes Watch.
type WatchOption func(*watchConfig)

func WithDebounce(d time.Duration) WatchOption {
	return func(c *watchConfig) {
		c.debounce = d
	}
}

func WithLogger(l *slog.Logger) WatchOption {
	return func(c *watchConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Watch calls onChange once per burst of writes to path until ctx is done.
// The parent directory is watched so editors that save by rename are seen.
// It returns nil on cancellation and an error only if watching cannot start.
func Watch(ctx context.Context, path string, onChange func(), opts ...WatchOption) error {
	cfg := watchConfig{debounce: DefaultDebounce, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving feed path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	cfg.logger.Info("feed watcher started", "path", abs)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(cfg.debounce)
			} else {
				timer.Reset(cfg.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			cfg.logger.Info("feed file changed", "path", abs)
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cfg.logger.Error("feed watcher error", "error", err)

		case <-ctx.Done():
			cfg.logger.Info("feed watcher stopping", "path", abs)
			return nil
		}
	}
}
