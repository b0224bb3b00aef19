package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/alexanderramin/bmo/internal/cli/formatter"
	"github.com/alexanderramin/bmo/internal/feed"
	"github.com/alexanderramin/bmo/internal/service"
	"github.com/spf13/cobra"
)

func newFeedCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Import alerts from a YAML or JSON feed",
	}

	cmd.AddCommand(
		newFeedImportCmd(app),
		newFeedWatchCmd(app),
	)

	return cmd
}

// feedPath picks the FILE argument, falling back to feed.path.
func feedPath(app *App, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if p := app.feedConfig().Path; p != "" {
		return p, nil
	}
	return "", fmt.Errorf("no feed file given and feed.path is not configured")
}

func newFeedImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import [FILE]",
		Short: "Import a feed file in a single transaction",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := feedPath(app, args)
			if err != nil {
				return err
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Importing "+path)
			}
			res, err := app.Imports.ImportFile(cmd.Context(), path)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), importMessage(res))
			return nil
		},
	}
}

func newFeedWatchCmd(app *App) *cobra.Command {
	var every string

	cmd := &cobra.Command{
		Use:   "watch [FILE]",
		Short: "Re-import a feed whenever it changes, until interrupted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := feedPath(app, args)
			if err != nil {
				return err
			}
			spec := app.feedConfig().Schedule
			if every != "" {
				d, err := time.ParseDuration(every)
				if err != nil || d <= 0 {
					return fmt.Errorf("invalid --every %q: use a positive duration such as 5m", every)
				}
				spec = "@every " + d.String()
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()
			out := cmd.OutOrStdout()

			// The watcher and the scheduler may fire together.
			var mu sync.Mutex
			reimport := func() {
				mu.Lock()
				defer mu.Unlock()
				runImport(ctx, app, path, out)
			}
			reimport()

			if spec != "" {
				sched, err := feed.Schedule(spec, reimport, app.logger())
				if err != nil {
					return err
				}
				defer sched.Stop()
				if next := sched.Next(); !next.IsZero() {
					fmt.Fprintln(out, formatter.Dim("Next scheduled import "+next.Format(time.RFC3339)))
				}
			}

			fmt.Fprintln(out, formatter.Dim("Watching "+path+" (Ctrl+C to stop)"))
			return feed.Watch(ctx, path, reimport, feed.WithLogger(app.logger()))
		},
	}

	cmd.Flags().StringVar(&every, "every", "", "Also re-import on a fixed interval, e.g. 5m (overrides feed.schedule)")
	return cmd
}

// runImport imports path and reports the outcome on out. Failures are
// reported, not returned, so a watcher survives a bad edit of the file.
func runImport(ctx context.Context, app *App, path string, out io.Writer) {
	res, err := app.Imports.ImportFile(ctx, path)
	if err != nil {
		app.logger().Warn("feed import failed", "path", path, "error", err)
		fmt.Fprintln(out, formatter.StyleRed.Render("Import failed: "+err.Error()))
		return
	}
	fmt.Fprintln(out, importMessage(res))
}

func importMessage(res *service.ImportResult) string {
	msg := fmt.Sprintf("%s Imported %d alert(s) from %s: %d new, %d updated",
		formatter.StyleGreen.Render("✔"), res.Total(), res.Path, res.Created, res.Updated)
	if res.Preserved > 0 {
		msg += formatter.Dim(fmt.Sprintf(" (%d kept local changes)", res.Preserved))
	}
	return msg
}
