package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/bmo/internal/cli/formatter"
	"github.com/alexanderramin/bmo/internal/repository"
	"github.com/spf13/cobra"
)

func newPrefsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or reset remembered UI preferences",
	}

	cmd.AddCommand(
		newPrefsListCmd(app),
		newPrefsClearCmd(app),
	)

	return cmd
}

func newPrefsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List remembered preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := app.Prefs.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(prefs) == 0 {
				fmt.Fprintln(out, formatter.Dim("No preferences saved."))
				return nil
			}
			rows := make([][]string, 0, len(prefs))
			for _, p := range prefs {
				rows = append(rows, []string{p.Key, formatter.OrDash(p.Value), formatter.Dim(formatter.RelativeTime(p.UpdatedAt, app.now()))})
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"KEY", "VALUE", "UPDATED"}, rows))
			return nil
		},
	}
}

func newPrefsClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [KEY...]",
		Short: "Forget the given preferences, or all of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			keys := args
			if len(keys) == 0 {
				prefs, err := app.Prefs.List(ctx)
				if err != nil {
					return err
				}
				for _, p := range prefs {
					keys = append(keys, p.Key)
				}
			}

			cleared := 0
			for _, k := range keys {
				err := app.Prefs.Delete(ctx, k)
				switch {
				case errors.Is(err, repository.ErrNotFound):
					continue
				case err != nil:
					return fmt.Errorf("clearing %s: %w", k, err)
				}
				cleared++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d preference(s).\n", cleared)
			return nil
		},
	}
}
