package cli

import (
	"fmt"

	"github.com/alexanderramin/bmo/internal/cli/formatter"
	"github.com/alexanderramin/bmo/internal/navtree"
	"github.com/spf13/cobra"
)

func newNavCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Inspect the alert center navigation",
	}

	cmd.AddCommand(
		newNavTreeCmd(app),
		newNavResolveCmd(app),
	)

	return cmd
}

func newNavTreeCmd(app *App) *cobra.Command {
	var routes, noBadges bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the navigation tree with live alert counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree := navtree.AlertsTree()
			if !noBadges {
				counts, err := app.Alerts.NavCounts(cmd.Context())
				if err != nil {
					return err
				}
				tree = navtree.WithBadges(tree, counts)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderNavTree("Alertes", tree, routes))
			return nil
		},
	}

	cmd.Flags().BoolVar(&routes, "routes", false, "Show each node's route")
	cmd.Flags().BoolVar(&noBadges, "no-badges", false, "Skip counting alerts")
	return cmd
}

func newNavResolveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve ROUTE|ID",
		Short: "Show where a route or node ID sits in the navigation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree := navtree.AlertsTree()
			n := lookupNode(tree, args[0])
			if n == nil {
				return fmt.Errorf("unknown route or node %q", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Bold(formatter.Breadcrumb(navtree.PathTo(tree, n.ID))))
			fmt.Fprintf(out, "%s %s\n", formatter.Dim("ID    "), n.ID)
			fmt.Fprintf(out, "%s %s\n", formatter.Dim("Route "), n.Route)
			if !n.IsLeaf() {
				fmt.Fprintf(out, "%s %d\n", formatter.Dim("Items "), len(n.Children))
			}
			if scope, ok := navtree.ScopeFor(n.ID); ok && !scope.IsEmpty() {
				fmt.Fprintf(out, "%s %d filter(s)\n", formatter.Dim("Scope "), scope.ActiveCount())
			}
			return nil
		},
	}
}
