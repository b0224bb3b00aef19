package cli

import (
	"fmt"

	"github.com/alexanderramin/bmo/internal/alertfilter"
	"github.com/alexanderramin/bmo/internal/cli/formatter"
	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/alexanderramin/bmo/internal/navtree"
	"github.com/spf13/cobra"
)

func newAlertsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alerts",
		Aliases: []string{"alert"},
		Short:   "Browse and triage alerts",
	}

	cmd.AddCommand(
		newAlertsListCmd(app),
		newAlertsShowCmd(app),
		newAlertsAckCmd(app),
		newAlertsResolveCmd(app),
		newAlertsEscalateCmd(app),
		newAlertsArchiveCmd(app),
		newAlertsReopenCmd(app),
		newAlertsSummaryCmd(app),
	)

	return cmd
}

func newAlertsListCmd(app *App) *cobra.Command {
	var (
		severities       = newSeveritySlice()
		statuses         = newStatusSlice()
		sources, modules []string
		search           string
		from, to         string
		route, node      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts, optionally scoped to a navigation entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if route != "" && node != "" {
				return fmt.Errorf("--route and --node are mutually exclusive")
			}
			start, err := parseDay("from", from, false)
			if err != nil {
				return err
			}
			end, err := parseDay("to", to, true)
			if err != nil {
				return err
			}

			criteria := alertfilter.Criteria{
				Search:     search,
				Sources:    sources,
				Modules:    modules,
				Severities: severities.values,
				Statuses:   statuses.values,
			}
			if start != nil || end != nil {
				criteria.DateRange = &alertfilter.DateRange{Start: start, End: end}
			}

			ref := route
			if ref == "" {
				ref = node
			}
			scope, n, notice := scopeFor(ref)

			out := cmd.OutOrStdout()
			if notice != "" {
				fmt.Fprintln(out, formatter.StyleYellow.Render(notice))
			}
			if n != nil {
				path := navtree.PathTo(navtree.AlertsTree(), n.ID)
				fmt.Fprintln(out, formatter.Header(formatter.Breadcrumb(path)))
			}

			alerts, err := app.Alerts.List(cmd.Context(), scope, criteria)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatAlertList(alerts, app.now()))
			if len(alerts) > 0 {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("%d alert(s)", len(alerts))))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.Var(severities, "severity", "Severity filter: critical, warning, info, success (repeatable)")
	f.Var(statuses, "status", "Status filter: active, acknowledged, escalated, resolved, archived (repeatable)")
	f.StringSliceVar(&sources, "source", nil, "Source system filter (repeatable)")
	f.StringSliceVar(&modules, "module", nil, "Portal module filter (repeatable)")
	f.StringVarP(&search, "search", "q", "", "Case-insensitive text search on title, description and assignee")
	f.StringVar(&from, "from", "", "Created on or after (YYYY-MM-DD)")
	f.StringVar(&to, "to", "", "Created on or before (YYYY-MM-DD)")
	f.StringVar(&route, "route", "", "Navigation route scope, e.g. /alertes/en-cours/critiques")
	f.StringVar(&node, "node", "", "Navigation node ID scope, e.g. en-cours-critiques")

	return cmd
}

func newAlertsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show every field of an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveAlertID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			a, err := app.Alerts.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAlertDetail(a, app.dateFormat()))
			return nil
		},
	}
}

func newAlertsAckCmd(app *App) *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:   "ack ID",
		Short: "Acknowledge an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransition(cmd, app, args[0], "Acknowledged", func(id string) (*domain.Alert, error) {
				return app.Alerts.Acknowledge(cmd.Context(), id, by)
			})
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "Who takes the alert")
	return cmd
}

func newAlertsResolveCmd(app *App) *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:   "resolve ID",
		Short: "Resolve an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransition(cmd, app, args[0], "Resolved", func(id string) (*domain.Alert, error) {
				return app.Alerts.Resolve(cmd.Context(), id, note)
			})
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "Resolution note")
	return cmd
}

func newAlertsEscalateCmd(app *App) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "escalate ID",
		Short: "Escalate an alert to someone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				if !app.interactive() {
					return fmt.Errorf("--to is required")
				}
				if err := escalateForm(&to).Run(); err != nil {
					return fmt.Errorf("escalation prompt: %w", err)
				}
			}
			return runTransition(cmd, app, args[0], "Escalated", func(id string) (*domain.Alert, error) {
				return app.Alerts.Escalate(cmd.Context(), id, to)
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Recipient of the escalation")
	return cmd
}

func newAlertsArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransition(cmd, app, args[0], "Archived", func(id string) (*domain.Alert, error) {
				return app.Alerts.Archive(cmd.Context(), id)
			})
		},
	}
}

func newAlertsReopenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen ID",
		Short: "Reopen a resolved alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransition(cmd, app, args[0], "Reopened", func(id string) (*domain.Alert, error) {
				return app.Alerts.Reopen(cmd.Context(), id)
			})
		},
	}
}

func newAlertsSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show alert KPIs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Alerts.Summary(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Header("Summary"))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSummary(s))
			return nil
		},
	}
}

func runTransition(cmd *cobra.Command, app *App, ref, verb string, apply func(id string) (*domain.Alert, error)) error {
	id, err := resolveAlertID(cmd.Context(), app, ref)
	if err != nil {
		return err
	}
	a, err := apply(id)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), transitionMessage(verb, a))
	return nil
}

func transitionMessage(verb string, a *domain.Alert) string {
	return fmt.Sprintf("%s %s: %s %s",
		formatter.StyleGreen.Render("✔"), verb, formatter.Bold(a.Title), formatter.StatusPill(a.Status))
}
