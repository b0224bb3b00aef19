package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/bmo/internal/alertfilter"
	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/alexanderramin/bmo/internal/navtree"
)

// AlertHeaders are the columns of every alert table.
var AlertHeaders = []string{"ID", "SEVERITY", "STATUS", "MODULE", "TITLE", "CREATED"}

// AlertRows turns alerts into table rows. Titles are cut to titleWidth
// cells when titleWidth is positive.
func AlertRows(alerts []*domain.Alert, titleWidth int, now time.Time) [][]string {
	rows := make([][]string, 0, len(alerts))
	for _, a := range alerts {
		title := a.Title
		if titleWidth > 0 {
			title = Truncate(title, titleWidth)
		}
		rows = append(rows, []string{
			TruncID(a.ID),
			SeverityIndicator(a.Severity),
			StatusPill(a.Status),
			OrDash(a.Module),
			title,
			Dim(RelativeTime(a.CreatedAt, now)),
		})
	}
	return rows
}

// FormatAlertList renders alerts as a table, or a notice when empty.
func FormatAlertList(alerts []*domain.Alert, now time.Time) string {
	if len(alerts) == 0 {
		return Dim("No alerts match.") + "\n"
	}
	return RenderTable(AlertHeaders, AlertRows(alerts, 60, now))
}

// FormatAlertDetail renders every field of a single alert.
func FormatAlertDetail(a *domain.Alert, dateFormat string) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-12s", label)), value)
	}

	b.WriteString(Bold(a.Title) + "\n")
	b.WriteString(SeverityIndicator(a.Severity) + "  " + StatusPill(a.Status) + "\n\n")

	line("ID", a.ID)
	line("Source", OrDash(a.Source))
	line("Module", OrDash(a.Module))
	line("Created", FormatDate(a.CreatedAt, dateFormat))
	if a.UpdatedAt != nil {
		line("Updated", FormatDate(*a.UpdatedAt, dateFormat))
	}
	if a.ResolvedAt != nil {
		line("Resolved", FormatDate(*a.ResolvedAt, dateFormat))
	}
	if a.AssignedTo != "" {
		line("Assigned to", a.AssignedTo)
	}
	if a.EscalatedTo != "" {
		line("Escalated to", StyleYellow.Render(a.EscalatedTo))
	}
	if a.Impact != nil {
		b.WriteString("\n")
		line("Financial", Euros(a.Impact.Financial))
		line("Operational", impactLevel(a.Impact.Operational))
		line("Reputation", impactLevel(a.Impact.Reputation))
	}
	if a.Description != "" {
		b.WriteString("\n" + a.Description + "\n")
	}
	if a.Note != "" {
		b.WriteString("\n" + Dim("Note: ") + a.Note + "\n")
	}
	return b.String()
}

func impactLevel(l domain.ImpactLevel) string {
	switch l {
	case domain.ImpactHigh:
		return StyleRed.Render("high")
	case domain.ImpactMedium:
		return StyleYellow.Render("medium")
	case domain.ImpactLow:
		return StyleGreen.Render("low")
	default:
		return Dim("--")
	}
}

// FormatSummary renders the dashboard KPIs.
func FormatSummary(s alertfilter.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d   %s %d\n",
		Dim("Total"), s.Total, Dim("Open"), s.Open)

	var sev []string
	for _, v := range domain.Severities {
		sev = append(sev, SeverityStyle(v).Render(fmt.Sprintf("%s %d", v, s.BySeverity[v])))
	}
	b.WriteString(strings.Join(sev, "  ") + "\n")

	var st []string
	for _, v := range domain.Statuses {
		st = append(st, fmt.Sprintf("%s %d", Dim(string(v)), s.ByStatus[v]))
	}
	b.WriteString(strings.Join(st, "  ") + "\n\n")

	fmt.Fprintf(&b, "%s %s\n", Dim("Resolution "), RenderGauge(s.ResolutionRate()/100, 16))
	fmt.Fprintf(&b, "%s %s\n", Dim("Exposure   "), Bold(Euros(s.FinancialExposure)))
	return b.String()
}

// Breadcrumb joins node labels with a separator.
func Breadcrumb(path []navtree.NavNode) string {
	labels := make([]string, len(path))
	for i, n := range path {
		labels[i] = n.Label
	}
	return strings.Join(labels, " › ")
}
