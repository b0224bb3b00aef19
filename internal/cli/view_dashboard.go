package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/bmo/internal/alertfilter"
	"github.com/alexanderramin/bmo/internal/cli/formatter"
	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/alexanderramin/bmo/internal/navtree"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// dashboardRecentLimit caps the recent critical alerts list.
const dashboardRecentLimit = 5

type dashboardData struct {
	summary alertfilter.Summary
	recent  []*domain.Alert
}

type dashboardLoadedMsg struct {
	data dashboardData
	err  error
}

// dashboardView is the home screen: KPIs on the left, the most recent
// open critical alerts on the right.
type dashboardView struct {
	state   *SharedState
	data    *dashboardData
	loading bool
	err     error
	cursor  int
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state:   state,
		loading: true,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "alerts")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

func (v *dashboardView) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx := context.Background()

		summary, err := app.Alerts.Summary(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		scope, _ := navtree.ScopeFor(navtree.NodeEnCoursCritiques)
		recent, err := app.Alerts.List(ctx, scope, alertfilter.Criteria{})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		if len(recent) > dashboardRecentLimit {
			recent = recent[:dashboardRecentLimit]
		}
		return dashboardLoadedMsg{data: dashboardData{summary: summary, recent: recent}}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.data = &msg.data
		v.cursor = min(v.cursor, max(len(v.data.recent)-1, 0))
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			v.cursor = max(v.cursor-1, 0)
		case "down", "j":
			if v.data != nil {
				v.cursor = min(v.cursor+1, max(len(v.data.recent)-1, 0))
			}
		case "enter":
			if v.data != nil && v.cursor < len(v.data.recent) {
				return v, pushView(newDetailView(v.state, v.data.recent[v.cursor].ID))
			}
		case "l", "tab":
			return v, pushView(newAlertsView(v.state))
		case "c":
			v.state.SelectNode(navtree.NodeEnCoursCritiques)
			return v, pushView(newAlertsView(v.state))
		case "r":
			v.loading = true
			v.err = nil
			return v, v.loadData()
		}
	}
	return v, nil
}

const dashLeftPaneWidth = 44

func (v *dashboardView) View() string {
	if v.loading && v.data == nil {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if v.data == nil {
		return ""
	}

	left := formatter.StyleHeader.Render("KPIS") + "\n\n" + formatter.FormatSummary(v.data.summary)
	right := v.renderRecent()

	if v.state.Width < 100 {
		return "\n" + left + "\n" + right
	}
	leftCol := lipgloss.NewStyle().Width(dashLeftPaneWidth).Render(left)
	rightCol := lipgloss.NewStyle().Width(v.state.Width - dashLeftPaneWidth - 3).Render(right)
	return "\n" + lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "   ", rightCol)
}

func (v *dashboardView) renderRecent() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("CRITICAL, STILL OPEN") + "\n\n")
	if len(v.data.recent) == 0 {
		b.WriteString(formatter.StyleGreen.Render("Nothing critical. ") + formatter.Dim("Press l to browse all alerts."))
		return b.String()
	}
	now := v.state.App.now()
	for i, a := range v.data.recent {
		cursor := "  "
		title := formatter.StyleFg.Render(formatter.Truncate(a.Title, 48))
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			title = formatter.StyleBold.Render(formatter.Truncate(a.Title, 48))
		}
		b.WriteString(cursor + title + "\n")
		b.WriteString("    " + formatter.Dim(formatter.OrDash(a.Module)+" · "+formatter.RelativeTime(a.CreatedAt, now)))
		if a.Impact != nil && a.Impact.Financial > 0 {
			b.WriteString(formatter.Dim(" · ") + formatter.StyleYellow.Render(formatter.Euros(a.Impact.Financial)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
