package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/bmo/internal/alertfilter"
	"github.com/alexanderramin/bmo/internal/cli/formatter"
	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/alexanderramin/bmo/internal/navtree"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type alertsLoadedMsg struct {
	alerts []*domain.Alert
	counts map[string]int
	err    error
}

type alertsFocus int

const (
	focusTable alertsFocus = iota
	focusSidebar
)

// sidebarEntry is a visible sidebar line.
type sidebarEntry struct {
	node  navtree.NavNode
	depth int
}

// quickSeverities is the cycle behind the "s" key; "" means no filter.
var quickSeverities = append([]domain.Severity{""}, domain.Severities...)

// alertsView is the alert center: nav sidebar on the left, the alerts of
// the active node on the right.
type alertsView struct {
	state *SharedState

	alerts  []*domain.Alert
	counts  map[string]int
	loading bool
	err     error

	focus     alertsFocus
	cursor    int
	navCursor int

	search    textinput.Model
	searching bool
	severity  domain.Severity
}

func newAlertsView(state *SharedState) *alertsView {
	if state.Store.ActiveLeafID() == "" {
		state.SelectNode(navtree.DefaultNodeID)
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search"
	ti.CharLimit = 120
	ti.SetValue(state.Store.Snapshot().Search)

	v := &alertsView{state: state, loading: true, search: ti}
	v.navCursor = v.activeEntryIndex()
	return v
}

func (v *alertsView) ID() ViewID { return ViewAlerts }

// Title is the breadcrumb of the active nav node.
func (v *alertsView) Title() string {
	if trail := v.state.ActiveTrail(); len(trail) > 0 {
		return formatter.Breadcrumb(trail)
	}
	return "Alertes"
}

func (v *alertsView) ShortHelp() []key.Binding {
	if v.searching {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	keys := []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "severity")),
		key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "sidebar")),
	}
	if v.focus == focusTable {
		keys = append(keys, key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")))
		keys = append(keys, alertActionKeys()...)
	}
	return keys
}

// capturesInput routes every key to the search box while it is open.
func (v *alertsView) capturesInput() bool { return v.searching }

func (v *alertsView) Init() tea.Cmd {
	return v.load()
}

// ── data loading ─────────────────────────────────────────────────────────────

func (v *alertsView) criteria() alertfilter.Criteria {
	c := alertfilter.Criteria{Search: v.search.Value()}
	if v.severity != "" {
		c = c.WithSeverities(v.severity)
	}
	return c
}

func (v *alertsView) load() tea.Cmd {
	app := v.state.App
	scope, _ := navtree.ScopeFor(v.state.Store.ActiveLeafID())
	criteria := v.criteria()
	return func() tea.Msg {
		ctx := context.Background()
		alerts, err := app.Alerts.List(ctx, scope, criteria)
		if err != nil {
			return alertsLoadedMsg{err: err}
		}
		counts, err := app.Alerts.NavCounts(ctx)
		if err != nil {
			return alertsLoadedMsg{err: err}
		}
		return alertsLoadedMsg{alerts: alerts, counts: counts}
	}
}

func (v *alertsView) selected() *domain.Alert {
	if v.cursor < 0 || v.cursor >= len(v.alerts) {
		return nil
	}
	return v.alerts[v.cursor]
}

// ── sidebar ──────────────────────────────────────────────────────────────────

func (v *alertsView) entries() []sidebarEntry {
	expanded := v.state.Store.Snapshot().ExpandedNodeIDs
	var out []sidebarEntry
	var walk func(nodes []navtree.NavNode, depth int)
	walk = func(nodes []navtree.NavNode, depth int) {
		for _, n := range nodes {
			out = append(out, sidebarEntry{node: n, depth: depth})
			if expanded[n.ID] {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(navtree.WithBadges(navtree.AlertsTree(), v.counts), 0)
	return out
}

func (v *alertsView) activeEntryIndex() int {
	leaf := v.state.Store.ActiveLeafID()
	for i, e := range v.entries() {
		if e.node.ID == leaf {
			return i
		}
	}
	return 0
}

func (v *alertsView) selectEntry(e sidebarEntry) tea.Cmd {
	v.state.SelectNode(e.node.ID)
	if !e.node.IsLeaf() && !v.state.Store.Snapshot().ExpandedNodeIDs[e.node.ID] {
		v.state.Store.ToggleNode(e.node.ID)
	}
	v.cursor = 0
	v.loading = true
	return v.load()
}

func (v *alertsView) setExpanded(e sidebarEntry, open bool) {
	if e.node.IsLeaf() {
		return
	}
	if v.state.Store.Snapshot().ExpandedNodeIDs[e.node.ID] != open {
		v.state.Store.ToggleNode(e.node.ID)
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *alertsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case alertsLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.alerts = msg.alerts
			v.counts = msg.counts
		}
		v.cursor = min(v.cursor, max(len(v.alerts)-1, 0))
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.handleKey(msg)
	}

	if v.searching {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *alertsView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.searching = false
		v.search.Blur()
		return v, nil
	case tea.KeyEsc:
		v.searching = false
		v.search.Blur()
		v.search.SetValue("")
		v.state.Store.SetSearch("")
		return v, v.load()
	}

	before := v.search.Value()
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if v.search.Value() == before {
		return v, cmd
	}
	v.state.Store.SetSearch(v.search.Value())
	v.cursor = 0
	return v, tea.Batch(cmd, v.load())
}

func (v *alertsView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	collapsed := v.state.Store.Snapshot().SidebarCollapsed

	switch msg.String() {
	case "/":
		v.searching = true
		return v, v.search.Focus()
	case "b":
		v.state.Store.ToggleSidebar()
		if v.state.Store.Snapshot().SidebarCollapsed {
			v.focus = focusTable
		}
		return v, nil
	case "tab":
		if v.focus == focusTable && !collapsed {
			v.focus = focusSidebar
			v.navCursor = v.activeEntryIndex()
		} else {
			v.focus = focusTable
		}
		return v, nil
	case "s":
		v.severity = nextSeverity(v.severity)
		v.cursor = 0
		return v, v.load()
	case "c":
		v.severity = ""
		v.search.SetValue("")
		v.state.Store.SetSearch("")
		v.cursor = 0
		return v, v.load()
	case "r":
		v.loading = true
		return v, v.load()
	}

	if v.focus == focusSidebar {
		return v, v.handleSidebarKey(msg)
	}
	return v, v.handleTableKey(msg)
}

func (v *alertsView) handleSidebarKey(msg tea.KeyMsg) tea.Cmd {
	entries := v.entries()
	if len(entries) == 0 {
		return nil
	}
	v.navCursor = min(v.navCursor, len(entries)-1)
	cur := entries[v.navCursor]

	switch msg.String() {
	case "up", "k":
		v.navCursor = max(v.navCursor-1, 0)
	case "down", "j":
		v.navCursor = min(v.navCursor+1, len(entries)-1)
	case "left", "h":
		v.setExpanded(cur, false)
	case "right", "l":
		v.setExpanded(cur, true)
	case "enter":
		return v.selectEntry(cur)
	}
	return nil
}

func (v *alertsView) handleTableKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		v.cursor = max(v.cursor-1, 0)
		return nil
	case "down", "j":
		v.cursor = min(v.cursor+1, max(len(v.alerts)-1, 0))
		return nil
	case "home", "g":
		v.cursor = 0
		return nil
	case "end", "G":
		v.cursor = max(len(v.alerts)-1, 0)
		return nil
	case "enter":
		if a := v.selected(); a != nil {
			return pushView(newDetailView(v.state, a.ID))
		}
		return nil
	}
	return alertAction(v.state, v.selected(), msg)
}

func nextSeverity(cur domain.Severity) domain.Severity {
	for i, s := range quickSeverities {
		if s == cur {
			return quickSeverities[(i+1)%len(quickSeverities)]
		}
	}
	return ""
}

// ── view rendering ───────────────────────────────────────────────────────────

func (v *alertsView) View() string {
	right := v.renderList()
	if v.state.Store.Snapshot().SidebarCollapsed {
		return right
	}

	width := v.state.App.sidebarWidth()
	left := lipgloss.NewStyle().Width(width).Render(v.renderSidebar(width))
	divider := formatter.Dim(strings.TrimSuffix(strings.Repeat("│\n", v.state.ContentHeight()), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " "+divider+" ", right)
}

func (v *alertsView) renderSidebar(width int) string {
	entries := v.entries()
	st := v.state.Store.Snapshot()
	active := map[string]bool{}
	for _, id := range v.state.Store.ActivePath() {
		active[id] = true
	}

	items := make([]formatter.SidebarItem, len(entries))
	for i, e := range entries {
		items[i] = formatter.SidebarItem{
			Label:       e.node.Label,
			Badge:       e.node.Badge,
			BadgeType:   e.node.BadgeType,
			Depth:       e.depth,
			HasChildren: !e.node.IsLeaf(),
			Expanded:    st.ExpandedNodeIDs[e.node.ID],
			Active:      active[e.node.ID],
			Cursor:      v.focus == focusSidebar && i == v.navCursor,
		}
	}
	return formatter.RenderSidebar(items, width)
}

func (v *alertsView) renderList() string {
	var b strings.Builder

	if v.state.Store.ActiveLeafID() != "" && v.state.ActiveNode() == nil {
		b.WriteString(formatter.StyleYellow.Render("Unknown navigation entry, showing all alerts.") + "\n")
	}
	b.WriteString(v.renderFilterLine() + "\n\n")

	switch {
	case v.loading && v.alerts == nil:
		b.WriteString(formatter.Dim("Loading..."))
		return b.String()
	case v.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + v.err.Error()))
		return b.String()
	case len(v.alerts) == 0:
		b.WriteString(formatter.Dim("No alerts match."))
		return b.String()
	}

	rows := formatter.AlertRows(v.alerts, v.titleWidth(), v.state.App.now())
	start, end := window(len(rows), v.cursor, max(v.state.ContentHeight()-5, 1))
	cursor := -1
	if v.focus == focusTable {
		cursor = v.cursor - start
	}
	b.WriteString(formatter.RenderTableCursor(formatter.AlertHeaders, rows[start:end], cursor))
	return b.String()
}

func (v *alertsView) renderFilterLine() string {
	parts := []string{formatter.Dim(fmt.Sprintf("%d alert(s)", len(v.alerts)))}
	if v.searching {
		parts = append(parts, v.search.View())
	} else if q := v.search.Value(); q != "" {
		parts = append(parts, formatter.StyleBlue.Render("/ "+q))
	}
	if v.severity != "" {
		parts = append(parts, formatter.SeverityIndicator(v.severity))
	}
	return strings.Join(parts, "  ")
}

func (v *alertsView) titleWidth() int {
	used := 70
	if !v.state.Store.Snapshot().SidebarCollapsed {
		used += v.state.App.sidebarWidth() + 3
	}
	return max(v.state.Width-used, 16)
}

// window returns the [start, end) slice of n rows of height h that keeps
// cursor visible.
func window(n, cursor, h int) (int, int) {
	if n <= h {
		return 0, n
	}
	start := max(cursor-h+1, 0)
	return start, min(start+h, n)
}
