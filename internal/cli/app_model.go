package cli

import (
	"strings"

	"github.com/alexanderramin/bmo/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack and a one-line notice under the status bar.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool

	// notice is the outcome of the last action, cleared on the next key.
	notice string
}

func newAppModel(app *App) appModel {
	state := newSharedState(app)
	return appModel{
		state:     state,
		viewStack: []View{newDashboardView(state)},
	}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

func (m *appModel) push(v View) tea.Cmd {
	m.viewStack = append(m.viewStack, v)
	m.syncModal()
	return v.Init()
}

// pop removes the top view. The root view is never popped.
func (m *appModel) pop() {
	if len(m.viewStack) > 1 {
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
		m.syncModal()
	}
}

// syncModal mirrors the top of the stack into viewstate's open modal.
func (m *appModel) syncModal() {
	if mv, ok := m.activeView().(modalView); ok {
		t, payload := mv.Modal()
		m.state.Store.OpenModal(t, payload)
		return
	}
	if m.state.Store.Snapshot().OpenModal != nil {
		m.state.Store.CloseModal()
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m, m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		return m, m.push(msg.view)

	case refreshViewMsg:
		// Every view reloads, so the ones under a closed modal show its effect.
		return m, m.broadcast(msg)

	case noticeMsg:
		m.notice = msg.text
		return m, nil

	case wizardCompleteMsg:
		m.pop()
		return m, msg.nextCmd

	case feedImportedMsg:
		if msg.err != nil {
			m.notice = formatter.StyleRed.Render("Feed import failed: " + msg.err.Error())
			return m, nil
		}
		m.notice = importMessage(msg.result)
		return m, refreshViews()
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	m.notice = ""

	// Views with their own text input receive every key, q and esc included.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.String() == "?":
		if v := m.activeView(); v != nil && v.ID() == ViewHelp {
			m.pop()
			return m, nil
		}
		return m, m.push(newHelpView())

	case msg.Type == tea.KeyEsc:
		m.pop()
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("bmo")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	header := title
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	if q := m.state.Store.Snapshot().Search; q != "" {
		header += "  " + formatter.StyleBlue.Render("/"+q)
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if len(m.viewStack) > 1 {
		hints = append(hints, formatter.Dim("esc: back"))
	}

	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	bar := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20))) + "\n" + strings.Join(hints, "  ")
	if m.notice != "" {
		bar += "\n" + m.notice
	}
	return bar
}

// inputCapturer is implemented by views that sometimes own the keyboard.
type inputCapturer interface {
	capturesInput() bool
}

// viewCapturesInput reports whether v should receive every key event,
// bypassing global keybindings like q and esc.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	if v.ID() == ViewForm {
		return true
	}
	if c, ok := v.(inputCapturer); ok {
		return c.capturesInput()
	}
	return false
}
