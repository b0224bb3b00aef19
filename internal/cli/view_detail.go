package cli

import (
	"context"

	"github.com/alexanderramin/bmo/internal/cli/formatter"
	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/alexanderramin/bmo/internal/viewstate"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type detailLoadedMsg struct {
	alert *domain.Alert
	err   error
}

// detailView shows one alert in a scrollable box.
type detailView struct {
	state *SharedState
	id    string
	alert *domain.Alert
	err   error
	vp    viewport.Model
}

func newDetailView(state *SharedState, id string) *detailView {
	vp := viewport.New(max(state.Width-2, 20), state.ContentHeight())
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up", "k")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
	}
	return &detailView{state: state, id: id, vp: vp}
}

func (v *detailView) ID() ViewID                        { return ViewDetail }
func (v *detailView) Title() string                     { return "Alert" }
func (v *detailView) Modal() (viewstate.ModalType, any) { return viewstate.ModalAlertDetail, v.id }

func (v *detailView) ShortHelp() []key.Binding {
	keys := alertActionKeys()
	if v.alert != nil && !v.alert.Status.IsOpen() {
		keys = []key.Binding{keyReopen, keyArchive}
	}
	return append(keys, key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")))
}

func (v *detailView) Init() tea.Cmd {
	return v.load()
}

func (v *detailView) load() tea.Cmd {
	app := v.state.App
	id := v.id
	return func() tea.Msg {
		a, err := app.Alerts.Get(context.Background(), id)
		return detailLoadedMsg{alert: a, err: err}
	}
}

func (v *detailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		v.alert, v.err = msg.alert, msg.err
		if v.alert != nil {
			v.vp.SetContent(formatter.FormatAlertDetail(v.alert, v.state.App.dateFormat()))
		}
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.WindowSizeMsg:
		v.vp.Width = max(msg.Width-2, 20)
		v.vp.Height = v.state.ContentHeight()
		return v, nil

	case tea.KeyMsg:
		if cmd := alertAction(v.state, v.alert, msg); cmd != nil {
			return v, cmd
		}
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *detailView) View() string {
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if v.alert == nil {
		return "\n  " + formatter.Dim("Loading...")
	}
	return v.vp.View()
}
