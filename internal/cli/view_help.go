package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/bmo/internal/cli/formatter"
	"github.com/alexanderramin/bmo/internal/viewstate"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var helpSections = []struct {
	title string
	keys  [][2]string
}{
	{"Everywhere", [][2]string{
		{"esc", "back / close"},
		{"?", "this help"},
		{"q, ctrl+c", "quit"},
	}},
	{"Dashboard", [][2]string{
		{"↑↓ enter", "open a critical alert"},
		{"l, tab", "browse alerts"},
		{"c", "browse open critical alerts"},
		{"r", "refresh"},
	}},
	{"Alerts", [][2]string{
		{"tab", "switch between sidebar and list"},
		{"←→", "collapse / expand a sidebar entry"},
		{"/", "search (remembered between sessions)"},
		{"s", "cycle severity filter"},
		{"c", "clear filters"},
		{"b", "hide / show the sidebar"},
	}},
	{"On an alert", [][2]string{
		{"a", "acknowledge"},
		{"R", "resolve with a note"},
		{"e", "escalate"},
		{"x", "archive"},
		{"o", "reopen"},
	}},
}

type helpView struct{}

func newHelpView() *helpView { return &helpView{} }

func (v *helpView) ID() ViewID                        { return ViewHelp }
func (v *helpView) Title() string                     { return "Help" }
func (v *helpView) Modal() (viewstate.ModalType, any) { return viewstate.ModalHelp, nil }
func (v *helpView) ShortHelp() []key.Binding          { return nil }
func (v *helpView) Init() tea.Cmd                     { return nil }

func (v *helpView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }

func (v *helpView) View() string {
	var b strings.Builder
	for _, s := range helpSections {
		b.WriteString(formatter.Header(s.title) + "\n")
		for _, k := range s.keys {
			fmt.Fprintf(&b, "  %s %s\n", formatter.StyleGreen.Render(fmt.Sprintf("%-10s", k[0])), k[1])
		}
		b.WriteString("\n")
	}
	return formatter.RenderBox("", strings.TrimRight(b.String(), "\n"))
}
