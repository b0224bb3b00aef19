package cli

import (
	"github.com/alexanderramin/bmo/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

type pushViewMsg struct {
	view View
}

// refreshViewMsg asks every view on the stack to reload its data.
type refreshViewMsg struct{}

// noticeMsg shows a one-line message in the status bar until the next key.
type noticeMsg struct {
	text string
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel pops the wizard view, then runs nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// feedImportedMsg reports a background feed import.
type feedImportedMsg struct {
	result *service.ImportResult
	err    error
}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func refreshViews() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}

func showNotice(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}
