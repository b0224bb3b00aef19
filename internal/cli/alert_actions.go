package cli

import (
	"context"

	"github.com/alexanderramin/bmo/internal/cli/formatter"
	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/alexanderramin/bmo/internal/viewstate"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Keys shared by every view that acts on a selected alert.
var (
	keyAck      = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "ack"))
	keyResolve  = key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "resolve"))
	keyEscalate = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "escalate"))
	keyArchive  = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "archive"))
	keyReopen   = key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "reopen"))
)

func alertActionKeys() []key.Binding {
	return []key.Binding{keyAck, keyResolve, keyEscalate, keyArchive}
}

// alertAction maps a key press to the matching alert action, or nil.
func alertAction(state *SharedState, a *domain.Alert, msg tea.KeyMsg) tea.Cmd {
	if a == nil {
		return nil
	}
	switch {
	case key.Matches(msg, keyAck):
		return acknowledgeAlert(state, a)
	case key.Matches(msg, keyResolve):
		return resolveAlert(state, a)
	case key.Matches(msg, keyEscalate):
		return escalateAlert(state, a)
	case key.Matches(msg, keyArchive):
		return archiveAlert(state, a)
	case key.Matches(msg, keyReopen):
		return reopenAlert(state, a)
	}
	return nil
}

// actionResult reports a finished action and reloads the views on success.
func actionResult(verb string, a *domain.Alert, err error) tea.Msg {
	if err != nil {
		return noticeMsg{text: formatter.StyleRed.Render("Error: " + err.Error())}
	}
	return tea.BatchMsg{showNotice(transitionMessage(verb, a)), refreshViews()}
}

func acknowledgeAlert(state *SharedState, a *domain.Alert) tea.Cmd {
	app := state.App
	id := a.ID
	return func() tea.Msg {
		updated, err := app.Alerts.Acknowledge(context.Background(), id, "")
		return actionResult("Acknowledged", updated, err)
	}
}

func reopenAlert(state *SharedState, a *domain.Alert) tea.Cmd {
	app := state.App
	id := a.ID
	return func() tea.Msg {
		updated, err := app.Alerts.Reopen(context.Background(), id)
		return actionResult("Reopened", updated, err)
	}
}

func resolveAlert(state *SharedState, a *domain.Alert) tea.Cmd {
	app := state.App
	id := a.ID
	var note string
	form := resolveForm(&note)
	return pushView(newWizardView(state, "Resolve", viewstate.ModalAlertDetail, id, form, func() tea.Cmd {
		return func() tea.Msg {
			updated, err := app.Alerts.Resolve(context.Background(), id, note)
			return actionResult("Resolved", updated, err)
		}
	}))
}

func escalateAlert(state *SharedState, a *domain.Alert) tea.Cmd {
	app := state.App
	id := a.ID
	var to string
	form := escalateForm(&to)
	return pushView(newWizardView(state, "Escalate", viewstate.ModalEscalate, id, form, func() tea.Cmd {
		return func() tea.Msg {
			updated, err := app.Alerts.Escalate(context.Background(), id, to)
			return actionResult("Escalated", updated, err)
		}
	}))
}

func archiveAlert(state *SharedState, a *domain.Alert) tea.Cmd {
	app := state.App
	id := a.ID
	var confirmed bool
	form := confirmForm("Archive \""+a.Title+"\"?", &confirmed)
	return pushView(newWizardView(state, "Archive", viewstate.ModalAlertDetail, id, form, func() tea.Cmd {
		if !confirmed {
			return showNotice(formatter.Dim("Cancelled."))
		}
		return func() tea.Msg {
			updated, err := app.Alerts.Archive(context.Background(), id)
			return actionResult("Archived", updated, err)
		}
	}))
}
