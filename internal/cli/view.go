package cli

import (
	"github.com/alexanderramin/bmo/internal/viewstate"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewDashboard ViewID = iota
	ViewAlerts
	ViewDetail
	ViewForm
	ViewHelp
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// modalView is a View shown as an overlay. The app model records it in
// viewstate while it is on the stack.
type modalView interface {
	View
	Modal() (viewstate.ModalType, any)
}
