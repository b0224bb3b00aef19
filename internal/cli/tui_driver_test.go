package cli

import (
	"testing"

	"github.com/alexanderramin/bmo/internal/teatest"
	"github.com/alexanderramin/bmo/internal/viewstate"
)

// TestDriver wraps teatest.Driver with access to appModel internals (view
// stack, shared state, notice) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel for app at 120x40 and drains Init,
// which loads the dashboard synchronously from the in-memory DB.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() *appModel {
	m := d.Model.(appModel)
	return &m
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	v := d.appModel().activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

func (d *TestDriver) ActiveView() View {
	return d.appModel().activeView()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Snapshot returns the current view state.
func (d *TestDriver) Snapshot() viewstate.State {
	return d.State().Store.Snapshot()
}

// IsQuitting reports whether the model or the driver saw a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// Notice returns the status bar notice, ANSI stripped.
func (d *TestDriver) Notice() string {
	return plain(d.appModel().notice)
}
