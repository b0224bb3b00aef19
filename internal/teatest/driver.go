// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of running a tea.Program, the Driver calls Update directly and
// executes every returned Cmd inline, feeding the produced messages back
// into the model until nothing is left to do.
package teatest

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds a single event may produce.
const MaxDrainDepth = 100

// cmdTimeout separates Cmds that return at once (store queries, message
// factories) from timer-based ones such as cursor blinks, which are dropped.
const cmdTimeout = 10 * time.Millisecond

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// Driver runs a tea.Model without a terminal.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg has been produced.
	Quitting bool
}

// Option configures a Driver before the first message.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		updated, cmd := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
		d.drainCmd(cmd, 0)
	}
}

// New wraps model. Call DrainInit to run its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and every message it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drainCmd(d.Model.Init(), 0)
}

// Send feeds msg to the model and drains the result. Messages after quit
// are ignored.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(cmd, 0)
}

// ── keys ─────────────────────────────────────────────────────────────────────

func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

// PressKey sends a single rune, as typed.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Press sends each rune of keys as its own key event. Unlike Type it is
// meant for command keys, e.g. Press("l").
func (d *Driver) Press(keys string) {
	d.T.Helper()
	for _, r := range keys {
		d.PressKey(r)
	}
}

func (d *Driver) PressEnter()     { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyEnter}) }
func (d *Driver) PressEsc()       { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyEsc}) }
func (d *Driver) PressTab()       { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyTab}) }
func (d *Driver) PressCtrlC()     { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlC}) }
func (d *Driver) PressUp()        { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyUp}) }
func (d *Driver) PressDown()      { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyDown}) }
func (d *Driver) PressLeft()      { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyLeft}) }
func (d *Driver) PressRight()     { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyRight}) }
func (d *Driver) PressBackspace() { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyBackspace}) }

// Type enters text into whatever input has focus.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// ── output ───────────────────────────────────────────────────────────────────

// View returns the rendered model, styling included.
func (d *Driver) View() string {
	return d.Model.View()
}

// PlainView returns the rendered model with ANSI escapes removed.
func (d *Driver) PlainView() string {
	return ansiRE.ReplaceAllString(d.Model.View(), "")
}

// ViewContains reports whether the plain view contains s.
func (d *Driver) ViewContains(s string) bool {
	return strings.Contains(d.PlainView(), s)
}

// ── draining ─────────────────────────────────────────────────────────────────

func (d *Driver) drainCmd(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: stopped draining at depth %d", MaxDrainDepth)
		return
	}

	msg := execCmdWithTimeout(cmd)
	if msg == nil || isCursorBlink(msg) {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range m {
			d.drainCmd(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		updated, _ := d.Model.Update(msg)
		d.Model = updated
		return
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(next, depth+1)
}

// execCmdWithTimeout runs cmd and gives up after cmdTimeout.
func execCmdWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isCursorBlink matches the unexported blink messages of bubbles/cursor.
func isCursorBlink(msg tea.Msg) bool {
	t := fmt.Sprintf("%T", msg)
	return strings.Contains(t, "Blink") || strings.Contains(t, "blink")
}
