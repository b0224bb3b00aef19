package formatter

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// DefaultDateFormat is used when no ui.date_format is configured.
const DefaultDateFormat = "02/01/2006 15:04"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeTime returns "3 hours ago" style text relative to now.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatDate formats t in the local zone with layout, or the default layout
// when layout is empty. A zero time renders as "--".
func FormatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return "--"
	}
	if layout == "" {
		layout = DefaultDateFormat
	}
	return t.Local().Format(layout)
}

// Euros formats an amount with thousands separators and no decimals.
func Euros(amount float64) string {
	return humanize.Commaf(math.Round(amount)) + " €"
}

// Truncate cuts s to at most width visible cells, marking the cut with "…".
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// OrDash returns s, or a dimmed "--" when s is empty.
func OrDash(s string) string {
	if s == "" {
		return StyleDim.Render("--")
	}
	return s
}
