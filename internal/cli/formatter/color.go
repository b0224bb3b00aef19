package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/alexanderramin/bmo/internal/navtree"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleRedBold    = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SeverityStyle returns the style used for anything tagged with s.
func SeverityStyle(s domain.Severity) lipgloss.Style {
	switch s {
	case domain.SeverityCritical:
		return StyleRed
	case domain.SeverityWarning:
		return StyleYellow
	case domain.SeverityInfo:
		return StyleBlue
	case domain.SeveritySuccess:
		return StyleGreen
	default:
		return StyleDim
	}
}

// SeverityIndicator returns a colored label such as "● CRITICAL".
func SeverityIndicator(s domain.Severity) string {
	if s == "" {
		return StyleDim.Render("● ?")
	}
	return SeverityStyle(s).Render("● " + strings.ToUpper(string(s)))
}

// StatusPill returns a colored status indicator for an alert.
func StatusPill(s domain.Status) string {
	switch s {
	case domain.StatusActive:
		return StyleRed.Render("● Active")
	case domain.StatusAcknowledged:
		return StyleBlue.Render("◐ Acknowledged")
	case domain.StatusEscalated:
		return StyleYellow.Render("▲ Escalated")
	case domain.StatusResolved:
		return StyleGreen.Render("✔ Resolved")
	case domain.StatusArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(s))
	}
}

// Badge renders a nav badge count. An empty count renders nothing.
func Badge(count string, t navtree.BadgeType) string {
	if count == "" {
		return ""
	}
	label := fmt.Sprintf("(%s)", count)
	switch t {
	case navtree.BadgeCritical:
		return StyleRedBold.Render(label)
	case navtree.BadgeWarning:
		return StyleYellow.Render(label)
	default:
		return StyleBlue.Render(label)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
