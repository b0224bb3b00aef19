package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Column widths are measured on visible text, so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	return renderTable(headers, rows, -1)
}

// RenderTableCursor is RenderTable with a cursor marker in front of row
// selected. A selected index outside rows marks nothing.
func RenderTableCursor(headers []string, rows [][]string, selected int) string {
	return renderTable(headers, rows, selected)
}

func renderTable(headers []string, rows [][]string, selected int) string {
	if len(headers) == 0 {
		return ""
	}
	widths := columnWidths(headers, rows)
	withCursor := selected >= 0

	var b strings.Builder
	if withCursor {
		b.WriteString("  ")
	}
	for i, h := range headers {
		writeCell(&b, StyleHeader.Render(h), lipgloss.Width(h), widths[i], i == len(headers)-1)
	}
	b.WriteString("\n")

	if withCursor {
		b.WriteString("  ")
	}
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for r, row := range rows {
		if withCursor {
			if r == selected {
				b.WriteString(StyleGreen.Render("▸ "))
			} else {
				b.WriteString("  ")
			}
		}
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(&b, cell, lipgloss.Width(cell), widths[i], i == len(headers)-1)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

func writeCell(b *strings.Builder, rendered string, visible, width int, last bool) {
	b.WriteString(rendered)
	if !last {
		b.WriteString(strings.Repeat(" ", max(width-visible, 0)+colGap))
	}
}
