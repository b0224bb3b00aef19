package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderGauge renders a bar like [████░░░░]  45%. frac is clamped to [0, 1]
// and the bar turns green above two thirds and red below one third.
func RenderGauge(frac float64, width int) string {
	frac = min(max(frac, 0), 1)
	width = max(width, 2)

	filled := min(int(frac*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case frac < 0.33:
		style = StyleRed
	case frac < 0.66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), frac*100)
}
