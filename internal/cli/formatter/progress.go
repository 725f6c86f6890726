package formatter

import (
	"fmt"
	"math"
	"strings"
)

// Coverage thresholds for bar color.
const (
	coverageGood = 0.9
	coverageFair = 0.66
)

// RenderCoverage renders a coverage bar like [████░░░░]  45%. Green from
// 90%, yellow from 66%, red below. pct is clamped to [0, 1].
func RenderCoverage(pct float64, width int) string {
	pct = math.Max(0, math.Min(1, pct))
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := StyleAlert
	switch {
	case pct >= coverageGood:
		style = StyleOK
	case pct >= coverageFair:
		style = StyleWarn
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
