package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Palette. Colors are named for what they signal on a schedule, not for hue.
var (
	ColorOK     = lipgloss.AdaptiveColor{Light: "#2f7d4a", Dark: "#8ec07c"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "#a86a00", Dark: "#fabd2f"}
	ColorAlert  = lipgloss.AdaptiveColor{Light: "#c0261b", Dark: "#fb4934"}
	ColorInfo   = lipgloss.AdaptiveColor{Light: "#2c6e83", Dark: "#83a598"}
	ColorAccent = lipgloss.AdaptiveColor{Light: "#8f3f71", Dark: "#d3869b"}
	ColorDim    = lipgloss.AdaptiveColor{Light: "#7c6f64", Dark: "#928374"}
	ColorFg     = lipgloss.AdaptiveColor{Light: "#3c3836", Dark: "#ebdbb2"}
	ColorHeader = lipgloss.AdaptiveColor{Light: "#af3a03", Dark: "#fe8019"}
)

func fg(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	StyleOK     = fg(ColorOK)
	StyleWarn   = fg(ColorWarn)
	StyleAlert  = fg(ColorAlert)
	StyleInfo   = fg(ColorInfo)
	StyleAccent = fg(ColorAccent)
	StyleDim    = fg(ColorDim)
	StyleFg     = fg(ColorFg)
	StyleHeader = fg(ColorHeader).Bold(true)
	StyleBold   = fg(ColorFg).Bold(true)
)

var severityStyles = map[domain.WarningType]struct {
	style lipgloss.Style
	label string
}{
	domain.WarningHard: {StyleAlert, "HARD"},
	domain.WarningSoft: {StyleWarn, "SOFT"},
}

// WarningColor returns the style for a warning severity.
func WarningColor(t domain.WarningType) lipgloss.Style {
	if s, ok := severityStyles[t]; ok {
		return s.style
	}
	return StyleDim
}

// WarningIndicator returns a colored severity marker such as "● HARD".
func WarningIndicator(t domain.WarningType) string {
	if s, ok := severityStyles[t]; ok {
		return s.style.Render("● " + s.label)
	}
	return StyleDim.Render("● UNKNOWN")
}

// Header renders an uppercase section title over a rule of the same width.
func Header(text string) string {
	upper := strings.ToUpper(text)
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(strings.Repeat("─", len([]rune(upper)))))
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }
