package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

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
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner) + "\n"
	}

	return boxStyle.Render(content) + "\n"
}

// ClockTime renders a timestamp as local wall-clock time, e.g. "14:05:09".
func ClockTime(t time.Time) string {
	return t.Local().Format("15:04:05")
}

// StaffStatusPill returns a colored indicator for a staff member's day status.
func StaffStatusPill(status domain.StaffStatus) string {
	switch status {
	case domain.StaffPresent, "":
		return StyleOK.Render("● Present")
	case domain.StaffAbsent:
		return StyleDim.Render("○ Absent")
	case domain.StaffCalledOut:
		return StyleAlert.Render("✖ Called out")
	default:
		return StyleDim.Render(string(status))
	}
}

// RoleBadge returns a purple role label. Float staff are dimmed.
func RoleBadge(role domain.StaffRole) string {
	if role == domain.RoleFloat {
		return StyleDim.Render(string(role))
	}
	return StyleAccent.Render(string(role))
}

// ModeBadge returns a styled editing-mode indicator with description.
func ModeBadge(mode string) string {
	if mode == "what_if" {
		return StyleWarn.Render("◇ WHAT-IF") + Dim("  edits touch the simulation only")
	}
	return StyleOK.Render("● DRAFT") + Dim("  edits are logged and undoable")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// JoinNames resolves ids to names through lookup and joins them.
func JoinNames(ids []string, lookup func(id, fallback string) string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, lookup(id, id))
	}
	return strings.Join(names, ", ")
}
