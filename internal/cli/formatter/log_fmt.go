package formatter

import (
	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// FormatChangeLog renders the audit trail oldest first.
func FormatChangeLog(date string, entries []domain.ChangeLogEntry) string {
	if len(entries) == 0 {
		return RenderBox("Change log "+date, Dim("No edits recorded."))
	}
	headers := []string{"TIME", "TYPE", "DESCRIPTION", "WARNINGS", "ADVISOR"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		warn := Dim("--")
		if e.HasWarnings && e.WarningType != nil {
			warn = WarningIndicator(*e.WarningType)
		}
		adv := Dim("--")
		if e.TriggeredAdvisor {
			adv = StyleWarn.Render("yes")
		}
		rows = append(rows, []string{
			Dim(ClockTime(e.Timestamp)),
			StyleAccent.Render(string(e.EditType)),
			e.Description,
			warn,
			adv,
		})
	}
	return RenderBox("Change log "+date, RenderTable(headers, rows))
}
