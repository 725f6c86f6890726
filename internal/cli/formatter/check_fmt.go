package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/service"
)

// FormatCheck renders a schedule check report.
func FormatCheck(r *service.CheckReport, roster domain.Roster) string {
	var b strings.Builder
	b.WriteString(Dim(fmt.Sprintf("Checked the %s schedule for %s", r.Mode, r.Date)) + "\n\n")

	if r.Clean() {
		b.WriteString(StyleOK.Render("✔ No duplicate or overlapping assignments") + "\n")
	}
	for _, d := range r.Duplicates {
		b.WriteString(fmt.Sprintf("%s  %s is held by %s during %s\n",
			WarningIndicator(domain.WarningHard),
			roster.ClientName(d.ClientID, d.ClientID),
			JoinNames(d.StaffIDs, roster.StaffName),
			d.Window))
	}
	for _, id := range r.Overlapping {
		b.WriteString(fmt.Sprintf("%s  %s has overlapping assignments\n",
			WarningIndicator(domain.WarningHard), roster.StaffName(id, id)))
	}

	if len(r.OpenSlots) > 0 {
		b.WriteString("\n" + Header("Open slots") + "\n")
		rows := make([][]string, 0, len(r.OpenSlots))
		for _, o := range r.OpenSlots {
			rows = append(rows, []string{roster.StaffName(o.StaffID, o.StaffID), o.Window.String(), Dim(o.Reason)})
		}
		b.WriteString(RenderTable([]string{"STAFF", "TIME", "REASON"}, rows))
	}
	return RenderBox("Check", b.String())
}
