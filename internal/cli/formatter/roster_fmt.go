package formatter

import (
	"strings"

	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// FormatRoster renders the staff and client tables.
func FormatRoster(roster domain.Roster) string {
	var b strings.Builder

	staffRows := make([][]string, 0, len(roster.Staff))
	for _, s := range roster.Staff {
		active := StyleOK.Render("active")
		if !s.Active {
			active = Dim("inactive")
		}
		staffRows = append(staffRows, []string{Dim(s.ID), Bold(s.Name), RoleBadge(s.Role), active})
	}
	b.WriteString(RenderTable([]string{"ID", "NAME", "ROLE", "STATUS"}, staffRows))
	b.WriteString("\n")

	clientRows := make([][]string, 0, len(roster.Clients))
	for _, c := range roster.Clients {
		crisis := ""
		if c.Crisis {
			crisis = StyleAlert.Render("crisis")
		}
		clientRows = append(clientRows, []string{
			Dim(c.ID),
			Bold(c.Name),
			crisis,
			JoinNames(c.FocusStaff, roster.StaffName),
			JoinNames(c.TrainedStaff, roster.StaffName),
			JoinNames(c.ExcludedStaff, roster.StaffName),
		})
	}
	b.WriteString(RenderTable([]string{"ID", "CLIENT", "", "FOCUS", "TRAINED", "EXCLUDED"}, clientRows))

	return RenderBox("Roster", b.String())
}
