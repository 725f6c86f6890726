// Package describe renders edits as one-line change log descriptions.
package describe

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// Unknown stands in for staff or client ids the roster cannot resolve.
const Unknown = "Unknown"

// Edit returns a one-line description of edit. It never fails; unresolved
// ids render as Unknown.
func Edit(edit domain.Edit, roster domain.Roster) string {
	switch e := edit.(type) {
	case domain.ChangeStaff:
		return fmt.Sprintf("Assigned %s to %s (%s)",
			roster.StaffName(e.StaffID, Unknown), roster.ClientName(e.ClientID, Unknown), e.Window)
	case domain.Split:
		parts := make([]string, len(e.Segments))
		for i, seg := range e.Segments {
			parts[i] = fmt.Sprintf("%s %s", roster.StaffName(seg.StaffID, Unknown), seg.Window)
		}
		return fmt.Sprintf("Split %s: %s", roster.ClientName(e.ClientID, Unknown), strings.Join(parts, ", "))
	case domain.Train:
		desc := fmt.Sprintf("Training %s on %s with %s (%s)",
			roster.StaffName(e.TraineeID, Unknown), roster.ClientName(e.ClientID, Unknown),
			roster.StaffName(e.TrainerID, Unknown), e.Window)
		if e.Phase != "" {
			desc += ", phase " + e.Phase
		}
		return desc
	case domain.Cancel:
		return fmt.Sprintf("Cancelled %s (%s)", roster.ClientName(e.ClientID, Unknown), CancelScope(e))
	case domain.Tag:
		return fmt.Sprintf("Tagged %s: %q (%s)", roster.StaffName(e.StaffID, Unknown), e.Text, e.Window)
	}
	return "Unrecognized edit"
}

// CancelScope renders the part of the day a cancellation covers.
func CancelScope(c domain.Cancel) string {
	switch c.CancelType {
	case domain.CancelUntil:
		return "until " + domain.FormatMinute(c.Time)
	case domain.CancelAt:
		return "from " + domain.FormatMinute(c.Time)
	default:
		return "all day"
	}
}
