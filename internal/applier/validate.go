package applier

import (
	"sort"

	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// Duplicate is a client covered by more than one staff member at once.
type Duplicate struct {
	ClientID string            `json:"clientId"`
	StaffIDs []string          `json:"staffIds"`
	Window   domain.TimeWindow `json:"window"`
}

// FindDuplicateAssignments reports every pair of staff members covering the
// same client in overlapping windows, ordered by client then start minute.
// ChangeStaff trims every holder it finds, so this pass is how callers learn
// that more than one existed.
func FindDuplicateAssignments(schedule domain.Schedule) []Duplicate {
	type holding struct {
		staffID string
		window  domain.TimeWindow
	}
	byClient := make(map[string][]holding)
	var clients []string
	for _, day := range schedule {
		for _, s := range day.Slots {
			if !s.HoldsClient(s.ClientID) {
				continue
			}
			if _, ok := byClient[s.ClientID]; !ok {
				clients = append(clients, s.ClientID)
			}
			byClient[s.ClientID] = append(byClient[s.ClientID], holding{staffID: day.StaffID, window: s.Window()})
		}
	}
	sort.Strings(clients)

	var out []Duplicate
	for _, c := range clients {
		hs := byClient[c]
		var found []Duplicate
		for i := 0; i < len(hs); i++ {
			for j := i + 1; j < len(hs); j++ {
				if hs[i].staffID == hs[j].staffID {
					continue
				}
				w, ok := hs[i].window.Intersect(hs[j].window)
				if !ok {
					continue
				}
				ids := []string{hs[i].staffID, hs[j].staffID}
				sort.Strings(ids)
				found = append(found, Duplicate{ClientID: c, StaffIDs: ids, Window: w})
			}
		}
		sort.SliceStable(found, func(i, j int) bool {
			if found[i].Window.Start != found[j].Window.Start {
				return found[i].Window.Start < found[j].Window.Start
			}
			return found[i].StaffIDs[0] < found[j].StaffIDs[0]
		})
		out = append(out, found...)
	}
	return out
}

// OpenSlot is staff time with no client, usually left by a cancellation.
type OpenSlot struct {
	StaffID string            `json:"staffId"`
	Window  domain.TimeWindow `json:"window"`
	Reason  string            `json:"reason,omitempty"`
}

// OpenSlots lists assignment slots without a client, in schedule order.
func OpenSlots(schedule domain.Schedule) []OpenSlot {
	var out []OpenSlot
	for _, day := range schedule {
		for _, s := range day.Slots {
			if s.IsAssignment() && s.ClientID == "" {
				out = append(out, OpenSlot{StaffID: day.StaffID, Window: s.Window(), Reason: s.Reason})
			}
		}
	}
	return out
}

// Overlapping reports staff whose assignment slots overlap each other, which
// no edit may leave behind.
func Overlapping(schedule domain.Schedule) []string {
	var out []string
	for _, day := range schedule {
		var assigned []domain.TimeWindow
		for _, s := range day.Slots {
			if s.IsAssignment() {
				assigned = append(assigned, s.Window())
			}
		}
	outer:
		for i := range assigned {
			for j := i + 1; j < len(assigned); j++ {
				if domain.Overlaps(assigned[i], assigned[j]) {
					out = append(out, day.StaffID)
					break outer
				}
			}
		}
	}
	return out
}
