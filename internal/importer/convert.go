package importer

import (
	"fmt"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/google/uuid"
)

// ConvertRoster turns a validated roster file into a domain roster. Staff
// are active unless the file says otherwise.
func ConvertRoster(f *RosterFile) domain.Roster {
	roster := domain.Roster{
		Staff:   make([]domain.Staff, 0, len(f.Staff)),
		Clients: make([]domain.Client, 0, len(f.Clients)),
	}
	for _, s := range f.Staff {
		roster.Staff = append(roster.Staff, domain.Staff{
			ID:     s.ID,
			Name:   s.Name,
			Role:   domain.StaffRole(s.Role),
			Active: domain.BoolFromPtrWithDefault(true, s.Active),
		})
	}
	for _, c := range f.Clients {
		roster.Clients = append(roster.Clients, domain.Client{
			ID:            c.ID,
			Name:          c.Name,
			Crisis:        c.Crisis,
			ExcludedStaff: c.Excluded,
			TrainedStaff:  c.Trained,
			FocusStaff:    c.Focus,
		})
	}
	return roster
}

// ConvertSchedule turns a validated schedule file into a domain schedule.
// Slots without an id get a fresh one; a slot's display value falls back to
// the client name, then to the client id.
func ConvertSchedule(f *ScheduleFile, roster domain.Roster) (domain.Schedule, error) {
	schedule := make(domain.Schedule, 0, len(f.Staff))
	for _, day := range f.Staff {
		d := domain.StaffSchedule{
			StaffID: day.StaffID,
			Status:  domain.StaffStatus(domain.CoalesceStr(day.Status, string(domain.StaffPresent))),
			Slots:   make([]domain.ScheduleSlot, 0, len(day.Slots)),
		}
		for _, s := range day.Slots {
			w, err := parseSlotWindow(s)
			if err != nil {
				return nil, fmt.Errorf("staff %s: %w", day.StaffID, err)
			}
			id := s.ID
			if id == "" {
				id = uuid.New().String()
			}
			d.Slots = append(d.Slots, domain.ScheduleSlot{
				ID:          id,
				Block:       domain.BlockFor(w.Start),
				Value:       domain.CoalesceStr(s.Value, roster.ClientName(s.Client, s.Client)),
				Source:      domain.SlotSource(domain.CoalesceStr(s.Source, string(domain.SourceOriginal))),
				Reason:      s.Reason,
				ClientID:    s.Client,
				StartMinute: w.Start,
				EndMinute:   w.End,
				Indicator:   domain.Indicator(s.Indicator),
			})
		}
		schedule = append(schedule, d)
	}
	return schedule, nil
}
