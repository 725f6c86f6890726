package snapshot

import "github.com/alexanderramin/rosterdesk/internal/domain"

// FromSchedule captures a day's schedule. Slot status is derived: cancelled
// slots are "cancelled", client-less assignments are "unfilled", tags carry
// no status.
func FromSchedule(date string, schedule domain.Schedule) DailySnapshot {
	out := DailySnapshot{Version: Version, Date: date}
	for _, day := range schedule {
		st := StaffEntry{StaffID: day.StaffID, Status: string(day.Status)}
		for _, s := range day.Slots {
			st.Slots = append(st.Slots, SlotEntry{
				ID:        s.ID,
				Block:     string(s.Block),
				Value:     s.Value,
				Source:    string(s.Source),
				Reason:    s.Reason,
				ClientID:  s.ClientID,
				Start:     s.StartMinute,
				End:       s.EndMinute,
				Indicator: string(s.Indicator),
				Status:    slotStatus(s),
			})
		}
		out.Staff = append(out.Staff, st)
	}
	return out
}

// ToSchedule rebuilds the domain schedule. Missing blocks are derived from
// the start minute.
func ToSchedule(s DailySnapshot) domain.Schedule {
	out := make(domain.Schedule, 0, len(s.Staff))
	for _, st := range s.Staff {
		day := domain.StaffSchedule{StaffID: st.StaffID, Status: domain.StaffStatus(st.Status)}
		if day.Status == "" {
			day.Status = domain.StaffPresent
		}
		day.Slots = make([]domain.ScheduleSlot, 0, len(st.Slots))
		for _, sl := range st.Slots {
			block := domain.Block(sl.Block)
			if block == "" {
				block = domain.BlockFor(sl.Start)
			}
			day.Slots = append(day.Slots, domain.ScheduleSlot{
				ID:          sl.ID,
				Block:       block,
				Value:       sl.Value,
				Source:      domain.SlotSource(sl.Source),
				Reason:      sl.Reason,
				ClientID:    sl.ClientID,
				StartMinute: sl.Start,
				EndMinute:   sl.End,
				Indicator:   domain.Indicator(sl.Indicator),
			})
		}
		out = append(out, day)
	}
	return out
}

func slotStatus(s domain.ScheduleSlot) string {
	switch {
	case !s.IsAssignment():
		return ""
	case s.Source == domain.SourceCancel:
		return StatusCancelled
	case s.ClientID == "":
		return StatusUnfilled
	default:
		return StatusAssigned
	}
}
