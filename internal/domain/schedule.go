package domain

// ScheduleSlot is one contiguous assignment on a staff member's day.
type ScheduleSlot struct {
	ID          string     `json:"id"`
	Block       Block      `json:"block"`
	Value       string     `json:"value"`
	Source      SlotSource `json:"source"`
	Reason      string     `json:"reason,omitempty"`
	ClientID    string     `json:"clientId,omitempty"`
	StartMinute int        `json:"startMinute"`
	EndMinute   int        `json:"endMinute"`
	Indicator   Indicator  `json:"indicator,omitempty"`
}

// Window returns the slot's interval.
func (s ScheduleSlot) Window() TimeWindow {
	return TimeWindow{Start: s.StartMinute, End: s.EndMinute}
}

// IsAssignment reports whether the slot occupies the staff member's time.
// Tags are annotations layered on top of assignments.
func (s ScheduleSlot) IsAssignment() bool {
	return s.Indicator != IndicatorTag
}

// HoldsClient reports whether the slot covers clientID. Training slots
// reference the client but do not cover it.
func (s ScheduleSlot) HoldsClient(clientID string) bool {
	return clientID != "" && s.ClientID == clientID && s.IsAssignment() && s.Indicator != IndicatorTraining
}

type StaffSchedule struct {
	StaffID string         `json:"staffId"`
	Status  StaffStatus    `json:"status"`
	Slots   []ScheduleSlot `json:"slots"`
}

// Clone returns a copy sharing no slices with d.
func (d StaffSchedule) Clone() StaffSchedule {
	out := d
	if d.Slots != nil {
		out.Slots = make([]ScheduleSlot, len(d.Slots))
		copy(out.Slots, d.Slots)
	}
	return out
}

// Busy reports whether any assignment slot overlaps w.
func (d StaffSchedule) Busy(w TimeWindow) bool {
	for _, s := range d.Slots {
		if s.IsAssignment() && s.ClientID != "" && Overlaps(s.Window(), w) {
			return true
		}
	}
	return false
}

// Schedule is one day's assignments for every scheduled staff member.
type Schedule []StaffSchedule

// Clone deep-copies the schedule. ScheduleSlot holds only value fields, so
// copying the slot slices is a full structural copy.
func (s Schedule) Clone() Schedule {
	if s == nil {
		return nil
	}
	out := make(Schedule, len(s))
	for i, d := range s {
		out[i] = d.Clone()
	}
	return out
}

// Index returns the position of staffID's day, or -1.
func (s Schedule) Index(staffID string) int {
	for i, d := range s {
		if d.StaffID == staffID {
			return i
		}
	}
	return -1
}

// Day returns staffID's day. ok is false when the staff member has no day.
func (s Schedule) Day(staffID string) (StaffSchedule, bool) {
	if i := s.Index(staffID); i >= 0 {
		return s[i], true
	}
	return StaffSchedule{}, false
}

// Holders returns the staff ids holding clientID at any point of w, in schedule order.
func (s Schedule) Holders(clientID string, w TimeWindow) []string {
	var out []string
	for _, d := range s {
		for _, slot := range d.Slots {
			if slot.HoldsClient(clientID) && Overlaps(slot.Window(), w) {
				out = append(out, d.StaffID)
				break
			}
		}
	}
	return out
}
