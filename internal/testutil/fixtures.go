package testutil

import (
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/google/uuid"
)

// Staff options
type StaffOption func(*domain.Staff)

func WithRole(r domain.StaffRole) StaffOption {
	return func(s *domain.Staff) {
		s.Role = r
	}
}

func Inactive() StaffOption {
	return func(s *domain.Staff) {
		s.Active = false
	}
}

func NewTestStaff(id, name string, opts ...StaffOption) domain.Staff {
	s := domain.Staff{ID: id, Name: name, Role: domain.RoleTechnician, Active: true}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Client options
type ClientOption func(*domain.Client)

func Crisis() ClientOption {
	return func(c *domain.Client) {
		c.Crisis = true
	}
}

func WithTrained(ids ...string) ClientOption {
	return func(c *domain.Client) {
		c.TrainedStaff = append(c.TrainedStaff, ids...)
	}
}

func WithFocus(ids ...string) ClientOption {
	return func(c *domain.Client) {
		c.FocusStaff = append(c.FocusStaff, ids...)
	}
}

func WithExcluded(ids ...string) ClientOption {
	return func(c *domain.Client) {
		c.ExcludedStaff = append(c.ExcludedStaff, ids...)
	}
}

func NewTestClient(id, name string, opts ...ClientOption) domain.Client {
	c := domain.Client{ID: id, Name: name}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// NewTestRoster is the shared fixture roster: Ana and Ben are technicians,
// Flo is a Float. Cam is trained on Ana and Ben and excludes Flo; Kit is a
// crisis client trained on Ben.
func NewTestRoster() domain.Roster {
	return domain.Roster{
		Staff: []domain.Staff{
			NewTestStaff("ana", "Ana"),
			NewTestStaff("ben", "Ben"),
			NewTestStaff("flo", "Flo", WithRole(domain.RoleFloat)),
		},
		Clients: []domain.Client{
			NewTestClient("cam", "Cam", WithTrained("ana", "ben"), WithExcluded("flo")),
			NewTestClient("kit", "Kit", Crisis(), WithTrained("ben")),
		},
	}
}

// Slot options
type SlotOption func(*domain.ScheduleSlot)

func WithSlotID(id string) SlotOption {
	return func(s *domain.ScheduleSlot) {
		s.ID = id
	}
}

func WithIndicator(i domain.Indicator) SlotOption {
	return func(s *domain.ScheduleSlot) {
		s.Indicator = i
	}
}

func WithReason(r string) SlotOption {
	return func(s *domain.ScheduleSlot) {
		s.Reason = r
	}
}

// NewTestSlot builds an ORIGINAL slot covering clientID; value is the client id.
func NewTestSlot(clientID string, start, end int, opts ...SlotOption) domain.ScheduleSlot {
	s := domain.ScheduleSlot{
		ID:          uuid.New().String(),
		Block:       domain.BlockFor(start),
		Value:       clientID,
		Source:      domain.SourceOriginal,
		ClientID:    clientID,
		StartMinute: start,
		EndMinute:   end,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// NewTestDay builds a present staff member's day.
func NewTestDay(staffID string, slots ...domain.ScheduleSlot) domain.StaffSchedule {
	if slots == nil {
		slots = []domain.ScheduleSlot{}
	}
	return domain.StaffSchedule{StaffID: staffID, Status: domain.StaffPresent, Slots: slots}
}

// NewTestSchedule is the fixture day for NewTestRoster: Ana covers Cam 9:00-10:00
// and Ben covers Kit 13:00-14:00.
func NewTestSchedule() domain.Schedule {
	return domain.Schedule{
		NewTestDay("ana", NewTestSlot("cam", 540, 600, WithSlotID("a1"))),
		NewTestDay("ben", NewTestSlot("kit", 780, 840, WithSlotID("b1"))),
	}
}
