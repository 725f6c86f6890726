// Package applier turns a validated edit into a new schedule plus the
// cascade it leaves behind. Handlers never mutate or alias their input.
package applier

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/google/uuid"
)

type GapKind string

const (
	// GapClientUncovered is a client left without coverage.
	GapClientUncovered GapKind = "client_uncovered"
	// GapStaffIdle is a staff member left without an assignment.
	GapStaffIdle GapKind = "staff_idle"
)

// Gap is one hole an edit opened in the day.
type Gap struct {
	Kind     GapKind           `json:"kind"`
	ClientID string            `json:"clientId,omitempty"`
	StaffID  string            `json:"staffId,omitempty"`
	Window   domain.TimeWindow `json:"window"`
}

// Cascade describes side effects on entities other than the edit's target.
type Cascade struct {
	NeedsAdvisor   bool     `json:"needsAdvisor"`
	AdvisorProblem string   `json:"advisorProblem,omitempty"`
	AffectedStaff  []string `json:"affectedStaff,omitempty"`
	Gaps           []Gap    `json:"gaps,omitempty"`
}

// Result is the outcome of applying one edit. Applied is false when the edit
// referenced an unknown staff member or client; Schedule is then an
// unchanged copy of the input.
type Result struct {
	Schedule domain.Schedule
	Applied  bool
	Cascade  Cascade
}

// Applier applies edits. NewID generates ids for slots it creates.
type Applier struct {
	NewID func() string
}

// New returns an Applier that mints uuid slot ids.
func New() *Applier {
	return &Applier{NewID: func() string { return uuid.New().String() }}
}

// Apply applies edit with a default Applier.
func Apply(schedule domain.Schedule, edit domain.Edit, roster domain.Roster) Result {
	return New().Apply(schedule, edit, roster)
}

// Apply dispatches edit to its handler.
func (a *Applier) Apply(schedule domain.Schedule, edit domain.Edit, roster domain.Roster) Result {
	switch e := edit.(type) {
	case domain.ChangeStaff:
		return a.changeStaff(schedule, e, roster)
	case domain.Split:
		return a.split(schedule, e, roster)
	case domain.Train:
		return a.train(schedule, e, roster)
	case domain.Cancel:
		return a.cancel(schedule, e, roster)
	case domain.Tag:
		return a.tag(schedule, e, roster)
	}
	return noop(schedule)
}

func noop(schedule domain.Schedule) Result {
	return Result{Schedule: schedule.Clone()}
}

func (a *Applier) changeStaff(schedule domain.Schedule, e domain.ChangeStaff, roster domain.Roster) Result {
	staff, ok := roster.StaffByID(e.StaffID)
	if !ok {
		return noop(schedule)
	}
	client, ok := roster.ClientByID(e.ClientID)
	if !ok {
		return noop(schedule)
	}

	out := schedule.Clone()
	var cascade cascadeBuilder
	var displaced []string
	for _, holder := range out.Holders(client.ID, e.Window) {
		removed := a.trimClient(&out[out.Index(holder)], client.ID, e.Window)
		if holder == staff.ID {
			continue
		}
		displaced = append(displaced, holder)
		cascade.staffIdle(holder, removed,
			fmt.Sprintf("%s was displaced from %s during %s",
				roster.StaffName(holder, "Unknown"), client.Name, e.Window))
	}

	ti := ensureDay(&out, staff.ID)
	for _, g := range a.clearTime(&out[ti], e.Window) {
		cascade.clientUncovered(g,
			fmt.Sprintf("%s lost coverage during %s when %s was reassigned",
				roster.ClientName(g.ClientID, "Unknown"), g.Window, staff.Name))
	}

	reason := e.Reason
	if reason == "" && len(displaced) > 0 {
		reason = "Reassigned from " + joinNames(roster, displaced)
	}
	out[ti].Slots = append(out[ti].Slots, a.newSlot(e.Window, client.Name, client.ID, domain.IndicatorReassign, reason))

	return Result{Schedule: out, Applied: true, Cascade: cascade.build()}
}

func (a *Applier) split(schedule domain.Schedule, e domain.Split, roster domain.Roster) Result {
	client, ok := roster.ClientByID(e.ClientID)
	if !ok || len(e.Segments) == 0 {
		return noop(schedule)
	}
	for _, seg := range e.Segments {
		if _, ok := roster.StaffByID(seg.StaffID); !ok {
			return noop(schedule)
		}
	}

	out := schedule.Clone()
	var cascade cascadeBuilder
	for _, seg := range e.Segments {
		for _, holder := range out.Holders(client.ID, seg.Window) {
			removed := a.trimClient(&out[out.Index(holder)], client.ID, seg.Window)
			if holder == seg.StaffID {
				continue
			}
			cascade.staffIdle(holder, removed,
				fmt.Sprintf("%s was displaced from %s during %s by a split",
					roster.StaffName(holder, "Unknown"), client.Name, seg.Window))
		}
	}

	for _, seg := range e.Segments {
		staffName := roster.StaffName(seg.StaffID, "Unknown")
		ti := ensureDay(&out, seg.StaffID)
		for _, g := range a.clearTime(&out[ti], seg.Window) {
			if g.ClientID == client.ID {
				continue
			}
			cascade.clientUncovered(g,
				fmt.Sprintf("%s lost coverage during %s when %s took a split of %s",
					roster.ClientName(g.ClientID, "Unknown"), g.Window, staffName, client.Name))
		}
		out[ti].Slots = append(out[ti].Slots,
			a.newSlot(seg.Window, client.Name, client.ID, domain.IndicatorSplit, e.Reason))
	}

	return Result{Schedule: out, Applied: true, Cascade: cascade.build()}
}

func (a *Applier) train(schedule domain.Schedule, e domain.Train, roster domain.Roster) Result {
	trainee, ok := roster.StaffByID(e.TraineeID)
	if !ok {
		return noop(schedule)
	}
	trainer, ok := roster.StaffByID(e.TrainerID)
	if !ok {
		return noop(schedule)
	}
	client, ok := roster.ClientByID(e.ClientID)
	if !ok {
		return noop(schedule)
	}

	out := schedule.Clone()
	var cascade cascadeBuilder
	ti := ensureDay(&out, trainee.ID)
	for _, g := range a.clearTime(&out[ti], e.Window) {
		cascade.clientUncovered(g,
			fmt.Sprintf("%s lost coverage during %s while %s trains on %s",
				roster.ClientName(g.ClientID, "Unknown"), g.Window, trainee.Name, client.Name))
	}

	value := fmt.Sprintf("%s (training with %s)", client.Name, trainer.Name)
	reason := "Training"
	if e.Phase != "" {
		reason = "Training phase: " + e.Phase
	}
	out[ti].Slots = append(out[ti].Slots, a.newSlot(e.Window, value, client.ID, domain.IndicatorTraining, reason))

	return Result{Schedule: out, Applied: true, Cascade: cascade.build()}
}

func (a *Applier) cancel(schedule domain.Schedule, e domain.Cancel, roster domain.Roster) Result {
	client, ok := roster.ClientByID(e.ClientID)
	if !ok {
		return noop(schedule)
	}

	interval := e.Interval()
	out := schedule.Clone()
	var cascade cascadeBuilder
	for di := range out {
		day := &out[di]
		for si := range day.Slots {
			slot := &day.Slots[si]
			if slot.ClientID != client.ID || !domain.Overlaps(slot.Window(), interval) {
				continue
			}
			slot.Source = domain.SourceCancel
			slot.Value = domain.OpenValue
			slot.ClientID = ""
			slot.Reason = client.Name + " cancelled"
			cascade.staffIdle(day.StaffID, []domain.TimeWindow{slot.Window()},
				fmt.Sprintf("%s is open during %s after %s cancelled",
					roster.StaffName(day.StaffID, "Unknown"), slot.Window(), client.Name))
		}
	}

	return Result{Schedule: out, Applied: true, Cascade: cascade.build()}
}

func (a *Applier) tag(schedule domain.Schedule, e domain.Tag, roster domain.Roster) Result {
	if _, ok := roster.StaffByID(e.StaffID); !ok {
		return noop(schedule)
	}
	out := schedule.Clone()
	ti := ensureDay(&out, e.StaffID)
	out[ti].Slots = append(out[ti].Slots, a.newSlot(e.Window, e.Text, "", domain.IndicatorTag, ""))
	return Result{Schedule: out, Applied: true}
}

// trimClient removes the part of day's coverage of clientID that falls in w.
// Remnants outside w stay on the day; the first keeps the slot's id.
func (a *Applier) trimClient(day *domain.StaffSchedule, clientID string, w domain.TimeWindow) []domain.TimeWindow {
	var removed []domain.TimeWindow
	kept := make([]domain.ScheduleSlot, 0, len(day.Slots))
	for _, s := range day.Slots {
		cut, ok := s.Window().Intersect(w)
		if !s.HoldsClient(clientID) || !ok {
			kept = append(kept, s)
			continue
		}
		removed = append(removed, cut)
		kept = append(kept, a.remnants(s, w)...)
	}
	day.Slots = kept
	return removed
}

// clearTime frees w on day by cutting every overlapping assignment. It
// returns one client_uncovered gap per cut slot that held a client.
func (a *Applier) clearTime(day *domain.StaffSchedule, w domain.TimeWindow) []Gap {
	var gaps []Gap
	kept := make([]domain.ScheduleSlot, 0, len(day.Slots))
	for _, s := range day.Slots {
		cut, ok := s.Window().Intersect(w)
		if !s.IsAssignment() || !ok {
			kept = append(kept, s)
			continue
		}
		if s.ClientID != "" && s.Indicator != domain.IndicatorTraining {
			gaps = append(gaps, Gap{Kind: GapClientUncovered, ClientID: s.ClientID, StaffID: day.StaffID, Window: cut})
		}
		kept = append(kept, a.remnants(s, w)...)
	}
	day.Slots = kept
	return gaps
}

func (a *Applier) remnants(s domain.ScheduleSlot, w domain.TimeWindow) []domain.ScheduleSlot {
	parts := s.Window().Subtract(w)
	out := make([]domain.ScheduleSlot, 0, len(parts))
	for i, part := range parts {
		r := s
		if i > 0 {
			r.ID = a.NewID()
		}
		r.StartMinute, r.EndMinute = part.Start, part.End
		r.Block = domain.BlockFor(part.Start)
		out = append(out, r)
	}
	return out
}

func (a *Applier) newSlot(w domain.TimeWindow, value, clientID string, ind domain.Indicator, reason string) domain.ScheduleSlot {
	return domain.ScheduleSlot{
		ID:          a.NewID(),
		Block:       domain.BlockFor(w.Start),
		Value:       value,
		Source:      domain.SourceRepair,
		Reason:      reason,
		ClientID:    clientID,
		StartMinute: w.Start,
		EndMinute:   w.End,
		Indicator:   ind,
	}
}

// ensureDay returns the index of staffID's day, appending an empty one if absent.
func ensureDay(s *domain.Schedule, staffID string) int {
	if i := s.Index(staffID); i >= 0 {
		return i
	}
	*s = append(*s, domain.StaffSchedule{StaffID: staffID, Status: domain.StaffPresent})
	return len(*s) - 1
}

func joinNames(roster domain.Roster, ids []string) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = roster.StaffName(id, "Unknown")
	}
	return strings.Join(names, ", ")
}

type cascadeBuilder struct {
	problems []string
	affected []string
	seen     map[string]bool
	gaps     []Gap
}

func (b *cascadeBuilder) touch(staffID string) {
	if b.seen == nil {
		b.seen = make(map[string]bool)
	}
	if staffID != "" && !b.seen[staffID] {
		b.seen[staffID] = true
		b.affected = append(b.affected, staffID)
	}
}

func (b *cascadeBuilder) staffIdle(staffID string, windows []domain.TimeWindow, problem string) {
	b.touch(staffID)
	for _, w := range windows {
		b.gaps = append(b.gaps, Gap{Kind: GapStaffIdle, StaffID: staffID, Window: w})
	}
	b.problems = append(b.problems, problem)
}

func (b *cascadeBuilder) clientUncovered(g Gap, problem string) {
	b.gaps = append(b.gaps, g)
	b.problems = append(b.problems, problem)
}

func (b *cascadeBuilder) build() Cascade {
	if len(b.gaps) == 0 {
		return Cascade{}
	}
	return Cascade{
		NeedsAdvisor:   true,
		AdvisorProblem: strings.Join(b.problems, "; "),
		AffectedStaff:  b.affected,
		Gaps:           b.gaps,
	}
}
