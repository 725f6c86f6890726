// Package advisor turns an edit's cascade into a problem statement and
// ranked remediation suggestions. Suggestions are plain data; Execute is the
// only way to turn one into an edit.
package advisor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/rosterdesk/internal/applier"
	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// ErrNothingToExecute is returned by Execute for suggestions that propose no edit.
var ErrNothingToExecute = errors.New("suggestion proposes no edit")

// DefaultLimit caps ranked candidates per gap.
const DefaultLimit = 3

type Action string

const (
	// ActionReassignStaff covers an uncovered client with another staff member.
	ActionReassignStaff Action = "reassign_staff"
	// ActionAssignFreedStaff gives a freed staff member a client left uncovered by the same edit.
	ActionAssignFreedStaff Action = "assign_freed_staff"
	// ActionLeaveOpen accepts the gap.
	ActionLeaveOpen Action = "leave_open"
)

type ReasonCode string

const (
	ReasonFocus     ReasonCode = "FOCUS_STAFF"
	ReasonTrained   ReasonCode = "TRAINED_STAFF"
	ReasonOnShift   ReasonCode = "ON_SHIFT"
	ReasonFloat     ReasonCode = "FLOAT_ROLE"
	ReasonUntrained ReasonCode = "UNTRAINED"
)

type Reason struct {
	Code    ReasonCode `json:"code"`
	Message string     `json:"message"`
	Delta   float64    `json:"delta"`
}

// Suggestion is one remediation intent and the entities it targets.
type Suggestion struct {
	ID          string            `json:"id"`
	Action      Action            `json:"action"`
	StaffID     string            `json:"staffId,omitempty"`
	ClientID    string            `json:"clientId,omitempty"`
	Window      domain.TimeWindow `json:"window"`
	Score       float64           `json:"score"`
	Reasons     []Reason          `json:"reasons,omitempty"`
	Description string            `json:"description"`
}

// State is the advisor panel for the latest edit. It is rebuilt on every edit.
type State struct {
	IsActive    bool         `json:"isActive"`
	Problem     string       `json:"problem,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// Advise builds the advisor state for cascade. schedule is the post-edit
// schedule. limit <= 0 uses DefaultLimit.
func Advise(cascade applier.Cascade, roster domain.Roster, schedule domain.Schedule, limit int) State {
	if !cascade.NeedsAdvisor {
		return State{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var uncovered []applier.Gap
	for _, g := range cascade.Gaps {
		if g.Kind == applier.GapClientUncovered {
			uncovered = append(uncovered, g)
		}
	}

	seen := make(map[string]bool)
	var out []Suggestion
	add := func(ss ...Suggestion) {
		for _, s := range ss {
			if !seen[s.ID] {
				seen[s.ID] = true
				out = append(out, s)
			}
		}
	}

	for _, g := range cascade.Gaps {
		switch g.Kind {
		case applier.GapClientUncovered:
			add(rankCoverage(g, roster, schedule, limit)...)
			add(leaveOpen(g, roster))
		case applier.GapStaffIdle:
			add(rankFreed(g, uncovered, roster, limit)...)
			add(leaveOpen(g, roster))
		}
	}

	// leave_open entries go last so the first suggestion is always actionable when one exists.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Action != ActionLeaveOpen && out[j].Action == ActionLeaveOpen
	})

	return State{IsActive: true, Problem: cascade.AdvisorProblem, Suggestions: out}
}

// Execute maps a suggestion to the edit that carries it out.
func Execute(s Suggestion) (domain.Edit, error) {
	switch s.Action {
	case ActionReassignStaff, ActionAssignFreedStaff:
		if s.StaffID == "" || s.ClientID == "" {
			return nil, fmt.Errorf("suggestion %s: missing staff or client", s.ID)
		}
		return domain.ChangeStaff{
			StaffID:  s.StaffID,
			ClientID: s.ClientID,
			Window:   s.Window,
			Reason:   "Advisor: " + s.Description,
		}, nil
	case ActionLeaveOpen:
		return nil, ErrNothingToExecute
	}
	return nil, fmt.Errorf("suggestion %s: unknown action %q", s.ID, s.Action)
}

func suggestionID(action Action, staffID, clientID string, w domain.TimeWindow) string {
	return fmt.Sprintf("%s:%s:%s:%s", action, staffID, clientID, w)
}

// rankCoverage proposes staff to cover an uncovered client.
func rankCoverage(g applier.Gap, roster domain.Roster, schedule domain.Schedule, limit int) []Suggestion {
	client, ok := roster.ClientByID(g.ClientID)
	if !ok {
		return nil
	}
	var out []Suggestion
	for _, staff := range roster.Staff {
		if staff.ID == g.StaffID || !eligible(staff, client, g.Window, schedule) {
			continue
		}
		score, reasons := scoreCandidate(staff, client, schedule)
		out = append(out, Suggestion{
			ID:          suggestionID(ActionReassignStaff, staff.ID, client.ID, g.Window),
			Action:      ActionReassignStaff,
			StaffID:     staff.ID,
			ClientID:    client.ID,
			Window:      g.Window,
			Score:       score,
			Reasons:     reasons,
			Description: fmt.Sprintf("Reassign %s to cover %s during %s", staff.Name, client.Name, g.Window),
		})
	}
	return top(out, roster, limit)
}

// rankFreed proposes clients, uncovered by the same edit, for a freed staff member.
func rankFreed(g applier.Gap, uncovered []applier.Gap, roster domain.Roster, limit int) []Suggestion {
	staff, ok := roster.StaffByID(g.StaffID)
	if !ok || !staff.Active {
		return nil
	}
	var out []Suggestion
	for _, u := range uncovered {
		w, ok := g.Window.Intersect(u.Window)
		if !ok {
			continue
		}
		client, ok := roster.ClientByID(u.ClientID)
		if !ok || blocked(staff, client) {
			continue
		}
		score, reasons := scoreCandidate(staff, client, nil)
		out = append(out, Suggestion{
			ID:          suggestionID(ActionAssignFreedStaff, staff.ID, client.ID, w),
			Action:      ActionAssignFreedStaff,
			StaffID:     staff.ID,
			ClientID:    client.ID,
			Window:      w,
			Score:       score,
			Reasons:     reasons,
			Description: fmt.Sprintf("Assign freed %s to %s during %s", staff.Name, client.Name, w),
		})
	}
	return top(out, roster, limit)
}

func leaveOpen(g applier.Gap, roster domain.Roster) Suggestion {
	var desc string
	if g.Kind == applier.GapClientUncovered {
		desc = fmt.Sprintf("Leave %s uncovered during %s", roster.ClientName(g.ClientID, "Unknown"), g.Window)
	} else {
		desc = fmt.Sprintf("Leave %s open during %s", roster.StaffName(g.StaffID, "Unknown"), g.Window)
	}
	return Suggestion{
		ID:          suggestionID(ActionLeaveOpen, g.StaffID, g.ClientID, g.Window),
		Action:      ActionLeaveOpen,
		StaffID:     g.StaffID,
		ClientID:    g.ClientID,
		Window:      g.Window,
		Description: desc,
	}
}

// blocked applies the hard placement rules.
func blocked(staff domain.Staff, client domain.Client) bool {
	return client.Excludes(staff.ID) || (client.Crisis && staff.Role == domain.RoleFloat)
}

func eligible(staff domain.Staff, client domain.Client, w domain.TimeWindow, schedule domain.Schedule) bool {
	if !staff.Active || blocked(staff, client) {
		return false
	}
	day, ok := schedule.Day(staff.ID)
	if !ok {
		return true
	}
	if day.Status == domain.StaffAbsent || day.Status == domain.StaffCalledOut {
		return false
	}
	return !day.Busy(w)
}

func scoreCandidate(staff domain.Staff, client domain.Client, schedule domain.Schedule) (float64, []Reason) {
	var score float64
	var reasons []Reason
	addReason := func(code ReasonCode, delta float64, msg string) {
		score += delta
		reasons = append(reasons, Reason{Code: code, Message: msg, Delta: delta})
	}

	switch {
	case client.IsFocus(staff.ID):
		addReason(ReasonFocus, 3, fmt.Sprintf("%s is a focus staff member for %s", staff.Name, client.Name))
	case client.IsTrained(staff.ID):
		addReason(ReasonTrained, 2, fmt.Sprintf("%s is trained on %s", staff.Name, client.Name))
	default:
		addReason(ReasonUntrained, 0, fmt.Sprintf("%s is not trained on %s", staff.Name, client.Name))
	}
	if schedule != nil {
		if _, ok := schedule.Day(staff.ID); ok {
			addReason(ReasonOnShift, 1, "Already on shift today")
		}
	}
	if staff.Role == domain.RoleFloat {
		addReason(ReasonFloat, -1, "Float staff")
	}
	return score, reasons
}

// top orders by score, then staff name, then staff id, and keeps limit entries.
func top(ss []Suggestion, roster domain.Roster, limit int) []Suggestion {
	sort.SliceStable(ss, func(i, j int) bool {
		a, b := ss[i], ss[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		na, nb := roster.StaffName(a.StaffID, ""), roster.StaffName(b.StaffID, "")
		if na != nb {
			return na < nb
		}
		if a.StaffID != b.StaffID {
			return a.StaffID < b.StaffID
		}
		return a.ClientID < b.ClientID
	})
	if len(ss) > limit {
		ss = ss[:limit]
	}
	return ss
}
