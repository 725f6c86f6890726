// Package constraint evaluates hard and soft placement rules for a proposed edit.
package constraint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// Rule names.
const (
	RuleExcludedStaff       = "excluded_staff"
	RuleCrisisProtection    = "crisis_protection"
	RuleUntrainedAssignment = "untrained_assignment"
	RuleDuplicateAssignment = "duplicate_assignment"
	RuleTargetBusy          = "target_busy"
	RuleUntrainedTrainer    = "untrained_trainer"
)

// Placement is one staff member being put with one client for a window.
// Every edit that assigns coverage is checked as one or more placements.
type Placement struct {
	Staff    domain.Staff
	Client   domain.Client
	Window   domain.TimeWindow
	Schedule domain.Schedule // nil when the caller has no current schedule
	// Shadow marks a trainee placement, which adds no coverage of its own.
	Shadow bool
}

// Rule is an independent predicate over a placement. It returns nil when it does not fire.
type Rule struct {
	Name  string
	Check func(p Placement) *domain.Warning
}

// DefaultRules returns the placement rules in registration order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: RuleExcludedStaff, Check: checkExcludedStaff},
		{Name: RuleCrisisProtection, Check: checkCrisisProtection},
		{Name: RuleUntrainedAssignment, Check: checkUntrained},
		{Name: RuleDuplicateAssignment, Check: checkDuplicateAssignment},
		{Name: RuleTargetBusy, Check: checkTargetBusy},
	}
}

// Checker aggregates every firing rule for an edit. It never mutates its inputs.
type Checker struct {
	rules []Rule
}

// NewChecker builds a checker over rules. With no rules it uses DefaultRules.
func NewChecker(rules ...Rule) *Checker {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Checker{rules: rules}
}

// Check evaluates the default rules. schedule may be nil.
func Check(edit domain.Edit, roster domain.Roster, schedule domain.Schedule) []domain.Warning {
	return NewChecker().Check(edit, roster, schedule)
}

// Check returns the warnings for edit ordered by rule registration order,
// then warning id. Unresolvable staff or client ids produce no warnings;
// the applier treats those edits as no-ops.
func (c *Checker) Check(edit domain.Edit, roster domain.Roster, schedule domain.Schedule) []domain.Warning {
	var placements []Placement
	var extra []domain.Warning

	switch e := edit.(type) {
	case domain.ChangeStaff:
		if p, ok := resolve(roster, e.StaffID, e.ClientID, e.Window, schedule); ok {
			placements = append(placements, p)
		}
	case domain.Split:
		for _, seg := range e.Segments {
			if p, ok := resolve(roster, seg.StaffID, e.ClientID, seg.Window, schedule); ok {
				placements = append(placements, p)
			}
		}
	case domain.Train:
		if p, ok := resolve(roster, e.TraineeID, e.ClientID, e.Window, schedule); ok {
			p.Shadow = true
			placements = append(placements, p)
			if w := checkTrainer(roster, e, p.Client); w != nil {
				extra = append(extra, *w)
			}
		}
	case domain.Cancel, domain.Tag:
		return nil
	}

	order := make(map[string]int, len(c.rules)+1)
	for i, r := range c.rules {
		order[r.Name] = i
	}
	order[RuleUntrainedTrainer] = len(c.rules)

	seen := make(map[string]bool)
	var warnings []domain.Warning
	for _, r := range c.rules {
		for _, p := range placements {
			w := r.Check(p)
			if w == nil || seen[w.ID] {
				continue
			}
			seen[w.ID] = true
			warnings = append(warnings, *w)
		}
	}
	warnings = append(warnings, extra...)

	sort.SliceStable(warnings, func(i, j int) bool {
		a, b := warnings[i], warnings[j]
		if order[a.Rule] != order[b.Rule] {
			return order[a.Rule] < order[b.Rule]
		}
		return a.ID < b.ID
	})
	return warnings
}

func resolve(roster domain.Roster, staffID, clientID string, w domain.TimeWindow, schedule domain.Schedule) (Placement, bool) {
	staff, ok := roster.StaffByID(staffID)
	if !ok {
		return Placement{}, false
	}
	client, ok := roster.ClientByID(clientID)
	if !ok {
		return Placement{}, false
	}
	return Placement{Staff: staff, Client: client, Window: w, Schedule: schedule}, true
}

func warningID(rule string, ids ...string) string {
	return rule + ":" + strings.Join(ids, ":")
}

func checkExcludedStaff(p Placement) *domain.Warning {
	if !p.Client.Excludes(p.Staff.ID) {
		return nil
	}
	return &domain.Warning{
		ID:          warningID(RuleExcludedStaff, p.Staff.ID, p.Client.ID),
		Type:        domain.WarningHard,
		Rule:        RuleExcludedStaff,
		Description: fmt.Sprintf("%s is on %s's exclusion list", p.Staff.Name, p.Client.Name),
		Entities:    []string{p.Staff.ID, p.Client.ID},
		Suggestions: []string{fmt.Sprintf("Choose a staff member not excluded for %s", p.Client.Name)},
	}
}

func checkCrisisProtection(p Placement) *domain.Warning {
	if !p.Client.Crisis || p.Staff.Role != domain.RoleFloat {
		return nil
	}
	return &domain.Warning{
		ID:          warningID(RuleCrisisProtection, p.Staff.ID, p.Client.ID),
		Type:        domain.WarningHard,
		Rule:        RuleCrisisProtection,
		Description: fmt.Sprintf("%s is a crisis client and cannot be covered by Float staff (%s)", p.Client.Name, p.Staff.Name),
		Entities:    []string{p.Staff.ID, p.Client.ID},
		Suggestions: []string{"Assign a trained, non-Float staff member"},
	}
}

func checkUntrained(p Placement) *domain.Warning {
	if p.Shadow || p.Client.Knows(p.Staff.ID) {
		return nil
	}
	return &domain.Warning{
		ID:          warningID(RuleUntrainedAssignment, p.Staff.ID, p.Client.ID),
		Type:        domain.WarningSoft,
		Rule:        RuleUntrainedAssignment,
		Description: fmt.Sprintf("%s is not trained on %s", p.Staff.Name, p.Client.Name),
		Entities:    []string{p.Staff.ID, p.Client.ID},
		Suggestions: []string{fmt.Sprintf("Prefer staff on %s's trained or focus list", p.Client.Name)},
	}
}

func checkDuplicateAssignment(p Placement) *domain.Warning {
	if p.Schedule == nil || p.Shadow {
		return nil
	}
	holders := p.Schedule.Holders(p.Client.ID, p.Window)
	if len(holders) < 2 {
		return nil
	}
	return &domain.Warning{
		ID:   warningID(RuleDuplicateAssignment, p.Client.ID, p.Window.String()),
		Type: domain.WarningHard,
		Rule: RuleDuplicateAssignment,
		Description: fmt.Sprintf("%s is already held by %d staff members during %s: %s",
			p.Client.Name, len(holders), p.Window, strings.Join(holders, ", ")),
		Entities:    append([]string{p.Client.ID}, holders...),
		Suggestions: []string{"Resolve the duplicate assignment before reassigning"},
	}
}

func checkTargetBusy(p Placement) *domain.Warning {
	if p.Schedule == nil {
		return nil
	}
	day, ok := p.Schedule.Day(p.Staff.ID)
	if !ok {
		return nil
	}
	var others []string
	for _, s := range day.Slots {
		if s.IsAssignment() && s.ClientID != "" && s.ClientID != p.Client.ID && domain.Overlaps(s.Window(), p.Window) {
			others = append(others, s.ClientID)
		}
	}
	if len(others) == 0 {
		return nil
	}
	return &domain.Warning{
		ID:   warningID(RuleTargetBusy, p.Staff.ID, p.Window.String()),
		Type: domain.WarningSoft,
		Rule: RuleTargetBusy,
		Description: fmt.Sprintf("%s already covers %s during %s; that coverage will be displaced",
			p.Staff.Name, strings.Join(others, ", "), p.Window),
		Entities: append([]string{p.Staff.ID}, others...),
	}
}

func checkTrainer(roster domain.Roster, e domain.Train, client domain.Client) *domain.Warning {
	trainer, ok := roster.StaffByID(e.TrainerID)
	if !ok || client.Knows(trainer.ID) {
		return nil
	}
	return &domain.Warning{
		ID:          warningID(RuleUntrainedTrainer, trainer.ID, client.ID),
		Type:        domain.WarningSoft,
		Rule:        RuleUntrainedTrainer,
		Description: fmt.Sprintf("Trainer %s is not trained on %s", trainer.Name, client.Name),
		Entities:    []string{trainer.ID, client.ID},
	}
}
