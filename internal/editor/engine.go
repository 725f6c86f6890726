package editor

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/advisor"
	"github.com/alexanderramin/rosterdesk/internal/applier"
	"github.com/alexanderramin/rosterdesk/internal/constraint"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrInvalidEdit   = errors.New("invalid edit")
	ErrHardViolation = errors.New("edit violates a hard constraint")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrWrongMode     = errors.New("operation not allowed in this mode")
)

// Engine runs edits against a State for one roster.
type Engine struct {
	Roster         domain.Roster
	Checker        *constraint.Checker
	Applier        *applier.Applier
	Now            func() time.Time
	NewID          func() string
	MaxSuggestions int
}

// NewEngine returns an Engine with the default rules, uuid ids and wall clock.
func NewEngine(roster domain.Roster) *Engine {
	return &Engine{
		Roster:         roster,
		Checker:        constraint.NewChecker(),
		Applier:        applier.New(),
		Now:            time.Now,
		NewID:          func() string { return uuid.New().String() },
		MaxSuggestions: advisor.DefaultLimit,
	}
}

type ApplyOptions struct {
	// Override commits despite hard warnings.
	Override bool
}

// Outcome is everything one edit produced.
type Outcome struct {
	Schedule domain.Schedule
	Cascade  applier.Cascade
	Warnings []domain.Warning
	Advisor  advisor.State
	// Entry is set only for committed draft edits.
	Entry *domain.ChangeLogEntry
}

// Validate checks an edit's structure before anything is applied. Unknown
// staff and client ids are not checked here.
func Validate(edit domain.Edit) error {
	if err := validate(edit); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEdit, err)
	}
	return nil
}

func validate(edit domain.Edit) error {
	switch e := edit.(type) {
	case nil:
		return errors.New("no edit")
	case domain.ChangeStaff:
		if e.StaffID == "" || e.ClientID == "" {
			return errors.New("staff and client are required")
		}
		return e.Window.Validate()
	case domain.Split:
		if e.ClientID == "" {
			return errors.New("client is required")
		}
		if len(e.Segments) < 2 {
			return errors.New("a split needs at least two segments")
		}
		for i, seg := range e.Segments {
			if seg.StaffID == "" {
				return fmt.Errorf("segment %d: staff is required", i+1)
			}
			if err := seg.Window.Validate(); err != nil {
				return fmt.Errorf("segment %d: %w", i+1, err)
			}
			for _, prev := range e.Segments[:i] {
				if domain.Overlaps(prev.Window, seg.Window) {
					return fmt.Errorf("segment %d overlaps an earlier segment", i+1)
				}
			}
		}
		return nil
	case domain.Train:
		if e.TraineeID == "" || e.TrainerID == "" || e.ClientID == "" {
			return errors.New("trainee, trainer and client are required")
		}
		if e.TraineeID == e.TrainerID {
			return errors.New("trainee and trainer must differ")
		}
		return e.Window.Validate()
	case domain.Cancel:
		if e.ClientID == "" {
			return errors.New("client is required")
		}
		switch e.CancelType {
		case domain.CancelAllDay:
			return nil
		case domain.CancelUntil, domain.CancelAt:
			if e.Time <= 0 || e.Time >= domain.MinutesPerDay {
				return fmt.Errorf("cancel time %d must fall inside the day", e.Time)
			}
			return nil
		}
		return fmt.Errorf("unknown cancel type %q", e.CancelType)
	case domain.Tag:
		if e.StaffID == "" {
			return errors.New("staff is required")
		}
		if e.Text == "" {
			return errors.New("tag text is required")
		}
		return e.Window.Validate()
	}
	return fmt.Errorf("unsupported edit %T", edit)
}

// Stage records edit as the in-progress edit and recomputes its warnings
// against the working schedule. No schedule changes.
func (e *Engine) Stage(s *State, edit domain.Edit) ([]domain.Warning, error) {
	if err := Validate(edit); err != nil {
		return nil, err
	}
	s.CurrentEdit = domain.EditValue{Edit: edit}
	s.Warnings = e.Checker.Check(edit, e.Roster, s.Working())
	return s.Warnings, nil
}

// Preview computes what edit would do to the working schedule without
// touching s.
func (e *Engine) Preview(s *State, edit domain.Edit) (Outcome, error) {
	if err := Validate(edit); err != nil {
		return Outcome{}, err
	}
	base := s.Working()
	warnings := e.Checker.Check(edit, e.Roster, base)
	res := e.Applier.Apply(base, edit, e.Roster)
	if !res.Applied {
		return Outcome{Warnings: warnings}, unresolved(edit)
	}
	return Outcome{
		Schedule: res.Schedule,
		Cascade:  res.Cascade,
		Warnings: warnings,
		Advisor:  advisor.Advise(res.Cascade, e.Roster, res.Schedule, e.MaxSuggestions),
	}, nil
}

// Apply checks and applies edit in the session's current mode. In draft mode
// the previous draft is pushed for undo and a change log entry is appended;
// in what-if mode only the simulation changes. Hard warnings block the edit
// unless opts.Override is set.
func (e *Engine) Apply(s *State, edit domain.Edit, opts ApplyOptions) (Outcome, error) {
	if err := Validate(edit); err != nil {
		return Outcome{}, err
	}
	base := s.Working()
	warnings := e.Checker.Check(edit, e.Roster, base)
	s.CurrentEdit = domain.EditValue{Edit: edit}
	s.Warnings = warnings

	if domain.HasHard(warnings) && !opts.Override {
		return Outcome{Warnings: warnings}, fmt.Errorf("%w: %s", ErrHardViolation, firstHard(warnings))
	}

	res := e.Applier.Apply(base, edit, e.Roster)
	if !res.Applied {
		return Outcome{Warnings: warnings}, unresolved(edit)
	}

	out := Outcome{
		Schedule: res.Schedule,
		Cascade:  res.Cascade,
		Warnings: warnings,
		Advisor:  advisor.Advise(res.Cascade, e.Roster, res.Schedule, e.MaxSuggestions),
	}

	switch s.Mode {
	case ModeWhatIf:
		s.SimulationSchedule = res.Schedule
	default:
		s.UndoStack.Push(s.DraftSchedule)
		s.DraftSchedule = res.Schedule
		entry := newLogEntry(e.NewID(), e.Now(), edit, e.Roster, warnings, res.Cascade)
		s.ChangeLog = append(s.ChangeLog, entry)
		out.Entry = &entry
	}

	s.Advisor = out.Advisor
	s.CurrentEdit = domain.EditValue{}
	return out, nil
}

// Undo restores the draft from before the last committed edit. The change
// log is not touched.
func (e *Engine) Undo(s *State) error {
	if s.Mode != ModeDraft {
		return fmt.Errorf("%w: undo is only available in draft mode", ErrWrongMode)
	}
	prev, ok := s.UndoStack.Pop()
	if !ok {
		return ErrNothingToUndo
	}
	s.DraftSchedule = prev
	s.clearTransient()
	return nil
}

// SetMode switches modes. Either switch reseeds the simulation from the draft.
func (e *Engine) SetMode(s *State, mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}
	s.Mode = mode
	s.SimulationSchedule = s.DraftSchedule.Clone()
	s.clearTransient()
	return nil
}

// Finalize promotes the draft to official and starts a fresh session from it.
// It returns the new official schedule.
func (e *Engine) Finalize(s *State) (domain.Schedule, error) {
	if s.Mode != ModeDraft {
		return nil, fmt.Errorf("%w: switch to draft mode before finalizing", ErrWrongMode)
	}
	official := s.DraftSchedule.Clone()
	s.reset(official)
	return official.Clone(), nil
}

// Abandon discards the draft and simulation and reseeds from official.
func (e *Engine) Abandon(s *State) {
	s.reset(s.OfficialSchedule)
}

func firstHard(ws []domain.Warning) string {
	for _, w := range ws {
		if w.Type == domain.WarningHard {
			return w.Description
		}
	}
	return ""
}

func unresolved(edit domain.Edit) error {
	return fmt.Errorf("%w: %s references unknown staff or client", ErrInvalidEdit, edit.Kind())
}
