// Package editor holds the per-day editing session: the draft being built,
// a what-if simulation, the undo history, and the change log.
package editor

import (
	"fmt"

	"github.com/alexanderramin/rosterdesk/internal/advisor"
	"github.com/alexanderramin/rosterdesk/internal/domain"
)

type Mode string

const (
	// ModeDraft commits edits to the draft with undo and change log.
	ModeDraft Mode = "draft"
	// ModeWhatIf applies edits to a throwaway simulation only.
	ModeWhatIf Mode = "what_if"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDraft, ModeWhatIf:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid mode %q (valid: draft, what_if)", s)
}

// State is one day's editing session. It round-trips through JSON so a
// session can be saved and resumed.
type State struct {
	Date               string                  `json:"date"`
	Mode               Mode                    `json:"mode"`
	SimulationSchedule domain.Schedule         `json:"simulationSchedule"`
	DraftSchedule      domain.Schedule         `json:"draftSchedule"`
	OfficialSchedule   domain.Schedule         `json:"officialSchedule"`
	ChangeLog          []domain.ChangeLogEntry `json:"changeLog"`
	UndoStack          UndoStack               `json:"undoStack"`
	Warnings           []domain.Warning        `json:"warnings"`
	Advisor            advisor.State           `json:"advisor"`
	CurrentEdit        domain.EditValue        `json:"currentEdit"`
}

type StateOption func(*State)

// WithUndoLimit bounds the undo history.
func WithUndoLimit(n int) StateOption {
	return func(s *State) { s.UndoStack = NewUndoStack(n) }
}

// NewState starts a draft-mode session seeded with copies of official.
func NewState(date string, official domain.Schedule, opts ...StateOption) *State {
	s := &State{
		Date:               date,
		Mode:               ModeDraft,
		OfficialSchedule:   official.Clone(),
		DraftSchedule:      official.Clone(),
		SimulationSchedule: official.Clone(),
		ChangeLog:          []domain.ChangeLogEntry{},
		UndoStack:          NewUndoStack(DefaultUndoLimit),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Working returns the schedule edits are applied to in the current mode.
func (s *State) Working() domain.Schedule {
	if s.Mode == ModeWhatIf {
		return s.SimulationSchedule
	}
	return s.DraftSchedule
}

// Dirty reports whether the draft differs from the official schedule by at
// least one undoable edit.
func (s *State) Dirty() bool {
	return s.UndoStack.Len() > 0
}

func (s *State) clearTransient() {
	s.Warnings = nil
	s.Advisor = advisor.State{}
	s.CurrentEdit = domain.EditValue{}
}

// reset reseeds the session from official, keeping the undo limit.
func (s *State) reset(official domain.Schedule) {
	*s = *NewState(s.Date, official, WithUndoLimit(s.UndoStack.Limit()))
}
