package service

import (
	"context"

	"github.com/alexanderramin/rosterdesk/internal/advisor"
	"github.com/alexanderramin/rosterdesk/internal/applier"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/editor"
	"github.com/alexanderramin/rosterdesk/internal/importer"
)

// RosterImportResult holds the outcome of a roster import.
type RosterImportResult struct {
	StaffCount  int
	ClientCount int
}

type RosterService interface {
	Import(ctx context.Context, filePath string) (*RosterImportResult, error)
	ImportFromFile(ctx context.Context, f *importer.RosterFile) (*RosterImportResult, error)
	Load(ctx context.Context) (domain.Roster, error)
}

// ScheduleImportResult holds the outcome of a schedule import.
type ScheduleImportResult struct {
	Date       string
	StaffCount int
	SlotCount  int
	// DiscardedSession is true when an open editing session for the date
	// was dropped because the official schedule changed under it.
	DiscardedSession bool
}

// CheckReport lists the structural problems found in a schedule.
type CheckReport struct {
	Date        string
	Mode        string
	Duplicates  []applier.Duplicate
	Overlapping []string
	OpenSlots   []applier.OpenSlot
}

// Clean reports whether the schedule has no duplicates and no overlaps.
// Open slots are informational.
func (r *CheckReport) Clean() bool {
	return len(r.Duplicates) == 0 && len(r.Overlapping) == 0
}

type ScheduleService interface {
	Import(ctx context.Context, filePath string) (*ScheduleImportResult, error)
	Get(ctx context.Context, date string) (domain.Schedule, error)
	Dates(ctx context.Context) ([]string, error)
	// Check inspects the session's working schedule, or the official one
	// when no session is open.
	Check(ctx context.Context, date string) (*CheckReport, error)
}

type EditorService interface {
	// Open returns the date's session, starting one from the official
	// schedule when none exists.
	Open(ctx context.Context, date string) (*editor.State, error)
	Stage(ctx context.Context, date string, edit domain.Edit) ([]domain.Warning, error)
	Apply(ctx context.Context, date string, edit domain.Edit, override bool) (*editor.Outcome, error)
	// Simulate previews an edit without changing the session.
	Simulate(ctx context.Context, date string, edit domain.Edit) (*editor.Outcome, error)
	SetMode(ctx context.Context, date string, mode editor.Mode) (*editor.State, error)
	Undo(ctx context.Context, date string) (*editor.State, error)
	Finalize(ctx context.Context, date string) (domain.Schedule, error)
	Abandon(ctx context.Context, date string) error
	ChangeLog(ctx context.Context, date string) ([]domain.ChangeLogEntry, error)
	Advise(ctx context.Context, date string) (advisor.State, error)
	// ExecuteSuggestion applies a suggestion from the last advisor run. A
	// leave-open suggestion dismisses the advisor and returns a nil outcome.
	ExecuteSuggestion(ctx context.Context, date, suggestionID string, override bool) (*editor.Outcome, error)
}
