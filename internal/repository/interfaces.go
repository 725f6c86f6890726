package repository

import (
	"context"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/editor"
)

// Schedule sources recorded with an official schedule.
const (
	SourceImport   = "import"
	SourceFinalize = "finalize"
)

type RosterRepo interface {
	UpsertStaff(ctx context.Context, s domain.Staff) error
	UpsertClient(ctx context.Context, c domain.Client) error
	GetStaff(ctx context.Context, id string) (domain.Staff, error)
	GetClient(ctx context.Context, id string) (domain.Client, error)
	ListStaff(ctx context.Context) ([]domain.Staff, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	// Load returns the whole roster, staff and clients ordered by id.
	Load(ctx context.Context) (domain.Roster, error)
}

type ScheduleRepo interface {
	Save(ctx context.Context, date string, schedule domain.Schedule, source string) error
	Get(ctx context.Context, date string) (domain.Schedule, error)
	ListDates(ctx context.Context) ([]string, error)
}

// SessionRepo stores at most one editing session per date.
type SessionRepo interface {
	Save(ctx context.Context, s *editor.State) error
	Get(ctx context.Context, date string) (*editor.State, error)
	Delete(ctx context.Context, date string) error
}

// ChangeLogRepo is append-only. There are no update or delete methods, and
// the table rejects both at the database level.
type ChangeLogRepo interface {
	Append(ctx context.Context, date string, e domain.ChangeLogEntry) error
	ListByDate(ctx context.Context, date string) ([]domain.ChangeLogEntry, error)
}
