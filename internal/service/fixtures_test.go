package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/db"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/repository"
	"github.com/alexanderramin/rosterdesk/internal/testutil"
	"github.com/stretchr/testify/require"
)

const testDate = "2026-03-02"

// seedDay stores the fixture roster and the fixture official schedule for testDate.
func seedDay(t *testing.T, database *sql.DB) {
	t.Helper()
	ctx := context.Background()
	rosters := repository.NewSQLiteRosterRepo(database)
	roster := testutil.NewTestRoster()
	for _, s := range roster.Staff {
		require.NoError(t, rosters.UpsertStaff(ctx, s))
	}
	for _, c := range roster.Clients {
		require.NoError(t, rosters.UpsertClient(ctx, c))
	}
	require.NoError(t, repository.NewSQLiteScheduleRepo(database).
		Save(ctx, testDate, testutil.NewTestSchedule(), repository.SourceImport))
}

func newEditorFixture(t *testing.T, uow db.UnitOfWork, observers ...UseCaseObserver) *editorService {
	t.Helper()
	svc := NewEditorService(uow, EditorConfig{UndoLimit: 5}, observers...).(*editorService)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC) }
	return svc
}

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func window(start, end int) domain.TimeWindow {
	return domain.TimeWindow{Start: start, End: end}
}

// holder returns the staff id covering clientID at minute, or "".
func holder(s domain.Schedule, clientID string, minute int) string {
	ids := s.Holders(clientID, window(minute, minute+1))
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}
