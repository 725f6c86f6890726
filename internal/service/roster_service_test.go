package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/importer"
	"github.com/alexanderramin/rosterdesk/internal/repository"
	"github.com/alexanderramin/rosterdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const rosterYAML = `
staff:
  - {id: ana, name: Ana, role: Technician}
  - {id: ben, name: Ben, role: Technician}
  - {id: flo, name: Flo, role: Float}
clients:
  - {id: cam, name: Cam, trained_staff: [ana, ben], excluded_staff: [flo]}
  - {id: kit, name: Kit, crisis: true, trained_staff: [ben]}
`

func TestRosterService_Import(t *testing.T) {
	database := testutil.NewTestDB(t)
	obs := &recordingObserver{}
	svc := NewRosterService(repository.NewSQLiteRosterRepo(database), testutil.NewTestUoW(database), obs)
	ctx := context.Background()

	result, err := svc.Import(ctx, writeFile(t, "roster.yaml", rosterYAML))
	require.NoError(t, err)
	assert.Equal(t, &RosterImportResult{StaffCount: 3, ClientCount: 2}, result)

	roster, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutil.NewTestRoster(), roster)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "import-roster", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
}

func TestRosterService_ImportValidationErrors(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewRosterService(repository.NewSQLiteRosterRepo(database), testutil.NewTestUoW(database))

	_, err := svc.ImportFromFile(context.Background(), &importer.RosterFile{
		Staff:   []importer.StaffImport{{ID: "ana", Name: "Ana", Role: "Boss"}},
		Clients: []importer.ClientImport{{ID: "cam", Name: "Cam", Trained: []string{"zed"}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), `staff[0].role: invalid value "Boss"`)
}

func TestRosterService_ImportRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	boom := errors.New("write failed")
	// Three staff upserts, then the first client upsert fails.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 4, Err: boom}
	svc := NewRosterService(repository.NewSQLiteRosterRepo(database), uow)
	ctx := context.Background()

	_, err := svc.Import(ctx, writeFile(t, "roster.yaml", rosterYAML))
	require.ErrorIs(t, err, boom)

	roster, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, roster.Staff)
	assert.Empty(t, roster.Clients)
}

func TestRosterService_ReimportUpdates(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewRosterService(repository.NewSQLiteRosterRepo(database), testutil.NewTestUoW(database))
	ctx := context.Background()

	_, err := svc.Import(ctx, writeFile(t, "roster.yaml", rosterYAML))
	require.NoError(t, err)
	_, err = svc.Import(ctx, writeFile(t, "roster2.yaml", `
staff:
  - {id: flo, name: Flo, role: Trainer, active: false}
clients: []
`))
	require.NoError(t, err)

	roster, err := svc.Load(ctx)
	require.NoError(t, err)
	flo, ok := roster.StaffByID("flo")
	require.True(t, ok)
	assert.Equal(t, domain.Staff{ID: "flo", Name: "Flo", Role: domain.RoleTrainer, Active: false}, flo)
	assert.Len(t, roster.Staff, 3)
}
