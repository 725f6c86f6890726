package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRoster(t *testing.T, repo *SQLiteRosterRepo, roster domain.Roster) {
	t.Helper()
	ctx := context.Background()
	for _, s := range roster.Staff {
		require.NoError(t, repo.UpsertStaff(ctx, s))
	}
	for _, c := range roster.Clients {
		require.NoError(t, repo.UpsertClient(ctx, c))
	}
}

func TestRosterRepo_LoadRoundTrip(t *testing.T) {
	repo := NewSQLiteRosterRepo(testutil.NewTestDB(t))
	roster := testutil.NewTestRoster()
	seedRoster(t, repo, roster)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, roster, got)
}

func TestRosterRepo_UpsertReplacesLinks(t *testing.T) {
	repo := NewSQLiteRosterRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	seedRoster(t, repo, testutil.NewTestRoster())

	updated := testutil.NewTestClient("cam", "Cameron", testutil.WithFocus("flo"))
	require.NoError(t, repo.UpsertClient(ctx, updated))

	got, err := repo.GetClient(ctx, "cam")
	require.NoError(t, err)
	assert.Equal(t, "Cameron", got.Name)
	assert.Equal(t, []string{"flo"}, got.FocusStaff)
	assert.Empty(t, got.TrainedStaff)
	assert.Empty(t, got.ExcludedStaff)
}

func TestRosterRepo_StaffUpdate(t *testing.T) {
	repo := NewSQLiteRosterRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.UpsertStaff(ctx, testutil.NewTestStaff("ana", "Ana")))
	require.NoError(t, repo.UpsertStaff(ctx, testutil.NewTestStaff("ana", "Ana B", testutil.WithRole(domain.RoleLead), testutil.Inactive())))

	got, err := repo.GetStaff(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, domain.Staff{ID: "ana", Name: "Ana B", Role: domain.RoleLead, Active: false}, got)
}

func TestRosterRepo_NotFound(t *testing.T) {
	repo := NewSQLiteRosterRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.GetStaff(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetClient(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRosterRepo_LinkToUnknownStaffFails(t *testing.T) {
	repo := NewSQLiteRosterRepo(testutil.NewTestDB(t))
	err := repo.UpsertClient(context.Background(), testutil.NewTestClient("cam", "Cam", testutil.WithTrained("ghost")))
	assert.Error(t, err)
}
