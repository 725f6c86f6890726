package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleRepo_SaveAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteScheduleRepo(database)
	ctx := context.Background()

	schedule := testutil.NewTestSchedule()
	schedule[0].Slots = append(schedule[0].Slots, domain.ScheduleSlot{
		ID: "t1", Block: domain.BlockAM, Value: "Fire drill", Source: domain.SourceRepair,
		StartMinute: 540, EndMinute: 560, Indicator: domain.IndicatorTag,
	})
	require.NoError(t, repo.Save(ctx, "2026-03-02", schedule, SourceImport))

	got, err := repo.Get(ctx, "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, schedule, got)

	var stored, source string
	require.NoError(t, database.QueryRow(`SELECT snapshot, source FROM official_schedules WHERE date = ?`, "2026-03-02").
		Scan(&stored, &source))
	assert.Contains(t, stored, `"v":1`)
	assert.NotContains(t, stored, "null")
	assert.Equal(t, SourceImport, source)
}

func TestScheduleRepo_SaveOverwrites(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteScheduleRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "2026-03-02", testutil.NewTestSchedule(), SourceImport))
	replacement := domain.Schedule{testutil.NewTestDay("ben", testutil.NewTestSlot("cam", 600, 660, testutil.WithSlotID("x")))}
	require.NoError(t, repo.Save(ctx, "2026-03-02", replacement, SourceFinalize))

	got, err := repo.Get(ctx, "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, replacement, got)

	var source string
	require.NoError(t, database.QueryRow(`SELECT source FROM official_schedules`).Scan(&source))
	assert.Equal(t, SourceFinalize, source)
}

func TestScheduleRepo_ListDatesAndNotFound(t *testing.T) {
	repo := NewSQLiteScheduleRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, "2026-03-02")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save(ctx, "2026-03-03", testutil.NewTestSchedule(), SourceImport))
	require.NoError(t, repo.Save(ctx, "2026-03-02", testutil.NewTestSchedule(), SourceImport))
	dates, err := repo.ListDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-02", "2026-03-03"}, dates)
}
