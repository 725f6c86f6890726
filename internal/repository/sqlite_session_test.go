package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/editor"
	"github.com/alexanderramin/rosterdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepo_SaveGetDelete(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	state := editor.NewState("2026-03-02", testutil.NewTestSchedule(), editor.WithUndoLimit(7))
	engine := editor.NewEngine(testutil.NewTestRoster())
	_, err := engine.Apply(state, domain.ChangeStaff{StaffID: "ben", ClientID: "cam", Window: domain.TimeWindow{Start: 540, End: 600}}, editor.ApplyOptions{})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, state))

	got, err := repo.Get(ctx, "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, state.DraftSchedule, got.DraftSchedule)
	assert.Equal(t, state.OfficialSchedule, got.OfficialSchedule)
	assert.Equal(t, state.Advisor.IsActive, got.Advisor.IsActive)
	require.Len(t, got.Advisor.Suggestions, len(state.Advisor.Suggestions))
	for i, sg := range state.Advisor.Suggestions {
		assert.Equal(t, sg.ID, got.Advisor.Suggestions[i].ID)
	}
	assert.Equal(t, 1, got.UndoStack.Len())
	assert.Equal(t, 7, got.UndoStack.Limit())
	require.Len(t, got.ChangeLog, 1)
	assert.Equal(t, state.ChangeLog[0].Description, got.ChangeLog[0].Description)

	require.NoError(t, engine.SetMode(state, editor.ModeWhatIf))
	require.NoError(t, repo.Save(ctx, state))
	got, err = repo.Get(ctx, "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, editor.ModeWhatIf, got.Mode)

	require.NoError(t, repo.Delete(ctx, "2026-03-02"))
	_, err = repo.Get(ctx, "2026-03-02")
	assert.ErrorIs(t, err, ErrNotFound)
}
