package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/repository"
	"github.com/alexanderramin/rosterdesk/internal/service"
	"github.com/alexanderramin/rosterdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDate = "2026-03-02"

const rosterYAML = `
staff:
  - {id: ana, name: Ana, role: Technician}
  - {id: ben, name: Ben, role: Technician}
  - {id: flo, name: Flo, role: Float}
clients:
  - id: cam
    name: Cam
    trained_staff: [ana, ben]
    excluded_staff: [flo]
  - id: kit
    name: Kit
    crisis: true
    trained_staff: [ben]
`

const scheduleYAML = `
date: "2026-03-02"
staff:
  - staff_id: ana
    slots:
      - {id: a1, client: cam, start: "9:00", end: "10:00"}
  - staff_id: ben
    slots:
      - {id: b1, client: kit, start: "13:00", end: "14:00"}
`

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	return &App{
		Roster:    service.NewRosterService(repository.NewSQLiteRosterRepo(database), uow),
		Schedules: service.NewScheduleService(repository.NewSQLiteScheduleRepo(database), uow),
		Editor:    service.NewEditorService(uow, service.EditorConfig{UndoLimit: 5}),
		Now:       func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local) },
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// seedDay imports the fixture roster and the schedule for testDate.
func seedDay(t *testing.T, app *App) {
	t.Helper()
	_, err := executeCmd(t, app, "roster", "import", writeFile(t, "roster.yaml", rosterYAML))
	require.NoError(t, err)
	_, err = executeCmd(t, app, "schedule", "import", writeFile(t, "schedule.yaml", scheduleYAML))
	require.NoError(t, err)
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- Roster ---

func TestRosterImportAndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "roster", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Roster is empty")

	out, err = executeCmd(t, app, "roster", "import", writeFile(t, "roster.yaml", rosterYAML))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 staff and 2 clients")

	out, err = executeCmd(t, app, "roster", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Technician")
	assert.Contains(t, out, "Flo")
	assert.Contains(t, out, "crisis")
}

func TestRosterImport_InvalidFile(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "roster", "import", writeFile(t, "roster.yaml", "staff:\n  - {id: ana, role: Boss}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

// --- Schedule ---

func TestScheduleImportShowDates(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "roster", "import", writeFile(t, "roster.yaml", rosterYAML))
	require.NoError(t, err)

	out, err := executeCmd(t, app, "schedule", "import", writeFile(t, "schedule.yaml", scheduleYAML))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported schedule for 2026-03-02: 2 staff, 2 slots")

	out, err = executeCmd(t, app, "schedule", "show", "--date", testDate)
	require.NoError(t, err)
	assert.Contains(t, out, "OFFICIAL 2026-03-02")
	assert.Contains(t, out, "9:00-10:00")
	assert.Contains(t, out, "Cam")

	out, err = executeCmd(t, app, "schedule", "dates")
	require.NoError(t, err)
	assert.Contains(t, out, testDate)
}

func TestScheduleShow_DefaultsToToday(t *testing.T) {
	app := testApp(t)
	seedDay(t, app)

	out, err := executeCmd(t, app, "schedule", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "OFFICIAL 2026-03-02")
}

func TestScheduleShow_Errors(t *testing.T) {
	app := testApp(t)
	seedDay(t, app)

	_, err := executeCmd(t, app, "schedule", "show", "--date", "next-monday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")

	_, err = executeCmd(t, app, "schedule", "show", "--date", "2026-03-09")
	assert.ErrorIs(t, err, service.ErrNoSchedule)

	_, err = executeCmd(t, app, "schedule", "show", "--draft", "--simulation")
	assert.Error(t, err)
}

func TestScheduleCheck_ReportsDuplicates(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "roster", "import", writeFile(t, "roster.yaml", rosterYAML))
	require.NoError(t, err)
	dup := `
date: "2026-03-02"
staff:
  - staff_id: ana
    slots:
      - {client: cam, start: "9:00", end: "10:00"}
  - staff_id: ben
    slots:
      - {client: cam, start: "9:30", end: "10:00"}
`
	_, err = executeCmd(t, app, "schedule", "import", writeFile(t, "dup.yaml", dup))
	require.NoError(t, err)

	out, err := executeCmd(t, app, "schedule", "check", "--date", testDate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicting assignments")
	assert.Contains(t, out, "Cam is held by Ana, Ben during 9:30-10:00")
}

// --- Edits ---

func TestEditChangeStaff_UndoKeepsLog(t *testing.T) {
	app := testApp(t)
	seedDay(t, app)

	out, err := executeCmd(t, app, "edit", "change-staff", "--client", "cam", "--staff", "ben", "--time", "9:00-10:00")
	require.NoError(t, err)
	assert.Contains(t, out, "✔")
	assert.Contains(t, out, "ADVISOR")

	out, err = executeCmd(t, app, "schedule", "show", "--draft")
	require.NoError(t, err)
	assert.Contains(t, out, "DRAFT 2026-03-02")
	assert.Contains(t, out, "REPAIR")

	out, err = executeCmd(t, app, "undo")
	require.NoError(t, err)
	assert.Contains(t, out, "Undone. 0 more step(s) available.")

	_, err = executeCmd(t, app, "undo")
	assert.Error(t, err)

	out, err = executeCmd(t, app, "log")
	require.NoError(t, err)
	assert.Contains(t, out, "change_staff")
}

func TestEdit_HardViolationWithoutTerminal(t *testing.T) {
	app := testApp(t)
	seedDay(t, app)

	out, err := executeCmd(t, app, "edit", "change-staff", "--client", "cam", "--staff", "flo", "--time", "9:00-10:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
	assert.Contains(t, out, "● HARD")

	out, err = executeCmd(t, app, "log")
	require.NoError(t, err)
	assert.Contains(t, out, "No edits recorded.")

	out, err = executeCmd(t, app, "edit", "change-staff", "--client", "cam", "--staff", "flo", "--time", "9:00-10:00", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "✔")
}

func TestEdit_HardViolationPrompts(t *testing.T) {
	tests := []struct {
		name    string
		answer  bool
		wantOut string
		wantLog string
	}{
		{"confirmed", true, "✔", "change_staff"},
		{"declined", false, "Edit not applied.", "No edits recorded."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			seedDay(t, app)
			var asked string
			app.IsInteractive = func() bool { return true }
			app.Confirm = func(title string) (bool, error) {
				asked = title
				return tt.answer, nil
			}

			out, err := executeCmd(t, app, "edit", "change-staff", "--client", "cam", "--staff", "flo", "--time", "9:00-10:00")
			require.NoError(t, err)
			assert.Contains(t, asked, "hard constraint")
			assert.Contains(t, out, tt.wantOut)

			out, err = executeCmd(t, app, "log")
			require.NoError(t, err)
			assert.Contains(t, out, tt.wantLog)
		})
	}
}

func TestEdit_SimulateAndStage(t *testing.T) {
	app := testApp(t)
	seedDay(t, app)

	out, err := executeCmd(t, app, "edit", "change-staff", "--client", "kit", "--staff", "ana", "--time", "13:00-14:00", "--simulate")
	require.NoError(t, err)
	assert.Contains(t, out, "Simulated")

	out, err = executeCmd(t, app, "edit", "change-staff", "--client", "kit", "--staff", "ana", "--time", "13:00-14:00", "--stage")
	require.NoError(t, err)
	assert.Contains(t, out, "Staged change_staff")
	assert.Contains(t, out, "● SOFT")

	out, err = executeCmd(t, app, "log")
	require.NoError(t, err)
	assert.Contains(t, out, "No edits recorded.")

	_, err = executeCmd(t, app, "edit", "tag", "--staff", "ana", "--text", "x", "--time", "9:00-9:10", "--simulate", "--stage")
	assert.Error(t, err)
}

func TestEditSplit(t *testing.T) {
	app := testApp(t)
	seedDay(t, app)

	_, err := executeCmd(t, app, "edit", "split", "--client", "cam", "--segment", "ana9:00-9:30", "--segment", "ben=9:30-10:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected staff=H:MM-H:MM")

	_, err = executeCmd(t, app, "edit", "split", "--client", "cam", "--segment", "ana=9:00-9:30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "two segments")

	out, err := executeCmd(t, app, "edit", "split", "--client", "cam", "--segment", "ana=9:00-9:30", "--segment", "ben=9:30-10:00")
	require.NoError(t, err)
	assert.Contains(t, out, "✔")
}

func TestEditCancel_LeavesOpenSlot(t *testing.T) {
	app := testApp(t)
	seedDay(t, app)

	_, err := executeCmd(t, app, "edit", "cancel", "--client", "cam", "--type", "cancelled_at", "--at", "bogus")
	require.Error(t, err)

	_, err = executeCmd(t, app, "edit", "cancel", "--client", "cam")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "schedule", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "Checked the draft schedule")
	assert.Contains(t, out, "Cam cancelled")
}

func TestEditTrainAndTag(t *testing.T) {
	app := testApp(t)
	seedDay(t, app)

	out, err := executeCmd(t, app, "edit", "tag", "--staff", "ana", "--text", "Fire drill", "--time", "9:00-9:20")
	require.NoError(t, err)
	assert.Contains(t, out, "✔")

	_, err = executeCmd(t, app, "edit", "train", "--trainee", "ana", "--trainer", "ana", "--client", "kit", "--time", "13:00-14:00")
	require.Error(t, err)

	out, err = executeCmd(t, app, "log")
	require.NoError(t, err)
	assert.Contains(t, out, "tag")
}

// --- Advisor and session ---

func TestAdvise_ApplySuggestion(t *testing.T) {
	app := testApp(t)
	seedDay(t, app)

	out, err := executeCmd(t, app, "advise")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to resolve")

	_, err = executeCmd(t, app, "edit", "change-staff", "--client", "kit", "--staff", "ana", "--time", "9:00-10:00", "--force")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "advise")
	require.NoError(t, err)
	assert.Contains(t, out, "1. ")

	_, err = executeCmd(t, app, "advise", "--apply", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no suggestion 9")

	out, err = executeCmd(t, app, "advise", "--apply", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "✔")
}

func TestModeFinalizeAbandon(t *testing.T) {
	app := testApp(t)
	seedDay(t, app)

	out, err := executeCmd(t, app, "mode")
	require.NoError(t, err)
	assert.Contains(t, out, "DRAFT")

	out, err = executeCmd(t, app, "mode", "what_if")
	require.NoError(t, err)
	assert.Contains(t, out, "WHAT-IF")

	_, err = executeCmd(t, app, "finalize")
	require.Error(t, err)

	_, err = executeCmd(t, app, "mode", "sandbox")
	require.Error(t, err)

	_, err = executeCmd(t, app, "mode", "draft")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "edit", "change-staff", "--client", "cam", "--staff", "ben", "--time", "9:00-10:00")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "finalize", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Finalized 2026-03-02 (2 staff)")

	out, err = executeCmd(t, app, "abandon")
	require.NoError(t, err)
	assert.Contains(t, out, "Draft for 2026-03-02 discarded.")

	out, err = executeCmd(t, app, "log")
	require.NoError(t, err)
	assert.Contains(t, out, "change_staff", "the change log outlives finalize and abandon")
}

func TestFinalize_DeclinedPrompt(t *testing.T) {
	app := testApp(t)
	seedDay(t, app)
	app.IsInteractive = func() bool { return true }
	app.Confirm = func(string) (bool, error) { return false, nil }

	out, err := executeCmd(t, app, "finalize")
	require.NoError(t, err)
	assert.Contains(t, out, "Finalize cancelled.")
}
