package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrBool(b bool) *bool { return &b }

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const rosterYAML = `
staff:
  - id: ana
    name: Ana
    role: Technician
  - id: flo
    name: Flo
    role: Float
    active: false
clients:
  - id: cam
    name: Cam
    trained_staff: [ana]
    excluded_staff: [flo]
  - id: kit
    name: Kit
    crisis: true
`

func TestLoadRosterFile_YAML(t *testing.T) {
	f, err := LoadRosterFile(writeFile(t, "roster.yaml", rosterYAML))
	require.NoError(t, err)
	assert.Empty(t, ValidateRoster(f))

	roster := ConvertRoster(f)
	assert.Equal(t, domain.Roster{
		Staff: []domain.Staff{
			{ID: "ana", Name: "Ana", Role: domain.RoleTechnician, Active: true},
			{ID: "flo", Name: "Flo", Role: domain.RoleFloat, Active: false},
		},
		Clients: []domain.Client{
			{ID: "cam", Name: "Cam", TrainedStaff: []string{"ana"}, ExcludedStaff: []string{"flo"}},
			{ID: "kit", Name: "Kit", Crisis: true},
		},
	}, roster)
}

func TestLoadRosterFile_JSON(t *testing.T) {
	f, err := LoadRosterFile(writeFile(t, "roster.json",
		`{"staff": [{"id": "ana", "name": "Ana", "role": "Lead"}], "clients": []}`))
	require.NoError(t, err)
	require.Len(t, f.Staff, 1)
	assert.Equal(t, "Lead", f.Staff[0].Role)
}

func TestLoadRosterFile_RejectsUnknownKeys(t *testing.T) {
	_, err := LoadRosterFile(writeFile(t, "roster.yaml", "staff:\n  - id: ana\n    nmae: Ana\n"))
	assert.ErrorContains(t, err, "parsing import file")

	_, err = LoadRosterFile(writeFile(t, "empty.yaml", ""))
	assert.ErrorContains(t, err, "empty document")
}

func TestValidateRoster_CollectsAllErrors(t *testing.T) {
	f := &RosterFile{
		Staff: []StaffImport{
			{ID: "ana", Name: "Ana", Role: "Technician"},
			{ID: "ana", Name: "", Role: "Janitor"},
		},
		Clients: []ClientImport{
			{ID: "cam", Name: "Cam", Trained: []string{"ana", "zed"}, Excluded: []string{"ana"}},
			{ID: "", Name: "Nobody"},
		},
	}
	errs := ValidateRoster(f)
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	assert.Equal(t, []string{
		`staff[1].id: duplicate id "ana"`,
		"staff[1].name is required",
		`staff[1].role: invalid value "Janitor"`,
		`clients[0].trained_staff: unknown staff "zed"`,
		`clients[0]: staff "ana" is both excluded and trained`,
		"clients[1].id is required",
	}, msgs)
}

func TestConvertRoster_ActiveDefaultsTrue(t *testing.T) {
	roster := ConvertRoster(&RosterFile{Staff: []StaffImport{
		{ID: "a", Name: "A", Role: "Lead"},
		{ID: "b", Name: "B", Role: "Lead", Active: ptrBool(false)},
	}})
	assert.True(t, roster.Staff[0].Active)
	assert.False(t, roster.Staff[1].Active)
}

const scheduleYAML = `
date: "2026-03-02"
staff:
  - staff_id: ana
    slots:
      - id: a1
        client: cam
        start: "9:00"
        end: "10:00"
      - client: cam
        start: "9:30"
        end: "9:45"
        value: Fire drill
        indicator: Tag
  - staff_id: ben
    status: called_out
    slots:
      - client: kit
        start: "13:00"
        end: "14:00"
        source: REPAIR
        reason: swapped in
`

func TestScheduleFile_ValidateAndConvert(t *testing.T) {
	roster := testutil.NewTestRoster()
	f, err := LoadScheduleFile(writeFile(t, "day.yaml", scheduleYAML))
	require.NoError(t, err)
	require.Empty(t, ValidateSchedule(f, roster))

	schedule, err := ConvertSchedule(f, roster)
	require.NoError(t, err)
	require.Len(t, schedule, 2)

	ana := schedule[0]
	assert.Equal(t, domain.StaffPresent, ana.Status)
	require.Len(t, ana.Slots, 2)
	assert.Equal(t, domain.ScheduleSlot{
		ID: "a1", Block: domain.BlockAM, Value: "Cam", Source: domain.SourceOriginal,
		ClientID: "cam", StartMinute: 540, EndMinute: 600,
	}, ana.Slots[0])
	assert.Equal(t, "Fire drill", ana.Slots[1].Value)
	assert.Equal(t, domain.IndicatorTag, ana.Slots[1].Indicator)
	assert.NotEmpty(t, ana.Slots[1].ID)

	ben := schedule[1]
	assert.Equal(t, domain.StaffCalledOut, ben.Status)
	assert.Equal(t, domain.BlockPM, ben.Slots[0].Block)
	assert.Equal(t, domain.SourceRepair, ben.Slots[0].Source)
	assert.Equal(t, "swapped in", ben.Slots[0].Reason)
}

func TestValidateSchedule_Errors(t *testing.T) {
	roster := testutil.NewTestRoster()
	f := &ScheduleFile{
		Date: "03/02/2026",
		Staff: []DayImport{
			{StaffID: "ana", Status: "asleep", Slots: []SlotImport{
				{ID: "x", Client: "cam", Start: "9:00", End: "10:00"},
				{ID: "x", Client: "zed", Start: "9:30", End: "10:30", Source: "MAGIC"},
				{Start: "11:00", End: "10:00"},
			}},
			{StaffID: "ana"},
			{StaffID: "ghost"},
		},
	}
	errs := ValidateSchedule(f, roster)
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	assert.Equal(t, []string{
		`date: invalid date format "03/02/2026" (expected YYYY-MM-DD)`,
		`staff[0].status: invalid value "asleep"`,
		`staff[0].slots[1].id: duplicate id "x"`,
		`staff[0].slots[1].client: unknown client "zed"`,
		`staff[0].slots[1].source: invalid value "MAGIC"`,
		"staff[0].slots[1]: 9:30-10:30 overlaps 9:00-10:00",
		"staff[0].slots[2]: start 11:00 must be before end 10:00",
		`staff[1].staff_id: "ana" listed twice`,
		`staff[2].staff_id: unknown staff "ghost"`,
	}, msgs)
}
