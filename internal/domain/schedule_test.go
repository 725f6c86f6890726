package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_CloneIsIndependent(t *testing.T) {
	orig := Schedule{
		{StaffID: "s1", Status: StaffPresent, Slots: []ScheduleSlot{
			{ID: "a", ClientID: "c1", StartMinute: 540, EndMinute: 600},
		}},
	}
	cp := orig.Clone()
	cp[0].Slots[0].ClientID = "c2"
	cp[0].Slots = append(cp[0].Slots, ScheduleSlot{ID: "b"})
	cp[0].Status = StaffAbsent

	assert.Equal(t, "c1", orig[0].Slots[0].ClientID)
	assert.Len(t, orig[0].Slots, 1)
	assert.Equal(t, StaffPresent, orig[0].Status)
}

func TestSchedule_Holders(t *testing.T) {
	s := Schedule{
		{StaffID: "s1", Slots: []ScheduleSlot{{ClientID: "c1", StartMinute: 540, EndMinute: 600}}},
		{StaffID: "s2", Slots: []ScheduleSlot{{ClientID: "c1", StartMinute: 600, EndMinute: 660}}},
		{StaffID: "s3", Slots: []ScheduleSlot{{ClientID: "c1", StartMinute: 540, EndMinute: 600, Indicator: IndicatorTag}}},
	}
	assert.Equal(t, []string{"s1"}, s.Holders("c1", TimeWindow{540, 600}))
	assert.Equal(t, []string{"s1", "s2"}, s.Holders("c1", TimeWindow{590, 610}))
	assert.Empty(t, s.Holders("c2", FullDay))
}

func TestCancel_Interval(t *testing.T) {
	assert.Equal(t, FullDay, Cancel{CancelType: CancelAllDay}.Interval())
	assert.Equal(t, TimeWindow{0, 720}, Cancel{CancelType: CancelUntil, Time: 720}.Interval())
	assert.Equal(t, TimeWindow{720, 1440}, Cancel{CancelType: CancelAt, Time: 720}.Interval())
}

func TestEditValue_JSON(t *testing.T) {
	edit := Split{ClientID: "c1", Segments: []SplitSegment{
		{StaffID: "s1", Window: TimeWindow{540, 570}},
		{StaffID: "s2", Window: TimeWindow{570, 600}},
	}}
	data, err := json.Marshal(EditValue{Edit: edit})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"split"`)

	var got EditValue
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, edit, got.Edit)
	assert.Equal(t, TimeWindow{540, 600}, WindowOf(got.Edit))
}

func TestEditValue_NullAndUnknown(t *testing.T) {
	data, err := json.Marshal(EditValue{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var got EditValue
	require.NoError(t, json.Unmarshal([]byte("null"), &got))
	assert.Nil(t, got.Edit)

	err = json.Unmarshal([]byte(`{"type":"teleport","edit":{}}`), &got)
	assert.Error(t, err)
}

func TestEntities(t *testing.T) {
	assert.Equal(t, []string{"t1", "tr1", "c1"}, Entities(Train{TraineeID: "t1", TrainerID: "tr1", ClientID: "c1"}))
	assert.Equal(t, []string{"c1"}, Entities(Cancel{ClientID: "c1"}))
}
