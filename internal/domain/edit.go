package domain

import (
	"encoding/json"
	"fmt"
)

// Edit is one coordinator edit to a day's schedule. The set of
// implementations is closed: ChangeStaff, Split, Train, Cancel and Tag.
type Edit interface {
	Kind() EditKind
	isEdit()
}

// ChangeStaff moves a client's coverage in Window to StaffID.
type ChangeStaff struct {
	StaffID  string     `json:"staffId"`
	ClientID string     `json:"clientId"`
	Window   TimeWindow `json:"window"`
	Reason   string     `json:"reason,omitempty"`
}

// SplitSegment is one staff member's share of a split.
type SplitSegment struct {
	StaffID string     `json:"staffId"`
	Window  TimeWindow `json:"window"`
}

// Split divides a client's coverage between several staff members.
type Split struct {
	ClientID string         `json:"clientId"`
	Segments []SplitSegment `json:"segments"`
	Reason   string         `json:"reason,omitempty"`
}

// Span returns the smallest window covering every segment.
func (s Split) Span() TimeWindow {
	if len(s.Segments) == 0 {
		return TimeWindow{}
	}
	span := s.Segments[0].Window
	for _, seg := range s.Segments[1:] {
		span.Start = min(span.Start, seg.Window.Start)
		span.End = max(span.End, seg.Window.End)
	}
	return span
}

// Train places a trainee with a client alongside a trainer.
type Train struct {
	TraineeID string     `json:"traineeId"`
	ClientID  string     `json:"clientId"`
	TrainerID string     `json:"trainerId"`
	Phase     string     `json:"phase"`
	Window    TimeWindow `json:"window"`
}

// Cancel marks a client's sessions as cancelled. Time is used by
// CancelUntil and CancelAt.
type Cancel struct {
	ClientID   string     `json:"clientId"`
	CancelType CancelType `json:"cancelType"`
	Time       int        `json:"time,omitempty"`
}

// Interval resolves the cancellation interval.
func (c Cancel) Interval() TimeWindow {
	switch c.CancelType {
	case CancelUntil:
		return TimeWindow{Start: 0, End: c.Time}
	case CancelAt:
		return TimeWindow{Start: c.Time, End: MinutesPerDay}
	default:
		return FullDay
	}
}

// Tag attaches free text to a staff member's window.
type Tag struct {
	StaffID string     `json:"staffId"`
	Text    string     `json:"text"`
	Window  TimeWindow `json:"window"`
}

func (ChangeStaff) Kind() EditKind { return EditChangeStaff }
func (Split) Kind() EditKind       { return EditSplit }
func (Train) Kind() EditKind       { return EditTrain }
func (Cancel) Kind() EditKind      { return EditCancel }
func (Tag) Kind() EditKind         { return EditTag }

func (ChangeStaff) isEdit() {}
func (Split) isEdit()       {}
func (Train) isEdit()       {}
func (Cancel) isEdit()      {}
func (Tag) isEdit()         {}

// EditValue carries an Edit through JSON as {"type": kind, "edit": payload}.
// The zero value encodes as null.
type EditValue struct {
	Edit Edit
}

type editEnvelope struct {
	Type EditKind        `json:"type"`
	Edit json.RawMessage `json:"edit"`
}

func (v EditValue) MarshalJSON() ([]byte, error) {
	if v.Edit == nil {
		return []byte("null"), nil
	}
	payload, err := json.Marshal(v.Edit)
	if err != nil {
		return nil, fmt.Errorf("encoding %s edit: %w", v.Edit.Kind(), err)
	}
	return json.Marshal(editEnvelope{Type: v.Edit.Kind(), Edit: payload})
}

func (v *EditValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		v.Edit = nil
		return nil
	}
	var env editEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decoding edit envelope: %w", err)
	}
	edit, err := decodeEdit(env.Type, env.Edit)
	if err != nil {
		return err
	}
	v.Edit = edit
	return nil
}

func decodeEdit(kind EditKind, payload json.RawMessage) (Edit, error) {
	var (
		edit Edit
		err  error
	)
	switch kind {
	case EditChangeStaff:
		var e ChangeStaff
		err = json.Unmarshal(payload, &e)
		edit = e
	case EditSplit:
		var e Split
		err = json.Unmarshal(payload, &e)
		edit = e
	case EditTrain:
		var e Train
		err = json.Unmarshal(payload, &e)
		edit = e
	case EditCancel:
		var e Cancel
		err = json.Unmarshal(payload, &e)
		edit = e
	case EditTag:
		var e Tag
		err = json.Unmarshal(payload, &e)
		edit = e
	default:
		return nil, fmt.Errorf("unknown edit type %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s edit: %w", kind, err)
	}
	return edit, nil
}

// Entities lists the staff and client ids an edit touches, staff first.
func Entities(e Edit) []string {
	switch e := e.(type) {
	case ChangeStaff:
		return []string{e.StaffID, e.ClientID}
	case Split:
		out := make([]string, 0, len(e.Segments)+1)
		for _, seg := range e.Segments {
			out = append(out, seg.StaffID)
		}
		return append(out, e.ClientID)
	case Train:
		return []string{e.TraineeID, e.TrainerID, e.ClientID}
	case Cancel:
		return []string{e.ClientID}
	case Tag:
		return []string{e.StaffID}
	}
	return nil
}

// WindowOf returns the time window an edit targets.
func WindowOf(e Edit) TimeWindow {
	switch e := e.(type) {
	case ChangeStaff:
		return e.Window
	case Split:
		return e.Span()
	case Train:
		return e.Window
	case Cancel:
		return e.Interval()
	case Tag:
		return e.Window
	}
	return TimeWindow{}
}
