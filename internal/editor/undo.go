package editor

import (
	"encoding/json"

	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// DefaultUndoLimit is the number of drafts kept when no limit is configured.
const DefaultUndoLimit = 20

// UndoStack is a bounded LIFO of prior drafts. Pushing onto a full stack
// drops the oldest entry.
type UndoStack struct {
	limit   int
	entries []domain.Schedule
}

// NewUndoStack returns an empty stack. limit <= 0 uses DefaultUndoLimit.
func NewUndoStack(limit int) UndoStack {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	return UndoStack{limit: limit}
}

func (u *UndoStack) Limit() int {
	if u.limit <= 0 {
		return DefaultUndoLimit
	}
	return u.limit
}

func (u *UndoStack) Len() int { return len(u.entries) }

// Push stores a copy of s.
func (u *UndoStack) Push(s domain.Schedule) {
	if len(u.entries) >= u.Limit() {
		u.entries = append(u.entries[:0], u.entries[1:]...)
	}
	u.entries = append(u.entries, s.Clone())
}

// Pop removes and returns the most recent entry.
func (u *UndoStack) Pop() (domain.Schedule, bool) {
	n := len(u.entries)
	if n == 0 {
		return nil, false
	}
	top := u.entries[n-1]
	u.entries[n-1] = nil
	u.entries = u.entries[:n-1]
	return top, true
}

func (u *UndoStack) Clear() {
	u.entries = nil
}

type undoJSON struct {
	Limit   int               `json:"limit"`
	Entries []domain.Schedule `json:"entries"`
}

func (u UndoStack) MarshalJSON() ([]byte, error) {
	entries := u.entries
	if entries == nil {
		entries = []domain.Schedule{}
	}
	return json.Marshal(undoJSON{Limit: u.Limit(), Entries: entries})
}

// UnmarshalJSON restores a stack, keeping only the newest entries when the
// stored list exceeds the stored limit.
func (u *UndoStack) UnmarshalJSON(data []byte) error {
	var raw undoJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = NewUndoStack(raw.Limit)
	for _, s := range raw.Entries {
		u.Push(s)
	}
	return nil
}
