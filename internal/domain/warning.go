package domain

import "time"

// Warning is a constraint finding for a proposed edit. Warnings are
// recomputed for every edit and never stored as schedule state.
type Warning struct {
	ID          string      `json:"id"`
	Type        WarningType `json:"type"`
	Rule        string      `json:"rule"`
	Description string      `json:"description"`
	Entities    []string    `json:"entities"`
	Suggestions []string    `json:"suggestions,omitempty"`
}

// HasHard reports whether any warning is hard.
func HasHard(warnings []Warning) bool {
	for _, w := range warnings {
		if w.Type == WarningHard {
			return true
		}
	}
	return false
}

// ChangeLogEntry is one line of the day's audit trail. Entries are never
// changed or removed once written, including for edits later undone.
type ChangeLogEntry struct {
	ID               string       `json:"id"`
	Timestamp        time.Time    `json:"timestamp"`
	EditType         EditKind     `json:"editType"`
	Description      string       `json:"description"`
	Entities         []string     `json:"entities"`
	TimeWindow       *TimeWindow  `json:"timeWindow,omitempty"`
	TriggeredAdvisor bool         `json:"triggeredAdvisor"`
	HasWarnings      bool         `json:"hasWarnings"`
	WarningType      *WarningType `json:"warningType,omitempty"`
}
