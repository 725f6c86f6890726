package editor

import (
	"time"

	"github.com/alexanderramin/rosterdesk/internal/applier"
	"github.com/alexanderramin/rosterdesk/internal/describe"
	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// newLogEntry describes a committed draft edit.
func newLogEntry(id string, at time.Time, edit domain.Edit, roster domain.Roster, warnings []domain.Warning, cascade applier.Cascade) domain.ChangeLogEntry {
	w := domain.WindowOf(edit)
	entry := domain.ChangeLogEntry{
		ID:               id,
		Timestamp:        at.UTC(),
		EditType:         edit.Kind(),
		Description:      describe.Edit(edit, roster),
		Entities:         domain.Entities(edit),
		TimeWindow:       &w,
		TriggeredAdvisor: cascade.NeedsAdvisor,
		HasWarnings:      len(warnings) > 0,
	}
	if entry.HasWarnings {
		wt := domain.WarningSoft
		if domain.HasHard(warnings) {
			wt = domain.WarningHard
		}
		entry.WarningType = &wt
	}
	return entry
}
