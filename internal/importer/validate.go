package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/domain"
)

var (
	validRoles = map[string]bool{
		string(domain.RoleLead): true, string(domain.RoleTechnician): true,
		string(domain.RoleTrainer): true, string(domain.RoleFloat): true,
	}
	validStatuses = map[string]bool{
		string(domain.StaffPresent): true, string(domain.StaffAbsent): true, string(domain.StaffCalledOut): true,
	}
	validSources = map[string]bool{
		string(domain.SourceOriginal): true, string(domain.SourceRepair): true, string(domain.SourceCancel): true,
	}
	validIndicators = map[string]bool{
		string(domain.IndicatorTag): true, string(domain.IndicatorSplit): true,
		string(domain.IndicatorTraining): true, string(domain.IndicatorReassign): true,
	}
)

// ValidateRoster checks a roster file before conversion and returns every
// error found.
func ValidateRoster(f *RosterFile) []error {
	var errs []error

	staffIDs := make(map[string]bool)
	for i, s := range f.Staff {
		prefix := fmt.Sprintf("staff[%d]", i)
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if staffIDs[s.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, s.ID))
		}
		staffIDs[s.ID] = true
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if !validRoles[s.Role] {
			errs = append(errs, fmt.Errorf("%s.role: invalid value %q", prefix, s.Role))
		}
	}

	clientIDs := make(map[string]bool)
	for i, c := range f.Clients {
		prefix := fmt.Sprintf("clients[%d]", i)
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if clientIDs[c.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, c.ID))
		}
		clientIDs[c.ID] = true
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		errs = append(errs, validateLinks(prefix+".excluded_staff", c.Excluded, staffIDs)...)
		errs = append(errs, validateLinks(prefix+".trained_staff", c.Trained, staffIDs)...)
		errs = append(errs, validateLinks(prefix+".focus_staff", c.Focus, staffIDs)...)

		excluded := make(map[string]bool, len(c.Excluded))
		for _, id := range c.Excluded {
			excluded[id] = true
		}
		for _, id := range append(append([]string{}, c.Trained...), c.Focus...) {
			if excluded[id] {
				errs = append(errs, fmt.Errorf("%s: staff %q is both excluded and trained", prefix, id))
			}
		}
	}

	return errs
}

func validateLinks(field string, ids []string, known map[string]bool) []error {
	var errs []error
	for _, id := range ids {
		if !known[id] {
			errs = append(errs, fmt.Errorf("%s: unknown staff %q", field, id))
		}
	}
	return errs
}

// ValidateSchedule checks a schedule file against the stored roster and
// returns every error found.
func ValidateSchedule(f *ScheduleFile, roster domain.Roster) []error {
	var errs []error

	if f.Date == "" {
		errs = append(errs, fmt.Errorf("date is required"))
	} else if _, err := time.Parse("2006-01-02", f.Date); err != nil {
		errs = append(errs, fmt.Errorf("date: invalid date format %q (expected YYYY-MM-DD)", f.Date))
	}

	seenStaff := make(map[string]bool)
	seenSlots := make(map[string]bool)
	for i, day := range f.Staff {
		prefix := fmt.Sprintf("staff[%d]", i)
		if _, ok := roster.StaffByID(day.StaffID); !ok {
			errs = append(errs, fmt.Errorf("%s.staff_id: unknown staff %q", prefix, day.StaffID))
		}
		if seenStaff[day.StaffID] {
			errs = append(errs, fmt.Errorf("%s.staff_id: %q listed twice", prefix, day.StaffID))
		}
		seenStaff[day.StaffID] = true
		if day.Status != "" && !validStatuses[day.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, day.Status))
		}

		var assigned []domain.TimeWindow
		for j, s := range day.Slots {
			slotPrefix := fmt.Sprintf("%s.slots[%d]", prefix, j)
			if s.ID != "" {
				if seenSlots[s.ID] {
					errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", slotPrefix, s.ID))
				}
				seenSlots[s.ID] = true
			}
			w, err := parseSlotWindow(s)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", slotPrefix, err))
			}
			if s.Client != "" {
				if _, ok := roster.ClientByID(s.Client); !ok {
					errs = append(errs, fmt.Errorf("%s.client: unknown client %q", slotPrefix, s.Client))
				}
			}
			if s.Source != "" && !validSources[s.Source] {
				errs = append(errs, fmt.Errorf("%s.source: invalid value %q", slotPrefix, s.Source))
			}
			if s.Indicator != "" && !validIndicators[s.Indicator] {
				errs = append(errs, fmt.Errorf("%s.indicator: invalid value %q", slotPrefix, s.Indicator))
			}
			if s.Indicator == string(domain.IndicatorTag) {
				if s.Value == "" {
					errs = append(errs, fmt.Errorf("%s.value is required for a tag", slotPrefix))
				}
				continue
			}
			if err != nil {
				continue
			}
			for _, other := range assigned {
				if domain.Overlaps(w, other) {
					errs = append(errs, fmt.Errorf("%s: %s overlaps %s", slotPrefix, w, other))
					break
				}
			}
			assigned = append(assigned, w)
		}
	}

	return errs
}

func parseSlotWindow(s SlotImport) (domain.TimeWindow, error) {
	start, err := domain.ParseMinute(s.Start)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("start: %w", err)
	}
	end, err := domain.ParseMinute(s.End)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("end: %w", err)
	}
	w := domain.TimeWindow{Start: start, End: end}
	if err := w.Validate(); err != nil {
		return domain.TimeWindow{}, err
	}
	return w, nil
}
