package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/rosterdesk/internal/applier"
	"github.com/alexanderramin/rosterdesk/internal/domain"
)

const coverageBarWidth = 20

// FormatSchedule renders one day's schedule as a staff-by-slot table with a
// coverage summary. Slots are listed in start order within each staff member.
func FormatSchedule(title string, schedule domain.Schedule, roster domain.Roster) string {
	if len(schedule) == 0 {
		return RenderBox(title, Dim("No staff scheduled."))
	}

	headers := []string{"STAFF", "STATUS", "TIME", "ASSIGNMENT", "SOURCE", "NOTE"}
	var rows [][]string
	for _, day := range schedule {
		name := Bold(roster.StaffName(day.StaffID, day.StaffID))
		status := StaffStatusPill(day.Status)
		if len(day.Slots) == 0 {
			rows = append(rows, []string{name, status, Dim("--"), "", "", ""})
			continue
		}
		slots := make([]domain.ScheduleSlot, len(day.Slots))
		copy(slots, day.Slots)
		sort.SliceStable(slots, func(i, j int) bool { return slots[i].StartMinute < slots[j].StartMinute })
		for i, s := range slots {
			if i > 0 {
				name, status = "", ""
			}
			rows = append(rows, []string{name, status, s.Window().String(), slotValue(s), sourceLabel(s.Source), slotNote(s)})
		}
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	covered, total := coverage(schedule)
	if total > 0 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Coverage  %s  %s of %s assigned\n",
			RenderCoverage(float64(covered)/float64(total), coverageBarWidth),
			FormatMinutes(covered), FormatMinutes(total)))
	}
	if open := applier.OpenSlots(schedule); len(open) > 0 {
		b.WriteString(StyleAlert.Render(fmt.Sprintf("%d open slot(s)", len(open))) + Dim("  see `schedule check`") + "\n")
	}
	return RenderBox(title, b.String())
}

func slotValue(s domain.ScheduleSlot) string {
	switch {
	case s.Indicator == domain.IndicatorTag:
		return StyleInfo.Render("# " + s.Value)
	case s.ClientID == "":
		return StyleAlert.Render(s.Value)
	default:
		return StyleFg.Render(s.Value)
	}
}

func sourceLabel(src domain.SlotSource) string {
	switch src {
	case domain.SourceRepair:
		return StyleWarn.Render(string(src))
	case domain.SourceCancel:
		return StyleAlert.Render(string(src))
	default:
		return Dim(string(src))
	}
}

func slotNote(s domain.ScheduleSlot) string {
	var parts []string
	if s.Indicator != domain.IndicatorNone && s.Indicator != domain.IndicatorTag {
		parts = append(parts, StyleAccent.Render(string(s.Indicator)))
	}
	if s.Reason != "" {
		parts = append(parts, Dim(s.Reason))
	}
	return strings.Join(parts, " ")
}

// coverage sums assignment minutes with and without a client. Tags and
// training shadows are left out.
func coverage(schedule domain.Schedule) (covered, total int) {
	for _, day := range schedule {
		for _, s := range day.Slots {
			if !s.IsAssignment() || s.Indicator == domain.IndicatorTraining {
				continue
			}
			m := s.Window().Minutes()
			total += m
			if s.ClientID != "" {
				covered += m
			}
		}
	}
	return covered, total
}
