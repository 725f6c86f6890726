package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rosterdesk/internal/advisor"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/editor"
)

// FormatWarnings lists warnings with their severity and any remedies.
func FormatWarnings(ws []domain.Warning) string {
	if len(ws) == 0 {
		return StyleOK.Render("✔ No constraint warnings") + "\n"
	}
	var b strings.Builder
	for _, w := range ws {
		b.WriteString(fmt.Sprintf("%s  %s %s\n", WarningIndicator(w.Type), WarningColor(w.Type).Render(w.Description), Dim("("+w.Rule+")")))
		for _, s := range w.Suggestions {
			b.WriteString(Dim("     → "+s) + "\n")
		}
	}
	return b.String()
}

// FormatAdvisor renders the advisor panel. Suggestions are numbered from 1
// in the order `advise --apply N` uses.
func FormatAdvisor(st advisor.State) string {
	if !st.IsActive {
		return Dim("Advisor: nothing to resolve.") + "\n"
	}
	var b strings.Builder
	if st.Problem != "" {
		b.WriteString(StyleWarn.Render(st.Problem) + "\n\n")
	}
	for i, s := range st.Suggestions {
		marker := StyleHeader.Render(fmt.Sprintf("%d.", i+1))
		if s.Action == advisor.ActionLeaveOpen {
			b.WriteString(fmt.Sprintf("%s %s\n", marker, Dim(s.Description)))
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", marker, s.Description, StyleOK.Render(fmt.Sprintf("[score %+.0f]", s.Score))))
		for _, r := range s.Reasons {
			b.WriteString(Dim(fmt.Sprintf("     %+.0f %s", r.Delta, r.Message)) + "\n")
		}
	}
	return b.String()
}

// FormatOutcome summarizes an applied or simulated edit.
func FormatOutcome(out *editor.Outcome, simulated bool) string {
	var b strings.Builder
	switch {
	case simulated:
		b.WriteString(StyleInfo.Render("◇ Simulated, nothing was changed") + "\n")
	case out.Entry != nil:
		b.WriteString(StyleOK.Render("✔ "+out.Entry.Description) + "\n")
	default:
		b.WriteString(StyleWarn.Render("◇ Applied to the what-if simulation") + "\n")
	}
	if len(out.Warnings) > 0 {
		b.WriteString("\n" + FormatWarnings(out.Warnings))
	}
	if out.Advisor.IsActive {
		b.WriteString("\n" + Header("Advisor") + "\n" + FormatAdvisor(out.Advisor))
	}
	return b.String()
}

// FormatSession renders the mode and history counters of a session.
func FormatSession(st *editor.State) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Date:     %s\n", Bold(st.Date)))
	b.WriteString(fmt.Sprintf("Mode:     %s\n", ModeBadge(string(st.Mode))))
	b.WriteString(fmt.Sprintf("Undo:     %d of %d\n", st.UndoStack.Len(), st.UndoStack.Limit()))
	b.WriteString(fmt.Sprintf("Edits:    %d since last finalize\n", len(st.ChangeLog)))
	if st.Dirty() {
		b.WriteString(StyleWarn.Render("Draft has unfinalized changes.") + "\n")
	}
	if st.CurrentEdit.Edit != nil {
		b.WriteString(fmt.Sprintf("Staged:   %s\n", st.CurrentEdit.Edit.Kind()))
	}
	return b.String()
}
