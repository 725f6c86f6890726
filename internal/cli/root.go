package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Roster    service.RosterService
	Schedules service.ScheduleService
	Editor    service.EditorService

	// IsInteractive reports whether prompts can be shown. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses the huh confirm form.
	Confirm func(title string) (bool, error)
	// Now supplies the default --date. Nil uses time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	return confirmForm(title)
}

func (a *App) today() string {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	return now().Format(time.DateOnly)
}

// NewRootCmd creates the top-level "rosterdesk" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "rosterdesk",
		Short:         "Day schedule editor for staff and client coverage",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("date", "", "Schedule date (YYYY-MM-DD, default today)")

	root.AddCommand(
		newRosterCmd(app),
		newScheduleCmd(app),
		newEditCmd(app),
		newUndoCmd(app),
		newLogCmd(app),
		newAdviseCmd(app),
		newModeCmd(app),
		newFinalizeCmd(app),
		newAbandonCmd(app),
	)

	return root
}

// resolveDate returns the --date flag or today's date.
func resolveDate(cmd *cobra.Command, app *App) (string, error) {
	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		return app.today(), nil
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return "", fmt.Errorf("invalid --date %q: use YYYY-MM-DD format", date)
	}
	return date, nil
}
