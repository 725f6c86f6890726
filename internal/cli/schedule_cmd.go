package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/rosterdesk/internal/cli/formatter"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Import and inspect day schedules",
	}

	cmd.AddCommand(
		newScheduleImportCmd(app),
		newScheduleShowCmd(app),
		newScheduleCheckCmd(app),
		newScheduleDatesCmd(app),
	)

	return cmd
}

func newScheduleImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a day's official schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Schedules.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported schedule for %s: %d staff, %d slots\n", res.Date, res.StaffCount, res.SlotCount)
			if res.DiscardedSession {
				fmt.Fprintln(out, formatter.StyleWarn.Render("The open editing session for this date was discarded."))
			}
			return nil
		},
	}
}

func newScheduleShowCmd(app *App) *cobra.Command {
	var draft, simulation bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the official, draft or simulation schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			if draft && simulation {
				return errors.New("--draft and --simulation are mutually exclusive")
			}
			ctx := cmd.Context()
			date, err := resolveDate(cmd, app)
			if err != nil {
				return err
			}
			roster, err := app.Roster.Load(ctx)
			if err != nil {
				return err
			}

			var schedule domain.Schedule
			title := "Official " + date
			if draft || simulation {
				st, err := app.Editor.Open(ctx, date)
				if err != nil {
					return err
				}
				schedule, title = st.DraftSchedule, "Draft "+date
				if simulation {
					schedule, title = st.SimulationSchedule, "Simulation "+date
				}
			} else {
				schedule, err = app.Schedules.Get(ctx, date)
				if err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(title, schedule, roster))
			return nil
		},
	}

	cmd.Flags().BoolVar(&draft, "draft", false, "Show the working draft")
	cmd.Flags().BoolVar(&simulation, "simulation", false, "Show the what-if simulation")

	return cmd
}

func newScheduleCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report duplicate, overlapping and open assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date, err := resolveDate(cmd, app)
			if err != nil {
				return err
			}
			roster, err := app.Roster.Load(ctx)
			if err != nil {
				return err
			}
			report, err := app.Schedules.Check(ctx, date)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCheck(report, roster))
			if !report.Clean() {
				return fmt.Errorf("schedule for %s has conflicting assignments", date)
			}
			return nil
		},
	}
}

func newScheduleDatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dates",
		Short: "List dates with an official schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			dates, err := app.Schedules.Dates(cmd.Context())
			if err != nil {
				return err
			}
			if len(dates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No schedules imported.")
				return nil
			}
			for _, d := range dates {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	}
}
