package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/rosterdesk/internal/cli/formatter"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/editor"
	"github.com/spf13/cobra"
)

// editFlags are shared by every edit subcommand.
type editFlags struct {
	force    bool
	simulate bool
	stage    bool
}

func (f *editFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.force, "force", false, "Apply even when a hard constraint is violated")
	cmd.Flags().BoolVar(&f.simulate, "simulate", false, "Preview the result without changing the session")
	cmd.Flags().BoolVar(&f.stage, "stage", false, "Only check constraints for the edit")
	cmd.MarkFlagsMutuallyExclusive("simulate", "stage")
}

func newEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the day's schedule",
	}

	cmd.AddCommand(
		newEditChangeStaffCmd(app),
		newEditSplitCmd(app),
		newEditTrainCmd(app),
		newEditCancelCmd(app),
		newEditTagCmd(app),
	)

	return cmd
}

func newEditChangeStaffCmd(app *App) *cobra.Command {
	var flags editFlags
	var edit domain.ChangeStaff

	cmd := &cobra.Command{
		Use:   "change-staff",
		Short: "Move a client's coverage to another staff member",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, flags, edit)
		},
	}

	cmd.Flags().StringVar(&edit.ClientID, "client", "", "Client ID")
	cmd.Flags().StringVar(&edit.StaffID, "staff", "", "Staff ID taking over")
	cmd.Flags().Var(newWindowValue(&edit.Window), "time", "Window as H:MM-H:MM")
	cmd.Flags().StringVar(&edit.Reason, "reason", "", "Reason shown on the new slot")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("staff")
	_ = cmd.MarkFlagRequired("time")
	flags.register(cmd)

	return cmd
}

func newEditSplitCmd(app *App) *cobra.Command {
	var flags editFlags
	var edit domain.Split

	cmd := &cobra.Command{
		Use:     "split",
		Short:   "Split a client's coverage between staff members",
		Example: "  rosterdesk edit split --client cam --segment ana=9:00-9:30 --segment ben=9:30-10:00",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, flags, edit)
		},
	}

	cmd.Flags().StringVar(&edit.ClientID, "client", "", "Client ID")
	cmd.Flags().Var(newSegmentsValue(&edit.Segments), "segment", "Segment as staff=H:MM-H:MM (repeatable)")
	cmd.Flags().StringVar(&edit.Reason, "reason", "", "Reason shown on the new slots")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("segment")
	flags.register(cmd)

	return cmd
}

func newEditTrainCmd(app *App) *cobra.Command {
	var flags editFlags
	var edit domain.Train

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Shadow a trainee with a trainer on a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, flags, edit)
		},
	}

	cmd.Flags().StringVar(&edit.TraineeID, "trainee", "", "Trainee staff ID")
	cmd.Flags().StringVar(&edit.TrainerID, "trainer", "", "Trainer staff ID")
	cmd.Flags().StringVar(&edit.ClientID, "client", "", "Client ID")
	cmd.Flags().StringVar(&edit.Phase, "phase", "", "Training phase label")
	cmd.Flags().Var(newWindowValue(&edit.Window), "time", "Window as H:MM-H:MM")
	_ = cmd.MarkFlagRequired("trainee")
	_ = cmd.MarkFlagRequired("trainer")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("time")
	flags.register(cmd)

	return cmd
}

func newEditCancelCmd(app *App) *cobra.Command {
	var flags editFlags
	var clientID, cancelType string
	var at int

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a client's sessions for all or part of the day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, flags, domain.Cancel{
				ClientID: clientID, CancelType: domain.CancelType(cancelType), Time: at,
			})
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "Client ID")
	cmd.Flags().StringVar(&cancelType, "type", string(domain.CancelAllDay), "all_day, cancelled_until or cancelled_at")
	cmd.Flags().Var(newMinuteValue(&at), "at", "Time as H:MM for cancelled_until and cancelled_at")
	_ = cmd.MarkFlagRequired("client")
	flags.register(cmd)

	return cmd
}

func newEditTagCmd(app *App) *cobra.Command {
	var flags editFlags
	var edit domain.Tag

	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Attach a note to a staff member's window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, flags, edit)
		},
	}

	cmd.Flags().StringVar(&edit.StaffID, "staff", "", "Staff ID")
	cmd.Flags().StringVar(&edit.Text, "text", "", "Tag text")
	cmd.Flags().Var(newWindowValue(&edit.Window), "time", "Window as H:MM-H:MM")
	_ = cmd.MarkFlagRequired("staff")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("time")
	flags.register(cmd)

	return cmd
}

func runEdit(cmd *cobra.Command, app *App, flags editFlags, edit domain.Edit) error {
	ctx := cmd.Context()
	date, err := resolveDate(cmd, app)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch {
	case flags.stage:
		warnings, err := app.Editor.Stage(ctx, date, edit)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Staged %s\n", edit.Kind())
		fmt.Fprint(out, formatter.FormatWarnings(warnings))
		return nil
	case flags.simulate:
		outcome, err := app.Editor.Simulate(ctx, date, edit)
		if err != nil {
			return err
		}
		fmt.Fprint(out, formatter.FormatOutcome(outcome, true))
		return nil
	}

	return applyWithConfirm(cmd, app, flags.force, func(override bool) (*editor.Outcome, error) {
		return app.Editor.Apply(ctx, date, edit, override)
	})
}

// applyWithConfirm runs apply and, when a hard constraint blocks it, asks
// before retrying with the override set. Without a terminal the edit is
// rejected unless force is set.
func applyWithConfirm(cmd *cobra.Command, app *App, force bool, apply func(override bool) (*editor.Outcome, error)) error {
	out := cmd.OutOrStdout()
	outcome, err := apply(force)
	if errors.Is(err, editor.ErrHardViolation) {
		if outcome != nil {
			fmt.Fprint(out, formatter.FormatWarnings(outcome.Warnings))
		}
		if !app.interactive() {
			return fmt.Errorf("%w (rerun with --force to apply anyway)", err)
		}
		ok, cerr := app.confirm("Apply despite hard constraint violations?")
		if cerr != nil {
			return cerr
		}
		if !ok {
			fmt.Fprintln(out, "Edit not applied.")
			return nil
		}
		outcome, err = apply(true)
	}
	if err != nil {
		return err
	}
	if outcome == nil {
		fmt.Fprintln(out, "Advisor dismissed.")
		return nil
	}
	fmt.Fprint(out, formatter.FormatOutcome(outcome, false))
	return nil
}
