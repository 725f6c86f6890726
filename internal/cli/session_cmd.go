package cli

import (
	"fmt"

	"github.com/alexanderramin/rosterdesk/internal/cli/formatter"
	"github.com/alexanderramin/rosterdesk/internal/editor"
	"github.com/spf13/cobra"
)

func newUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last draft edit",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(cmd, app)
			if err != nil {
				return err
			}
			st, err := app.Editor.Undo(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Undone. %d more step(s) available.\n", st.UndoStack.Len())
			return nil
		},
	}
}

func newLogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show the day's change log",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(cmd, app)
			if err != nil {
				return err
			}
			entries, err := app.Editor.ChangeLog(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChangeLog(date, entries))
			return nil
		},
	}
}

func newAdviseCmd(app *App) *cobra.Command {
	var apply int
	var force bool

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Show or act on suggestions for the last edit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date, err := resolveDate(cmd, app)
			if err != nil {
				return err
			}
			st, err := app.Editor.Advise(ctx, date)
			if err != nil {
				return err
			}
			if apply == 0 {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAdvisor(st))
				return nil
			}
			if apply < 0 || apply > len(st.Suggestions) {
				return fmt.Errorf("no suggestion %d (have %d)", apply, len(st.Suggestions))
			}
			id := st.Suggestions[apply-1].ID
			return applyWithConfirm(cmd, app, force, func(override bool) (*editor.Outcome, error) {
				return app.Editor.ExecuteSuggestion(ctx, date, id, override)
			})
		},
	}

	cmd.Flags().IntVar(&apply, "apply", 0, "Apply the numbered suggestion")
	cmd.Flags().BoolVar(&force, "force", false, "Apply even when a hard constraint is violated")

	return cmd
}

func newModeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "mode [draft|what_if]",
		Short:     "Show or switch the editing mode",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(editor.ModeDraft), string(editor.ModeWhatIf)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date, err := resolveDate(cmd, app)
			if err != nil {
				return err
			}
			var st *editor.State
			if len(args) == 0 {
				st, err = app.Editor.Open(ctx, date)
			} else {
				mode, perr := editor.ParseMode(args[0])
				if perr != nil {
					return perr
				}
				st, err = app.Editor.SetMode(ctx, date, mode)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSession(st))
			return nil
		},
	}
}

func newFinalizeCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "finalize",
		Short: "Publish the draft as the official schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date, err := resolveDate(cmd, app)
			if err != nil {
				return err
			}
			if !yes && app.interactive() {
				ok, err := app.confirm(fmt.Sprintf("Replace the official schedule for %s with the draft?", date))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Finalize cancelled.")
					return nil
				}
			}
			schedule, err := app.Editor.Finalize(ctx, date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Finalized %s (%d staff)\n", date, len(schedule))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newAbandonCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "abandon",
		Short: "Discard the draft and return to the official schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(cmd, app)
			if err != nil {
				return err
			}
			if err := app.Editor.Abandon(cmd.Context(), date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Draft for %s discarded.\n", date)
			return nil
		},
	}
}
