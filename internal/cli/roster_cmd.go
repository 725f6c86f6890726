package cli

import (
	"fmt"

	"github.com/alexanderramin/rosterdesk/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRosterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage staff and clients",
	}

	cmd.AddCommand(
		newRosterImportCmd(app),
		newRosterListCmd(app),
	)

	return cmd
}

func newRosterImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import staff and clients from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Roster.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d staff and %d clients\n", res.StaffCount, res.ClientCount)
			return nil
		},
	}
}

func newRosterListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := app.Roster.Load(cmd.Context())
			if err != nil {
				return err
			}
			if len(roster.Staff) == 0 && len(roster.Clients) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Roster is empty. Run `rosterdesk roster import <file>`.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoster(roster))
			return nil
		},
	}
}
