package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TerminusTerminal/invest-desk/internal/cli"
	"github.com/TerminusTerminal/invest-desk/internal/model"
	"github.com/TerminusTerminal/invest-desk/internal/resource"
)

func applicationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "applications",
		Short: "Review and decide funding applications",
		Long: `List funding applications and record decisions.

Applications are created with 'ipo apply'. Pending applications can be
approved or rejected exactly once; decided applications can only be
archived or restored.`,
	}

	cmd.AddCommand(applicationsListCmd())
	cmd.AddCommand(applicationsDecideCmd("approve", model.DecisionApprove))
	cmd.AddCommand(applicationsDecideCmd("reject", model.DecisionReject))
	cmd.AddCommand(applicationsArchiveCmd())
	cmd.AddCommand(applicationsRestoreCmd())
	return cmd
}

func newApplications(cmd *cobra.Command, app *appContext, archived bool) (*resource.Applications, error) {
	applications := resource.NewApplications(app.client)
	if archived {
		applications.Filter = model.FilterArchived
	}

	if err := applications.Reload(cmd.Context()); err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}
	return applications, nil
}

func applicationsListCmd() *cobra.Command {
	var archived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			applications, err := newApplications(cmd, app, archived)
			if err != nil {
				return err
			}

			items := applications.Items()
			if len(items) == 0 {
				fmt.Println(cli.InfoStyle.Render("No applications found.")) //nolint:forbidigo // User-facing output
				return nil
			}

			fmt.Println(cli.FormatTitle("Funding Applications")) //nolint:forbidigo // User-facing output
			fmt.Println()                                        //nolint:forbidigo // User-facing output

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer flushTable(w)

			writeHeader(w, "ID", "Investor", "Project", "Incentive", "Requested", "Status")
			for _, a := range items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.0f\t%s\n",
					a.ID, a.InvestorName(), a.ProjectName(), a.IncentiveTitle(),
					a.RequestedAmount, renderStatus(a.Status))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&archived, "archived", false, "show archived applications")
	return cmd
}

func applicationsDecideCmd(verb string, action model.DecisionAction) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   verb + " <id>",
		Short: capitalize(verb) + " a pending application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			app, err := initApp()
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			// Load the snapshot first so the non-pending guard has data
			// to check against.
			applications, err := newApplications(cmd, app, false)
			if err != nil {
				return err
			}

			if !yes && !cli.Confirm(os.Stdout, os.Stdin, fmt.Sprintf("%s application %d?", capitalize(verb), id)) {
				fmt.Println(cli.InfoStyle.Render("Cancelled.")) //nolint:forbidigo // User-facing output
				return nil
			}

			if err := applications.Decide(cmd.Context(), id, action); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Application %d %sd.", id, verb))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func applicationsArchiveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			app, err := initApp()
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			if !yes && !cli.Confirm(os.Stdout, os.Stdin, fmt.Sprintf("Archive application %d?", id)) {
				fmt.Println(cli.InfoStyle.Render("Cancelled.")) //nolint:forbidigo // User-facing output
				return nil
			}

			applications := resource.NewApplications(app.client)
			if err := applications.Archive(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Application %d archived.", id))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func applicationsRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore an archived application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			app, err := initApp()
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			applications := resource.NewApplications(app.client)
			if err := applications.Restore(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Application %d restored.", id))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func renderStatus(status model.ApplicationStatus) string {
	switch status {
	case model.StatusApproved:
		return cli.SuccessStyle.Render(string(status))
	case model.StatusRejected:
		return cli.ErrorStyle.Render(string(status))
	default:
		return cli.AccentStyle.Render(string(status))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
