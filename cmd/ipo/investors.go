package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TerminusTerminal/invest-desk/internal/cli"
	"github.com/TerminusTerminal/invest-desk/internal/common"
	"github.com/TerminusTerminal/invest-desk/internal/model"
	"github.com/TerminusTerminal/invest-desk/internal/resource"
)

func investorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "investors",
		Short: "Manage registered investors",
		Long: `List, create, edit, and archive investors.

Archived investors are hidden from the default listing; pass --archived
to see them. Archiving is reversible with 'ipo investors restore'.`,
	}

	cmd.AddCommand(investorsListCmd())
	cmd.AddCommand(investorsAddCmd())
	cmd.AddCommand(investorsEditCmd())
	cmd.AddCommand(investorsArchiveCmd())
	cmd.AddCommand(investorsRestoreCmd())
	cmd.AddCommand(investorsExportCmd())
	return cmd
}

// newInvestors builds the module over a fresh snapshot.
func newInvestors(cmd *cobra.Command, app *appContext, search, sortField string, archived bool) (*resource.Investors, error) {
	investors := resource.NewInvestors(app.client)
	investors.Search = search
	if sortField != "" {
		investors.SortField = resource.InvestorSort(sortField)
	}
	if archived {
		investors.Filter = model.FilterArchived
	}

	if err := investors.Reload(cmd.Context()); err != nil {
		return nil, fmt.Errorf("failed to load investors: %w", err)
	}
	return investors, nil
}

func investorsListCmd() *cobra.Command {
	var (
		search   string
		sortBy   string
		archived bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List investors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			investors, err := newInvestors(cmd, app, search, sortBy, archived)
			if err != nil {
				return err
			}

			visible := investors.Filtered()
			if len(visible) == 0 {
				fmt.Println(cli.InfoStyle.Render("No investors found.")) //nolint:forbidigo // User-facing output
				return nil
			}

			fmt.Println(cli.FormatTitle("Investors")) //nolint:forbidigo // User-facing output
			fmt.Println()                             //nolint:forbidigo // User-facing output

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer flushTable(w)

			writeHeader(w, "ID", "Name", "Email", "Phone", "Company", "Investment")
			for _, inv := range visible {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					inv.ID, inv.Name, inv.Email, inv.Phone, inv.Company, inv.Investment.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by name or company")
	cmd.Flags().StringVar(&sortBy, "sort", "name", "sort field (name, company)")
	cmd.Flags().BoolVar(&archived, "archived", false, "show archived investors")
	return cmd
}

func investorsAddCmd() *cobra.Command {
	var form resource.InvestorForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new investor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			investors := resource.NewInvestors(app.client)
			investors.Form = form
			if err := investors.Save(cmd.Context()); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Investor created.")) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	bindInvestorFlags(cmd, &form)
	return cmd
}

func investorsEditCmd() *cobra.Command {
	var form resource.InvestorForm

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an investor",
		Long: `Update an investor. Unset flags keep their current values; the
record is fetched first so a partial edit never blanks other fields.`,
		Args: cobra.ExactArgs(1),
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

			investors, err := newInvestors(cmd, app, "", "", false)
			if err != nil {
				return err
			}

			current, found := findInvestor(investors, id)
			if !found {
				// The record may be archived; check that slice too.
				investors.Filter = model.FilterArchived
				if err := investors.Reload(cmd.Context()); err != nil {
					return fmt.Errorf("failed to load investors: %w", err)
				}
				current, found = findInvestor(investors, id)
			}
			if !found {
				return common.NewUserError(fmt.Sprintf("Investor %d not found.", id), common.ErrNotFound)
			}

			investors.Edit(current)
			applyChangedInvestorFlags(cmd, &investors.Form, form)

			if err := investors.Save(cmd.Context()); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Investor updated.")) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	bindInvestorFlags(cmd, &form)
	return cmd
}

func investorsArchiveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive an investor",
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

			if !yes && !cli.Confirm(os.Stdout, os.Stdin, fmt.Sprintf("Archive investor %d?", id)) {
				fmt.Println(cli.InfoStyle.Render("Cancelled.")) //nolint:forbidigo // User-facing output
				return nil
			}

			investors := resource.NewInvestors(app.client)
			if err := investors.Archive(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Investor %d archived.", id))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func investorsRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore an archived investor",
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

			investors := resource.NewInvestors(app.client)
			if err := investors.Restore(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Investor %d restored.", id))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func investorsExportCmd() *cobra.Command {
	var (
		search   string
		sortBy   string
		archived bool
		outDir   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export investors to CSV",
		Long: `Export the filtered, sorted investor listing to investors.csv.

The export matches what 'ipo investors list' would show with the same
flags; search and sort are applied before writing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			investors, err := newInvestors(cmd, app, search, sortBy, archived)
			if err != nil {
				return err
			}

			dir := outDir
			if dir == "" {
				dir = exportDir()
			}
			path, err := investors.Export(dir)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Exported to " + path)) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by name or company")
	cmd.Flags().StringVar(&sortBy, "sort", "name", "sort field (name, company)")
	cmd.Flags().BoolVar(&archived, "archived", false, "export archived investors")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default: current directory)")
	return cmd
}

func bindInvestorFlags(cmd *cobra.Command, form *resource.InvestorForm) {
	cmd.Flags().StringVar(&form.Name, "name", "", "investor name")
	cmd.Flags().StringVar(&form.Email, "email", "", "contact email")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&form.Company, "company", "", "company name")
	cmd.Flags().StringVar(&form.Investment, "investment", "", "planned investment amount")
}

// applyChangedInvestorFlags overlays only the flags the user passed.
func applyChangedInvestorFlags(cmd *cobra.Command, dst *resource.InvestorForm, src resource.InvestorForm) {
	if cmd.Flags().Changed("name") {
		dst.Name = src.Name
	}
	if cmd.Flags().Changed("email") {
		dst.Email = src.Email
	}
	if cmd.Flags().Changed("phone") {
		dst.Phone = src.Phone
	}
	if cmd.Flags().Changed("company") {
		dst.Company = src.Company
	}
	if cmd.Flags().Changed("investment") {
		dst.Investment = src.Investment
	}
}

func findInvestor(investors *resource.Investors, id int) (model.Investor, bool) {
	for _, inv := range investors.Items() {
		if inv.ID == id {
			return inv, true
		}
	}
	return model.Investor{}, false
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("%q is not a valid id.", arg), common.ErrValidation)
	}
	return id, nil
}

func writeHeader(w *tabwriter.Writer, cols ...string) {
	for i, col := range cols {
		cols[i] = cli.SubtleStyle.Bold(true).Render(col)
	}
	fmt.Fprintln(w, strings.Join(cols, "\t"))
}

func flushTable(w *tabwriter.Writer) {
	if err := w.Flush(); err != nil {
		common.LogError(err, "failed to flush table writer", nil)
	}
}
