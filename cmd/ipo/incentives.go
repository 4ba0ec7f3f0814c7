package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TerminusTerminal/invest-desk/internal/cli"
	"github.com/TerminusTerminal/invest-desk/internal/common"
	"github.com/TerminusTerminal/invest-desk/internal/model"
	"github.com/TerminusTerminal/invest-desk/internal/resource"
)

func incentivesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "incentives",
		Short: "Manage incentive programs",
		Long: `List, create, edit, and delete incentive programs.

Incentives have no archive lifecycle; 'ipo incentives delete' removes
the record permanently.`,
	}

	cmd.AddCommand(incentivesListCmd())
	cmd.AddCommand(incentivesAddCmd())
	cmd.AddCommand(incentivesEditCmd())
	cmd.AddCommand(incentivesDeleteCmd())
	cmd.AddCommand(incentivesExportCmd())
	return cmd
}

func newIncentives(cmd *cobra.Command, app *appContext, search, sortField string) (*resource.Incentives, error) {
	incentives := resource.NewIncentives(app.client)
	incentives.Search = search
	if sortField != "" {
		incentives.SortField = resource.IncentiveSort(sortField)
	}

	if err := incentives.Reload(cmd.Context()); err != nil {
		return nil, fmt.Errorf("failed to load incentives: %w", err)
	}
	return incentives, nil
}

func incentivesListCmd() *cobra.Command {
	var (
		search string
		sortBy string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List incentives",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			incentives, err := newIncentives(cmd, app, search, sortBy)
			if err != nil {
				return err
			}

			visible := incentives.Filtered()
			if len(visible) == 0 {
				fmt.Println(cli.InfoStyle.Render("No incentives found.")) //nolint:forbidigo // User-facing output
				return nil
			}

			fmt.Println(cli.FormatTitle("Incentives")) //nolint:forbidigo // User-facing output
			fmt.Println()                              //nolint:forbidigo // User-facing output

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer flushTable(w)

			writeHeader(w, "ID", "Title", "Type", "Max Amount", "Months", "Active")
			for _, inc := range visible {
				active := "yes"
				if !inc.Active.Bool() {
					active = "no"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
					inc.ID, inc.Title, inc.Type, inc.MaxAmount.String(), inc.DurationMonths, active)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by title or type")
	cmd.Flags().StringVar(&sortBy, "sort", "title", "sort field (title, type)")
	return cmd
}

func incentivesAddCmd() *cobra.Command {
	var form resource.IncentiveForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new incentive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			incentives := resource.NewIncentives(app.client)
			incentives.Form = form
			if err := incentives.Save(cmd.Context()); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Incentive created.")) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	bindIncentiveFlags(cmd, &form)
	return cmd
}

func incentivesEditCmd() *cobra.Command {
	var form resource.IncentiveForm

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an incentive",
		Long: `Update an incentive. Unset flags keep their current values; the
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

			incentives, err := newIncentives(cmd, app, "", "")
			if err != nil {
				return err
			}

			current, found := findIncentive(incentives, id)
			if !found {
				return common.NewUserError(fmt.Sprintf("Incentive %d not found.", id), common.ErrNotFound)
			}

			incentives.Edit(current)
			applyChangedIncentiveFlags(cmd, &incentives.Form, form)

			if err := incentives.Save(cmd.Context()); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Incentive updated.")) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	bindIncentiveFlags(cmd, &form)
	return cmd
}

func incentivesDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Permanently delete an incentive",
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

			if !yes && !cli.Confirm(os.Stdout, os.Stdin, fmt.Sprintf("Permanently delete incentive %d? This cannot be undone.", id)) {
				fmt.Println(cli.InfoStyle.Render("Cancelled.")) //nolint:forbidigo // User-facing output
				return nil
			}

			incentives := resource.NewIncentives(app.client)
			if err := incentives.Delete(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Incentive %d deleted.", id))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func incentivesExportCmd() *cobra.Command {
	var (
		search string
		sortBy string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export incentives to CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			incentives, err := newIncentives(cmd, app, search, sortBy)
			if err != nil {
				return err
			}

			dir := outDir
			if dir == "" {
				dir = exportDir()
			}
			path, err := incentives.Export(dir)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Exported to " + path)) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by title or type")
	cmd.Flags().StringVar(&sortBy, "sort", "title", "sort field (title, type)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default: current directory)")
	return cmd
}

func bindIncentiveFlags(cmd *cobra.Command, form *resource.IncentiveForm) {
	cmd.Flags().StringVar(&form.Title, "title", "", "incentive title")
	cmd.Flags().StringVar(&form.Description, "description", "", "free-form description")
	cmd.Flags().StringVar(&form.Type, "type", "", "incentive type (default: general)")
	cmd.Flags().StringVar(&form.MaxAmount, "max-amount", "", "maximum grant amount")
	cmd.Flags().StringVar(&form.Conditions, "conditions", "", "eligibility conditions")
	cmd.Flags().IntVar(&form.DurationMonths, "duration", 0, "duration in months")
	cmd.Flags().BoolVar(&form.Active, "active", true, "whether the incentive is open")
}

func applyChangedIncentiveFlags(cmd *cobra.Command, dst *resource.IncentiveForm, src resource.IncentiveForm) {
	if cmd.Flags().Changed("title") {
		dst.Title = src.Title
	}
	if cmd.Flags().Changed("description") {
		dst.Description = src.Description
	}
	if cmd.Flags().Changed("type") {
		dst.Type = src.Type
	}
	if cmd.Flags().Changed("max-amount") {
		dst.MaxAmount = src.MaxAmount
	}
	if cmd.Flags().Changed("conditions") {
		dst.Conditions = src.Conditions
	}
	if cmd.Flags().Changed("duration") {
		dst.DurationMonths = src.DurationMonths
	}
	if cmd.Flags().Changed("active") {
		dst.Active = src.Active
	}
}

func findIncentive(incentives *resource.Incentives, id int) (model.Incentive, bool) {
	for _, inc := range incentives.Items() {
		if inc.ID == id {
			return inc, true
		}
	}
	return model.Incentive{}, false
}
