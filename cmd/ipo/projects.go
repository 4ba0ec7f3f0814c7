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

func projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage investment projects",
		Long: `List, create, edit, and archive investment projects.

Each project belongs to an investor; listings and exports resolve the
investor id to a display name.`,
	}

	cmd.AddCommand(projectsListCmd())
	cmd.AddCommand(projectsAddCmd())
	cmd.AddCommand(projectsEditCmd())
	cmd.AddCommand(projectsArchiveCmd())
	cmd.AddCommand(projectsRestoreCmd())
	cmd.AddCommand(projectsExportCmd())
	return cmd
}

func newProjects(cmd *cobra.Command, app *appContext, search, sortField string, archived bool) (*resource.Projects, error) {
	projects := resource.NewProjects(app.client)
	projects.Search = search
	if sortField != "" {
		projects.SortField = resource.ProjectSort(sortField)
	}
	if archived {
		projects.Filter = model.FilterArchived
	}

	if err := projects.Reload(cmd.Context()); err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	if err := projects.LoadInvestorRefs(cmd.Context()); err != nil {
		return nil, fmt.Errorf("failed to load investor references: %w", err)
	}
	return projects, nil
}

func projectsListCmd() *cobra.Command {
	var (
		search   string
		sortBy   string
		archived bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			projects, err := newProjects(cmd, app, search, sortBy, archived)
			if err != nil {
				return err
			}

			visible := projects.Filtered()
			if len(visible) == 0 {
				fmt.Println(cli.InfoStyle.Render("No projects found.")) //nolint:forbidigo // User-facing output
				return nil
			}

			fmt.Println(cli.FormatTitle("Projects")) //nolint:forbidigo // User-facing output
			fmt.Println()                            //nolint:forbidigo // User-facing output

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer flushTable(w)

			writeHeader(w, "ID", "Name", "Investor", "Sector", "Amount", "Location", "Status")
			for _, prj := range visible {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					prj.ID, prj.Name, projects.InvestorName(prj.InvestorID),
					prj.Sector, prj.InvestmentAmount.String(), prj.Location, prj.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by name or location")
	cmd.Flags().StringVar(&sortBy, "sort", "name", "sort field (name, sector)")
	cmd.Flags().BoolVar(&archived, "archived", false, "show archived projects")
	return cmd
}

func projectsAddCmd() *cobra.Command {
	var form resource.ProjectForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			projects := resource.NewProjects(app.client)
			projects.Form = form
			if err := projects.Save(cmd.Context()); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Project created.")) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	bindProjectFlags(cmd, &form)
	return cmd
}

func projectsEditCmd() *cobra.Command {
	var form resource.ProjectForm

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a project",
		Long: `Update a project. Unset flags keep their current values; the record
is fetched first so a partial edit never blanks other fields.`,
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

			projects, err := newProjects(cmd, app, "", "", false)
			if err != nil {
				return err
			}

			current, found := findProject(projects, id)
			if !found {
				projects.Filter = model.FilterArchived
				if err := projects.Reload(cmd.Context()); err != nil {
					return fmt.Errorf("failed to load projects: %w", err)
				}
				current, found = findProject(projects, id)
			}
			if !found {
				return common.NewUserError(fmt.Sprintf("Project %d not found.", id), common.ErrNotFound)
			}

			projects.Edit(current)
			applyChangedProjectFlags(cmd, &projects.Form, form)

			if err := projects.Save(cmd.Context()); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Project updated.")) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	bindProjectFlags(cmd, &form)
	return cmd
}

func projectsArchiveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a project",
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

			if !yes && !cli.Confirm(os.Stdout, os.Stdin, fmt.Sprintf("Archive project %d?", id)) {
				fmt.Println(cli.InfoStyle.Render("Cancelled.")) //nolint:forbidigo // User-facing output
				return nil
			}

			projects := resource.NewProjects(app.client)
			if err := projects.Archive(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Project %d archived.", id))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func projectsRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore an archived project",
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

			projects := resource.NewProjects(app.client)
			if err := projects.Restore(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Project %d restored.", id))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func projectsExportCmd() *cobra.Command {
	var (
		search   string
		sortBy   string
		archived bool
		outDir   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export projects to CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			projects, err := newProjects(cmd, app, search, sortBy, archived)
			if err != nil {
				return err
			}

			dir := outDir
			if dir == "" {
				dir = exportDir()
			}
			path, err := projects.Export(dir)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Exported to " + path)) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by name or location")
	cmd.Flags().StringVar(&sortBy, "sort", "name", "sort field (name, sector)")
	cmd.Flags().BoolVar(&archived, "archived", false, "export archived projects")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default: current directory)")
	return cmd
}

func bindProjectFlags(cmd *cobra.Command, form *resource.ProjectForm) {
	cmd.Flags().IntVar(&form.InvestorID, "investor", 0, "owning investor id")
	cmd.Flags().StringVar(&form.Name, "name", "", "project name")
	cmd.Flags().StringVar(&form.Sector, "sector", "", "industry sector")
	cmd.Flags().StringVar(&form.InvestmentAmount, "amount", "", "investment amount")
	cmd.Flags().StringVar(&form.Location, "location", "", "project location")
	cmd.Flags().StringVar(&form.Description, "description", "", "free-form description")
	cmd.Flags().StringVar(&form.Status, "status", "", "project status")
}

func applyChangedProjectFlags(cmd *cobra.Command, dst *resource.ProjectForm, src resource.ProjectForm) {
	if cmd.Flags().Changed("investor") {
		dst.InvestorID = src.InvestorID
	}
	if cmd.Flags().Changed("name") {
		dst.Name = src.Name
	}
	if cmd.Flags().Changed("sector") {
		dst.Sector = src.Sector
	}
	if cmd.Flags().Changed("amount") {
		dst.InvestmentAmount = src.InvestmentAmount
	}
	if cmd.Flags().Changed("location") {
		dst.Location = src.Location
	}
	if cmd.Flags().Changed("description") {
		dst.Description = src.Description
	}
	if cmd.Flags().Changed("status") {
		dst.Status = src.Status
	}
}

func findProject(projects *resource.Projects, id int) (model.Project, bool) {
	for _, prj := range projects.Items() {
		if prj.ID == id {
			return prj, true
		}
	}
	return model.Project{}, false
}
