package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/TerminusTerminal/invest-desk/internal/apply"
	"github.com/TerminusTerminal/invest-desk/internal/cli"
)

func applyCmd() *cobra.Command {
	var form apply.Form

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Submit a new funding application",
		Long: `Create a funding application joining an investor, a project, and an
incentive program.

The three reference collections are loaded first; the submission is
refused when any of them cannot be fetched. Pass --investor, --project,
--incentive, and --amount, or omit them to pick interactively from the
loaded references.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			flow := apply.New(app.client)

			err = withSpinner(os.Stderr, "Loading investors, projects, and incentives", func() error {
				return flow.LoadRefs(cmd.Context())
			})
			if err != nil {
				return err
			}

			flow.Form = form
			if err := fillFormInteractively(flow); err != nil {
				return err
			}

			if err := flow.Submit(cmd.Context()); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Application submitted.")) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().IntVar(&form.InvestorID, "investor", 0, "investor id")
	cmd.Flags().IntVar(&form.ProjectID, "project", 0, "project id")
	cmd.Flags().IntVar(&form.IncentiveID, "incentive", 0, "incentive id")
	cmd.Flags().Float64Var(&form.RequestedAmount, "amount", 0, "requested amount")
	return cmd
}

// withSpinner runs fn while an indeterminate spinner animates on w.
// The spinner is ticked from its own goroutine since fn blocks.
func withSpinner(w io.Writer, description string, fn func() error) error {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSpinnerType(14),
	)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	err := fn()
	close(done)
	wg.Wait()
	_ = bar.Finish()
	fmt.Fprintln(w)
	return err
}

// fillFormInteractively prompts for any field not supplied as a flag,
// showing the loaded references so the operator can pick valid ids.
func fillFormInteractively(flow *apply.Flow) error {
	if flow.Form.InvestorID == 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		writeHeader(w, "ID", "Investor", "Company")
		for _, inv := range flow.Investors {
			fmt.Fprintf(w, "%d\t%s\t%s\n", inv.ID, inv.Name, inv.Company)
		}
		flushTable(w)

		answer, err := promptLine("Investor ID: ")
		if err != nil {
			return err
		}
		flow.Form.InvestorID = atoi(answer)
	}

	if flow.Form.ProjectID == 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		writeHeader(w, "ID", "Project", "Sector")
		for _, prj := range flow.Projects {
			fmt.Fprintf(w, "%d\t%s\t%s\n", prj.ID, prj.Name, prj.Sector)
		}
		flushTable(w)

		answer, err := promptLine("Project ID: ")
		if err != nil {
			return err
		}
		flow.Form.ProjectID = atoi(answer)
	}

	if flow.Form.IncentiveID == 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		writeHeader(w, "ID", "Incentive", "Max Amount")
		for _, inc := range flow.Incentives {
			fmt.Fprintf(w, "%d\t%s\t%s\n", inc.ID, inc.Title, inc.MaxAmount.String())
		}
		flushTable(w)

		answer, err := promptLine("Incentive ID: ")
		if err != nil {
			return err
		}
		flow.Form.IncentiveID = atoi(answer)
	}

	if flow.Form.RequestedAmount == 0 {
		answer, err := promptLine("Requested amount: ")
		if err != nil {
			return err
		}
		flow.Form.RequestedAmount = atof(answer)
	}

	return nil
}
