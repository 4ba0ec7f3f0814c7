package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TerminusTerminal/invest-desk/internal/cli"
	"github.com/TerminusTerminal/invest-desk/internal/dashboard"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the office overview",
		Long: `Display the aggregate counters and chart series from the backend's
summary endpoint. When the backend sends no time-series data a fixed
illustrative series is shown and labelled as such.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			view, err := dashboard.New(app.client).Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load dashboard: %w", err)
			}

			fmt.Println(cli.FormatTitle("Investment Promotion Office")) //nolint:forbidigo // User-facing output
			fmt.Println()                                               //nolint:forbidigo // User-facing output

			s := view.Summary
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Investors\t%d\n", s.TotalInvestors)
			fmt.Fprintf(w, "Projects\t%d\n", s.TotalProjects)
			fmt.Fprintf(w, "Incentives\t%d\n", s.TotalIncentives)
			fmt.Fprintf(w, "Applications\t%d (pending %d, approved %d, rejected %d)\n",
				s.TotalApplications, s.PendingApplications, s.ApprovedApplications, s.RejectedApplications)
			fmt.Fprintf(w, "Allocated\t%.0f\n", s.TotalAllocatedAmount)
			flushTable(w)

			fmt.Println()                                                     //nolint:forbidigo // User-facing output
			fmt.Println(cli.SubtleStyle.Bold(true).Render("Investors over time")) //nolint:forbidigo // User-facing output
			for _, p := range view.InvestorsOverTime {
				fmt.Printf("  %-10s %s %d\n", p.Month, chartBar(p.Investors), p.Investors) //nolint:forbidigo // User-facing output
			}

			fmt.Println(cli.SubtleStyle.Bold(true).Render("Allocated over time")) //nolint:forbidigo // User-facing output
			for _, p := range view.AllocatedOverTime {
				fmt.Printf("  %-10s %.0f\n", p.Month, p.Amount) //nolint:forbidigo // User-facing output
			}

			fmt.Println(cli.SubtleStyle.Bold(true).Render("Application status")) //nolint:forbidigo // User-facing output
			for _, sc := range view.StatusBreakdown {
				fmt.Printf("  %-10s %s %d\n", sc.Status, chartBar(sc.Count), sc.Count) //nolint:forbidigo // User-facing output
			}

			if view.Placeholder {
				fmt.Println()                                                                                //nolint:forbidigo // User-facing output
				fmt.Println(cli.WarningStyle.Render("Series data is illustrative; the backend sent none.")) //nolint:forbidigo // User-facing output
			}
			return nil
		},
	}
}

func chartBar(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 40 {
		n = 40
	}
	return cli.InfoStyle.Render(strings.Repeat("█", n))
}
