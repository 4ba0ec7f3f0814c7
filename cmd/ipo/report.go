package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TerminusTerminal/invest-desk/internal/cli"
	"github.com/TerminusTerminal/invest-desk/internal/report"
)

func reportCmd() *cobra.Command {
	var (
		filter    string
		summarize []string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the summary report",
		Long: `Display the report cards derived from the backend summary, optionally
with AI-generated summaries.

Pass --summarize with a card key (repeatable) to summarize specific
cards, or --all to summarize every visible card. Each card is
summarized independently; one provider failure never blocks the rest.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			summarizer, err := newSummarizer(app.client)
			if err != nil {
				return err
			}

			rep := report.New(app.client, summarizer)
			rep.Filter = filter
			if err := rep.Load(cmd.Context()); err != nil {
				return fmt.Errorf("failed to load report: %w", err)
			}

			cards := rep.Visible()
			if len(cards) == 0 {
				fmt.Println(cli.InfoStyle.Render("No report data.")) //nolint:forbidigo // User-facing output
				return nil
			}

			wanted := make(map[string]bool, len(summarize))
			for _, key := range summarize {
				wanted[key] = true
			}

			fmt.Println(cli.FormatTitle("Summary Report")) //nolint:forbidigo // User-facing output
			fmt.Println()                                  //nolint:forbidigo // User-facing output

			for _, card := range cards {
				fmt.Printf("%s  %s\n", cli.SubtleStyle.Bold(true).Render(card.Title()), card.Value.Text()) //nolint:forbidigo // User-facing output

				if !all && !wanted[card.Key] {
					continue
				}
				summary, err := rep.Summarize(cmd.Context(), card.Key)
				if err != nil {
					fmt.Println("  " + cli.FormatError(err.Error())) //nolint:forbidigo // User-facing output
					continue
				}
				fmt.Println(cli.InfoStyle.Render("  " + summary)) //nolint:forbidigo // User-facing output
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "show only cards whose key contains this text")
	cmd.Flags().StringArrayVar(&summarize, "summarize", nil, "card key to summarize (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "summarize every visible card")
	return cmd
}
