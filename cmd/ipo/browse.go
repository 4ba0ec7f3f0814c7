package main

import (
	"github.com/spf13/cobra"

	"github.com/TerminusTerminal/invest-desk/internal/tui"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive browser",
		Long: `Start the full-screen terminal browser: tabbed lists for investors,
projects, incentives, and applications, plus the dashboard, the report
with AI summaries, and the new-application flow.

A stored session is used when present; otherwise the browser opens on
the sign-in form.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}

			summarizer, err := newSummarizer(app.client)
			if err != nil {
				return err
			}

			return tui.Run(cmd.Context(), tui.Config{
				Client:     app.client,
				Session:    app.session,
				Store:      app.store,
				Summarizer: summarizer,
				ExportDir:  exportDir(),
			})
		},
	}
}
