package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TerminusTerminal/invest-desk/internal/cli"
)

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}

			if err := app.store.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Signed out.")) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
