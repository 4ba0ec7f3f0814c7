package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TerminusTerminal/invest-desk/internal/api"
	"github.com/TerminusTerminal/invest-desk/internal/cli"
	"github.com/TerminusTerminal/invest-desk/internal/common"
)

func registerCmd() *cobra.Command {
	var (
		name  string
		email string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new operator account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}

			if name == "" {
				name, err = promptLine("Name: ")
				if err != nil {
					return err
				}
			}
			if email == "" {
				email, err = promptLine("Email: ")
				if err != nil {
					return err
				}
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return common.NewUserError("Passwords do not match.", common.ErrValidation)
			}

			if err := api.Register(cmd.Context(), app.client, name, email, password); err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Account created. Run 'ipo login' to sign in.")) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (prompted when omitted)")
	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when omitted)")
	return cmd
}
