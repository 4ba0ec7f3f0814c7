package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TerminusTerminal/invest-desk/internal/api"
	"github.com/TerminusTerminal/invest-desk/internal/cli"
)

func loginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the office backend",
		Long: `Authenticate against the backend and store the session token.

The token is written to the session file (default: ~/.config/ipo/session.json)
and attached to every subsequent request until 'ipo logout'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := initApp()
			if err != nil {
				return err
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

			sess, err := api.Login(cmd.Context(), app.client, email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if err := app.store.Save(sess); err != nil {
				return fmt.Errorf("failed to store session: %w", err)
			}

			name := sess.UserName
			if name == "" {
				name = email
			}
			fmt.Println(cli.FormatSuccess("Welcome, " + name)) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when omitted)")
	return cmd
}

func promptLine(prompt string) (string, error) {
	fmt.Print(cli.PromptStyle.Render(prompt)) //nolint:forbidigo // User-facing output
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(cli.PromptStyle.Render(prompt)) //nolint:forbidigo // User-facing output
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() //nolint:forbidigo // User-facing output
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
