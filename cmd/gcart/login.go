package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd() *cobra.Command {
	var (
		configPath string
		email      string
		password   string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the GreenCart service",
		Long:  "Prompts for credentials, verifies them against the service, and persists the session for later commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, configPath, email, password)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "gcart.yaml", "path to config file")
	cmd.Flags().StringVarP(&email, "email", "e", "", "operator email (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted without echo if omitted)")
	return cmd
}

func runLogin(cmd *cobra.Command, configPath, email, password string) error {
	app, err := openApp(cmd.Context(), configPath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	// Single reader over stdin: a second bufio.Reader would buffer past
	// the email line and swallow the password.
	reader := bufio.NewReader(cmd.InOrStdin())

	if email == "" {
		fmt.Fprint(out, "Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if password == "" {
		password, err = readPassword(cmd, reader)
		if err != nil {
			return err
		}
	}

	user, err := app.session.Login(cmd.Context(), email, password)
	if err != nil {
		_, _, msg := app.session.Current()
		return fmt.Errorf("login failed: %s", msg)
	}
	fmt.Fprintf(out, "Logged in as %s\n", user.Email)
	return nil
}

// readPassword reads without echo when stdin is a terminal, falling back to
// a plain line read for pipes and tests.
func readPassword(cmd *cobra.Command, reader *bufio.Reader) (string, error) {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, "Password: ")
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		data, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(data), nil
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
