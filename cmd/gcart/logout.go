package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Long:  "Removes the stored credential and profile. Purely local; the service is not called.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			app.session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "gcart.yaml", "path to config file")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current operator",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			user, status, _ := app.session.Current()
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", user.Email, status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "gcart.yaml", "path to config file")
	return cmd
}
