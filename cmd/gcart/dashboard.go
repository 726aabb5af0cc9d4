package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/greencart/console/internal/dashboard"
)

func newDashboardCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Start the local web dashboard",
		Long:  "Launches the web console: login, KPI overview with charts, entity lists, and live refresh of new simulation runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "gcart.yaml", "path to config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default from config)")
	return cmd
}

func runDashboard(cmd *cobra.Command, configPath string, port int) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app, err := openApp(ctx, configPath)
	if err != nil {
		return err
	}
	if port == 0 {
		port = app.cfg.Dashboard.Port
	}

	notifier, err := app.notifier()
	if err != nil {
		return err
	}
	if notifier != nil {
		defer notifier.Close()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	return dashboard.Start(ctx, dashboard.StartOpts{
		Session:      app.session,
		Client:       app.client,
		DB:           app.gdb,
		Port:         port,
		RefreshCron:  app.cfg.Dashboard.RefreshCron,
		PreviewLimit: app.cfg.Dashboard.PreviewLimit,
		Notifier:     notifier,
		Out:          cmd.OutOrStdout(),
	})
}
