// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/naranyala/webui-starter/internal/server"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the handlers over the local HTTP bridge",
		Long:  "Open the store, seed it if configured and empty, and serve the handlers until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, c, cmd)
		},
	}

	cmd.Flags().String("listen", "", "override listen address (host:port)")
	return cmd
}

func runServe(ctx context.Context, c *cli, cmd *cobra.Command) error {
	if err := c.v.BindPFlag("server.listen", cmd.Flags().Lookup("listen")); err != nil {
		return err
	}

	app, err := c.openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	if _, err := app.SeedIfEmpty(); err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		ListenAddr:  app.Config.Server.Listen,
		CORSOrigins: app.Config.Server.CORSOrigins,
		Version:     app.Config.App.Version,
		Logger:      app.Logger,
	}, app.Handlers, app.DB)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on %s\n", app.Config.App.Name, app.Config.Server.Listen); err != nil {
		return err
	}
	return srv.Start(ctx)
}
