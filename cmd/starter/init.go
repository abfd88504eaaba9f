// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naranyala/webui-starter/internal/config"
)

func newInitCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the config file and the user store",
		Long: "Write the default config file if none exists, create the database schema, " +
			"and seed sample users when database.create_sample_data is set and the store is empty.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(c, cmd)
		},
	}
	cmd.Flags().Bool("no-config", false, "do not write a config file")
	return cmd
}

func runInit(c *cli, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	var lines []string

	if skip, _ := cmd.Flags().GetBool("no-config"); !skip {
		path, _ := cmd.Flags().GetString("config")
		if written := config.BootstrapConfig(path); written != "" {
			lines = append(lines, "config:   "+written)
		}
	}

	app, err := c.openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	seeded, err := app.SeedIfEmpty()
	if err != nil {
		return err
	}

	lines = append(lines, "database: "+app.DB.Path())
	if seeded {
		lines = append(lines, fmt.Sprintf("seeded:   %d sample users", app.DB.GetStats().TotalUsers))
	}
	lines = append(lines, fmt.Sprintf("users:    %d", app.DB.GetStats().TotalUsers))

	_, err = fmt.Fprintln(out, boxStyle.Render(titleStyle.Render("starter initialized")+"\n"+strings.Join(lines, "\n")))
	return err
}
