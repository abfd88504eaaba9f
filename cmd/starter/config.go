// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naranyala/webui-starter/internal/config"
)

func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if defaults, _ := cmd.Flags().GetBool("defaults"); defaults {
				out, err := config.Default().YAML()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}

			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			if path := c.configPath(cmd); path != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("# from "+path))
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})

	return cmd
}
