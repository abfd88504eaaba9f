// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naranyala/webui-starter/internal/database"
)

func newSeedCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample users",
		Long:  "Insert the fixed sample users. Running it twice on the same store fails on the duplicate emails.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if err := app.DB.InsertSampleData(); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("inserted %d sample users", database.SampleSize())))
			return err
		},
	}
}
