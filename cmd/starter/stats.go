// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/naranyala/webui-starter/internal/database"
	"github.com/naranyala/webui-starter/internal/handlers"
)

func newStatsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show user store statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withHandlers(cmd,
				func(h *handlers.Handlers) handlers.Response { return h.GetStats() },
				func(r handlers.Response) string {
					s, _ := r.Data.(database.Stats)
					return boxStyle.Render(fmt.Sprintf("%s\ntotal users: %d\n%s",
						titleStyle.Render("database"),
						s.TotalUsers,
						dimStyle.Render("computed "+s.CreatedAt.Format(time.RFC3339))))
				})
		},
	}
	cmd.Flags().Bool("json", false, "print the handler response envelope as JSON")
	return cmd
}
