// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naranyala/webui-starter/pkg/health"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show bridge status",
		Long:  "Check the running bridge's health endpoint and display status information.",
		RunE:  runStatus,
	}

	cmd.Flags().String("address", "127.0.0.1:18790", "bridge address to check")

	return cmd
}

func runStatus(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("address")
	out := cmd.OutOrStdout()

	var report health.Report
	if err := newBridgeClient(addr).getJSON("/health", &report); err != nil {
		if isDialError(err) {
			_, _ = fmt.Fprintf(out, "Bridge at %s is not running (connection refused)\n", addr)
			return nil
		}
		_, _ = fmt.Fprintf(out, "Bridge at %s: %s\n", addr, err)
		return nil
	}

	_, _ = fmt.Fprintf(out, "Bridge at %s: %s (version %s, %d users)\n", addr, report.Status, report.Version, report.TotalUsers)
	return nil
}
