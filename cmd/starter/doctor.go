// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naranyala/webui-starter/internal/config"
	"github.com/naranyala/webui-starter/internal/database"
	"github.com/naranyala/webui-starter/internal/handlers"
)

func newDoctorCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run diagnostics",
		Long:  "Check the config file, the user store, the bridge, and free disk space next to the store.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(c, cmd)
		},
	}

	cmd.Flags().String("address", "127.0.0.1:18790", "bridge address to check")

	return cmd
}

func runDoctor(c *cli, cmd *cobra.Command) error {
	w := cmd.OutOrStdout()
	addr, _ := cmd.Flags().GetString("address")

	cfg, cfgErr := c.loadConfig(cmd)
	dbPath := ""
	if cfgErr == nil {
		dbPath = cfg.Database.Path
	}

	checks := []struct {
		name string
		fn   func() string
	}{
		{"Binary", checkBinary},
		{"Platform", checkPlatform},
		{"Config", func() string { return checkConfig(c.configPath(cmd), cfgErr) }},
		{"Database", func() string { return checkDatabase(dbPath) }},
		{"Handlers", checkHandlers},
		{"Bridge", func() string { return checkBridge(addr) }},
		{"Disk Space", func() string { return checkDiskSpace(storeDir(dbPath)) }},
	}

	for _, ck := range checks {
		if _, err := fmt.Fprintf(w, "%-20s %s\n", ck.name+":", ck.fn()); err != nil {
			return err
		}
	}

	return nil
}

func checkBinary() string {
	return fmt.Sprintf("starter %s (%s/%s)", version, runtime.GOOS, runtime.GOARCH)
}

func checkPlatform() string {
	return fmt.Sprintf("%s/%s, Go %s", runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func checkConfig(path string, err error) string {
	if err != nil {
		return fmt.Sprintf("error: %s", err)
	}
	if path != "" {
		return fmt.Sprintf("loaded from %s", path)
	}
	return "using defaults (no config file found)"
}

// checkDatabase inspects an existing store. It never creates one.
func checkDatabase(path string) string {
	if path == "" {
		return "unknown (config did not load)"
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Sprintf("not initialized at %s (run 'starter init')", path)
	}
	if err != nil {
		return fmt.Sprintf("error: %s", err)
	}

	db, err := database.Open(path)
	if err != nil {
		return fmt.Sprintf("error: %s", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Sprintf("error: %s", err)
	}

	msg := fmt.Sprintf("%d users in %s", db.GetStats().TotalUsers, path)
	if info.Mode().Perm()&0o044 != 0 {
		msg += fmt.Sprintf(" (mode %s, recommended 0600)", info.Mode().Perm())
	}
	return msg
}

func checkHandlers() string {
	fns := handlers.Functions()
	return fmt.Sprintf("%d registered (%s)", len(fns), strings.Join(fns, ", "))
}

func checkBridge(addr string) string {
	var body struct {
		Status string `json:"status"`
	}
	if err := newBridgeClient(addr).getJSON("/health", &body); err != nil {
		if isDialError(err) {
			return fmt.Sprintf("not running at %s (run 'starter serve')", addr)
		}
		return fmt.Sprintf("error: %s", err)
	}
	return fmt.Sprintf("%s at %s", body.Status, addr)
}

// storeDir returns the directory the store lives in, falling back to the
// default config directory and then the home directory.
func storeDir(dbPath string) string {
	if dbPath != "" {
		if dir := filepath.Dir(dbPath); dirExists(dir) {
			return dir
		}
	}
	if p, err := config.DefaultConfigPath(); err == nil && dirExists(filepath.Dir(p)) {
		return filepath.Dir(p)
	}
	home, _ := os.UserHomeDir()
	return home
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// formatBytes formats a byte count as a human-readable string.
func formatBytes(b uint64) string {
	const (
		gb = 1024 * 1024 * 1024
		mb = 1024 * 1024
	)
	switch {
	case b >= gb:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(gb))
	case b >= mb:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(mb))
	default:
		return fmt.Sprintf("%d bytes", b)
	}
}
