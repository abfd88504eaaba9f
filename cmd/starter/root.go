// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/naranyala/webui-starter/internal/config"
	apperr "github.com/naranyala/webui-starter/pkg/errors"
)

// cli carries state shared by every command of one root instance. Each root
// owns its viper so tests can build roots side by side.
type cli struct {
	v *viper.Viper
}

// NewRootCmd creates the root starter command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:           "starter",
		Short:         "starter, a user store backend for a desktop UI",
		Long:          "starter manages the local user store and serves its handlers to the UI.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.bindFlags(cmd)
		},
	}

	// Global flags, mapped to viper keys in bindFlags.
	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().String("db", "", "path to the user database")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-file", "", `log file ("-" for stderr)`)

	// Register subcommands
	root.AddCommand(
		newInitCmd(c),
		newSeedCmd(c),
		newUsersCmd(c),
		newStatsCmd(c),
		newServeCmd(c),
		newStatusCmd(),
		newConfigCmd(c),
		newDoctorCmd(c),
		newVersionCmd(),
	)

	return root
}

var flagKeys = map[string]string{
	"db":        "database.path",
	"log-level": "logging.level",
	"log-file":  "logging.file",
}

// bindFlags binds persistent flags so the standard precedence
// (flag > env > file > defaults) is handled uniformly.
func (c *cli) bindFlags(cmd *cobra.Command) error {
	for flag, key := range flagKeys {
		if err := c.v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(flag)); err != nil {
			return apperr.Internal("binding " + flag + " flag").WithCause(err.Error())
		}
	}
	return nil
}

// configPath returns --config, or the first standard location that exists.
// An empty result means defaults and environment only.
func (c *cli) configPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	candidates := []string{"starter.yaml"}
	if p, err := config.DefaultConfigPath(); err == nil {
		candidates = append(candidates, p)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (c *cli) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.LoadWith(c.v, c.configPath(cmd))
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NewValidation(
			apperr.NewValue(apperr.CodeValidationFailed, "User id must be a positive integer").
				WithField("id").
				WithContext("id", raw),
		)
	}
	return id, nil
}

// ensureDir creates the parent directory of path.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return apperr.FromIO(err)
	}
	return nil
}
