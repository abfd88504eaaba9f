// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package config

import (
	_ "embed"
	"log/slog"
	"os"
	"path/filepath"

	apperr "github.com/naranyala/webui-starter/pkg/errors"
)

//go:embed starter.yaml.default
var DefaultConfigYAML []byte

// DefaultConfigPath returns ~/.config/starter/starter.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", apperr.FromIO(err).WithContext("op", "resolve home directory")
	}
	return filepath.Join(home, ".config", "starter", "starter.yaml"), nil
}

// BootstrapConfig writes the default commented config to path if it does not
// already exist. An empty path selects DefaultConfigPath. Returns the path
// written, or empty string if the file already existed or an error occurred
// (non-fatal, logged and skipped).
func BootstrapConfig(path string) string {
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			slog.Debug("skipping config bootstrap", "error", err)
			return ""
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		return "" // already exists
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		slog.Debug("skipping config bootstrap: cannot create directory", "path", dir, "error", err)
		return ""
	}

	if err := os.WriteFile(path, DefaultConfigYAML, 0o600); err != nil {
		slog.Debug("skipping config bootstrap: cannot write config", "path", path, "error", err)
		return ""
	}

	slog.Info("created default config", "path", path)
	return path
}
