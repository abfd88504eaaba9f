// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

//go:build !windows

package database

import (
	"io/fs"
	"log/slog"
	"os"
)

// WarnInsecurePermissions logs a warning when the store file is group- or
// world-readable. User emails live in that file. It never fails.
func WarnInsecurePermissions(path string) {
	if path == "" || path == ":memory:" {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		slog.Debug("could not stat database file for permission check", "path", path, "error", err)
		return
	}

	mode := info.Mode()
	perm := mode.Perm()

	const groupRead fs.FileMode = 0o040
	const otherRead fs.FileMode = 0o004

	if perm&(groupRead|otherRead) != 0 {
		slog.Warn(
			"database file has insecure permissions, user data may be readable by other users",
			"path", path,
			"mode", mode,
			"recommended", "0600",
		)
	}
}
