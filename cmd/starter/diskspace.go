// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

//go:build !windows

package main

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func checkDiskSpace(path string) string {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return fmt.Sprintf("unable to check: %s", err)
	}

	availBytes := stat.Bavail * uint64(stat.Bsize)
	return formatBytes(availBytes) + " available"
}
