// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

// Package health describes the bridge's health report.
package health

import "time"

// Status values reported by the bridge.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// Report is a point-in-time snapshot of the backend, safe to serialize to
// JSON. Database is false when the store could not be reached.
type Report struct {
	Status     string    `json:"status" example:"ok" doc:"Overall health status"`
	Version    string    `json:"version" example:"0.1.0" doc:"Application version"`
	Database   bool      `json:"database" doc:"Whether the user store answered"`
	TotalUsers int64     `json:"total_users" doc:"Users currently stored"`
	CheckedAt  time.Time `json:"checked_at" doc:"When the report was computed"`
}

// NewReport builds a report, deriving Status from the database check.
func NewReport(version string, databaseOK bool, totalUsers int64, at time.Time) Report {
	status := StatusOK
	if !databaseOK {
		status = StatusDegraded
	}
	return Report{
		Status:     status,
		Version:    version,
		Database:   databaseOK,
		TotalUsers: totalUsers,
		CheckedAt:  at.UTC(),
	}
}
