// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package database

import "time"

// Stats is an aggregate over the current contents, recomputed on every call.
type Stats struct {
	TotalUsers int64     `json:"total_users"`
	CreatedAt  time.Time `json:"created_at"`
}

// GetStats never fails: a store error is logged and zero counts returned.
// CreatedAt is the moment the aggregate was computed.
func (d *Database) GetStats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	stats := Stats{CreatedAt: time.Now().UTC()}
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&stats.TotalUsers); err != nil {
		d.logger.Warn("computing database stats", "path", d.path, "error", err)
		stats.TotalUsers = 0
	}
	return stats
}
