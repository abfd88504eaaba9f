// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package database

type fixture struct {
	name, email, role, status string
}

var sampleUsers = []fixture{
	{"John Doe", "john@example.com", "Admin", "Active"},
	{"Jane Smith", "jane@example.com", "User", "Active"},
	{"Bob Johnson", "bob@example.com", "User", "Inactive"},
	{"Alice Brown", "alice@example.com", "Editor", "Active"},
	{"Charlie Wilson", "charlie@example.com", "User", "Pending"},
}

// InsertSampleData inserts the fixture users. It does not check for earlier
// seeding, so a second call on the same store fails with
// CodeDBConstraintViolation. Call it once per fresh store.
func (d *Database) InsertSampleData() error {
	for _, f := range sampleUsers {
		if _, err := d.InsertUser(f.name, f.email, f.role, f.status); err != nil {
			return err
		}
	}
	d.logger.Info("sample data inserted", "users", len(sampleUsers))
	return nil
}

// SampleSize is the number of users InsertSampleData creates.
func SampleSize() int { return len(sampleUsers) }
