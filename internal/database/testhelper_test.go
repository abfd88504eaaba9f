// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naranyala/webui-starter/internal/database"
)

// newTestDB opens an initialized store in a temp directory.
func newTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Init())
	return db
}

func strPtr(s string) *string { return &s }
