// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

// Package database owns the local SQLite store holding user rows.
//
// Every operation runs under one mutex owned by the Database, so reads and
// writes are fully serialized. The *Database is meant to be shared by
// pointer between callers.
package database

import (
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	apperr "github.com/naranyala/webui-starter/pkg/errors"
)

// DefaultPath is used when no path is configured.
const DefaultPath = "./app.db"

const dsnParams = "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

// Database is the single-entity store for users.
type Database struct {
	mu     sync.Mutex
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Option configures a Database at Open time.
type Option func(*Database)

// WithLogger sets the logger used for per-operation debug output.
func WithLogger(l *slog.Logger) Option {
	return func(d *Database) {
		if l != nil {
			d.logger = l
		}
	}
}

// Open opens or creates the store file at path. Any failure to create, open
// or reach the file is reported as CodeDBConnectionFailed.
func Open(path string, opts ...Option) (*Database, error) {
	if path == "" {
		path = DefaultPath
	}

	d := &Database{path: path, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}

	if err := createPrivate(path); err != nil {
		return nil, connectionFailed(path, err)
	}

	db, err := sql.Open("sqlite3", path+dsnParams)
	if err != nil {
		return nil, connectionFailed(path, err)
	}

	// One connection: the mutex already serializes access, and ":memory:"
	// databases are per-connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, connectionFailed(path, err)
	}

	d.db = db
	d.logger.Debug("database opened", "path", path)
	return d, nil
}

// createPrivate creates a missing store file with owner-only permissions so
// sqlite does not create it with the umask default.
func createPrivate(path string) error {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return f.Close()
}

func connectionFailed(path string, err error) *apperr.AppError {
	v := apperr.NewValue(apperr.CodeDBConnectionFailed, "Database connection failed").
		WithCause(err.Error()).
		WithContext("path", path)
	return apperr.Wrap(apperr.KindDatabase, v, err)
}

// Init creates the schema if it does not exist yet. It is safe to call more
// than once. A DDL failure is reported as CodeDBQueryFailed.
func (d *Database) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.db.Exec(schema); err != nil {
		v := apperr.NewValue(apperr.CodeDBQueryFailed, "Schema initialization failed").
			WithCause(err.Error()).
			WithContext("path", d.path)
		return apperr.Wrap(apperr.KindDatabase, v, err)
	}

	d.logger.Debug("database schema ready", "path", d.path)
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL CHECK (length(trim(name)) > 0),
	email      TEXT NOT NULL UNIQUE,
	role       TEXT NOT NULL DEFAULT 'User',
	status     TEXT NOT NULL DEFAULT 'Active',
	created_at TEXT NOT NULL
);
`

// Ping checks that the store is still reachable.
func (d *Database) Ping() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.db.Ping(); err != nil {
		return connectionFailed(d.path, err)
	}
	return nil
}

// Path returns the store file path.
func (d *Database) Path() string { return d.path }

// Close closes the underlying connection.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.db.Close(); err != nil {
		return apperr.FromSQLite(err)
	}
	return nil
}
