// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package database

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	apperr "github.com/naranyala/webui-starter/pkg/errors"
)

// User is the only persisted entity.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// UserPatch lists the fields an update replaces. A nil field keeps the stored
// value.
type UserPatch struct {
	Name   *string
	Email  *string
	Role   *string
	Status *string
}

// InsertUser stores a new user and returns the id assigned by the store.
func (d *Database) InsertUser(name, email, role, status string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, apperr.ValidationFailed("name", "Name is required")
	}
	if strings.TrimSpace(email) == "" {
		return 0, apperr.ValidationFailed("email", "Email is required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	const q = `INSERT INTO users (name, email, role, status, created_at) VALUES (?, ?, ?, ?, ?)`
	res, err := d.db.Exec(q, name, email, role, status, formatTime(time.Now()))
	if err != nil {
		return 0, storeError(err, email)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperr.FromFallible(id, err, "reading inserted user id")
	}

	d.logger.Debug("user inserted", "id", id, "email", email)
	return id, nil
}

// GetAllUsers returns every user ordered by ascending id. An empty store
// yields an empty, non-nil slice.
func (d *Database) GetAllUsers() ([]User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	const q = `SELECT id, name, email, role, status, created_at FROM users ORDER BY id ASC`
	rows, err := d.db.Query(q)
	if err != nil {
		return nil, apperr.FromSQLite(err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperr.FromSQLite(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.FromSQLite(err)
	}

	return users, nil
}

// GetUserByID returns the user with the given id, or nil when there is none.
// Absence is not an error.
func (d *Database) GetUserByID(id int64) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	const q = `SELECT id, name, email, role, status, created_at FROM users WHERE id = ?`
	u, err := scanUser(d.db.QueryRow(q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.FromSQLite(err)
	}
	return &u, nil
}

// UpdateUser replaces the fields set in patch and returns the number of rows
// affected: 0 when id does not exist, 1 otherwise.
func (d *Database) UpdateUser(id int64, patch UserPatch) (int64, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return 0, apperr.ValidationFailed("name", "Name must not be empty")
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) == "" {
		return 0, apperr.ValidationFailed("email", "Email must not be empty")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	const q = `UPDATE users SET
	name   = COALESCE(?, name),
	email  = COALESCE(?, email),
	role   = COALESCE(?, role),
	status = COALESCE(?, status)
WHERE id = ?`

	res, err := d.db.Exec(q,
		nullString(patch.Name),
		nullString(patch.Email),
		nullString(patch.Role),
		nullString(patch.Status),
		id,
	)
	if err != nil {
		email := ""
		if patch.Email != nil {
			email = *patch.Email
		}
		return 0, storeError(err, email)
	}

	n, err := rowsAffected(res)
	if err != nil {
		return 0, err
	}

	d.logger.Debug("user updated", "id", id, "rows", n)
	return n, nil
}

// DeleteUser removes the user and returns the number of rows affected.
// A missing id is not an error.
func (d *Database) DeleteUser(id int64) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	res, err := d.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, apperr.FromSQLite(err)
	}

	n, err := rowsAffected(res)
	if err != nil {
		return 0, err
	}

	d.logger.Debug("user deleted", "id", id, "rows", n)
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	var createdAt string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &createdAt); err != nil {
		return User{}, err
	}
	u.CreatedAt = parseTime(createdAt)
	return u, nil
}

// storeError converts a write failure, pointing unique-email violations at
// the email field.
func storeError(err error, email string) *apperr.AppError {
	ae := apperr.FromSQLite(err)
	if ae.Code() != apperr.CodeDBConstraintViolation || !strings.Contains(err.Error(), "users.email") {
		return ae
	}

	v := ae.ToValue().WithField("email")
	if email != "" {
		v = v.WithContext("email", email)
	}
	return apperr.Wrap(apperr.KindDatabase, v, err)
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.FromFallible(n, err, "counting affected rows")
	}
	return n, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// formatTime serialises a time.Time to RFC3339 in UTC.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime deserialises a time string stored in the database.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
