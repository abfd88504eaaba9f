// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package errors

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"strconv"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// FromSQLite maps a storage-engine failure onto a database AppError. The code
// is chosen from the engine's reported result code: constraint failures and
// connection failures get their own codes, everything else is a query failure.
// An error that is already an AppError is returned unchanged.
func FromSQLite(err error) *AppError {
	if err == nil {
		return nil
	}
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae
	}

	code := classifySQLite(err)
	v := NewValue(code, sqliteMessage(code)).WithCause(err.Error())

	var sqliteErr sqlite3.Error
	if stderrors.As(err, &sqliteErr) {
		v = v.WithDetails(sqliteErr.ExtendedCode.Error()).
			WithContext("sqlite_code", strconv.Itoa(int(sqliteErr.Code))).
			WithContext("sqlite_extended_code", strconv.Itoa(int(sqliteErr.ExtendedCode)))
	}

	return Wrap(KindDatabase, v, err)
}

func classifySQLite(err error) Code {
	var sqliteErr sqlite3.Error
	if stderrors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			return CodeDBConstraintViolation
		case sqlite3.ErrCantOpen, sqlite3.ErrNotADB, sqlite3.ErrPerm, sqlite3.ErrAuth, sqlite3.ErrReadonly:
			return CodeDBConnectionFailed
		default:
			return CodeDBQueryFailed
		}
	}

	switch {
	case stderrors.Is(err, sql.ErrConnDone), stderrors.Is(err, driver.ErrBadConn):
		return CodeDBConnectionFailed
	case strings.Contains(err.Error(), "constraint failed"):
		// Drivers that flatten the result code still keep SQLite's message.
		return CodeDBConstraintViolation
	case strings.Contains(err.Error(), "unable to open database file"):
		return CodeDBConnectionFailed
	}
	return CodeDBQueryFailed
}

func sqliteMessage(code Code) string {
	switch code {
	case CodeDBConstraintViolation:
		return "Database constraint violated"
	case CodeDBConnectionFailed:
		return "Database connection failed"
	default:
		return "Database query failed"
	}
}

// FromIO maps a filesystem or IO failure onto the logging kind with
// CodeInternal. Path errors contribute their operation and path as context.
func FromIO(err error) *AppError {
	if err == nil {
		return nil
	}
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae
	}

	v := NewValue(CodeInternal, "IO operation failed").WithCause(err.Error())

	var pathErr *fs.PathError
	if stderrors.As(err, &pathErr) {
		v = v.WithContext("op", pathErr.Op).WithContext("path", pathErr.Path)
	}

	return Wrap(KindLogging, v, err)
}

// FromSerialization maps an encoding or decoding failure onto the
// serialization kind. JSON syntax and type errors contribute their position
// and offending field.
func FromSerialization(err error) *AppError {
	if err == nil {
		return nil
	}
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae
	}

	v := NewValue(CodeSerializationFailed, "Serialization failed").WithCause(err.Error())

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.As(err, &syntaxErr):
		v = v.WithContext("offset", strconv.FormatInt(syntaxErr.Offset, 10))
	case stderrors.As(err, &typeErr):
		v = v.WithContext("offset", strconv.FormatInt(typeErr.Offset, 10))
		if typeErr.Field != "" {
			v = v.WithField(typeErr.Field)
		}
	}

	return Wrap(KindSerialization, v, err)
}
