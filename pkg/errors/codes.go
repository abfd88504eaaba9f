// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package errors

import "fmt"

// Code is the machine-readable category of a failure. Its string form is the
// canonical wire token; callers branch on it and never on message text.
type Code string

const (
	// Storage codes.

	// CodeDBNotFound means a lookup by id or key found no row.
	CodeDBNotFound Code = "DB_NOT_FOUND"
	// CodeDBQueryFailed means a storage operation failed for a reason other
	// than a constraint or the connection.
	CodeDBQueryFailed Code = "DB_QUERY_FAILED"
	// CodeDBConnectionFailed means the store could not be opened or reached.
	CodeDBConnectionFailed Code = "DB_CONNECTION_FAILED"
	// CodeDBConstraintViolation means a uniqueness or integrity rule was broken.
	CodeDBConstraintViolation Code = "DB_CONSTRAINT_VIOLATION"

	// Input codes.

	// CodeValidationFailed means caller input failed a precondition.
	CodeValidationFailed Code = "VALIDATION_FAILED"

	// CodeResourceNotFound means a higher-level lookup failed.
	CodeResourceNotFound Code = "RESOURCE_NOT_FOUND"

	// CodeSerializationFailed means encoding or decoding a payload failed.
	CodeSerializationFailed Code = "SERIALIZATION_FAILED"

	// CodeInternal covers anything not attributable to the codes above,
	// including filesystem faults.
	CodeInternal Code = "INTERNAL_ERROR"
)

var knownCodes = map[Code]struct{}{
	CodeDBNotFound:            {},
	CodeDBQueryFailed:         {},
	CodeDBConnectionFailed:    {},
	CodeDBConstraintViolation: {},
	CodeValidationFailed:      {},
	CodeResourceNotFound:      {},
	CodeSerializationFailed:   {},
	CodeInternal:              {},
}

// Codes returns every known code.
func Codes() []Code {
	return []Code{
		CodeDBNotFound,
		CodeDBQueryFailed,
		CodeDBConnectionFailed,
		CodeDBConstraintViolation,
		CodeValidationFailed,
		CodeResourceNotFound,
		CodeSerializationFailed,
		CodeInternal,
	}
}

func (c Code) String() string { return string(c) }

// Valid reports whether c is one of the known codes.
func (c Code) Valid() bool {
	_, ok := knownCodes[c]
	return ok
}

func (c Code) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, unknownCode(string(c))
	}
	return []byte(c), nil
}

// UnmarshalText rejects tokens outside the closed set with a serialization
// failure pointing at the code field.
func (c *Code) UnmarshalText(text []byte) error {
	code := Code(text)
	if !code.Valid() {
		return unknownCode(string(text))
	}
	*c = code
	return nil
}

func unknownCode(token string) *AppError {
	return NewSerialization(
		NewValue(CodeSerializationFailed, fmt.Sprintf("unknown error code %q", token)).
			WithField("code"),
	)
}
