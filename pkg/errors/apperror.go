// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package errors

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/samber/oops"
)

// Kind tags the broad origin of an AppError. Each kind admits only a fixed
// subset of codes.
type Kind int

const (
	KindDatabase Kind = iota + 1
	KindValidation
	KindNotFound
	KindSerialization
	KindLogging
	// KindUnexpected covers broken invariants such as a poisoned lock.
	KindUnexpected
)

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindDatabase, KindValidation, KindNotFound, KindSerialization, KindLogging, KindUnexpected}
}

func (k Kind) String() string {
	switch k {
	case KindDatabase:
		return "database"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindSerialization:
		return "serialization"
	case KindLogging:
		return "logging"
	case KindUnexpected:
		return "unexpected"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Accepts reports whether code may be wrapped by an AppError of kind k.
func (k Kind) Accepts(code Code) bool {
	switch k {
	case KindDatabase:
		return code == CodeDBQueryFailed || code == CodeDBConnectionFailed || code == CodeDBConstraintViolation
	case KindValidation:
		return code == CodeValidationFailed
	case KindNotFound:
		return code == CodeDBNotFound || code == CodeResourceNotFound
	case KindSerialization:
		return code == CodeSerializationFailed
	case KindLogging, KindUnexpected:
		return code == CodeInternal
	}
	return false
}

// KindFor returns the kind an AppError rebuilt from a decoded Value takes.
// CodeInternal maps to KindUnexpected.
func KindFor(code Code) Kind {
	switch code {
	case CodeDBQueryFailed, CodeDBConnectionFailed, CodeDBConstraintViolation:
		return KindDatabase
	case CodeValidationFailed:
		return KindValidation
	case CodeDBNotFound, CodeResourceNotFound:
		return KindNotFound
	case CodeSerializationFailed:
		return KindSerialization
	}
	return KindUnexpected
}

// AppError is the error type every fallible operation funnels through. It
// wraps exactly one Value and is immutable once built.
type AppError struct {
	kind  Kind
	value Value
	cause error
	err   error
}

// New builds an AppError of the given kind. Pairing a kind with a code outside
// its subset is a programming error and panics.
func New(kind Kind, v Value) *AppError {
	return build(kind, v, nil)
}

// Wrap is New with the underlying failure kept in the error chain, so
// errors.Is and errors.As still reach it.
func Wrap(kind Kind, v Value, cause error) *AppError {
	return build(kind, v, cause)
}

func NewDatabase(v Value) *AppError      { return New(KindDatabase, v) }
func NewValidation(v Value) *AppError    { return New(KindValidation, v) }
func NewNotFound(v Value) *AppError      { return New(KindNotFound, v) }
func NewSerialization(v Value) *AppError { return New(KindSerialization, v) }
func NewLogging(v Value) *AppError       { return New(KindLogging, v) }
func NewUnexpected(v Value) *AppError    { return New(KindUnexpected, v) }

func build(kind Kind, v Value, cause error) *AppError {
	if !kind.Accepts(v.code) {
		panic(fmt.Sprintf("errors: code %s cannot be wrapped as %s", v.code, kind))
	}

	b := oops.Code(string(v.code)).In(kind.String())
	if f, ok := v.Field(); ok {
		b = b.With("field", f)
	}
	for key, val := range v.context {
		b = b.With(key, val)
	}

	var err error
	if cause != nil {
		err = b.Wrapf(cause, "%s", v.message)
	} else {
		err = b.New(v.message)
	}

	return &AppError{kind: kind, value: v, cause: cause, err: err}
}

func (e *AppError) Kind() Kind { return e.kind }
func (e *AppError) Code() Code { return e.value.code }

// ToValue returns the wrapped Value.
func (e *AppError) ToValue() Value { return e.value }

// ToJSON is ToValue().ToResponse().
func (e *AppError) ToJSON() map[string]any { return e.value.ToResponse() }

// WithCause returns a copy with the cause description attached.
func (e *AppError) WithCause(cause string) *AppError {
	return build(e.kind, e.value.WithCause(cause), e.cause)
}

// WithContext returns a copy with one more context entry.
func (e *AppError) WithContext(key, value string) *AppError {
	return build(e.kind, e.value.WithContext(key, value), e.cause)
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.value.code, e.value.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.value.code, e.value.message)
}

// Unwrap exposes the oops error, which in turn wraps the original cause.
func (e *AppError) Unwrap() error { return e.err }

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.value)
}

func (e *AppError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("code", string(e.value.code)),
		slog.String("kind", e.kind.String()),
		slog.String("message", e.value.message),
	}
	if f, ok := e.value.Field(); ok {
		attrs = append(attrs, slog.String("field", f))
	}
	if c, ok := e.value.Cause(); ok {
		attrs = append(attrs, slog.String("cause", c))
	} else if e.cause != nil {
		attrs = append(attrs, slog.String("cause", e.cause.Error()))
	}
	return slog.GroupValue(attrs...)
}
