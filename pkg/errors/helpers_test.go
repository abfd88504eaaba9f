// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package errors_test

import (
	stderrors "errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/naranyala/webui-starter/pkg/errors"
)

func TestDBNotFound(t *testing.T) {
	err := apperr.DBNotFound("User", 123)

	assert.Equal(t, apperr.KindNotFound, err.Kind())
	assert.Equal(t, apperr.CodeDBNotFound, err.Code())
	assert.Equal(t, "User not found: 123", err.ToValue().Message())
}

func TestValidationFailedHelper(t *testing.T) {
	err := apperr.ValidationFailed("email", "Must be valid email format")

	assert.Equal(t, apperr.KindValidation, err.Kind())
	v := err.ToValue()
	assert.Equal(t, apperr.CodeValidationFailed, v.Code())
	assert.Equal(t, "Must be valid email format", v.Message())
	field, ok := v.Field()
	assert.True(t, ok)
	assert.Equal(t, "email", field)
}

func TestNotFoundHelper(t *testing.T) {
	err := apperr.NotFound("Product", "SKU-123")

	assert.Equal(t, apperr.KindNotFound, err.Kind())
	assert.Equal(t, apperr.CodeResourceNotFound, err.Code())
	assert.Equal(t, "Product not found: SKU-123", err.ToValue().Message())
}

func TestInternalHelper(t *testing.T) {
	err := apperr.Internal("Unexpected state")

	assert.Equal(t, apperr.KindUnexpected, err.Kind())
	v := err.ToValue()
	assert.Equal(t, apperr.CodeInternal, v.Code())
	assert.Equal(t, "Unexpected state", v.Message())
	assert.Equal(t, map[string]any{"code": "INTERNAL_ERROR", "message": "Unexpected state"}, v.ToResponse())
}

// ---------------------------------------------------------------------------
// Result adapters
// ---------------------------------------------------------------------------

func TestFromOptionalPresent(t *testing.T) {
	n := 42
	got, err := apperr.FromOptional(&n, "Expected value")
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestFromOptionalAbsent(t *testing.T) {
	got, err := apperr.FromOptional[int](nil, "Expected value")
	require.Error(t, err)
	assert.Zero(t, got)

	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindNotFound, ae.Kind())
	assert.Equal(t, apperr.CodeResourceNotFound, ae.Code())
	assert.Contains(t, ae.ToValue().Message(), "Expected value")
}

func TestFromFallibleSuccess(t *testing.T) {
	got, err := apperr.FromFallible(42, nil, "Database operation")
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestFromFallibleFailure(t *testing.T) {
	cause := &os.PathError{Op: "read", Path: "app.db", Err: stderrors.New("IO failed")}

	got, err := apperr.FromFallible(42, error(cause), "Database operation")
	require.Error(t, err)
	assert.Zero(t, got)

	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindDatabase, ae.Kind())
	assert.Equal(t, apperr.CodeDBQueryFailed, ae.Code())
	assert.Contains(t, ae.ToValue().Message(), "Database operation")
	assert.Contains(t, ae.ToValue().Message(), "IO failed")
	assert.ErrorIs(t, err, cause)
}
