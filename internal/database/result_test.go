// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/naranyala/webui-starter/pkg/errors"
)

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, r.err }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestRowsAffected(t *testing.T) {
	n, err := rowsAffected(fakeResult{rows: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRowsAffected_DriverFailure(t *testing.T) {
	cause := errors.New("no RowsAffected available")

	n, err := rowsAffected(fakeResult{rows: 7, err: cause})
	require.Error(t, err)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, apperr.KindDatabase, apperr.KindOf(err))
	assert.Equal(t, apperr.CodeDBQueryFailed, apperr.CodeOf(err))
	assert.Contains(t, apperr.ValueOf(err).Message(), "counting affected rows")
}
