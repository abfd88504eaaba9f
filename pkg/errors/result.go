// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package errors

import "fmt"

// FromOptional turns an optional value into a result. A nil pointer becomes a
// resource-not-found failure described by context.
func FromOptional[T any](value *T, context string) (T, error) {
	if value == nil {
		var zero T
		return zero, NewNotFound(NewValue(CodeResourceNotFound, fmt.Sprintf("%s: not found", context)))
	}
	return *value, nil
}

// FromFallible passes a successful value through unchanged. A failure becomes
// a database AppError whose message joins context with the failure text.
func FromFallible[T any](value T, err error, context string) (T, error) {
	if err == nil {
		return value, nil
	}
	var zero T
	v := NewValue(CodeDBQueryFailed, fmt.Sprintf("%s: %v", context, err)).WithCause(err.Error())
	return zero, Wrap(KindDatabase, v, err)
}
