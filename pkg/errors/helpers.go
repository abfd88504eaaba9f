// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package errors

import "fmt"

// DBNotFound reports that a store lookup for entity by key found nothing.
func DBNotFound(entity string, key any) *AppError {
	return NewNotFound(NewValue(CodeDBNotFound, fmt.Sprintf("%s not found: %v", entity, key)))
}

// ValidationFailed reports that the named input field failed a precondition.
func ValidationFailed(field, message string) *AppError {
	return NewValidation(NewValue(CodeValidationFailed, message).WithField(field))
}

// NotFound reports that a higher-level resource lookup failed.
func NotFound(entity string, key any) *AppError {
	return NewNotFound(NewValue(CodeResourceNotFound, fmt.Sprintf("%s not found: %v", entity, key)))
}

// Internal reports a condition the system cannot attribute to any other
// category.
func Internal(message string) *AppError {
	return NewUnexpected(NewValue(CodeInternal, message))
}
