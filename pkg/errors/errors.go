// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/samber/oops"
)

// As finds the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError or coded oops error in the
// chain, or "" when none is found.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}

	if ae, ok := As(err); ok {
		return ae.Code()
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}

	switch code := oopsErr.Code().(type) {
	case Code:
		return code
	case string:
		return Code(code)
	case nil:
		return ""
	default:
		return Code(fmt.Sprintf("%v", code))
	}
}

// KindOf returns the kind of the first AppError in the chain, or 0.
func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind()
	}
	return 0
}

// ValueOf projects any error onto a wire Value. Errors that never went
// through this package are reported as CodeInternal.
func ValueOf(err error) Value {
	if err == nil {
		return Value{}
	}
	if ae, ok := As(err); ok {
		return ae.ToValue()
	}
	if code := CodeOf(err); code.Valid() {
		return NewValue(code, err.Error())
	}
	return NewValue(CodeInternal, err.Error())
}

func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

func IsNotFound(err error) bool {
	code := CodeOf(err)
	return code == CodeDBNotFound || code == CodeResourceNotFound
}

func IsConflict(err error) bool {
	return HasCode(err, CodeDBConstraintViolation)
}

func IsInvalidInput(err error) bool {
	code := CodeOf(err)
	return code == CodeValidationFailed || code == CodeSerializationFailed
}

// HTTPStatus maps an error onto the status the bridge answers with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsNotFound(err):
		return http.StatusNotFound
	case IsConflict(err):
		return http.StatusConflict
	case HasCode(err, CodeValidationFailed):
		return http.StatusBadRequest
	case HasCode(err, CodeSerializationFailed):
		return http.StatusUnprocessableEntity
	case HasCode(err, CodeDBConnectionFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
