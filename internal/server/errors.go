// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	apperr "github.com/naranyala/webui-starter/pkg/errors"
)

func init() {
	huma.NewError = newHumaError
}

// apiError writes an error in its ErrorValue wire form with the status
// derived from its code.
type apiError struct {
	status int
	value  apperr.Value
}

func (e *apiError) Error() string  { return e.value.String() }
func (e *apiError) GetStatus() int { return e.status }

func (e *apiError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.value)
}

// Schema documents the wire form in the OpenAPI document.
func (e *apiError) Schema(_ huma.Registry) *huma.Schema {
	codes := make([]any, 0, len(apperr.Codes()))
	for _, c := range apperr.Codes() {
		codes = append(codes, c.String())
	}
	str := &huma.Schema{Type: huma.TypeString}
	return &huma.Schema{
		Type: huma.TypeObject,
		Properties: map[string]*huma.Schema{
			"code":    {Type: huma.TypeString, Enum: codes},
			"message": str,
			"details": str,
			"field":   str,
			"cause":   str,
			"context": {Type: huma.TypeObject, AdditionalProperties: str},
		},
		Required: []string{"code", "message"},
	}
}

// newHumaError replaces huma's problem+json errors so request validation
// failures use the same wire form as handler failures.
func newHumaError(status int, msg string, errs ...error) huma.StatusError {
	code := apperr.CodeInternal
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		code = apperr.CodeValidationFailed
	case http.StatusNotFound:
		code = apperr.CodeResourceNotFound
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	v := apperr.NewValue(code, msg)

	var details []string
	for _, err := range errs {
		if err == nil {
			continue
		}
		details = append(details, err.Error())
		var d *huma.ErrorDetail
		if _, ok := v.Field(); !ok && errors.As(err, &d) && d.Location != "" {
			v = v.WithField(trimLocation(d.Location))
		}
	}
	if len(details) > 0 {
		v = v.WithDetails(strings.Join(details, "; "))
	}

	return &apiError{status: status, value: v}
}

// trimLocation turns huma's "body.email" or "path.id" into the field name.
func trimLocation(loc string) string {
	for _, prefix := range []string{"body.", "path.", "query.", "header."} {
		if strings.HasPrefix(loc, prefix) {
			return strings.TrimPrefix(loc, prefix)
		}
	}
	return loc
}

// fail logs err under a fresh error id and returns it as an API error. The
// id is added to the error's context so UI reports can be matched to logs.
func (s *Server) fail(ctx context.Context, op string, err error) error {
	id := newErrorID()
	v := apperr.ValueOf(err).WithContext("error_id", id)
	s.logger.WarnContext(ctx, "request failed", "op", op, "error_id", id, "kind", apperr.KindOf(err).String(), "error", err)
	return &apiError{status: apperr.HTTPStatus(err), value: v}
}

func newErrorID() string { return uuid.NewString() }
