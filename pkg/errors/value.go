// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package errors

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Value is the structured, wire-serializable payload carried by every
// AppError. Code and message are always set; the optional fields stay absent
// until attached. The With* methods return a new Value and never touch the
// receiver, so a Value can be shared between goroutines freely.
type Value struct {
	code    Code
	message string
	details *string
	field   *string
	cause   *string
	context map[string]string
}

// NewValue builds a Value with every optional field absent. An empty message
// falls back to the code token so the message is never blank on the wire.
func NewValue(code Code, message string) Value {
	if message == "" {
		message = string(code)
	}
	return Value{code: code, message: message}
}

func (v Value) Code() Code      { return v.code }
func (v Value) Message() string { return v.message }

// Details returns the attached details and whether they were attached.
func (v Value) Details() (string, bool) { return deref(v.details) }

// Field returns the name of the offending input field, if attached.
func (v Value) Field() (string, bool) { return deref(v.field) }

// Cause returns the lower-level failure description, if attached.
func (v Value) Cause() (string, bool) { return deref(v.cause) }

// Context returns a copy of the context entries, or nil when none exist.
func (v Value) Context() map[string]string {
	if len(v.context) == 0 {
		return nil
	}
	return maps.Clone(v.context)
}

func (v Value) WithDetails(details string) Value {
	v.details = &details
	return v
}

func (v Value) WithField(name string) Value {
	v.field = &name
	return v
}

func (v Value) WithCause(cause string) Value {
	v.cause = &cause
	return v
}

// WithContext merges one entry; a later value for the same key wins.
func (v Value) WithContext(key, value string) Value {
	ctx := make(map[string]string, len(v.context)+1)
	maps.Copy(ctx, v.context)
	ctx[key] = value
	v.context = ctx
	return v
}

// ToResponse produces the JSON-shaped wire object. Absent optional fields are
// left out entirely rather than written as null.
func (v Value) ToResponse() map[string]any {
	resp := map[string]any{
		"code":    string(v.code),
		"message": v.message,
	}
	if v.details != nil {
		resp["details"] = *v.details
	}
	if v.field != nil {
		resp["field"] = *v.field
	}
	if v.cause != nil {
		resp["cause"] = *v.cause
	}
	if len(v.context) > 0 {
		resp["context"] = maps.Clone(v.context)
	}
	return resp
}

func (v Value) String() string {
	if f, ok := v.Field(); ok {
		return fmt.Sprintf("[%s] %s (field %s)", v.code, v.message, f)
	}
	return fmt.Sprintf("[%s] %s", v.code, v.message)
}

type wireValue struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Details *string           `json:"details,omitempty"`
	Field   *string           `json:"field,omitempty"`
	Cause   *string           `json:"cause,omitempty"`
	Context map[string]string `json:"context,omitempty"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireValue{
		Code:    v.code,
		Message: v.message,
		Details: v.details,
		Field:   v.field,
		Cause:   v.cause,
		Context: v.context,
	})
}

// UnmarshalJSON decodes the wire form. Fields missing from the input decode
// to absent; an unknown code token or a missing message is rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return FromSerialization(err)
	}
	if !w.Code.Valid() {
		return NewSerialization(NewValue(CodeSerializationFailed, "error value: code is required").WithField("code"))
	}
	if w.Message == "" {
		return NewSerialization(
			NewValue(CodeSerializationFailed, "error value: message is required").
				WithField("message").
				WithContext("code", string(w.Code)),
		)
	}
	*v = Value{
		code:    w.Code,
		message: w.Message,
		details: w.Details,
		field:   w.Field,
		cause:   w.Cause,
	}
	if len(w.Context) > 0 {
		v.context = w.Context
	}
	return nil
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
