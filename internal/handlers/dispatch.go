// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package handlers

import (
	"strconv"
	"strings"

	apperr "github.com/naranyala/webui-starter/pkg/errors"
)

type dispatchFunc func(h *Handlers, function string, args []string) Response

var dispatchers = map[string]dispatchFunc{
	FuncGetUsers: func(h *Handlers, _ string, _ []string) Response {
		return h.GetUsers()
	},
	FuncGetDBStats: func(h *Handlers, _ string, _ []string) Response {
		return h.GetStats()
	},
	FuncGetUser: func(h *Handlers, function string, args []string) Response {
		id, err := parseID(args)
		if err != nil {
			return h.fail(function, err)
		}
		return h.GetUser(id)
	},
	FuncCreateUser: func(h *Handlers, _ string, args []string) Response {
		return h.CreateUser(CreateUserInput{
			Name:   arg(args, 0),
			Email:  arg(args, 1),
			Role:   arg(args, 2),
			Status: arg(args, 3),
		})
	},
	FuncUpdateUser: func(h *Handlers, function string, args []string) Response {
		id, err := parseID(args)
		if err != nil {
			return h.fail(function, err)
		}
		return h.UpdateUser(id, UpdateUserInput{
			Name:   optional(args, 1),
			Email:  optional(args, 2),
			Role:   optional(args, 3),
			Status: optional(args, 4),
		})
	},
	FuncDeleteUser: func(h *Handlers, function string, args []string) Response {
		id, err := parseID(args)
		if err != nil {
			return h.fail(function, err)
		}
		return h.DeleteUser(id)
	},
}

func lookup(function string) *dispatchFunc {
	if fn, ok := dispatchers[function]; ok {
		return &fn
	}
	return nil
}

// Dispatch runs function with arguments taken from a colon-separated element
// name such as "create_user:Ada:ada@example.com:Admin:Active". A leading
// segment equal to function is skipped. For update_user an empty segment
// leaves that field unchanged. An unknown function is CodeResourceNotFound.
func (h *Handlers) Dispatch(function, element string) Response {
	fn, err := apperr.FromOptional(lookup(function), "Function "+function)
	if err != nil {
		return h.fail(function, err)
	}
	return fn(h, function, splitElement(function, element))
}

func splitElement(function, element string) []string {
	if element == "" {
		return nil
	}
	parts := strings.Split(element, ":")
	if parts[0] == function {
		parts = parts[1:]
	}
	return parts
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func optional(args []string, i int) *string {
	s := strings.TrimSpace(arg(args, i))
	if s == "" {
		return nil
	}
	return &s
}

func parseID(args []string) (int64, error) {
	raw := strings.TrimSpace(arg(args, 0))
	if raw == "" {
		return 0, apperr.ValidationFailed("id", "User id is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NewValidation(
			apperr.NewValue(apperr.CodeValidationFailed, "User id must be a positive integer").
				WithField("id").
				WithContext("id", raw),
		)
	}
	return id, nil
}
