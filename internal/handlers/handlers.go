// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

// Package handlers implements the request handlers the UI calls. Each
// handler returns a Response envelope carrying either data or an error in
// its wire form; handlers never return a Go error to the caller.
package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/naranyala/webui-starter/internal/database"
	apperr "github.com/naranyala/webui-starter/pkg/errors"
)

// Function names the UI binds to.
const (
	FuncGetUsers   = "get_users"
	FuncGetUser    = "get_user"
	FuncCreateUser = "create_user"
	FuncUpdateUser = "update_user"
	FuncDeleteUser = "delete_user"
	FuncGetDBStats = "get_db_stats"
)

// Defaults applied by create_user when the caller leaves role or status out.
const (
	DefaultRole   = "User"
	DefaultStatus = "Active"
)

var eventNames = map[string]string{
	FuncGetUsers:   "db_response",
	FuncCreateUser: "user_create_response",
	FuncUpdateUser: "user_update_response",
	FuncDeleteUser: "user_delete_response",
	FuncGetDBStats: "stats_response",
}

// EventName returns the event a response to function is published under.
func EventName(function string) string {
	if e, ok := eventNames[function]; ok {
		return e
	}
	return function + "_response"
}

// Functions lists every function Dispatch accepts.
func Functions() []string {
	return []string{FuncGetUsers, FuncGetUser, FuncCreateUser, FuncUpdateUser, FuncDeleteUser, FuncGetDBStats}
}

// UserStore is the subset of the database the handlers use.
type UserStore interface {
	InsertUser(name, email, role, status string) (int64, error)
	GetAllUsers() ([]database.User, error)
	GetUserByID(id int64) (*database.User, error)
	UpdateUser(id int64, patch database.UserPatch) (int64, error)
	DeleteUser(id int64) (int64, error)
	GetStats() database.Stats
}

// Response is the envelope pushed back to the UI.
type Response struct {
	Event   string        `json:"event"`
	Success bool          `json:"success"`
	Data    any           `json:"data,omitempty"`
	Error   *apperr.Value `json:"error,omitempty"`
}

// Err returns the failure carried by r, or nil.
func (r Response) Err() error {
	if r.Error == nil {
		return nil
	}
	return apperr.New(apperr.KindFor(r.Error.Code()), *r.Error)
}

// Handlers serves UI calls against a UserStore.
type Handlers struct {
	store  UserStore
	logger *slog.Logger
}

// New returns handlers backed by store. A nil logger uses slog.Default.
func New(store UserStore, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{store: store, logger: logger}
}

func (h *Handlers) ok(function string, data any) Response {
	return Response{Event: EventName(function), Success: true, Data: data}
}

// fail logs caller mistakes (bad input, missing rows) at warn and everything
// else at error.
func (h *Handlers) fail(function string, err error) Response {
	v := apperr.ValueOf(err)
	level := slog.LevelError
	if apperr.IsInvalidInput(err) || apperr.IsNotFound(err) {
		level = slog.LevelWarn
	}
	h.logger.Log(context.Background(), level, "handler failed", "function", function, "error", err)
	return Response{Event: EventName(function), Error: &v}
}

// CreateUserInput carries create_user arguments. Empty Role and Status take
// DefaultRole and DefaultStatus.
type CreateUserInput struct {
	Name   string `json:"name" doc:"Display name" minLength:"1"`
	Email  string `json:"email" doc:"Unique email address" minLength:"1"`
	Role   string `json:"role,omitempty" doc:"Role, defaults to User"`
	Status string `json:"status,omitempty" doc:"Status, defaults to Active"`
}

// UpdateUserInput carries update_user arguments. Nil fields are left as
// stored.
type UpdateUserInput struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Role   *string `json:"role,omitempty"`
	Status *string `json:"status,omitempty"`
}

// GetUsers returns every user, ordered by id.
func (h *Handlers) GetUsers() Response {
	users, err := h.store.GetAllUsers()
	if err != nil {
		return h.fail(FuncGetUsers, err)
	}
	return h.ok(FuncGetUsers, users)
}

// GetUser returns one user. A missing id is reported as CodeDBNotFound.
func (h *Handlers) GetUser(id int64) Response {
	u, err := h.store.GetUserByID(id)
	if err != nil {
		return h.fail(FuncGetUser, err)
	}
	if u == nil {
		return h.fail(FuncGetUser, apperr.DBNotFound("User", id))
	}
	return h.ok(FuncGetUser, u)
}

// CreateUser inserts a user and returns its id as data.
func (h *Handlers) CreateUser(in CreateUserInput) Response {
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = DefaultRole
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = DefaultStatus
	}

	id, err := h.store.InsertUser(strings.TrimSpace(in.Name), strings.TrimSpace(in.Email), role, status)
	if err != nil {
		return h.fail(FuncCreateUser, err)
	}
	h.logger.Info("user created", "id", id)
	return h.ok(FuncCreateUser, id)
}

// UpdateUser applies in to the user and returns the rows affected as data.
// An absent id yields 0, not an error.
func (h *Handlers) UpdateUser(id int64, in UpdateUserInput) Response {
	n, err := h.store.UpdateUser(id, database.UserPatch{
		Name:   in.Name,
		Email:  in.Email,
		Role:   in.Role,
		Status: in.Status,
	})
	if err != nil {
		return h.fail(FuncUpdateUser, err)
	}
	h.logger.Info("user updated", "id", id, "rows", n)
	return h.ok(FuncUpdateUser, n)
}

// DeleteUser removes the user and returns the rows affected as data.
func (h *Handlers) DeleteUser(id int64) Response {
	n, err := h.store.DeleteUser(id)
	if err != nil {
		return h.fail(FuncDeleteUser, err)
	}
	h.logger.Info("user deleted", "id", id, "rows", n)
	return h.ok(FuncDeleteUser, n)
}

// GetStats returns the current aggregate.
func (h *Handlers) GetStats() Response {
	return h.ok(FuncGetDBStats, h.store.GetStats())
}
