// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/naranyala/webui-starter/internal/database"
	"github.com/naranyala/webui-starter/internal/handlers"
	apperr "github.com/naranyala/webui-starter/pkg/errors"
	"github.com/naranyala/webui-starter/pkg/health"
)

func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"system"},
	}, s.handleHealth)

	// User endpoints
	huma.Register(s.api, huma.Operation{
		OperationID: "list-users",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Tags:        []string{"users"},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-user",
		Method:        http.MethodPost,
		Path:          "/api/v1/users",
		Summary:       "Create a user",
		Tags:          []string{"users"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-user",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get a user",
		Tags:        []string{"users"},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-user",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/{id}",
		Summary:     "Update selected user fields",
		Tags:        []string{"users"},
	}, s.handleUpdateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-user",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/{id}",
		Summary:     "Delete a user",
		Tags:        []string{"users"},
	}, s.handleDeleteUser)

	// Stats endpoint
	huma.Register(s.api, huma.Operation{
		OperationID: "get-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats",
		Summary:     "User store statistics",
		Tags:        []string{"system"},
	}, s.handleStats)

	// Element-name calls, answered with the handler envelope
	huma.Register(s.api, huma.Operation{
		OperationID: "call-function",
		Method:      http.MethodPost,
		Path:        "/api/v1/call/{function}",
		Summary:     "Call a UI handler by name",
		Description: "Runs a handler with colon-separated arguments and returns its response envelope. Failures are reported inside the envelope with status 200.",
		Tags:        []string{"bridge"},
	}, s.handleCall)
}

// --- Request/Response types for huma ---

type healthOutput struct {
	Body health.Report
}

type userIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"User id"`
}

type listUsersOutput struct {
	Body []database.User
}

type userOutput struct {
	Body *database.User
}

type createUserInput struct {
	Body handlers.CreateUserInput
}

type createUserOutput struct {
	Body struct {
		ID int64 `json:"id" doc:"Assigned user id"`
	}
}

type updateUserInput struct {
	ID   int64 `path:"id" minimum:"1" doc:"User id"`
	Body handlers.UpdateUserInput
}

type rowsOutput struct {
	Body struct {
		RowsAffected int64 `json:"rows_affected"`
	}
}

type statsOutput struct {
	Body database.Stats
}

type callInput struct {
	Function string `path:"function" doc:"Handler name, e.g. create_user"`
	Body     struct {
		Element string `json:"element,omitempty" doc:"Colon-separated element name, e.g. create_user:Ada:ada@example.com"`
	} `required:"false"`
}

type callOutput struct {
	Body handlers.Response
}

func (s *Server) handleHealth(_ context.Context, _ *struct{}) (*healthOutput, error) {
	dbOK := s.db != nil && s.db.Ping() == nil

	var total int64
	if dbOK && s.handlers != nil {
		if stats, ok := s.handlers.GetStats().Data.(database.Stats); ok {
			total = stats.TotalUsers
		}
	}

	return &healthOutput{Body: health.NewReport(s.cfg.Version, dbOK, total, time.Now())}, nil
}

func (s *Server) requireHandlers(ctx context.Context, op string) error {
	if s.handlers == nil {
		return s.fail(ctx, op, apperr.Internal("handlers not configured"))
	}
	return nil
}

func (s *Server) handleListUsers(ctx context.Context, _ *struct{}) (*listUsersOutput, error) {
	if err := s.requireHandlers(ctx, handlers.FuncGetUsers); err != nil {
		return nil, err
	}
	resp := s.handlers.GetUsers()
	if resp.Error != nil {
		return nil, s.fail(ctx, handlers.FuncGetUsers, resp.Err())
	}
	users, _ := resp.Data.([]database.User)
	return &listUsersOutput{Body: users}, nil
}

func (s *Server) handleCreateUser(ctx context.Context, input *createUserInput) (*createUserOutput, error) {
	if err := s.requireHandlers(ctx, handlers.FuncCreateUser); err != nil {
		return nil, err
	}
	resp := s.handlers.CreateUser(input.Body)
	if resp.Error != nil {
		return nil, s.fail(ctx, handlers.FuncCreateUser, resp.Err())
	}
	out := &createUserOutput{}
	out.Body.ID, _ = resp.Data.(int64)
	return out, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *userIDInput) (*userOutput, error) {
	if err := s.requireHandlers(ctx, handlers.FuncGetUser); err != nil {
		return nil, err
	}
	resp := s.handlers.GetUser(input.ID)
	if resp.Error != nil {
		return nil, s.fail(ctx, handlers.FuncGetUser, resp.Err())
	}
	u, _ := resp.Data.(*database.User)
	return &userOutput{Body: u}, nil
}

func (s *Server) handleUpdateUser(ctx context.Context, input *updateUserInput) (*rowsOutput, error) {
	if err := s.requireHandlers(ctx, handlers.FuncUpdateUser); err != nil {
		return nil, err
	}
	return s.rows(ctx, handlers.FuncUpdateUser, input.ID, s.handlers.UpdateUser(input.ID, input.Body))
}

func (s *Server) handleDeleteUser(ctx context.Context, input *userIDInput) (*rowsOutput, error) {
	if err := s.requireHandlers(ctx, handlers.FuncDeleteUser); err != nil {
		return nil, err
	}
	return s.rows(ctx, handlers.FuncDeleteUser, input.ID, s.handlers.DeleteUser(input.ID))
}

// rows answers a mutation by id. Zero rows affected is a 404 here, though the
// handler envelope reports it as a plain 0.
func (s *Server) rows(ctx context.Context, op string, id int64, resp handlers.Response) (*rowsOutput, error) {
	if resp.Error != nil {
		return nil, s.fail(ctx, op, resp.Err())
	}
	n, _ := resp.Data.(int64)
	if n == 0 {
		return nil, s.fail(ctx, op, apperr.DBNotFound("User", id))
	}
	out := &rowsOutput{}
	out.Body.RowsAffected = n
	return out, nil
}

func (s *Server) handleStats(ctx context.Context, _ *struct{}) (*statsOutput, error) {
	if err := s.requireHandlers(ctx, handlers.FuncGetDBStats); err != nil {
		return nil, err
	}
	stats, _ := s.handlers.GetStats().Data.(database.Stats)
	return &statsOutput{Body: stats}, nil
}

func (s *Server) handleCall(ctx context.Context, input *callInput) (*callOutput, error) {
	if err := s.requireHandlers(ctx, input.Function); err != nil {
		return nil, err
	}
	resp := s.handlers.Dispatch(input.Function, input.Body.Element)
	if resp.Error != nil {
		v := resp.Error.WithContext("error_id", newErrorID())
		resp.Error = &v
	}
	return &callOutput{Body: resp}, nil
}
