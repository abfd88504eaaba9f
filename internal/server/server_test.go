// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naranyala/webui-starter/internal/database"
	"github.com/naranyala/webui-starter/internal/handlers"
	"github.com/naranyala/webui-starter/internal/server"
	apperr "github.com/naranyala/webui-starter/pkg/errors"
)

type testEnv struct {
	srv  *server.Server
	db   *database.Database
	logs *bytes.Buffer
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "bridge.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Init())

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	srv, err := server.New(server.Config{
		ListenAddr: "127.0.0.1:0",
		Version:    "9.9.9",
		Logger:     logger,
	}, handlers.New(db, logger), db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	return &testEnv{srv: srv, db: db, logs: &logs}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestServer_New_EmptyListenAddr(t *testing.T) {
	_, err := server.New(server.Config{}, nil, nil)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidationFailed), "got %s", apperr.CodeOf(err))
	field, _ := apperr.ValueOf(err).Field()
	assert.Equal(t, "server.listen", field)
}

func TestServer_HealthEndpoint(t *testing.T) {
	env := newTestServer(t)
	require.NoError(t, env.db.InsertSampleData())

	w := env.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "9.9.9", body["version"])
	assert.Equal(t, true, body["database"])
	assert.Equal(t, float64(database.SampleSize()), body["total_users"])
}

func TestServer_HealthWithoutStore(t *testing.T) {
	srv, err := server.New(server.Config{ListenAddr: "127.0.0.1:0"}, nil, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "degraded", decode(t, w)["status"])
}

func TestServer_OpenAPISpec(t *testing.T) {
	env := newTestServer(t)

	w := env.do(t, http.MethodGet, "/openapi.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "openapi")

	body := w.Body.String()
	for _, path := range []string{"/health", "/api/v1/users", "/api/v1/users/{id}", "/api/v1/stats", "/api/v1/call/{function}"} {
		assert.Contains(t, body, path)
	}
	assert.Contains(t, body, "DB_CONSTRAINT_VIOLATION")
}

func TestServer_UserLifecycle(t *testing.T) {
	env := newTestServer(t)

	w := env.do(t, http.MethodPost, "/api/v1/users", `{"name":"Test User","email":"test@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := int64(decode(t, w)["id"].(float64))
	assert.Greater(t, id, int64(0))

	w = env.do(t, http.MethodGet, "/api/v1/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	var users []database.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "Test User", users[0].Name)
	assert.Equal(t, "User", users[0].Role)
	assert.Equal(t, "Active", users[0].Status)

	path := "/api/v1/users/" + itoa(id)
	w = env.do(t, http.MethodPatch, path, `{"role":"Admin"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1), decode(t, w)["rows_affected"])

	w = env.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)
	assert.Equal(t, "Admin", got["role"])
	assert.Equal(t, "test@example.com", got["email"])

	w = env.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "DB_NOT_FOUND", decode(t, w)["code"])
}

func TestServer_EmptyListIsArray(t *testing.T) {
	env := newTestServer(t)

	w := env.do(t, http.MethodGet, "/api/v1/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestServer_DuplicateEmailIsConflict(t *testing.T) {
	env := newTestServer(t)

	body := `{"name":"A","email":"unique@example.com"}`
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/v1/users", body).Code)

	w := env.do(t, http.MethodPost, "/api/v1/users", body)
	require.Equal(t, http.StatusConflict, w.Code)

	got := decode(t, w)
	assert.Equal(t, "DB_CONSTRAINT_VIOLATION", got["code"])
	assert.Equal(t, "email", got["field"])

	ctx, ok := got["context"].(map[string]any)
	require.True(t, ok)
	errorID, _ := ctx["error_id"].(string)
	assert.Len(t, errorID, 36)
	assert.Contains(t, env.logs.String(), errorID)
	assert.Contains(t, env.logs.String(), " kind=database")
}

func TestServer_MissingIDIsNotFound(t *testing.T) {
	env := newTestServer(t)

	w := env.do(t, http.MethodDelete, "/api/v1/users/42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "DB_NOT_FOUND", decode(t, w)["code"])

	w = env.do(t, http.MethodPatch, "/api/v1/users/42", `{"name":"X"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_RequestValidationUsesWireForm(t *testing.T) {
	env := newTestServer(t)

	w := env.do(t, http.MethodPost, "/api/v1/users", `{"name":"","email":"x@example.com"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	got := decode(t, w)
	assert.Equal(t, "VALIDATION_FAILED", got["code"])
	assert.Equal(t, "name", got["field"])
	assert.NotEmpty(t, got["message"])

	w = env.do(t, http.MethodGet, "/api/v1/users/0", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "id", decode(t, w)["field"])
}

func TestServer_Stats(t *testing.T) {
	env := newTestServer(t)
	require.NoError(t, env.db.InsertSampleData())

	w := env.do(t, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	got := decode(t, w)
	assert.Equal(t, float64(database.SampleSize()), got["total_users"])
	assert.NotEmpty(t, got["created_at"])
}

func TestServer_CallEnvelope(t *testing.T) {
	env := newTestServer(t)

	w := env.do(t, http.MethodPost, "/api/v1/call/create_user", `{"element":"create_user:Ada:ada@example.com:Admin:Active"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode(t, w)
	assert.Equal(t, "user_create_response", got["event"])
	assert.Equal(t, true, got["success"])
	assert.Equal(t, float64(1), got["data"])

	w = env.do(t, http.MethodPost, "/api/v1/call/create_user", `{"element":"create_user:Eve:ada@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	got = decode(t, w)
	assert.Equal(t, false, got["success"])
	errBody, ok := got["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "DB_CONSTRAINT_VIOLATION", errBody["code"])
	assert.Contains(t, errBody["context"], "error_id")

	w = env.do(t, http.MethodPost, "/api/v1/call/get_users", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got = decode(t, w)
	assert.Equal(t, "db_response", got["event"])
	assert.Len(t, got["data"], 1)
}

func TestServer_CORS(t *testing.T) {
	env := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/users", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	env.srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:4200", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_StartAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	srv, err := server.New(server.Config{ListenAddr: addr}, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_StartListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	srv, err := server.New(server.Config{ListenAddr: ln.Addr().String()}, nil, nil)
	require.NoError(t, err)

	err = srv.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInternal, apperr.CodeOf(err))
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
