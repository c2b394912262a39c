// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package addressbook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/addressbook/internal/platform/ctxutil"
	"github.com/taibuivan/addressbook/internal/platform/middleware"
	"github.com/taibuivan/addressbook/internal/platform/sec"
)

type owners map[string]int64

func (o owners) GetUserIDByEmail(_ context.Context, email string) (int64, error) {
	return o[email], nil
}

func newRouter(f fixture) chi.Router {
	handler := NewHandler(f.repository, owners{"john@example.com": 1, "mallory@example.com": 2})

	router := chi.NewRouter()
	router.Mount("/contacts", handler.Routes())
	router.Route("/admin/contacts", func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Mount("/", handler.AdminRoutes())
	})
	return router
}

func send(t *testing.T, router http.Handler, method, path, body, email string, role sec.Role) (int, map[string]any) {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if email != "" {
		claims := &sec.AuthClaims{Email: email, Role: string(role)}
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var payload map[string]any
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	}
	return recorder.Code, payload
}

func TestHandler_ListAndGet(t *testing.T) {
	router := newRouter(newFixture())

	status, body := send(t, router, http.MethodGet, "/contacts/", "", "john@example.com", sec.RoleUser)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 2)

	status, body = send(t, router, http.MethodGet, "/contacts/2", "", "john@example.com", sec.RoleUser)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Jane Doe", body["data"].(map[string]any)["name"])

	status, _ = send(t, router, http.MethodGet, "/contacts/3", "", "john@example.com", sec.RoleUser)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = send(t, router, http.MethodGet, "/contacts/abc", "", "john@example.com", sec.RoleUser)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHandler_UnknownAccountIsUnauthorized(t *testing.T) {
	router := newRouter(newFixture())

	status, _ := send(t, router, http.MethodGet, "/contacts/", "", "ghost@example.com", sec.RoleUser)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = send(t, router, http.MethodGet, "/contacts/", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHandler_CreateUpdateDelete(t *testing.T) {
	f := newFixture()
	router := newRouter(f)

	status, body := send(t, router, http.MethodPost, "/contacts/",
		`{"name":"Jim Beam","email":"jim@example.com","phone":"+1 555 0100","address":"1 Road"}`,
		"john@example.com", sec.RoleUser)
	require.Equal(t, http.StatusCreated, status)
	created := body["data"].(map[string]any)
	assert.Equal(t, float64(4), created["id"])
	assert.Equal(t, float64(1), created["user_id"])

	status, body = send(t, router, http.MethodPut, "/contacts/4",
		`{"name":"James Beam","email":"jim@example.com","phone":"","address":""}`,
		"john@example.com", sec.RoleUser)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "James Beam", body["data"].(map[string]any)["name"])

	status, _ = send(t, router, http.MethodPut, "/contacts/4", `{"name":"Stolen"}`, "mallory@example.com", sec.RoleUser)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = send(t, router, http.MethodDelete, "/contacts/4", "", "mallory@example.com", sec.RoleUser)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = send(t, router, http.MethodDelete, "/contacts/4", "", "john@example.com", sec.RoleUser)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = send(t, router, http.MethodGet, "/contacts/4", "", "john@example.com", sec.RoleUser)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHandler_CreateValidation(t *testing.T) {
	router := newRouter(newFixture())

	status, body := send(t, router, http.MethodPost, "/contacts/",
		`{"name":"","email":"not-an-email"}`, "john@example.com", sec.RoleUser)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Len(t, body["details"], 2)
}

func TestHandler_AdminDelete(t *testing.T) {
	f := newFixture()
	router := newRouter(f)

	status, _ := send(t, router, http.MethodDelete, "/admin/contacts/3", "", "john@example.com", sec.RoleUser)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = send(t, router, http.MethodDelete, "/admin/contacts/3", "", "root@example.com", sec.RoleAdmin)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = send(t, router, http.MethodDelete, "/admin/contacts/3", "", "root@example.com", sec.RoleAdmin)
	assert.Equal(t, http.StatusNotFound, status)

	status, body := send(t, router, http.MethodGet, "/contacts/", "", "mallory@example.com", sec.RoleUser)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["data"])
}
