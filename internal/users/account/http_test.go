// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/addressbook/internal/platform/ctxutil"
	"github.com/taibuivan/addressbook/internal/platform/sec"
)

func call(t *testing.T, handler http.Handler, method, path, body string, claims *sec.AuthClaims) (int, map[string]any) {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var payload map[string]any
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	}
	return recorder.Code, payload
}

func TestHandler_RegisterAndLogin(t *testing.T) {
	f := newFixture(t, bcrypt.MinCost)
	routes := NewHandler(f.repository).Routes()

	status, body := call(t, routes, http.MethodPost, "/register",
		`{"first_name":"John","last_name":"Doe","email":"john@example.com","password":"password123"}`, nil)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "john@example.com", body["data"].(map[string]any)["email"])
	assert.NotContains(t, body["data"], "password")

	status, body = call(t, routes, http.MethodPost, "/register",
		`{"first_name":"John","last_name":"Doe","email":"john@example.com","password":"password123"}`, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body["code"])

	status, body = call(t, routes, http.MethodPost, "/login",
		`{"email":"john@example.com","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "session:john@example.com:User", body["data"].(map[string]any)["token"])

	status, _ = call(t, routes, http.MethodPost, "/login",
		`{"email":"john@example.com","password":"wrongpassword"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHandler_RegisterValidation(t *testing.T) {
	f := newFixture(t, bcrypt.MinCost)
	routes := NewHandler(f.repository).Routes()

	status, body := call(t, routes, http.MethodPost, "/register",
		`{"first_name":"","last_name":"Doe","email":"not-an-email","password":"short"}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Len(t, body["details"], 3)

	status, _ = call(t, routes, http.MethodPost, "/register", `{"unexpected":true}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHandler_ForgotPasswordIsUniform(t *testing.T) {
	f := newFixture(t, bcrypt.MinCost)
	f.register(t, "john@example.com", "password123")
	routes := NewHandler(f.repository).Routes()

	knownStatus, knownBody := call(t, routes, http.MethodPost, "/forgot-password", `{"email":"john@example.com"}`, nil)
	unknownStatus, unknownBody := call(t, routes, http.MethodPost, "/forgot-password", `{"email":"ghost@example.com"}`, nil)

	assert.Equal(t, http.StatusOK, knownStatus)
	assert.Equal(t, knownStatus, unknownStatus)
	assert.Equal(t, knownBody, unknownBody)
	assert.Len(t, f.mailer.resets, 1)
}

func TestHandler_ResetPassword(t *testing.T) {
	f := newFixture(t, bcrypt.MinCost)
	f.register(t, "john@example.com", "password123")
	_, err := f.repository.ForgotPassword(context.Background(), "john@example.com")
	require.NoError(t, err)
	token := f.mailer.lastToken(t)
	routes := NewHandler(f.repository).Routes()

	status, _ := call(t, routes, http.MethodPost, "/reset-password",
		`{"token":"`+token+`","password":"newpassword1","confirm_password":"different1"}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, routes, http.MethodPost, "/reset-password",
		`{"token":"`+token+`","password":"newpassword1","confirm_password":"newpassword1"}`, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body := call(t, routes, http.MethodPost, "/reset-password",
		`{"token":"`+token+`","password":"newpassword1","confirm_password":"newpassword1"}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid or expired reset token", body["error"])
}

func TestHandler_AuthenticatedEndpoints(t *testing.T) {
	f := newFixture(t, bcrypt.MinCost)
	f.register(t, "john@example.com", "password123")
	routes := NewHandler(f.repository).Routes()
	john := &sec.AuthClaims{Email: "john@example.com", Role: string(sec.RoleUser)}

	status, _ := call(t, routes, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := call(t, routes, http.MethodGet, "/me", "", john)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "John", body["data"].(map[string]any)["first_name"])

	status, _ = call(t, routes, http.MethodPost, "/change-password",
		`{"current_password":"wrongpassword","new_password":"newpassword1"}`, john)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, routes, http.MethodPost, "/change-password",
		`{"current_password":"password123","new_password":"newpassword1"}`, john)
	assert.Equal(t, http.StatusOK, status)

	ghost := &sec.AuthClaims{Email: "ghost@example.com", Role: string(sec.RoleUser)}
	status, _ = call(t, routes, http.MethodGet, "/me", "", ghost)
	assert.Equal(t, http.StatusNotFound, status)
}
