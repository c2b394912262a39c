// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/addressbook/internal/platform/apperr"
	"github.com/taibuivan/addressbook/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/addressbook/internal/platform/request"
	"github.com/taibuivan/addressbook/internal/platform/sec"
)

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Alice"}`))
	require.NoError(t, requestutil.DecodeJSON(httptest.NewRecorder(), request, &target))
	assert.Equal(t, "Alice", target.Name)

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Alice","admin":true}`))
	assert.Error(t, requestutil.DecodeJSON(httptest.NewRecorder(), request, &target))

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, requestutil.DecodeJSON(httptest.NewRecorder(), request, &target))
}

func withParam(name, value string) *http.Request {
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add(name, value)
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))
}

func TestInt64Param(t *testing.T) {
	value, err := requestutil.Int64Param(withParam("id", "42"), "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), value)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		_, err := requestutil.Int64Param(withParam("id", raw), "id")
		assert.Error(t, err, raw)
	}
}

func TestRequiredClaims(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := requestutil.RequiredClaims(request)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeUnauthorized, apperr.As(err).Code)

	claims := &sec.AuthClaims{Email: "john@example.com", Role: string(sec.RoleUser)}
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))

	got, err := requestutil.RequiredClaims(request)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", got.Email)
}
