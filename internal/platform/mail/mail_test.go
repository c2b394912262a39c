// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mail_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/resendlabs/resend-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/addressbook/internal/platform/mail"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type capturedEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func newResendServer(t *testing.T, status int, captured *capturedEmail) *resend.Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		if captured != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status < 300 {
			_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
			return
		}
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"invalid"}`))
	}))
	t.Cleanup(server.Close)

	client := resend.NewClient("re_test")
	baseURL, err := url.Parse(server.URL)
	require.NoError(t, err)
	client.BaseURL = baseURL
	return client
}

func TestResetLink(t *testing.T) {
	assert.Equal(t,
		"https://contacts.example.com/reset-password?token=a%2Bb%2Fc",
		mail.ResetLink("https://contacts.example.com", "a+b/c"),
	)
}

func TestResendSender_SendPasswordReset(t *testing.T) {
	var captured capturedEmail
	client := newResendServer(t, http.StatusOK, &captured)
	sender := mail.NewResendSender(client, "noreply@addressbook.app", "Address Book", discardLogger())

	ok := sender.SendPasswordReset(context.Background(), "john@example.com", "tok123", "http://localhost:8080")

	assert.True(t, ok)
	assert.Equal(t, []string{"john@example.com"}, captured.To)
	assert.Equal(t, "Address Book <noreply@addressbook.app>", captured.From)
	assert.Contains(t, captured.HTML, "http://localhost:8080/reset-password?token=tok123")
}

func TestResendSender_ProviderRejection(t *testing.T) {
	client := newResendServer(t, http.StatusUnprocessableEntity, nil)
	sender := mail.NewResendSender(client, "noreply@addressbook.app", "Address Book", discardLogger())

	assert.False(t, sender.SendPasswordReset(context.Background(), "john@example.com", "tok", "http://localhost"))
	assert.Error(t, sender.SendWelcome(context.Background(), "john@example.com"))
}

func TestLogSender(t *testing.T) {
	sender := mail.NewLogSender(discardLogger())

	assert.True(t, sender.SendPasswordReset(context.Background(), "john@example.com", "tok", "http://localhost"))
	assert.NoError(t, sender.SendWelcome(context.Background(), "john@example.com"))
}
