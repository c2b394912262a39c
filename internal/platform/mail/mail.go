// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package mail delivers transactional emails for the account flows.
//
// [ResendSender] talks to the Resend API. [LogSender] is selected when no API
// key is configured and writes the message to the log instead.
package mail

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/url"

	"github.com/resendlabs/resend-go"

	"github.com/taibuivan/addressbook/internal/platform/constants"
)

// Sender is the notification contract used by the account repository.
type Sender interface {

	/*
		SendPasswordReset delivers the reset link built from baseURL and token.

		Returns:
		  - bool: true when the provider accepted the message
	*/
	SendPasswordReset(context context.Context, email, token, baseURL string) bool

	// SendWelcome greets a newly registered account.
	SendWelcome(context context.Context, email string) error
}

// ResetLink builds the absolute reset URL embedded in the email.
func ResetLink(baseURL, token string) string {
	return baseURL + constants.ResetPasswordPath + "?token=" + url.QueryEscape(token)
}

// # Resend

// ResendSender implements [Sender] using the Resend transactional API.
type ResendSender struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *slog.Logger
}

// NewResendSender creates a sender around an initialized Resend client.
func NewResendSender(client *resend.Client, from, fromName string, logger *slog.Logger) *ResendSender {
	return &ResendSender{client: client, from: from, fromName: fromName, logger: logger}
}

func (sender *ResendSender) SendPasswordReset(context context.Context, email, token, baseURL string) bool {
	link := ResetLink(baseURL, token)

	err := sender.send(email, "Reset your Address Book password", resetBody(link))
	if err != nil {
		sender.logger.WarnContext(context, "mail_password_reset_failed", slog.Any("error", err))
		return false
	}

	sender.logger.InfoContext(context, "mail_password_reset_sent")
	return true
}

func (sender *ResendSender) SendWelcome(context context.Context, email string) error {
	if err := sender.send(email, "Welcome to Address Book", welcomeBody(email)); err != nil {
		return err
	}
	sender.logger.InfoContext(context, "mail_welcome_sent")
	return nil
}

func (sender *ResendSender) send(to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", sender.fromName, sender.from),
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	if _, err := sender.client.Emails.Send(params); err != nil {
		return fmt.Errorf("mail_send_failed: %w", err)
	}
	return nil
}

// # Log-only

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender returns a sender for environments without a mail provider.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (sender *LogSender) SendPasswordReset(context context.Context, email, token, baseURL string) bool {
	sender.logger.InfoContext(context, "mail_password_reset_logged",
		slog.String("to", email),
		slog.String("link", ResetLink(baseURL, token)),
	)
	return true
}

func (sender *LogSender) SendWelcome(context context.Context, email string) error {
	sender.logger.InfoContext(context, "mail_welcome_logged", slog.String("to", email))
	return nil
}

// # Bodies

func resetBody(link string) string {
	escaped := html.EscapeString(link)
	return `<p>We received a request to reset your password.</p>` +
		`<p><a href="` + escaped + `">Reset password</a></p>` +
		`<p>This link expires in one hour and can be used once. If you did not ask for it, ignore this email.</p>`
}

func welcomeBody(email string) string {
	return `<p>Welcome to Address Book, ` + html.EscapeString(email) + `.</p>` +
		`<p>Your account is ready.</p>`
}
