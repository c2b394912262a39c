// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package reset issues and redeems one-time password reset tokens.
//
// Tokens are random, URL-safe and bound to (userId, email). Only their
// SHA-256 digest is used as the storage key.
package reset

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/taibuivan/addressbook/internal/platform/constants"
	"github.com/taibuivan/addressbook/internal/platform/sec"
)

// record is the stored payload behind a token digest.
type record struct {
	UserID int64  `msgpack:"uid"`
	Email  string `msgpack:"eml"`
}

// Service mints and validates reset tokens.
type Service struct {
	backend Backend
	ttl     time.Duration
}

// NewService creates a token service whose tokens expire after ttl.
func NewService(backend Backend, ttl time.Duration) *Service {
	return &Service{backend: backend, ttl: ttl}
}

/*
Issue mints a fresh token bound to (userID, email).

Returns:
  - string: The raw token to embed in the reset link
  - error: Entropy or storage failures
*/
func (service *Service) Issue(context context.Context, userID int64, email string) (string, error) {
	token, err := sec.GenerateSecureToken(constants.ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("reset_token_generate_failed: %w", err)
	}

	payload, err := msgpack.Marshal(record{UserID: userID, Email: email})
	if err != nil {
		return "", fmt.Errorf("reset_token_encode_failed: %w", err)
	}

	if err := service.backend.Put(context, storageKey(token), payload, service.ttl); err != nil {
		return "", err
	}

	return token, nil
}

/*
Validate consumes token. A token validates at most once; unknown, expired and
empty tokens yield [Invalid].

Returns:
  - Result: Valid with the bound identity, or Invalid
  - error: Storage failures only
*/
func (service *Service) Validate(context context.Context, token string) (Result, error) {
	if token == "" {
		return Invalid, nil
	}

	payload, found, err := service.backend.Take(context, storageKey(token))
	if err != nil {
		return Invalid, err
	}
	if !found {
		return Invalid, nil
	}

	var stored record
	if err := msgpack.Unmarshal(payload, &stored); err != nil {
		return Invalid, fmt.Errorf("reset_token_decode_failed: %w", err)
	}

	return Valid(stored.UserID, stored.Email), nil
}

func storageKey(token string) string {
	return constants.RedisPrefixResetToken + sec.HashToken(token)
}
