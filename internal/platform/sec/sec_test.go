// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/addressbook/internal/platform/sec"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := sec.NewPasswordHasher(bcrypt.MinCost)

	digest, err := hasher.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", digest)

	assert.True(t, hasher.Verify("password123", digest))
	assert.False(t, hasher.Verify("wrongpassword", digest))
	assert.False(t, hasher.Verify("password123", "not-a-bcrypt-digest"))
}

func TestPasswordHasher_EmptyPassword(t *testing.T) {
	_, err := sec.NewPasswordHasher(bcrypt.MinCost).Hash("")
	assert.ErrorIs(t, err, sec.ErrEmptyPassword)
}

func TestPasswordHasher_NeedsRehash(t *testing.T) {
	weak := sec.NewPasswordHasher(bcrypt.MinCost)
	strong := sec.NewPasswordHasher(bcrypt.MinCost + 1)

	digest, err := weak.Hash("password123")
	require.NoError(t, err)

	assert.False(t, weak.NeedsRehash(digest))
	assert.True(t, strong.NeedsRehash(digest))
	assert.True(t, strong.NeedsRehash("garbage"))
}

func TestRole(t *testing.T) {
	assert.Equal(t, sec.RoleAdmin, sec.ParseRole("Admin"))
	assert.Equal(t, sec.RoleUser, sec.ParseRole("User"))
	assert.Equal(t, sec.RoleUser, sec.ParseRole(""))
	assert.Equal(t, sec.RoleUser, sec.ParseRole("root"))

	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleUser))
	assert.True(t, sec.RoleUser.AtLeast(sec.RoleUser))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.Role("").AtLeast(sec.RoleUser))
}

func TestSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, first, 43)

	assert.Equal(t, sec.HashToken(first), sec.HashToken(first))
	assert.NotEqual(t, sec.HashToken(first), sec.HashToken(second))
	assert.Len(t, sec.HashToken(first), 64)
}

func newTokenService(t *testing.T, ttl time.Duration) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKeys(key, &key.PublicKey, "addressbook.test", ttl)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	service := newTokenService(t, time.Hour)

	token, err := service.Issue("john@example.com", sec.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", claims.Email)
	assert.Equal(t, "john@example.com", claims.Subject)
	assert.Equal(t, string(sec.RoleAdmin), claims.Role)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	issuer := newTokenService(t, time.Hour)
	verifier := newTokenService(t, time.Hour)

	token, err := issuer.Issue("john@example.com", sec.RoleUser)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsExpired(t *testing.T) {
	service := newTokenService(t, -time.Minute)

	token, err := service.Issue("john@example.com", sec.RoleUser)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}
