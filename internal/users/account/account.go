// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles registration, login, password recovery and profile lookup.

# Architecture

  - Entities: User (durable row), Profile (public projection).
  - Cache: the account record is cached under "user_{email}" without its password hash.
  - Credentials: login always verifies against the durable hash.
*/
package account

import (
	"context"
	"strings"
	"time"

	"github.com/taibuivan/addressbook/internal/platform/constants"
	"github.com/taibuivan/addressbook/internal/platform/sec"
)

// # Domain Entities

// User is the durable account row.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         sec.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public-safe projection of a [User].
type Profile struct {
	FirstName string   `json:"first_name" msgpack:"fn"`
	LastName  string   `json:"last_name"  msgpack:"ln"`
	Email     string   `json:"email"      msgpack:"eml"`
	Role      sec.Role `json:"role"       msgpack:"rol"`
}

// Profile projects the user without credentials.
func (u *User) Profile() Profile {
	return Profile{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}

// cachedAccount is the value stored under "user_{email}".
type cachedAccount struct {
	ID      int64   `msgpack:"id"`
	Profile Profile `msgpack:"p"`
}

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// # Repository Contracts

// Store is the durable persistence contract for accounts.
type Store interface {
	/*
		FindByEmail loads an account by its normalized email.

		Returns:
		  - *User: The durable row including the hash
		  - error: apperr.NotFound or storage failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	// Insert persists user and fills its generated fields. A taken email
	// yields apperr.Conflict.
	Insert(context context.Context, user *User) error

	// UpdatePassword replaces the hash. It reports false when no row matched.
	UpdatePassword(context context.Context, userID int64, passwordHash string) (bool, error)
}

// # Helpers

// NormalizeEmail trims and lower-cases an email. Every lookup, insert and
// cache key goes through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func userKey(email string) string {
	return constants.CachePrefixUser + email
}
