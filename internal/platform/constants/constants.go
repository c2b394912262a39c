// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: IP tracking TTLs.
  - Security: JWT issuer and token lifetimes.
  - Cache Taxonomy: key prefixes shared by the cache-aside repositories.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "addressbook-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

// Per-IP rate and burst come from configuration; these bound the client table.
const (
	RateLimitCleanupInterval = 1 * time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "addressbook.app"

	// SessionTokenTTL is how long a login token stays valid.
	SessionTokenTTL = 1 * time.Hour

	// ResetTokenTTL bounds the lifetime of a password reset token.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of a random reset token before encoding.
	ResetTokenLength = 32

	// ResetPasswordPath is appended to the configured base URL in reset emails.
	ResetPasswordPath = "/reset-password"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderAuthorization = "Authorization"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Cache Taxonomy

// Key prefixes for the cache-aside repositories. Values are interpolated
// verbatim; see the cache key builders in each repository.
const (
	CachePrefixAddressBook = "addressbook_"
	CachePrefixUser        = "user_"
)

// # Redis Prefixes

const (
	RedisPrefixResetToken = "auth:reset_token:"
)
