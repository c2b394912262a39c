// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reset

// Result is the outcome of validating a reset token: either Valid with the
// bound identity, or [Invalid].
type Result struct {
	valid  bool
	userID int64
	email  string
}

// Invalid is returned for unknown, expired, already-consumed or empty tokens.
var Invalid = Result{}

// Valid builds a successful result bound to (userID, email).
func Valid(userID int64, email string) Result {
	return Result{valid: true, userID: userID, email: email}
}

// Email returns the bound email and whether the token was valid.
func (r Result) Email() (string, bool) {
	return r.email, r.valid
}

// UserID returns the bound account id, 0 when invalid.
func (r Result) UserID() int64 {
	return r.userID
}

// IsValid reports whether the token was accepted.
func (r Result) IsValid() bool {
	return r.valid
}
