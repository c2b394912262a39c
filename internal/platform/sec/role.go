// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// Role represents the authorization level granted to an account.
type Role string

const (
	// RoleUser is the default role for registered accounts.
	RoleUser Role = "User"

	// RoleAdmin may manage any user's contacts.
	RoleAdmin Role = "Admin"
)

// ParseRole maps a stored or requested role onto the closed set.
// Empty and unknown values resolve to [RoleUser].
func ParseRole(value string) Role {
	switch Role(value) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

func (r Role) level() int {
	switch r {
	case RoleAdmin:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
