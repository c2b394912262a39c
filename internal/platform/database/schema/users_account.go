// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns created by data/migrations so
// that stores never hard-code identifiers.
package schema

// UserAccountTable represents the 'users' table.
type UserAccountTable struct {
	Table     string
	ID        string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
	CreatedAt string
	UpdatedAt string
}

// UserAccount is the schema definition for users.
var UserAccount = UserAccountTable{
	Table:     "users",
	ID:        "id",
	FirstName: "firstname",
	LastName:  "lastname",
	Email:     "email",
	Password:  "passwordhash",
	Role:      "role",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names in scan order.
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.FirstName, t.LastName, t.Email, t.Password, t.Role, t.CreatedAt, t.UpdatedAt,
	}
}
