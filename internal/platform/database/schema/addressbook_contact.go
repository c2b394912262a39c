// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContactTable represents the 'contacts' table.
type ContactTable struct {
	Table     string
	ID        string
	UserID    string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt string
	UpdatedAt string
}

// Contact is the schema definition for contacts.
var Contact = ContactTable{
	Table:     "contacts",
	ID:        "id",
	UserID:    "userid",
	Name:      "name",
	Email:     "email",
	Phone:     "phone",
	Address:   "address",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names in scan order.
func (t ContactTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Name, t.Email, t.Phone, t.Address, t.CreatedAt, t.UpdatedAt,
	}
}
