// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package addressbook manages per-user contact collections.

The [Repository] is a cache-aside layer over a durable [Store]:

  - Reads consult the cache first and fall back to the store on a miss.
  - Writes go to the store first, then invalidate the affected keys.
  - Cache failures never fail an operation.

# Cache Keys

  - addressbook_{userId}: the owner's ordered collection.
  - addressbook_{userId}_{contactId}: a single contact.
*/
package addressbook

import (
	"context"
	"strconv"
	"time"

	"github.com/taibuivan/addressbook/internal/platform/constants"
)

// # Domain Entities

// Contact is a single address-book entry. It belongs to exactly one user.
type Contact struct {
	ID        int64     `json:"id"         msgpack:"id"`
	UserID    int64     `json:"user_id"    msgpack:"uid"`
	Name      string    `json:"name"       msgpack:"name"`
	Email     string    `json:"email"      msgpack:"email"`
	Phone     string    `json:"phone"      msgpack:"phone"`
	Address   string    `json:"address"    msgpack:"address"`
	CreatedAt time.Time `json:"created_at" msgpack:"cat"`
	UpdatedAt time.Time `json:"updated_at" msgpack:"uat"`
}

// Fields is the mutable subset of a [Contact].
type Fields struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Fields extracts the mutable attributes of a contact.
func (c Contact) Fields() Fields {
	return Fields{Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address}
}

// # Store Contract

// Store is the durable persistence contract for contacts. Every method is a
// single auto-committed statement.
type Store interface {

	// ListByOwner returns every contact owned by userID ordered by id.
	ListByOwner(context context.Context, userID int64) ([]Contact, error)

	/*
		FindByID loads a contact filtered by owner.

		Returns:
		  - *Contact: The entry
		  - error: apperr.NotFound when absent or owned by someone else
	*/
	FindByID(context context.Context, contactID, userID int64) (*Contact, error)

	// Insert persists contact and fills its generated id and timestamps.
	Insert(context context.Context, contact *Contact) error

	/*
		Update overwrites the mutable fields of an owned contact.

		Returns:
		  - *Contact: The updated entry
		  - error: apperr.NotFound when absent or owned by someone else
	*/
	Update(context context.Context, contactID, userID int64, fields Fields) (*Contact, error)

	// Delete removes an owned contact and reports whether a row was removed.
	Delete(context context.Context, contactID, userID int64) (bool, error)

	/*
		DeleteAny removes a contact regardless of owner.

		Returns:
		  - int64: The former owner, needed for cache invalidation
		  - bool: Whether a row was removed
		  - error: Execution failures
	*/
	DeleteAny(context context.Context, contactID int64) (int64, bool, error)
}

// # Cache Keys

func collectionKey(userID int64) string {
	return constants.CachePrefixAddressBook + strconv.FormatInt(userID, 10)
}

func itemKey(userID, contactID int64) string {
	return collectionKey(userID) + "_" + strconv.FormatInt(contactID, 10)
}
