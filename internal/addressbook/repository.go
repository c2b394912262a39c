// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package addressbook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/addressbook/internal/platform/apperr"
	"github.com/taibuivan/addressbook/internal/platform/cache"
)

// # Repository

// Repository is the cache-aside contact repository.
//
// Every non-admin operation is scoped to the caller's userID. Ownership is
// part of every store predicate and is re-checked on cached items.
type Repository struct {
	store  Store
	cache  *cache.Cache
	logger *slog.Logger
}

// NewRepository constructs a new [Repository].
func NewRepository(store Store, cache *cache.Cache, logger *slog.Logger) *Repository {
	return &Repository{store: store, cache: cache, logger: logger}
}

/*
GetAllContacts returns every contact owned by userID, ordered by id.

Empty collections are cached too.

Returns:
  - []Contact: Never nil
  - error: Store failures
*/
func (repository *Repository) GetAllContacts(context context.Context, userID int64) ([]Contact, error) {
	contacts, _, err := cache.Fetch(context, repository.cache, collectionKey(userID), repository.loadCollection(userID))
	if err != nil {
		return nil, fmt.Errorf("contact_repo_get_all_failed: %w", err)
	}

	if contacts == nil {
		contacts = []Contact{}
	}
	return contacts, nil
}

/*
GetByID returns the contact when it exists and belongs to userID.

Returns:
  - *Contact: nil when absent or owned by someone else
  - error: Store failures
*/
func (repository *Repository) GetByID(context context.Context, contactID, userID int64) (*Contact, error) {
	contact, found, err := cache.Fetch(context, repository.cache, itemKey(userID, contactID), repository.loadItem(contactID, userID))
	if err != nil {
		return nil, fmt.Errorf("contact_repo_get_by_id_failed: %w", err)
	}

	if !found || contact == nil || contact.UserID != userID || contact.ID != contactID {
		return nil, nil
	}
	return contact, nil
}

// loadCollection reads the owner's rows on a miss. Empty lists count as found.
func (repository *Repository) loadCollection(userID int64) cache.Loader[[]Contact] {
	return func(ctx context.Context) ([]Contact, bool, error) {
		contacts, err := repository.store.ListByOwner(ctx, userID)
		return contacts, err == nil, err
	}
}

func (repository *Repository) loadItem(contactID, userID int64) cache.Loader[*Contact] {
	return func(ctx context.Context) (*Contact, bool, error) {
		contact, err := repository.store.FindByID(ctx, contactID, userID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, false, nil
			}
			return nil, false, err
		}
		return contact, true, nil
	}
}

/*
AddContact persists entry under userID and returns it with its generated id.

The caller-supplied id and owner are ignored.
*/
func (repository *Repository) AddContact(context context.Context, entry Contact, userID int64) (*Contact, error) {
	contact := &Contact{
		UserID:  userID,
		Name:    entry.Name,
		Email:   entry.Email,
		Phone:   entry.Phone,
		Address: entry.Address,
	}

	if err := repository.store.Insert(context, contact); err != nil {
		return nil, fmt.Errorf("contact_repo_add_failed: %w", err)
	}

	repository.cache.Invalidate(context, collectionKey(userID))
	repository.cache.Prime(context, itemKey(userID, contact.ID), contact)

	repository.logger.InfoContext(context, "contact_added",
		slog.Int64("user_id", userID),
		slog.Int64("contact_id", contact.ID),
	)

	return contact, nil
}

/*
UpdateContact overwrites the mutable fields of an owned contact.

Returns:
  - *Contact: The updated entry, nil when absent or owned by someone else
  - error: Store failures
*/
func (repository *Repository) UpdateContact(context context.Context, contactID int64, fields Fields, userID int64) (*Contact, error) {
	contact, err := repository.store.Update(context, contactID, userID, fields)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("contact_repo_update_failed: %w", err)
	}

	repository.cache.Invalidate(context, itemKey(userID, contactID), collectionKey(userID))

	repository.logger.InfoContext(context, "contact_updated",
		slog.Int64("user_id", userID),
		slog.Int64("contact_id", contactID),
	)

	return contact, nil
}

// DeleteContact removes an owned contact. It returns false when nothing matched.
func (repository *Repository) DeleteContact(context context.Context, contactID, userID int64) (bool, error) {
	deleted, err := repository.store.Delete(context, contactID, userID)
	if err != nil {
		return false, fmt.Errorf("contact_repo_delete_failed: %w", err)
	}
	if !deleted {
		return false, nil
	}

	repository.cache.Invalidate(context, itemKey(userID, contactID), collectionKey(userID))

	repository.logger.InfoContext(context, "contact_deleted",
		slog.Int64("user_id", userID),
		slog.Int64("contact_id", contactID),
	)

	return true, nil
}

// DeleteContactAsAdmin removes a contact regardless of owner. The caller must
// have authorized the request.
func (repository *Repository) DeleteContactAsAdmin(context context.Context, contactID int64) (bool, error) {
	ownerID, deleted, err := repository.store.DeleteAny(context, contactID)
	if err != nil {
		return false, fmt.Errorf("contact_repo_admin_delete_failed: %w", err)
	}
	if !deleted {
		return false, nil
	}

	repository.cache.Invalidate(context, itemKey(ownerID, contactID), collectionKey(ownerID))

	repository.logger.WarnContext(context, "contact_deleted_by_admin",
		slog.Int64("owner_id", ownerID),
		slog.Int64("contact_id", contactID),
	)

	return true, nil
}
