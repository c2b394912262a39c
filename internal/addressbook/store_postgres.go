// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package addressbook

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/addressbook/internal/platform/apperr"
	"github.com/taibuivan/addressbook/internal/platform/database/schema"
	"github.com/taibuivan/addressbook/internal/platform/postgres"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	db postgres.DBTX
}

// NewPostgresStore creates a contact store over a pool or transaction.
func NewPostgresStore(db postgres.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

var contactColumns = strings.Join(schema.Contact.Columns(), ", ")

func scanContact(row pgx.Row, contact *Contact) error {
	return row.Scan(
		&contact.ID,
		&contact.UserID,
		&contact.Name,
		&contact.Email,
		&contact.Phone,
		&contact.Address,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
}

func (store *PostgresStore) ListByOwner(context context.Context, userID int64) ([]Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s`,
		contactColumns, schema.Contact.Table, schema.Contact.UserID, schema.Contact.ID,
	)

	rows, err := store.db.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_contact_list_failed: %w", err)
	}
	defer rows.Close()

	contacts := make([]Contact, 0)
	for rows.Next() {
		var contact Contact
		if err := scanContact(rows, &contact); err != nil {
			return nil, fmt.Errorf("postgres_contact_scan_failed: %w", err)
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_contact_rows_failed: %w", err)
	}

	return contacts, nil
}

func (store *PostgresStore) FindByID(context context.Context, contactID, userID int64) (*Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2`,
		contactColumns, schema.Contact.Table, schema.Contact.ID, schema.Contact.UserID,
	)

	contact := &Contact{}
	if err := scanContact(store.db.QueryRow(context, query, contactID, userID), contact); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Contact")
		}
		return nil, fmt.Errorf("postgres_contact_find_failed: %w", err)
	}

	return contact, nil
}

func (store *PostgresStore) Insert(context context.Context, contact *Contact) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s, %s`,
		schema.Contact.Table,
		schema.Contact.UserID, schema.Contact.Name, schema.Contact.Email, schema.Contact.Phone, schema.Contact.Address,
		schema.Contact.ID, schema.Contact.CreatedAt, schema.Contact.UpdatedAt,
	)

	err := store.db.QueryRow(context, query,
		contact.UserID,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Address,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)

	if err != nil {
		return fmt.Errorf("postgres_contact_insert_failed: %w", err)
	}

	return nil
}

func (store *PostgresStore) Update(context context.Context, contactID, userID int64, fields Fields) (*Contact, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = now()
		WHERE %s = $1 AND %s = $2
		RETURNING %s`,
		schema.Contact.Table,
		schema.Contact.Name, schema.Contact.Email, schema.Contact.Phone, schema.Contact.Address, schema.Contact.UpdatedAt,
		schema.Contact.ID, schema.Contact.UserID,
		contactColumns,
	)

	contact := &Contact{}
	row := store.db.QueryRow(context, query, contactID, userID, fields.Name, fields.Email, fields.Phone, fields.Address)
	if err := scanContact(row, contact); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Contact")
		}
		return nil, fmt.Errorf("postgres_contact_update_failed: %w", err)
	}

	return contact, nil
}

func (store *PostgresStore) Delete(context context.Context, contactID, userID int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Contact.Table, schema.Contact.ID, schema.Contact.UserID,
	)

	tag, err := store.db.Exec(context, query, contactID, userID)
	if err != nil {
		return false, fmt.Errorf("postgres_contact_delete_failed: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (store *PostgresStore) DeleteAny(context context.Context, contactID int64) (int64, bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`,
		schema.Contact.Table, schema.Contact.ID, schema.Contact.UserID,
	)

	var ownerID int64
	if err := store.db.QueryRow(context, query, contactID).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("postgres_contact_admin_delete_failed: %w", err)
	}

	return ownerID, true, nil
}
