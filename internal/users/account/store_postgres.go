// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/addressbook/internal/platform/apperr"
	"github.com/taibuivan/addressbook/internal/platform/database/schema"
	"github.com/taibuivan/addressbook/internal/platform/dberr"
	"github.com/taibuivan/addressbook/internal/platform/postgres"
	"github.com/taibuivan/addressbook/internal/platform/sec"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	db postgres.DBTX
}

// NewPostgresStore creates an account store over a pool or transaction.
func NewPostgresStore(db postgres.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

var userColumns = strings.Join(schema.UserAccount.Columns(), ", ")

func scanUser(row pgx.Row, user *User) error {
	var role string
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	user.Role = sec.ParseRole(role)
	return err
}

func (store *PostgresStore) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE lower(%s) = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.Email,
	)

	user := &User{}
	if err := scanUser(store.db.QueryRow(context, query, email), user); err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_user_find_failed: %w", err)
	}

	return user, nil
}

func (store *PostgresStore) Insert(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s, %s`,
		schema.UserAccount.Table,
		schema.UserAccount.FirstName, schema.UserAccount.LastName, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.Role,
		schema.UserAccount.ID, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	err := store.db.QueryRow(context, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		string(user.Role),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "postgres_user_insert_failed", "Email is already registered")
}

func (store *PostgresStore) UpdatePassword(context context.Context, userID int64, passwordHash string) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = now() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Password, schema.UserAccount.UpdatedAt, schema.UserAccount.ID,
	)

	tag, err := store.db.Exec(context, query, userID, passwordHash)
	if err != nil {
		return false, fmt.Errorf("postgres_user_update_password_failed: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
