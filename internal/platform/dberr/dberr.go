// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies PostgreSQL errors for the storage layer.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/addressbook/internal/platform/apperr"
)

// IsNoRows reports whether err means the query matched nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports whether err is a SQLSTATE 23505 from PostgreSQL.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// Wrap annotates a storage error with the failing action.
//
// Unique violations become a client-safe [apperr.Conflict] carrying conflictMsg.
// Everything else is wrapped as "<action>: <cause>" and stays an infrastructure
// failure for the caller to propagate.
func Wrap(err error, action, conflictMsg string) error {
	if err == nil {
		return nil
	}

	if IsUniqueViolation(err) && conflictMsg != "" {
		return apperr.Conflict(conflictMsg, err)
	}

	return fmt.Errorf("%s: %w", action, err)
}
