// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package postgres provides the PostgreSQL credential store for admins.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/holomush/shopfront/internal/auth"
	"github.com/holomush/shopfront/internal/store"
)

// AdminRepository implements auth.CredentialStore over the admins table.
type AdminRepository struct {
	pool store.Pool
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(pool store.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// FindPrincipal returns the admin whose username and password digest both
// match exactly.
func (r *AdminRepository) FindPrincipal(ctx context.Context, username, passwordDigest string) (*auth.Principal, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, username
		FROM admins
		WHERE username = $1 AND password_hash = $2
	`, username, passwordDigest)

	var p auth.Principal
	err := row.Scan(&p.ID, &p.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ADMIN_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ADMIN_LOOKUP_FAILED").
			With("operation", "find admin by credentials").
			With("username", username).
			Wrap(err)
	}
	return &p, nil
}

// Create stores a new admin with an already hashed password.
func (r *AdminRepository) Create(ctx context.Context, username, passwordDigest string) (*auth.Principal, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username
	`, username, passwordDigest)

	var p auth.Principal
	if err := row.Scan(&p.ID, &p.Username); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, oops.Code("ADMIN_EXISTS").
				With("username", username).
				Wrap(auth.ErrAlreadyExists)
		}
		return nil, oops.Code("ADMIN_CREATE_FAILED").
			With("operation", "insert admin").
			With("username", username).
			Wrap(err)
	}
	return &p, nil
}

// Compile-time interface check.
var _ auth.CredentialStore = (*AdminRepository)(nil)
