// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/shopfront/internal/auth"
	"github.com/holomush/shopfront/internal/auth/postgres"
	"github.com/holomush/shopfront/pkg/errutil"
)

func TestAdminRepository_Integration(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewAdminRepository(testPool)

	created, err := repo.Create(ctx, "admin", auth.HashPassword("secret"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = testPool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, created.ID)
	})

	t.Run("finds admin by username and digest", func(t *testing.T) {
		p, err := repo.FindPrincipal(ctx, "admin", auth.HashPassword("secret"))
		require.NoError(t, err)
		assert.Equal(t, created.ID, p.ID)
		assert.Equal(t, "admin", p.Username)
	})

	t.Run("wrong digest is not found", func(t *testing.T) {
		_, err := repo.FindPrincipal(ctx, "admin", auth.HashPassword("wrong"))
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("username match is case-sensitive", func(t *testing.T) {
		_, err := repo.FindPrincipal(ctx, "ADMIN", auth.HashPassword("secret"))
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, "admin", auth.HashPassword("other"))
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "ADMIN_EXISTS")
	})

	t.Run("end to end with authenticator", func(t *testing.T) {
		a, err := auth.NewAuthenticator(repo, auth.NewMemorySessionStore(), auth.NewSHA256Hasher())
		require.NoError(t, err)

		session, err := a.Authenticate(ctx, "admin", "secret")
		require.NoError(t, err)

		username, ok := a.Validate(session.Token)
		assert.True(t, ok)
		assert.Equal(t, "admin", username)
	})
}
