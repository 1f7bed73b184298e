// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import "context"

// Principal is an admin identity known to the CredentialStore.
type Principal struct {
	ID       int64
	Username string
}

// CredentialStore looks up principals by username and password digest.
type CredentialStore interface {
	// FindPrincipal returns the principal whose username and stored digest both
	// match exactly. Returns an error wrapping ErrNotFound when none does.
	FindPrincipal(ctx context.Context, username, passwordDigest string) (*Principal, error)
}
