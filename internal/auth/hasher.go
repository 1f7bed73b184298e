// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// PasswordHasher reduces a plaintext password to the digest stored for a principal.
type PasswordHasher interface {
	// Hash returns the digest of password. It must be deterministic.
	Hash(password string) string
}

// SHA256Hasher implements PasswordHasher with unsalted SHA-256.
//
// Stored admin digests were produced this way, so the format is fixed: a salted
// or adaptive hash would need a different CredentialStore lookup.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// Hash returns the lowercase hex SHA-256 digest of password.
func (h *SHA256Hasher) Hash(password string) string {
	return HashPassword(password)
}

// HashPassword returns the lowercase hex SHA-256 digest of the UTF-8 password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
