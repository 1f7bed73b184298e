// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"crypto/rand"
	"encoding/base64"
	"sync"

	"github.com/samber/oops"
)

// SessionTokenBytes is the number of random bytes in a session token.
// Encoded with base64url and no padding this yields 43 characters.
const SessionTokenBytes = 32

// Session is an issued login: the token handed to the client and the
// username it was minted for.
type Session struct {
	Token    string
	Username string
}

// GenerateSessionToken creates a URL-safe random session token.
func GenerateSessionToken() (string, error) {
	tokenBytes := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", oops.Code("SESSION_TOKEN_GENERATE_FAILED").
			With("operation", "crypto/rand.Read").
			With("requested_bytes", SessionTokenBytes).
			Wrap(err)
	}
	return base64.RawURLEncoding.EncodeToString(tokenBytes), nil
}

// SessionStore maps issued tokens to usernames.
// Implementations must be safe for concurrent use.
type SessionStore interface {
	// Put records token -> username, replacing any previous entry.
	Put(token, username string)

	// Get returns the username for token and whether it was found.
	Get(token string) (string, bool)

	// Len returns the number of live sessions.
	Len() int
}

// MemorySessionStore is a process-local SessionStore.
// Entries are never removed; the table lives as long as the process.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewMemorySessionStore creates an empty MemorySessionStore.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]string)}
}

// Put records token -> username.
func (s *MemorySessionStore) Put(token, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = username
}

// Get returns the username for token.
func (s *MemorySessionStore) Get(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	username, ok := s.sessions[token]
	return username, ok
}

// Len returns the number of recorded sessions.
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

var _ SessionStore = (*MemorySessionStore)(nil)
