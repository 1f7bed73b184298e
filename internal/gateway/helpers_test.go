// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package gateway_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/require"

	"github.com/holomush/shopfront/internal/auth"
)

// memoryCredentials is a CredentialStore backed by a username -> digest map.
type memoryCredentials struct {
	digests map[string]string
	err     error
}

func (m *memoryCredentials) FindPrincipal(_ context.Context, username, digest string) (*auth.Principal, error) {
	if m.err != nil {
		return nil, m.err
	}
	if stored, ok := m.digests[username]; ok && stored == digest {
		return &auth.Principal{ID: 1, Username: username}, nil
	}
	return nil, oops.Code("ADMIN_NOT_FOUND").Wrap(auth.ErrNotFound)
}

func adminCredentials() *memoryCredentials {
	return &memoryCredentials{digests: map[string]string{"admin": auth.HashPassword("secret")}}
}

func newAuthenticator(t *testing.T, creds auth.CredentialStore) *auth.Authenticator {
	t.Helper()
	a, err := auth.NewAuthenticator(creds, auth.NewMemorySessionStore(), auth.NewSHA256Hasher())
	require.NoError(t, err)
	return a
}

// recordingMetrics captures metric observations.
type recordingMetrics struct {
	mu       sync.Mutex
	logins   []string
	requests map[string][]int
}

func (m *recordingMetrics) ObserveRequest(handler string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.requests == nil {
		m.requests = make(map[string][]int)
	}
	m.requests[handler] = append(m.requests[handler], status)
}

func (m *recordingMetrics) ObserveLogin(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logins = append(m.logins, outcome)
}

func decodeBody(t *testing.T, body string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &out), "body: %s", body)
	return out
}
