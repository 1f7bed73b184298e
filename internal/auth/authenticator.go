// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"
)

// Authenticator issues and validates admin session tokens.
type Authenticator struct {
	credentials CredentialStore
	sessions    SessionStore
	hasher      PasswordHasher
	logger      *slog.Logger
}

// NewAuthenticator creates an Authenticator that logs through slog.Default.
func NewAuthenticator(credentials CredentialStore, sessions SessionStore, hasher PasswordHasher) (*Authenticator, error) {
	return NewAuthenticatorWithLogger(credentials, sessions, hasher, slog.Default())
}

// NewAuthenticatorWithLogger creates an Authenticator with an explicit logger.
func NewAuthenticatorWithLogger(
	credentials CredentialStore,
	sessions SessionStore,
	hasher PasswordHasher,
	logger *slog.Logger,
) (*Authenticator, error) {
	if credentials == nil {
		return nil, oops.Code("AUTH_INVALID_CONFIG").Errorf("credential store is required")
	}
	if sessions == nil {
		return nil, oops.Code("AUTH_INVALID_CONFIG").Errorf("session store is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_INVALID_CONFIG").Errorf("password hasher is required")
	}
	if logger == nil {
		return nil, oops.Code("AUTH_INVALID_CONFIG").Errorf("logger is required")
	}
	return &Authenticator{
		credentials: credentials,
		sessions:    sessions,
		hasher:      hasher,
		logger:      logger,
	}, nil
}

// Authenticate checks username and password against the credential store and
// mints a new session on success. Unknown usernames and wrong passwords fail
// with the same AUTH_INVALID_CREDENTIALS error.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, oops.Code(CodeInvalidInput).Errorf("username and password required")
	}

	digest := a.hasher.Hash(password)

	principal, err := a.credentials.FindPrincipal(ctx, username, digest)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			a.logger.InfoContext(ctx, "login rejected", "username", username)
			return nil, oops.Code(CodeInvalidCredentials).Errorf("invalid credentials")
		}
		// Not wrapped: oops reports the deepest code in a chain.
		return nil, oops.Code(CodeStoreUnavailable).
			With("operation", "find principal").
			With("username", username).
			With("cause", err.Error()).
			Errorf("credential store unavailable: %v", err)
	}

	token, err := GenerateSessionToken()
	if err != nil {
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "generate session token").
			Wrap(err)
	}

	a.sessions.Put(token, principal.Username)
	a.logger.InfoContext(ctx, "login succeeded", "username", principal.Username)

	return &Session{
		Token:    token,
		Username: principal.Username,
	}, nil
}

// Validate returns the username a token was issued for. An empty or unknown
// token yields ok=false.
func (a *Authenticator) Validate(token string) (username string, ok bool) {
	if token == "" {
		return "", false
	}
	return a.sessions.Get(token)
}

// ActiveSessions returns the number of sessions issued by this process.
func (a *Authenticator) ActiveSessions() int {
	return a.sessions.Len()
}
