// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package auth provides admin authentication for shopfront.
//
// # Credentials
//
// Passwords are reduced to an unsalted SHA-256 hex digest by HashPassword and
// matched against the CredentialStore on both username and digest. Principals
// are provisioned out of band (see the admin create command); this package never
// creates or mutates them.
//
// # Sessions
//
// A successful login mints an opaque 32-byte token (base64url, no padding) and
// records token -> username in a SessionStore. The default store is in-memory
// and process-local: sessions do not expire, cannot be revoked and are lost on
// restart.
//
// # Errors
//
// Authenticator failures carry one of three oops codes:
//   - AUTH_INVALID_INPUT - username or password missing
//   - AUTH_INVALID_CREDENTIALS - no principal matches
//   - AUTH_STORE_UNAVAILABLE - the credential store could not answer
//
// A token that fails validation is not an error; Validate reports it with ok=false.
package auth
