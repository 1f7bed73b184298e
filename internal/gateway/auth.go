// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package gateway

import (
	"context"
	"net/http"

	"github.com/samber/oops"

	"github.com/holomush/shopfront/internal/auth"
	"github.com/holomush/shopfront/pkg/errutil"
)

// SessionHeader carries the session token on authenticated requests.
const SessionHeader = "X-Session-Token"

// Authenticator is the session authenticator used by the gateway.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*auth.Session, error)
	SessionValidator
}

// SessionValidator resolves a session token to a username.
type SessionValidator interface {
	Validate(token string) (username string, ok bool)
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// ValidateResponse is the body of a token check.
type ValidateResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
}

// AuthHandler serves login (POST) and token validation (GET).
type AuthHandler struct {
	auth  Authenticator
	login *bodyDecoder
	opts  options
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(a Authenticator, opts ...Option) (*AuthHandler, error) {
	if a == nil {
		return nil, oops.Code("GATEWAY_INVALID_CONFIG").Errorf("authenticator is required")
	}
	return &AuthHandler{
		auth:  a,
		login: mustBodyDecoder("login", &LoginRequest{}),
		opts:  buildOptions(opts),
	}, nil
}

// Handle dispatches on the request method.
func (h *AuthHandler) Handle(ctx context.Context, e Event) Response {
	switch e.Method {
	case http.MethodOptions:
		return h.opts.cors.preflight(e, "GET, POST, OPTIONS", "Content-Type, "+SessionHeader)
	case http.MethodPost:
		return h.handleLogin(ctx, e)
	case http.MethodGet:
		return h.handleValidate(e)
	default:
		return respondError(h.opts.cors, e, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
	}
}

func (h *AuthHandler) handleLogin(ctx context.Context, e Event) Response {
	var req LoginRequest
	if err := h.login.Decode(e.Body, &req); err != nil {
		if errutil.Code(err) == CodeInvalidBody {
			err = oops.Code(auth.CodeInvalidInput).Errorf("username and password must be strings")
		}
		h.opts.metrics.ObserveLogin(outcomeFor(err))
		return fail(ctx, h.opts.logger, h.opts.cors, e, err)
	}

	session, err := h.auth.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		h.opts.metrics.ObserveLogin(outcomeFor(err))
		return fail(ctx, h.opts.logger, h.opts.cors, e, err)
	}

	h.opts.metrics.ObserveLogin(LoginSucceeded)
	return respond(h.opts.cors, e, http.StatusOK, LoginResponse{
		Success:  true,
		Token:    session.Token,
		Username: session.Username,
	})
}

func (h *AuthHandler) handleValidate(e Event) Response {
	token, _ := e.Header(SessionHeader)
	username, ok := h.auth.Validate(token)
	if !ok {
		return respond(h.opts.cors, e, http.StatusUnauthorized, ValidateResponse{Valid: false})
	}
	return respond(h.opts.cors, e, http.StatusOK, ValidateResponse{Valid: true, Username: username})
}

func outcomeFor(err error) string {
	switch errutil.Code(err) {
	case auth.CodeInvalidInput:
		return LoginInvalid
	case auth.CodeInvalidCredentials:
		return LoginRejected
	default:
		return LoginErrored
	}
}
