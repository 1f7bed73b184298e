// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package gateway_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/shopfront/internal/gateway"
)

func newAuthHandler(t *testing.T, creds *memoryCredentials, opts ...gateway.Option) *gateway.AuthHandler {
	t.Helper()
	h, err := gateway.NewAuthHandler(newAuthenticator(t, creds), opts...)
	require.NoError(t, err)
	return h
}

func login(t *testing.T, h gateway.Handler, body string) gateway.Response {
	t.Helper()
	return h.Handle(context.Background(), gateway.Event{
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    body,
	})
}

func check(t *testing.T, h gateway.Handler, headers map[string]string) gateway.Response {
	t.Helper()
	return h.Handle(context.Background(), gateway.Event{Method: http.MethodGet, Headers: headers})
}

func TestNewAuthHandler_RequiresAuthenticator(t *testing.T) {
	_, err := gateway.NewAuthHandler(nil)
	require.Error(t, err)
}

func TestAuthHandler_LoginThenValidate(t *testing.T) {
	h := newAuthHandler(t, adminCredentials())

	resp := login(t, h, `{"username":"admin","password":"secret"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Headers[gateway.HeaderAllowOrigin])
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])

	body := decodeBody(t, resp.Body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "admin", body["username"])
	token, _ := body["token"].(string)
	assert.Len(t, token, 43)

	for _, name := range []string{"X-Session-Token", "x-session-token", "X-SESSION-TOKEN"} {
		t.Run(name, func(t *testing.T) {
			resp := check(t, h, map[string]string{name: token})
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, `{"valid":true,"username":"admin"}`, resp.Body)
			assert.Equal(t, "*", resp.Headers[gateway.HeaderAllowOrigin])
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"missing password", `{"username":"admin"}`, http.StatusBadRequest, `{"error":"Username and password required"}`},
		{"missing username", `{"password":"secret"}`, http.StatusBadRequest, `{"error":"Username and password required"}`},
		{"empty strings", `{"username":"","password":""}`, http.StatusBadRequest, `{"error":"Username and password required"}`},
		{"empty body", ``, http.StatusBadRequest, `{"error":"Username and password required"}`},
		{"non-string username", `{"username":42,"password":"secret"}`, http.StatusBadRequest, `{"error":"Username and password required"}`},
		{"wrong password", `{"username":"admin","password":"wrong"}`, http.StatusUnauthorized, `{"error":"Invalid credentials"}`},
		{"unknown user", `{"username":"nobody","password":"secret"}`, http.StatusUnauthorized, `{"error":"Invalid credentials"}`},
		{"case differs", `{"username":"Admin","password":"secret"}`, http.StatusUnauthorized, `{"error":"Invalid credentials"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := login(t, newAuthHandler(t, adminCredentials()), tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, resp.Body)
			assert.Equal(t, "*", resp.Headers[gateway.HeaderAllowOrigin])
		})
	}
}

func TestAuthHandler_LoginFailuresAreServerErrors(t *testing.T) {
	t.Run("store unavailable", func(t *testing.T) {
		creds := &memoryCredentials{err: oops.Code("ADMIN_LOOKUP_FAILED").Wrap(errors.New("connection refused"))}
		resp := login(t, newAuthHandler(t, creds), `{"username":"admin","password":"secret"}`)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		msg, _ := decodeBody(t, resp.Body)["error"].(string)
		assert.NotEmpty(t, msg)
		assert.Contains(t, msg, "connection refused")
	})

	t.Run("malformed json", func(t *testing.T) {
		resp := login(t, newAuthHandler(t, adminCredentials()), `{"username":`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.NotEmpty(t, decodeBody(t, resp.Body)["error"])
	})
}

func TestAuthHandler_TwoLoginsYieldDistinctValidTokens(t *testing.T) {
	h := newAuthHandler(t, adminCredentials())

	first := decodeBody(t, login(t, h, `{"username":"admin","password":"secret"}`).Body)["token"].(string)
	second := decodeBody(t, login(t, h, `{"username":"admin","password":"secret"}`).Body)["token"].(string)
	require.NotEqual(t, first, second)

	for _, token := range []string{first, second} {
		assert.Equal(t, http.StatusOK, check(t, h, map[string]string{"X-Session-Token": token}).StatusCode)
	}
}

func TestAuthHandler_ValidateRejects(t *testing.T) {
	h := newAuthHandler(t, adminCredentials())

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"no header", nil},
		{"empty token", map[string]string{"X-Session-Token": ""}},
		{"unknown token", map[string]string{"X-Session-Token": "unknown"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := check(t, h, tt.headers)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.JSONEq(t, `{"valid":false}`, resp.Body)
			assert.Equal(t, "*", resp.Headers[gateway.HeaderAllowOrigin])
		})
	}
}

func TestAuthHandler_Preflight(t *testing.T) {
	h := newAuthHandler(t, &memoryCredentials{err: errors.New("must not be called")})

	resp := h.Handle(context.Background(), gateway.Event{Method: http.MethodOptions})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Body)
	assert.Equal(t, "*", resp.Headers[gateway.HeaderAllowOrigin])
	assert.Equal(t, "GET, POST, OPTIONS", resp.Headers[gateway.HeaderAllowMethods])
	assert.Equal(t, "Content-Type, X-Session-Token", resp.Headers[gateway.HeaderAllowHeaders])
	assert.Equal(t, "86400", resp.Headers[gateway.HeaderMaxAge])
}

func TestAuthHandler_MethodNotAllowed(t *testing.T) {
	h := newAuthHandler(t, adminCredentials())
	for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch, "post"} {
		t.Run(method, func(t *testing.T) {
			resp := h.Handle(context.Background(), gateway.Event{Method: method})
			assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
			assert.JSONEq(t, `{"error":"Method not allowed"}`, resp.Body)
			assert.Equal(t, "*", resp.Headers[gateway.HeaderAllowOrigin])
		})
	}
}

func TestAuthHandler_RecordsLoginOutcomes(t *testing.T) {
	metrics := &recordingMetrics{}
	h := newAuthHandler(t, adminCredentials(), gateway.WithMetrics(metrics))

	login(t, h, `{"username":"admin","password":"secret"}`)
	login(t, h, `{"username":"admin","password":"nope"}`)
	login(t, h, `{}`)

	assert.Equal(t, []string{gateway.LoginSucceeded, gateway.LoginRejected, gateway.LoginInvalid}, metrics.logins)
}

func TestAuthHandler_CustomCORS(t *testing.T) {
	cors, err := gateway.NewCORS([]string{"https://*.shop.example"}, 0)
	require.NoError(t, err)
	h := newAuthHandler(t, adminCredentials(), gateway.WithCORS(cors))

	allowed := check(t, h, map[string]string{"Origin": "https://admin.shop.example"})
	assert.Equal(t, "https://admin.shop.example", allowed.Headers[gateway.HeaderAllowOrigin])
	assert.Equal(t, "Origin", allowed.Headers["Vary"])

	denied := check(t, h, map[string]string{"Origin": "https://evil.example"})
	assert.NotContains(t, denied.Headers, gateway.HeaderAllowOrigin)
}
