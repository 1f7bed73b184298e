// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package gateway adapts HTTP-like request events to the auth and catalog
// services and renders their results as JSON responses.
package gateway

import (
	"context"
	"strings"
)

// Event is a transport-neutral HTTP-like request.
type Event struct {
	Method          string
	Path            string
	Headers         map[string]string
	QueryParameters map[string]string
	Body            string
}

// Header returns the value of the named header. Names match case-insensitively.
func (e Event) Header(name string) (string, bool) {
	if v, ok := e.Headers[name]; ok {
		return v, true
	}
	for k, v := range e.Headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// Query returns the named query parameter.
func (e Event) Query(name string) (string, bool) {
	v, ok := e.QueryParameters[name]
	return v, ok
}

// Response is a transport-neutral HTTP-like response.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// Handler turns an Event into a Response. Handlers never return errors;
// failures are rendered into the Response.
type Handler interface {
	Handle(ctx context.Context, e Event) Response
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, e Event) Response

// Handle calls f(ctx, e).
func (f HandlerFunc) Handle(ctx context.Context, e Event) Response {
	return f(ctx, e)
}
