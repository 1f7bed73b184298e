// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package gateway

import (
	"strconv"
	"time"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
)

// Header names used by the CORS policy.
const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
	HeaderMaxAge       = "Access-Control-Max-Age"
)

// DefaultPreflightMaxAge is how long browsers may cache a preflight result.
const DefaultPreflightMaxAge = 24 * time.Hour

// CORS decides the Access-Control-* headers attached to responses.
// The origin "*" allows every origin and is echoed literally; any other
// entry is a glob pattern matched against the request Origin header.
type CORS struct {
	anyOrigin bool
	patterns  []glob.Glob
	maxAge    time.Duration
}

// NewCORS compiles the allowed origin patterns.
func NewCORS(origins []string, maxAge time.Duration) (*CORS, error) {
	if len(origins) == 0 {
		return nil, oops.Code("CORS_INVALID").Errorf("at least one allowed origin is required")
	}
	if maxAge < 0 {
		return nil, oops.Code("CORS_INVALID").With("max_age", maxAge).Errorf("max age must not be negative")
	}

	c := &CORS{maxAge: maxAge}
	for _, origin := range origins {
		if origin == "*" {
			c.anyOrigin = true
			continue
		}
		g, err := glob.Compile(origin)
		if err != nil {
			return nil, oops.Code("CORS_INVALID").With("origin", origin).Wrap(err)
		}
		c.patterns = append(c.patterns, g)
	}
	return c, nil
}

// DefaultCORS allows every origin.
func DefaultCORS() *CORS {
	return &CORS{anyOrigin: true, maxAge: DefaultPreflightMaxAge}
}

// AllowOrigin returns the Access-Control-Allow-Origin value for a request
// from origin, or false when the origin is not allowed.
func (c *CORS) AllowOrigin(origin string) (string, bool) {
	if c.anyOrigin {
		return "*", true
	}
	if origin == "" {
		return "", false
	}
	for _, g := range c.patterns {
		if g.Match(origin) {
			return origin, true
		}
	}
	return "", false
}

// headers returns a fresh header map carrying the origin decision for e.
func (c *CORS) headers(e Event) map[string]string {
	h := make(map[string]string, 4)
	origin, _ := e.Header("Origin")
	if v, ok := c.AllowOrigin(origin); ok {
		h[HeaderAllowOrigin] = v
		if v != "*" {
			h["Vary"] = "Origin"
		}
	}
	return h
}

// preflight returns the 200 empty-body answer to an OPTIONS request.
func (c *CORS) preflight(e Event, methods, allowHeaders string) Response {
	h := c.headers(e)
	h[HeaderAllowMethods] = methods
	h[HeaderAllowHeaders] = allowHeaders
	h[HeaderMaxAge] = strconv.Itoa(int(c.maxAge / time.Second))
	return Response{StatusCode: 200, Headers: h}
}
