// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package gateway

import (
	"log/slog"
)

// Metrics receives gateway events. observability.Metrics satisfies it.
type Metrics interface {
	ObserveRequest(handler string, status int)
	ObserveLogin(outcome string)
}

type nopMetrics struct{}

func (nopMetrics) ObserveRequest(string, int) {}
func (nopMetrics) ObserveLogin(string)        {}

// Login outcomes reported to Metrics.ObserveLogin.
const (
	LoginSucceeded = "success"
	LoginInvalid   = "invalid_input"
	LoginRejected  = "rejected"
	LoginErrored   = "error"
)

type options struct {
	cors         *CORS
	metrics      Metrics
	logger       *slog.Logger
	requireAdmin bool
}

func defaultOptions() options {
	return options{
		cors:         DefaultCORS(),
		metrics:      nopMetrics{},
		logger:       slog.Default(),
		requireAdmin: true,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures handlers and the server.
type Option func(*options)

// WithCORS sets the CORS policy. A nil policy is ignored.
func WithCORS(c *CORS) Option {
	return func(o *options) {
		if c != nil {
			o.cors = c
		}
	}
}

// WithMetrics sets the metrics sink. A nil sink is ignored.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRequireAdmin controls whether product writes need a valid session.
func WithRequireAdmin(require bool) Option {
	return func(o *options) {
		o.requireAdmin = require
	}
}
