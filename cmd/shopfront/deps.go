// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"

	"github.com/holomush/shopfront/internal/gateway"
	"github.com/holomush/shopfront/internal/observability"
	"github.com/holomush/shopfront/internal/store"
)

// Pool is the database handle used by commands.
type Pool interface {
	store.Pool
	Close()
}

// PoolFactory opens a database pool.
type PoolFactory func(ctx context.Context, databaseURL string, rc store.RetryConfig) (Pool, error)

// MigratorFactory creates a schema migrator.
type MigratorFactory func(databaseURL string) (Migrator, error)

// Migrator wraps the methods used from store.Migrator.
type Migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (version uint, dirty bool, err error)
	Force(version int) error
	PendingMigrations() ([]uint, error)
	AppliedMigrations() ([]uint, error)
	Close() error
}

// ObservabilityServer wraps the methods used from observability.Server.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
	Metrics() *observability.Metrics
}

// GatewayServer wraps the methods used from gateway.Server.
type GatewayServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
}

// ServeDeps contains injectable dependencies for the serve command.
// All fields with nil values will use their default implementations.
type ServeDeps struct {
	// PoolFactory opens the database pool.
	// Default: store.Open
	PoolFactory PoolFactory

	// MigratorFactory creates the migrator used when auto-migrate is on.
	// Default: store.NewMigrator
	MigratorFactory MigratorFactory

	// ObservabilityServerFactory creates the metrics and health server.
	// Default: observability.NewServer
	ObservabilityServerFactory func(addr string, ready observability.ReadinessChecker, sessions func() int) ObservabilityServer

	// GatewayServerFactory creates the HTTP gateway.
	// Default: gateway.NewServer
	GatewayServerFactory func(addr string, routes gateway.Routes, opts ...gateway.Option) (GatewayServer, error)
}

func defaultPoolFactory(ctx context.Context, databaseURL string, rc store.RetryConfig) (Pool, error) {
	pool, err := store.Open(ctx, databaseURL, rc)
	if err != nil {
		return nil, err //nolint:wrapcheck // store errors carry codes
	}
	return pool, nil
}

func defaultMigratorFactory(databaseURL string) (Migrator, error) {
	m, err := store.NewMigrator(databaseURL)
	if err != nil {
		return nil, err //nolint:wrapcheck // store errors carry codes
	}
	return m, nil
}

func (d *ServeDeps) withDefaults() *ServeDeps {
	out := ServeDeps{}
	if d != nil {
		out = *d
	}
	if out.PoolFactory == nil {
		out.PoolFactory = defaultPoolFactory
	}
	if out.MigratorFactory == nil {
		out.MigratorFactory = defaultMigratorFactory
	}
	if out.ObservabilityServerFactory == nil {
		out.ObservabilityServerFactory = func(addr string, ready observability.ReadinessChecker, sessions func() int) ObservabilityServer {
			return observability.NewServer(addr, ready, observability.WithActiveSessions(sessions))
		}
	}
	if out.GatewayServerFactory == nil {
		out.GatewayServerFactory = func(addr string, routes gateway.Routes, opts ...gateway.Option) (GatewayServer, error) {
			srv, err := gateway.NewServer(addr, routes, opts...)
			if err != nil {
				return nil, err //nolint:wrapcheck // gateway errors carry codes
			}
			return srv, nil
		}
	}
	return &out
}
