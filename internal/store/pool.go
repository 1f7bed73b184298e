// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package store provides PostgreSQL connectivity and schema migrations.
package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// Pool is the subset of *pgxpool.Pool used by repositories.
// pgxmock.PgxPoolIface satisfies it, which keeps repositories unit-testable.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Pinger checks database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RetryConfig controls how long Open waits for the database to come up.
type RetryConfig struct {
	// Attempts is the number of retries after the first ping. Zero means ping once.
	Attempts uint64
	// Backoff is the initial delay; it doubles after each failed ping.
	Backoff time.Duration
}

// DefaultRetryConfig gives up after about 15 seconds of failed pings.
var DefaultRetryConfig = RetryConfig{Attempts: 5, Backoff: 500 * time.Millisecond}

var _ Pool = (*pgxpool.Pool)(nil)

// Open creates a connection pool and waits until the database answers a ping.
func Open(ctx context.Context, databaseURL string, rc RetryConfig) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, oops.Code("DB_CONFIG_INVALID").Errorf("database url is required")
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, oops.Code("DB_CONFIG_INVALID").
			With("operation", "parse database url").
			Wrap(err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").
			With("operation", "create pool").
			Wrap(err)
	}

	if err := WaitForDatabase(ctx, pool, rc); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// WaitForDatabase pings p until it succeeds, the retry budget runs out or ctx ends.
func WaitForDatabase(ctx context.Context, p Pinger, rc RetryConfig) error {
	backoff := rc.Backoff
	if backoff <= 0 {
		backoff = DefaultRetryConfig.Backoff
	}
	b := retry.WithMaxRetries(rc.Attempts, retry.NewExponential(backoff))

	attempt := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		if pingErr := p.Ping(ctx); pingErr != nil {
			slog.WarnContext(ctx, "database not reachable", "attempt", attempt, "error", pingErr)
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").
			With("operation", "ping database").
			With("attempts", attempt).
			Wrap(err)
	}
	return nil
}
