// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/shopfront/internal/auth"
	authpg "github.com/holomush/shopfront/internal/auth/postgres"
	"github.com/holomush/shopfront/internal/catalog"
	catalogpg "github.com/holomush/shopfront/internal/catalog/postgres"
	"github.com/holomush/shopfront/internal/config"
	"github.com/holomush/shopfront/internal/gateway"
	"github.com/holomush/shopfront/internal/logging"
	"github.com/holomush/shopfront/internal/store"
	"github.com/holomush/shopfront/pkg/errutil"
)

const readinessTimeout = 2 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP gateway",
		Long: `Start the HTTP gateway serving /auth, /products and /reviews,
plus the metrics and health endpoints.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServeWithDeps(ctx, cmd, cfg, nil)
		},
	}

	cmd.Flags().String("addr", config.DefaultServerAddr, "HTTP listen address")
	cmd.Flags().String("metrics-addr", config.DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().Bool("auto-migrate", false, "apply pending migrations before serving")

	return cmd
}

// runServeWithDeps runs the server until ctx is cancelled or a server
// fails. If deps is nil, default implementations are used.
func runServeWithDeps(ctx context.Context, cmd *cobra.Command, cfg *config.Config, deps *ServeDeps) error {
	deps = deps.withDefaults()

	if err := cfg.RequireDatabase(); err != nil {
		return err //nolint:wrapcheck // config errors carry codes
	}

	logger := logging.SetDefault("shopfront", version, cfg.Log.Format, cfg.Log.Level, cmd.ErrOrStderr())

	logger.Info("starting shopfront",
		"addr", cfg.Server.Addr,
		"metrics_addr", cfg.Metrics.Addr,
		"require_admin", cfg.Catalog.RequireAdmin,
	)

	if cfg.Database.AutoMigrate {
		if err := autoMigrate(deps.MigratorFactory, cfg.Database.URL, logger); err != nil {
			return err
		}
	}

	pool, err := deps.PoolFactory(ctx, cfg.Database.URL, store.RetryConfig{
		Attempts: cfg.Database.ConnectAttempts,
		Backoff:  cfg.Database.ConnectBackoff,
	})
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "open pool").Wrap(err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	authenticator, err := auth.NewAuthenticatorWithLogger(
		authpg.NewAdminRepository(pool), auth.NewMemorySessionStore(), auth.NewSHA256Hasher(), logger)
	if err != nil {
		return oops.Code("SERVE_INIT_FAILED").Wrap(err)
	}
	products, err := catalog.NewProductService(catalogpg.NewProductRepository(pool), logger)
	if err != nil {
		return oops.Code("SERVE_INIT_FAILED").Wrap(err)
	}
	reviews, err := catalog.NewReviewService(catalogpg.NewReviewRepository(pool), logger)
	if err != nil {
		return oops.Code("SERVE_INIT_FAILED").Wrap(err)
	}

	cors, err := gateway.NewCORS(cfg.CORS.AllowedOrigins, cfg.CORS.MaxAge)
	if err != nil {
		return oops.Code("SERVE_INIT_FAILED").Wrap(err)
	}
	opts := []gateway.Option{
		gateway.WithCORS(cors),
		gateway.WithLogger(logger),
		gateway.WithRequireAdmin(cfg.Catalog.RequireAdmin),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shutdownCtx := func() (context.Context, context.CancelFunc) {
		return context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	}

	var obsServer ObservabilityServer
	if cfg.Metrics.Addr != "" {
		ready := func() bool {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), readinessTimeout)
			defer pingCancel()
			return pool.Ping(pingCtx) == nil
		}
		obsServer = deps.ObservabilityServerFactory(cfg.Metrics.Addr, ready, authenticator.ActiveSessions)
		obsErrCh, err := obsServer.Start()
		if err != nil {
			return oops.Code("SERVE_INIT_FAILED").With("server", "observability").Wrap(err)
		}
		defer func() {
			sctx, scancel := shutdownCtx()
			defer scancel()
			if err := obsServer.Stop(sctx); err != nil {
				logger.Warn("error stopping observability server", "error", err)
			}
		}()
		go monitorServerErrors(ctx, cancel, obsErrCh, "observability", logger)
		if m := obsServer.Metrics(); m != nil {
			opts = append(opts, gateway.WithMetrics(m))
		}
	}

	authHandler, err := gateway.NewAuthHandler(authenticator, opts...)
	if err != nil {
		return oops.Code("SERVE_INIT_FAILED").Wrap(err)
	}
	productsHandler, err := gateway.NewProductsHandler(products, authenticator, opts...)
	if err != nil {
		return oops.Code("SERVE_INIT_FAILED").Wrap(err)
	}
	reviewsHandler, err := gateway.NewReviewsHandler(reviews, opts...)
	if err != nil {
		return oops.Code("SERVE_INIT_FAILED").Wrap(err)
	}

	srv, err := deps.GatewayServerFactory(cfg.Server.Addr, gateway.Routes{
		Auth:     authHandler,
		Products: productsHandler,
		Reviews:  reviewsHandler,
	}, opts...)
	if err != nil {
		return oops.Code("SERVE_INIT_FAILED").Wrap(err)
	}
	srvErrCh, err := srv.Start()
	if err != nil {
		return oops.Code("SERVE_INIT_FAILED").With("server", "gateway").Wrap(err)
	}

	cmd.Println("Shopfront started")
	logger.Info("shopfront ready", "addr", srv.Addr())

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err, ok := <-srvErrCh:
		if ok && err != nil {
			serveErr = oops.Code("SERVE_FAILED").With("server", "gateway").Wrap(err)
		}
	}

	sctx, scancel := shutdownCtx()
	defer scancel()
	if err := srv.Stop(sctx); err != nil {
		logger.Warn("error stopping gateway server", "error", err)
	}

	logger.Info("shutdown complete")
	return serveErr
}

func autoMigrate(factory MigratorFactory, databaseURL string, logger *slog.Logger) error {
	m, err := factory(databaseURL)
	if err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "create migrator").Wrap(err)
	}
	defer func() {
		if closeErr := m.Close(); closeErr != nil {
			errutil.LogError(logger, "failed to close migrator", closeErr)
		}
	}()

	if err := m.Up(); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "auto-migrate").Wrap(err)
	}
	v, _, err := m.Version()
	if err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "read version").Wrap(err)
	}
	logger.Info("schema migrated", "version", v)
	return nil
}

// monitorServerErrors cancels ctx when a server reports an error. It
// returns when the error channel closes or ctx is done.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string, logger *slog.Logger) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			logger.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
