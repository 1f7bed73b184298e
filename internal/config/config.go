// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads shopfront configuration.
//
// Sources are layered, later ones overriding earlier ones: built-in
// defaults, an optional YAML file, SHOPFRONT_* environment variables and
// finally command-line flags that were explicitly set.
package config

import (
	"net/url"
	"slices"
	"time"

	"github.com/samber/oops"

	"github.com/holomush/shopfront/internal/logging"
)

// Config is the complete shopfront configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server" yaml:"server"`
	Database DatabaseConfig `koanf:"database" yaml:"database"`
	Log      LogConfig      `koanf:"log" yaml:"log"`
	CORS     CORSConfig     `koanf:"cors" yaml:"cors"`
	Catalog  CatalogConfig  `koanf:"catalog" yaml:"catalog"`
	Metrics  MetricsConfig  `koanf:"metrics" yaml:"metrics"`
}

// ServerConfig configures the HTTP gateway.
type ServerConfig struct {
	Addr            string        `koanf:"addr" yaml:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// DatabaseConfig configures PostgreSQL access.
type DatabaseConfig struct {
	URL             string        `koanf:"url" yaml:"url"`
	AutoMigrate     bool          `koanf:"auto_migrate" yaml:"auto_migrate"`
	ConnectAttempts uint64        `koanf:"connect_attempts" yaml:"connect_attempts"`
	ConnectBackoff  time.Duration `koanf:"connect_backoff" yaml:"connect_backoff"`
}

// LogConfig configures logging.
type LogConfig struct {
	Format string `koanf:"format" yaml:"format"`
	Level  string `koanf:"level" yaml:"level"`
}

// CORSConfig configures cross-origin headers.
type CORSConfig struct {
	AllowedOrigins []string      `koanf:"allowed_origins" yaml:"allowed_origins"`
	MaxAge         time.Duration `koanf:"max_age" yaml:"max_age"`
}

// CatalogConfig configures the catalog endpoints.
type CatalogConfig struct {
	RequireAdmin bool `koanf:"require_admin" yaml:"require_admin"`
}

// MetricsConfig configures the observability server. An empty Addr
// disables it.
type MetricsConfig struct {
	Addr string `koanf:"addr" yaml:"addr"`
}

// Default values.
const (
	DefaultServerAddr      = ":8080"
	DefaultMetricsAddr     = "127.0.0.1:9100"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultConnectAttempts = 5
	DefaultConnectBackoff  = 500 * time.Millisecond
	DefaultCORSMaxAge      = 24 * time.Hour
	DefaultLogFormat       = "json"
	DefaultLogLevel        = "info"
)

// defaults returns the built-in configuration as a nested koanf map.
func defaults() map[string]any {
	return map[string]any{
		"server": map[string]any{
			"addr":             DefaultServerAddr,
			"shutdown_timeout": DefaultShutdownTimeout,
		},
		"database": map[string]any{
			"url":              "",
			"auto_migrate":     false,
			"connect_attempts": DefaultConnectAttempts,
			"connect_backoff":  DefaultConnectBackoff,
		},
		"log": map[string]any{
			"format": DefaultLogFormat,
			"level":  DefaultLogLevel,
		},
		"cors": map[string]any{
			"allowed_origins": []string{"*"},
			"max_age":         DefaultCORSMaxAge,
		},
		"catalog": map[string]any{
			"require_admin": true,
		},
		"metrics": map[string]any{
			"addr": DefaultMetricsAddr,
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	invalid := func(key string, format string, args ...any) error {
		return oops.Code("CONFIG_INVALID").With("key", key).Errorf(format, args...)
	}

	if c.Server.Addr == "" {
		return invalid("server.addr", "server address is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return invalid("server.shutdown_timeout", "shutdown timeout must be positive")
	}
	if c.Database.ConnectAttempts == 0 {
		return invalid("database.connect_attempts", "at least one connect attempt is required")
	}
	if c.Database.ConnectBackoff <= 0 {
		return invalid("database.connect_backoff", "connect backoff must be positive")
	}
	if !slices.Contains([]string{"json", "text"}, c.Log.Format) {
		return invalid("log.format", "log format must be 'json' or 'text', got %q", c.Log.Format)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return oops.Code("CONFIG_INVALID").With("key", "log.level").Wrap(err)
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		return invalid("cors.allowed_origins", "at least one allowed origin is required")
	}
	if c.CORS.MaxAge < 0 {
		return invalid("cors.max_age", "max age must not be negative")
	}
	return nil
}

// RequireDatabase reports an error when no database URL is configured.
func (c *Config) RequireDatabase() error {
	if c.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").
			With("key", "database.url").
			Errorf("database URL is required (set database.url or SHOPFRONT_DATABASE_URL)")
	}
	return nil
}

// Redacted returns a copy of c safe for display: the database password is
// masked.
func (c Config) Redacted() Config {
	if c.Database.URL == "" {
		return c
	}
	if u, err := url.Parse(c.Database.URL); err == nil && u.User != nil {
		c.Database.URL = u.Redacted()
	}
	c.CORS.AllowedOrigins = slices.Clone(c.CORS.AllowedOrigins)
	return c
}
