// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/shopfront/internal/auth"
	authpg "github.com/holomush/shopfront/internal/auth/postgres"
	"github.com/holomush/shopfront/internal/config"
	"github.com/holomush/shopfront/internal/store"
)

// NewAdminCmd creates the admin subcommand.
func NewAdminCmd() *cobra.Command {
	return NewAdminCmdWithDeps(nil)
}

// NewAdminCmdWithDeps creates the admin subcommand with an injectable pool
// factory. A nil factory uses store.Open.
func NewAdminCmdWithDeps(factory PoolFactory) *cobra.Command {
	if factory == nil {
		factory = defaultPoolFactory
	}

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		Long: `Create an admin account that can log in through /auth.
If --password is omitted, the password is read from the first line of stdin.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			return runAdminCreate(cmd, cfg, factory, username, password)
		},
	}
	create.Flags().String("username", "", "admin username")
	create.Flags().String("password", "", "admin password (read from stdin when empty)")
	_ = create.MarkFlagRequired("username")

	cmd.AddCommand(create)
	return cmd
}

func runAdminCreate(cmd *cobra.Command, cfg *config.Config, factory PoolFactory, username, password string) error {
	if err := cfg.RequireDatabase(); err != nil {
		return err //nolint:wrapcheck // config errors carry codes
	}
	if username == "" {
		return oops.Code("ADMIN_INVALID_INPUT").Errorf("username is required")
	}
	if password == "" {
		var err error
		password, err = readPassword(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	pool, err := factory(cmd.Context(), cfg.Database.URL, store.RetryConfig{
		Attempts: cfg.Database.ConnectAttempts,
		Backoff:  cfg.Database.ConnectBackoff,
	})
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "open pool").Wrap(err)
	}
	defer pool.Close()

	repo := authpg.NewAdminRepository(pool)
	p, err := repo.Create(cmd.Context(), username, auth.HashPassword(password))
	if err != nil {
		if errors.Is(err, auth.ErrAlreadyExists) {
			return oops.Code("ADMIN_EXISTS").With("username", username).Errorf("admin %q already exists", username)
		}
		return err //nolint:wrapcheck // repository errors carry codes
	}

	cmd.Printf("Created admin %q (id %d)\n", p.Username, p.ID)
	return nil
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", oops.Code("ADMIN_INVALID_INPUT").With("operation", "read password").Wrap(err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", oops.Code("ADMIN_INVALID_INPUT").Errorf("password is required")
	}
	return password, nil
}
