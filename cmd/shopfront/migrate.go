// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/shopfront/internal/config"
	"github.com/holomush/shopfront/internal/store"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return NewMigrateCmdWithDeps(nil)
}

// NewMigrateCmdWithDeps creates the migrate subcommand with an injectable
// migrator factory. A nil factory uses store.NewMigrator.
func NewMigrateCmdWithDeps(factory MigratorFactory) *cobra.Command {
	if factory == nil {
		factory = defaultMigratorFactory
	}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Manage the PostgreSQL schema. Without a subcommand, applies all
pending migrations.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, factory, migrateUp)
		},
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Long:  `Apply all pending migrations, or only the next N with --steps.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			steps, err := stepsFlag(cmd)
			if err != nil {
				return err
			}
			if steps == 0 {
				return withMigrator(cmd, factory, migrateUp)
			}
			return withMigrator(cmd, factory, func(cmd *cobra.Command, m Migrator) error {
				cmd.Printf("Applying %d migration(s)...\n", steps)
				if err := m.Steps(steps); err != nil {
					return oops.Code("MIGRATION_FAILED").With("operation", "up").With("steps", steps).Wrap(err)
				}
				return printVersion(cmd, m)
			})
		},
	}
	up.Flags().Int("steps", 0, "number of migrations to apply (0 = all)")
	cmd.AddCommand(up)

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Long: `Roll back every migration, dropping all shopfront tables, or only
the last N with --steps.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			steps, err := stepsFlag(cmd)
			if err != nil {
				return err
			}
			return withMigrator(cmd, factory, func(cmd *cobra.Command, m Migrator) error {
				if steps > 0 {
					cmd.Printf("Rolling back %d migration(s)...\n", steps)
					if err := m.Steps(-steps); err != nil {
						return oops.Code("MIGRATION_FAILED").With("operation", "down").With("steps", steps).Wrap(err)
					}
					return printVersion(cmd, m)
				}
				cmd.Println("Rolling back migrations...")
				if err := m.Down(); err != nil {
					return oops.Code("MIGRATION_FAILED").With("operation", "down").Wrap(err)
				}
				cmd.Println("Rollback completed successfully")
				return nil
			})
		},
	}
	down.Flags().Int("steps", 0, "number of migrations to roll back (0 = all)")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List applied and pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, factory, printStatus)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, factory, printVersion)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "force VERSION",
		Short: "Set the schema version without running migrations",
		Long: `Set the recorded schema version and clear the dirty flag. Use after
fixing a failed migration by hand.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseForceVersion(args[0])
			if err != nil {
				return err
			}
			return withMigrator(cmd, factory, func(cmd *cobra.Command, m Migrator) error {
				if err := m.Force(v); err != nil {
					return oops.Code("MIGRATION_FAILED").With("operation", "force").With("version", v).Wrap(err)
				}
				cmd.Printf("Forced schema version to %d\n", v)
				return nil
			})
		},
	})

	return cmd
}

func withMigrator(cmd *cobra.Command, factory MigratorFactory, fn func(*cobra.Command, Migrator) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return runWithMigrator(cmd, cfg, factory, fn)
}

func runWithMigrator(cmd *cobra.Command, cfg *config.Config, factory MigratorFactory, fn func(*cobra.Command, Migrator) error) (err error) {
	if err := cfg.RequireDatabase(); err != nil {
		return err //nolint:wrapcheck // config errors carry codes
	}

	m, err := factory(cfg.Database.URL)
	if err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "create migrator").Wrap(err)
	}
	defer func() {
		if closeErr := m.Close(); closeErr != nil && err == nil {
			err = oops.Code("MIGRATION_FAILED").With("operation", "close migrator").Wrap(closeErr)
		}
	}()

	return fn(cmd, m)
}

func migrateUp(cmd *cobra.Command, m Migrator) error {
	cmd.Println("Running migrations...")
	if err := m.Up(); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "up").Wrap(err)
	}
	cmd.Println("Migrations completed successfully")
	return printVersion(cmd, m)
}

func printVersion(cmd *cobra.Command, m Migrator) error {
	v, dirty, err := m.Version()
	if err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "version").Wrap(err)
	}
	if dirty {
		cmd.Printf("Schema version: %d (dirty)\n", v)
		return nil
	}
	cmd.Printf("Schema version: %d\n", v)
	return nil
}

func printStatus(cmd *cobra.Command, m Migrator) error {
	if err := printVersion(cmd, m); err != nil {
		return err
	}
	applied, err := m.AppliedMigrations()
	if err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "status").Wrap(err)
	}
	pending, err := m.PendingMigrations()
	if err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "status").Wrap(err)
	}

	for _, section := range []struct {
		title    string
		versions []uint
	}{
		{"Applied", applied},
		{"Pending", pending},
	} {
		cmd.Printf("%s:\n", section.title)
		if len(section.versions) == 0 {
			cmd.Println("  (none)")
			continue
		}
		for _, v := range section.versions {
			name, err := store.MigrationName(v)
			if err != nil {
				return oops.Code("MIGRATION_FAILED").With("operation", "status").With("version", v).Wrap(err)
			}
			if name == "" {
				name = fmt.Sprintf("%06d", v)
			}
			cmd.Printf("  %s\n", name)
		}
	}
	return nil
}

func stepsFlag(cmd *cobra.Command) (int, error) {
	steps, err := cmd.Flags().GetInt("steps")
	if err != nil {
		return 0, oops.Code("INVALID_STEPS").Wrap(err)
	}
	if steps < 0 {
		return 0, oops.Code("INVALID_STEPS").With("steps", steps).Errorf("steps must not be negative")
	}
	return steps, nil
}

// parseForceVersion reads the leading integer of s. Trailing characters
// are ignored.
func parseForceVersion(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, oops.Code("INVALID_VERSION").Errorf("version is required")
	}
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return 0, oops.Code("INVALID_VERSION").With("input", s).Wrapf(err, "version must be an integer")
	}
	return v, nil
}
