package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/octocat-supply/storefront/pkg/config"
	"github.com/octocat-supply/storefront/pkg/db"
	"github.com/octocat-supply/storefront/pkg/logger"
	"github.com/octocat-supply/storefront/pkg/migrate"
)

// dbCommand runs against the configured cart database.
type dbCommand func(ctx context.Context, sqlDB *sql.DB, driver string) error

func newRootCommand(logg *logger.Logger) *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the cart_storage schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dir, "dir", migrate.DefaultDir, "migrations source directory (create and validate)")

	root.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Write an empty migration stamped with the current time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := migrate.CreateSQLMigration(dir, args[0], time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "created migration:", path)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check migration names and goose annotations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migrate.ValidateDir(dir); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migration validation passed")
			return nil
		},
	})

	for _, goose := range []struct{ name, short string }{
		{"up", "Apply all pending migrations"},
		{"down", "Roll back the latest migration"},
		{"status", "Print applied and pending migrations"},
	} {
		command := goose.name
		root.AddCommand(&cobra.Command{
			Use:   command,
			Short: goose.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDatabase(cmd.Context(), logg, func(ctx context.Context, sqlDB *sql.DB, driver string) error {
					return migrate.Run(ctx, sqlDB, driver, command)
				})
			},
		})
	}

	root.AddCommand(&cobra.Command{
		Use:   "version <YYYYMMDDHHMMSS>",
		Short: "Migrate up or down to the given version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), logg, func(ctx context.Context, sqlDB *sql.DB, driver string) error {
				return migrate.MigrateToVersion(ctx, sqlDB, driver, args[0])
			})
		},
	})

	return root
}

// withDatabase loads config, opens the database and hands run the pool.
// Config is read here so create and validate work without any environment.
func withDatabase(ctx context.Context, logg *logger.Logger, run dbCommand) error {
	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		return err
	}
	if err := cfg.DB.EnsureDSN(); err != nil {
		return err
	}
	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
	})

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer client.Close()

	sqlDB, err := client.SQL()
	if err != nil {
		return err
	}
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "db_driver": client.Driver()})
	logg.Info(ctx, "migrate ready")
	if err := run(ctx, sqlDB, client.Driver()); err != nil {
		logg.Error(ctx, "migration failed", err)
		return err
	}
	return nil
}
