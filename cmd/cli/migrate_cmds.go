package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/glkernel/internal/infrastructure/postgres"
)

const defaultMigrationsPath = "internal/infrastructure/postgres/migrations"

func migrateCmd() *cobra.Command {
	var databaseURL, path string

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back read model migrations",
	}
	migrate.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres URL (defaults to DATABASE_URL)")
	migrate.PersistentFlags().StringVar(&path, "path", defaultMigrationsPath, "Migrations directory")

	logger := func(cmd *cobra.Command) zerolog.Logger {
		return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).With().Timestamp().Logger()
	}
	requireURL := func() error {
		if databaseURL == "" {
			return errors.New("--database-url or DATABASE_URL is required")
		}
		return nil
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireURL(); err != nil {
					return err
				}
				return postgres.RunMigrations(databaseURL, path, logger(cmd))
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireURL(); err != nil {
					return err
				}
				return postgres.RunMigrationsDown(databaseURL, path, logger(cmd))
			},
		},
	)

	return migrate
}
