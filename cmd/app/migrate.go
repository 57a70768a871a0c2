// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"fmt"

	"codeberg.org/oliverandrich/jobportal/internal/config"
	"codeberg.org/oliverandrich/jobportal/internal/database"
	"github.com/vinovest/sqlx"
	"github.com/urfave/cli/v3"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "Apply all pending migrations",
				Action: withDB(func(_ *sqlx.DB, _ string) error { return nil }),
			},
			{
				Name:  "down",
				Usage: "Roll back the last migration",
				Action: withDB(func(db *sqlx.DB, driver string) error {
					return database.MigrateDown(db.DB, driver)
				}),
			},
			{
				Name:  "reset",
				Usage: "Roll back all migrations",
				Action: withDB(func(db *sqlx.DB, driver string) error {
					return database.MigrateReset(db.DB, driver)
				}),
			},
			{
				Name:  "status",
				Usage: "Print the current schema version",
				Action: withDB(func(db *sqlx.DB, driver string) error {
					version, err := database.Version(db.DB, driver)
					if err != nil {
						return err
					}
					fmt.Printf("schema version: %d\n", version)
					return nil
				}),
			},
		},
	}
}

// withDB opens the configured database, which applies pending migrations,
// and runs fn against it.
func withDB(fn func(db *sqlx.DB, driver string) error) cli.ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
		cfg := config.NewFromCLI(cmd)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		db, err := database.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() { _ = db.Close() }()

		return fn(db, cfg.Database.Driver)
	}
}
