// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embedMigrations embed.FS

// setup points goose at the embedded migrations for the given driver and
// returns the directory to run.
func setup(driver string) (string, error) {
	goose.SetBaseFS(embedMigrations)

	switch driver {
	case DriverSQLite:
		return "migrations/sqlite", goose.SetDialect("sqlite3")
	case DriverPostgres:
		return "migrations/postgres", goose.SetDialect("postgres")
	default:
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

// RunMigrations runs all pending goose migrations.
func RunMigrations(db *sql.DB, driver string) error {
	dir, err := setup(driver)
	if err != nil {
		return err
	}
	return goose.Up(db, dir)
}

// MigrateDown rolls back the last migration.
func MigrateDown(db *sql.DB, driver string) error {
	dir, err := setup(driver)
	if err != nil {
		return err
	}
	return goose.Down(db, dir)
}

// MigrateReset rolls back all migrations.
func MigrateReset(db *sql.DB, driver string) error {
	dir, err := setup(driver)
	if err != nil {
		return err
	}
	return goose.Reset(db, dir)
}

// Version returns the current schema version.
func Version(db *sql.DB, driver string) (int64, error) {
	if _, err := setup(driver); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(db)
}
