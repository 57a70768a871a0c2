// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/oliverandrich/jobportal/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver registered as "pgx"
	"github.com/vinovest/sqlx"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

const (
	DriverSQLite   = config.DriverSQLite
	DriverPostgres = config.DriverPostgres
)

// Open connects to the configured database and applies pending migrations.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case DriverPostgres:
		return OpenPostgres(cfg.PostgresDSN())
	case DriverSQLite, "":
		return OpenSQLite(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown database driver: %q", cfg.Driver)
	}
}

// OpenSQLite creates a new database connection with optimized SQLite settings.
func OpenSQLite(dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		dsn = "./data/jobportal.db"
	}

	memory := isMemory(dsn)

	// Create directory for file-based databases
	if !memory {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, err
		}
	}

	dsn = addDefaultParams(dsn)

	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Every connection to :memory: is a separate database.
	if memory {
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(5)
	}
	conn.SetConnMaxLifetime(time.Hour)

	ctx := context.Background()
	if err := configureSQLite(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := RunMigrations(conn.DB, DriverSQLite); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

// OpenPostgres connects through the pgx stdlib driver.
func OpenPostgres(dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	conn.SetMaxOpenConns(20)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := RunMigrations(conn.DB, DriverPostgres); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

func isMemory(dsn string) bool {
	return strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// addDefaultParams adds recommended SQLite parameters if not already present.
func addDefaultParams(dsn string) string {
	defaults := []struct{ key, param string }{
		{"_txlock", "_txlock=immediate"},
		{"foreign_keys", "_pragma=foreign_keys(1)"},
		{"busy_timeout", "_pragma=busy_timeout(5000)"},
		{"_time_format", "_time_format=sqlite"},
	}

	for _, d := range defaults {
		if strings.Contains(dsn, d.key) {
			continue
		}
		separator := "?"
		if strings.Contains(dsn, "?") {
			separator = "&"
		}
		dsn += separator + d.param
	}

	return dsn
}

// configureSQLite sets PRAGMAs for optimal performance.
func configureSQLite(ctx context.Context, db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA cache_size = 2000",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return err
		}
	}

	return nil
}
