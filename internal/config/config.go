// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package config

import (
	"fmt"
	"net/url"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var configFile = altsrc.StringSourcer("config.toml")

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultResetTokenSecret is only suitable for local development.
const DefaultResetTokenSecret = "dev-reset-token-secret" //nolint:gosec // documented development default

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Session  SessionConfig
	Reset    ResetConfig
	SMTP     SMTPConfig
	Metrics  MetricsConfig
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host        string
	Port        int
	BaseURL     string
	MaxBodySize int // in MB
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type DatabaseConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Driver   string // sqlite, postgres
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type SessionConfig struct { //nolint:govet // fieldalignment not critical
	CookieName string // Session cookie name
	MaxAge     int    // Session max age in seconds
	HashKey    string // 32-byte hex string for HMAC signing
	BlockKey   string // 32-byte hex string for AES encryption (optional)
}

// ResetConfig configures password reset tokens.
type ResetConfig struct {
	TokenSecret string
	MaxAge      int  // seconds
	ShowLink    bool // render the link on the page (development only)
}

// SMTPConfig configures outgoing mail. An empty Host disables SMTP delivery.
type SMTPConfig struct { //nolint:govet // fieldalignment not critical
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	TLS      bool
}

type MetricsConfig struct {
	Enabled bool
}

func NewFromCLI(cmd *cli.Command) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:        cmd.String("host"),
			Port:        int(cmd.Int("port")),
			BaseURL:     cmd.String("base-url"),
			MaxBodySize: int(cmd.Int("max-body-size")),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(cmd.String("database-driver")),
			DSN:      cmd.String("database-dsn"),
			Host:     cmd.String("database-host"),
			Port:     int(cmd.Int("database-port")),
			User:     cmd.String("database-user"),
			Password: cmd.String("database-password"),
			Name:     cmd.String("database-name"),
		},
		Session: SessionConfig{
			CookieName: cmd.String("session-cookie-name"),
			MaxAge:     int(cmd.Int("session-max-age")),
			HashKey:    cmd.String("session-hash-key"),
			BlockKey:   cmd.String("session-block-key"),
		},
		Reset: ResetConfig{
			TokenSecret: cmd.String("reset-token-secret"),
			MaxAge:      int(cmd.Int("reset-token-max-age")),
			ShowLink:    cmd.Bool("reset-show-link"),
		},
		SMTP: SMTPConfig{
			Host:     cmd.String("smtp-host"),
			Port:     int(cmd.Int("smtp-port")),
			Username: cmd.String("smtp-username"),
			Password: cmd.String("smtp-password"),
			From:     cmd.String("smtp-from"),
			FromName: cmd.String("smtp-from-name"),
			TLS:      cmd.Bool("smtp-tls"),
		},
		Metrics: MetricsConfig{
			Enabled: cmd.Bool("metrics"),
		},
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = buildBaseURL(cfg)
	}
	cfg.Server.BaseURL = strings.TrimSuffix(cfg.Server.BaseURL, "/")

	return cfg
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown database driver: %q", c.Database.Driver)
	}
	if c.Reset.TokenSecret == "" {
		return fmt.Errorf("reset token secret must not be empty")
	}
	if c.Reset.MaxAge <= 0 {
		return fmt.Errorf("reset token max age must be positive, got %d", c.Reset.MaxAge)
	}
	return nil
}

// SecureCookies reports whether cookies should carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(c.Server.BaseURL, "https://")
}

// PostgresDSN returns the connection string for the postgres driver. An explicit
// postgres URL in DSN wins over the individual fields.
func (d DatabaseConfig) PostgresDSN() string {
	if strings.HasPrefix(d.DSN, "postgres://") || strings.HasPrefix(d.DSN, "postgresql://") {
		return d.DSN
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	if d.User != "" {
		if d.Password != "" {
			u.User = url.UserPassword(d.User, d.Password)
		} else {
			u.User = url.User(d.User)
		}
	}
	q := url.Values{}
	if IsLocalhost(d.Host) {
		q.Set("sslmode", "disable")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func buildBaseURL(cfg *Config) string {
	host := cfg.Server.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	if cfg.Server.Port == 80 {
		return fmt.Sprintf("http://%s", host)
	}
	return fmt.Sprintf("http://%s:%d", host, cfg.Server.Port)
}

// IsLocalhost checks if the host is a localhost address.
func IsLocalhost(host string) bool {
	switch host {
	case "", "localhost", "127.0.0.1", "::1":
		return true
	}
	// Check for *.localhost subdomains (e.g., app.localhost)
	return strings.HasSuffix(host, ".localhost")
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "Host to bind to",
			Sources: cli.NewValueSourceChain(cli.EnvVar("HOST"), toml.TOML("server.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   5000,
			Usage:   "Port to listen on",
			Sources: cli.NewValueSourceChain(cli.EnvVar("PORT"), toml.TOML("server.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "Externally visible base URL, used for reset links",
			Sources: cli.NewValueSourceChain(cli.EnvVar("BASE_URL"), toml.TOML("server.base_url", configFile)),
		},
		&cli.IntFlag{
			Name:    "max-body-size",
			Value:   1,
			Usage:   "Maximum request body size in MB",
			Sources: cli.NewValueSourceChain(cli.EnvVar("MAX_BODY_SIZE"), toml.TOML("server.max_body_size", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_LEVEL"), toml.TOML("log.level", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log format (text, json)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_FORMAT"), toml.TOML("log.format", configFile)),
		},
		// Database flags
		&cli.StringFlag{
			Name:    "database-driver",
			Value:   DriverSQLite,
			Usage:   "Database driver (sqlite, postgres)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_DRIVER"), toml.TOML("database.driver", configFile)),
		},
		&cli.StringFlag{
			Name:    "database-dsn",
			Value:   "./data/jobportal.db",
			Usage:   "Database DSN (sqlite path or postgres URL)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_DSN"), toml.TOML("database.dsn", configFile)),
		},
		&cli.StringFlag{
			Name:    "database-host",
			Value:   "localhost",
			Usage:   "Postgres host",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_HOST"), cli.EnvVar("PGHOST"), toml.TOML("database.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "database-port",
			Value:   5432,
			Usage:   "Postgres port",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_PORT"), cli.EnvVar("PGPORT"), toml.TOML("database.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "database-user",
			Value:   "jobportal",
			Usage:   "Postgres user",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_USER"), cli.EnvVar("PGUSER"), toml.TOML("database.user", configFile)),
		},
		&cli.StringFlag{
			Name:    "database-password",
			Usage:   "Postgres password",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_PASSWORD"), cli.EnvVar("PGPASSWORD"), toml.TOML("database.password", configFile)),
		},
		&cli.StringFlag{
			Name:    "database-name",
			Value:   "jobportal",
			Usage:   "Postgres database name",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_NAME"), cli.EnvVar("PGDATABASE"), toml.TOML("database.name", configFile)),
		},
		// Session flags
		&cli.StringFlag{
			Name:    "session-cookie-name",
			Value:   "_session",
			Usage:   "Session cookie name",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_COOKIE_NAME"), toml.TOML("session.cookie_name", configFile)),
		},
		&cli.IntFlag{
			Name:    "session-max-age",
			Value:   604800, // 7 days in seconds
			Usage:   "Session max age in seconds",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_MAX_AGE"), toml.TOML("session.max_age", configFile)),
		},
		&cli.StringFlag{
			Name:    "session-hash-key",
			Usage:   "Session hash key (32-byte hex, auto-generated if empty in dev)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_HASH_KEY"), cli.EnvVar("SECRET_KEY"), toml.TOML("session.hash_key", configFile)),
		},
		&cli.StringFlag{
			Name:    "session-block-key",
			Usage:   "Session block key for encryption (32-byte hex, optional)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_BLOCK_KEY"), toml.TOML("session.block_key", configFile)),
		},
		// Password reset flags
		&cli.StringFlag{
			Name:    "reset-token-secret",
			Value:   DefaultResetTokenSecret,
			Usage:   "Secret used to sign password reset tokens",
			Sources: cli.NewValueSourceChain(cli.EnvVar("RESET_TOKEN_SECRET"), cli.EnvVar("SERIALIZER_KEY"), toml.TOML("reset.token_secret", configFile)),
		},
		&cli.IntFlag{
			Name:    "reset-token-max-age",
			Value:   3600,
			Usage:   "Password reset token lifetime in seconds",
			Sources: cli.NewValueSourceChain(cli.EnvVar("RESET_TOKEN_MAX_AGE"), toml.TOML("reset.token_max_age", configFile)),
		},
		&cli.BoolFlag{
			Name:    "reset-show-link",
			Usage:   "Show the reset link on the page when the email matched (development only)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("RESET_SHOW_LINK"), toml.TOML("reset.show_link", configFile)),
		},
		// SMTP flags
		&cli.StringFlag{
			Name:    "smtp-host",
			Usage:   "SMTP host (empty logs reset links instead of mailing them)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_HOST"), toml.TOML("smtp.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "smtp-port",
			Value:   587,
			Usage:   "SMTP port",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_PORT"), toml.TOML("smtp.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-username",
			Usage:   "SMTP username",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_USERNAME"), toml.TOML("smtp.username", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-password",
			Usage:   "SMTP password",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_PASSWORD"), toml.TOML("smtp.password", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from",
			Value:   "noreply@localhost",
			Usage:   "Sender address",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_FROM"), toml.TOML("smtp.from", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from-name",
			Value:   "Job Portal",
			Usage:   "Sender display name",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_FROM_NAME"), toml.TOML("smtp.from_name", configFile)),
		},
		&cli.BoolFlag{
			Name:    "smtp-tls",
			Value:   true,
			Usage:   "Require TLS for SMTP",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_TLS"), toml.TOML("smtp.tls", configFile)),
		},
		// Metrics
		&cli.BoolFlag{
			Name:    "metrics",
			Value:   true,
			Usage:   "Expose Prometheus metrics on /metrics",
			Sources: cli.NewValueSourceChain(cli.EnvVar("METRICS"), toml.TOML("metrics.enabled", configFile)),
		},
	}
}
