// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/oliverandrich/jobportal/internal/assets"
	"codeberg.org/oliverandrich/jobportal/internal/config"
	"codeberg.org/oliverandrich/jobportal/internal/database"
	"codeberg.org/oliverandrich/jobportal/internal/handlers"
	"codeberg.org/oliverandrich/jobportal/internal/i18n"
	appmw "codeberg.org/oliverandrich/jobportal/internal/middleware"
	"codeberg.org/oliverandrich/jobportal/internal/models"
	"codeberg.org/oliverandrich/jobportal/internal/observability"
	"codeberg.org/oliverandrich/jobportal/internal/repository"
	"codeberg.org/oliverandrich/jobportal/internal/services/auth"
	"codeberg.org/oliverandrich/jobportal/internal/services/email"
	"codeberg.org/oliverandrich/jobportal/internal/services/session"
	"codeberg.org/oliverandrich/jobportal/internal/services/token"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"
)

const shutdownTimeout = 10 * time.Second

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Reset.TokenSecret == config.DefaultResetTokenSecret {
		slog.Warn("using the development reset token secret")
	}

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
		"database", cfg.Database.Driver,
	)

	// i18n
	if err := i18n.Init(); err != nil {
		return fmt.Errorf("failed to init i18n: %w", err)
	}

	// Database, migrations included
	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	repo := repository.New(db)

	sessions, err := session.NewManager(&cfg.Session, cfg.SecureCookies())
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}

	mailer, err := email.New(&cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to create mailer: %w", err)
	}

	authService := auth.NewService(
		repo,
		auth.NewBcryptHasher(bcrypt.DefaultCost),
		token.New(cfg.Reset.TokenSecret),
		auth.Options{
			BaseURL:     cfg.Server.BaseURL,
			ResetMaxAge: time.Duration(cfg.Reset.MaxAge) * time.Second,
		},
	)

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	h := handlers.New(handlers.Deps{
		Repo:          repo,
		Auth:          authService,
		Sessions:      sessions,
		Mailer:        mailer,
		Metrics:       metrics,
		ShowResetLink: cfg.Reset.ShowLink,
	})

	e := New(cfg, h, sessions, repo, metrics)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, e, fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port), cfg.Server.BaseURL)
}

// New builds the Echo instance with middleware and routes. metrics may be nil.
func New(cfg *config.Config, h *handlers.Handlers, sessions *session.Manager, users appmw.UserLookup, metrics *observability.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handlers.ErrorHandler

	setupMiddleware(e, cfg, sessions, users, metrics, findAssets())
	setupRoutes(e, h, metrics)

	return e
}

func setupRoutes(e *echo.Echo, h *handlers.Handlers, metrics *observability.Metrics) {
	// Static files
	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", assets.FileServer())))

	// Operations
	e.GET("/health", h.Health)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	// Pages
	e.GET("/", h.Home)
	e.GET("/about", h.About)
	e.GET("/view-job", h.ViewJobs)

	// Authentication
	e.GET("/register", h.RegisterPage)
	e.POST("/register", h.Register)
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	e.GET("/logout", h.Logout)
	e.GET("/forgot-password", h.ForgotPasswordPage)
	e.POST("/forgot-password", h.ForgotPassword)
	e.GET("/reset-password/:token", h.ResetPasswordPage)
	e.POST("/reset-password/:token", h.ResetPassword)

	// Logged in
	e.GET("/dashboard", h.Dashboard, appmw.RequireSession())

	employer := []echo.MiddlewareFunc{appmw.RequireSession(), appmw.RequireRole(models.RoleEmployer)}
	e.GET("/job-post", h.JobPostPage, employer...)
	e.POST("/job-post", h.JobPost, employer...)

	e.POST("/jobs/:id/apply", h.Apply, appmw.RequireSession(), appmw.RequireRole(models.RoleJobSeeker))
}

// serve runs e on addr until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, e *echo.Echo, addr, baseURL string) error {
	errChan := make(chan error, 1)

	go func() {
		slog.Info("Server running", "url", baseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err, ok := <-errChan:
		if ok {
			slog.Error("server error", "error", err)
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
		return err
	}

	// Wait for the listener goroutine.
	<-errChan

	slog.Info("server stopped")
	return nil
}
