// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package email delivers password reset links.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"codeberg.org/oliverandrich/jobportal/internal/config"
	"codeberg.org/oliverandrich/jobportal/internal/i18n"
	"github.com/wneessen/go-mail"
)

// Mailer sends a reset link to a user.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, link string) error
}

// New returns an SMTP mailer, or a LogMailer when no SMTP host is configured.
func New(cfg *config.SMTPConfig) (Mailer, error) {
	if cfg.Host == "" {
		slog.Warn("SMTP host not configured, reset links will be written to the log")
		return &LogMailer{}, nil
	}
	return NewSMTPMailer(cfg)
}

// SMTPMailer sends mail through an SMTP server.
type SMTPMailer struct {
	cfg *config.SMTPConfig
}

// NewSMTPMailer creates a new SMTP mailer.
func NewSMTPMailer(cfg *config.SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	return &SMTPMailer{cfg: cfg}, nil
}

// SendPasswordReset sends the reset link to the given address.
func (s *SMTPMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	msg, err := s.buildMessage(to, resetSubject(ctx), resetBody(ctx, link))
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}

func (s *SMTPMailer) buildMessage(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return msg, nil
}

func (s *SMTPMailer) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Implicit TLS on 465, STARTTLS elsewhere
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	return opts
}

// LogMailer writes reset links to the log instead of sending mail.
// It is meant for local development.
type LogMailer struct{}

// SendPasswordReset logs the link.
func (LogMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	slog.InfoContext(ctx, "password reset link", "to", to, "subject", resetSubject(ctx), "link", link)
	return nil
}

func resetSubject(ctx context.Context) string {
	return i18n.T(ctx, "email_password_reset_subject")
}

func resetBody(ctx context.Context, link string) string {
	return i18n.TData(ctx, "email_password_reset_body", map[string]any{
		"ResetURL": link,
	})
}
