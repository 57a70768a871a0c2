// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package email

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"codeberg.org/oliverandrich/jobportal/internal/config"
	"codeberg.org/oliverandrich/jobportal/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func validSMTPConfig() *config.SMTPConfig {
	return &config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "testuser",
		Password: "testpass",
		From:     "noreply@example.com",
		FromName: "Job Portal",
		TLS:      true,
	}
}

func TestNew_SMTP(t *testing.T) {
	m, err := New(validSMTPConfig())

	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)
}

func TestNew_NoHostFallsBackToLog(t *testing.T) {
	cfg := validSMTPConfig()
	cfg.Host = ""

	m, err := New(cfg)

	require.NoError(t, err)
	assert.IsType(t, &LogMailer{}, m)
}

func TestNewSMTPMailer_MissingHost(t *testing.T) {
	cfg := validSMTPConfig()
	cfg.Host = ""

	_, err := NewSMTPMailer(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP host is required")
}

func TestNewSMTPMailer_MissingFrom(t *testing.T) {
	cfg := validSMTPConfig()
	cfg.From = ""

	_, err := NewSMTPMailer(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP from address is required")
}

func TestBuildMessage(t *testing.T) {
	m, err := NewSMTPMailer(validSMTPConfig())
	require.NoError(t, err)

	msg, err := m.buildMessage("a@x.com", "Reset", "Open http://localhost/reset-password/abc")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "To: <a@x.com>")
	assert.Contains(t, raw, "Job Portal")
	assert.Contains(t, raw, "<noreply@example.com>")
	assert.Contains(t, raw, "Subject: Reset")
	assert.Contains(t, raw, "http://localhost/reset-password/abc")
}

func TestBuildMessage_InvalidRecipient(t *testing.T) {
	m, err := NewSMTPMailer(validSMTPConfig())
	require.NoError(t, err)

	_, err = m.buildMessage("not an address", "Reset", "body")

	assert.ErrorContains(t, err, "setting to address")
}

func TestClientOptions(t *testing.T) {
	cfg := validSMTPConfig()
	m, err := NewSMTPMailer(cfg)
	require.NoError(t, err)

	// port, TLS policy, auth type, username, password
	assert.Len(t, m.clientOptions(), 5)

	cfg.Port = 465
	assert.Len(t, m.clientOptions(), 6)

	cfg.TLS = false
	cfg.Username = ""
	assert.Len(t, m.clientOptions(), 2)
}

func TestSendPasswordReset_CanceledContext(t *testing.T) {
	cfg := validSMTPConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 1
	m, err := NewSMTPMailer(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err = m.SendPasswordReset(ctx, "a@x.com", "http://localhost/reset-password/abc")

	assert.Error(t, err)
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	err := LogMailer{}.SendPasswordReset(context.Background(), "a@x.com", "http://localhost/reset-password/abc")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "to=a@x.com")
	assert.Contains(t, buf.String(), "link=http://localhost/reset-password/abc")
}

func TestResetBody_Localized(t *testing.T) {
	require.NoError(t, i18n.Init())

	en := resetBody(i18n.WithLocale(context.Background(), language.English), "http://x/reset-password/t")
	de := resetBody(i18n.WithLocale(context.Background(), language.German), "http://x/reset-password/t")

	assert.Contains(t, en, "http://x/reset-password/t")
	assert.Contains(t, de, "http://x/reset-password/t")
	assert.NotEqual(t, en, de)
	assert.False(t, strings.HasPrefix(en, "email_"))
}
