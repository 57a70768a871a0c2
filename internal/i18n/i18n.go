// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package i18n

import (
	"context"
	"embed"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed translations/*.toml
var translationFS embed.FS

var (
	bundle   *i18n.Bundle
	initOnce sync.Once
	initErr  error
)

type localeContextKey struct{}
type localizerContextKey struct{}

// Supported lists the languages with a translation file, default first.
var Supported = []language.Tag{
	language.English,
	language.German,
}

var matcher = language.NewMatcher(Supported)

// Init initializes the i18n bundle with embedded translations.
// It is safe to call more than once.
func Init() error {
	initOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		files := []string{
			"translations/active.en.toml",
			"translations/active.de.toml",
		}

		for _, file := range files {
			if _, err := b.LoadMessageFileFS(translationFS, file); err != nil {
				initErr = err
				return
			}
		}

		bundle = b
	})
	return initErr
}

// WithLocale adds the locale to the context.
func WithLocale(ctx context.Context, lang language.Tag) context.Context {
	base, _ := lang.Base()
	locale := base.String()
	ctx = context.WithValue(ctx, localeContextKey{}, locale)
	localizer := i18n.NewLocalizer(getBundle(), locale)
	return context.WithValue(ctx, localizerContextKey{}, localizer)
}

// GetLocale returns the current locale from context.
func GetLocale(ctx context.Context) string {
	if locale, ok := ctx.Value(localeContextKey{}).(string); ok {
		return locale
	}
	return "en"
}

// T translates a message by ID.
func T(ctx context.Context, messageID string) string {
	return localize(ctx, &i18n.LocalizeConfig{
		MessageID: messageID,
	})
}

// TData translates a message with template data.
func TData(ctx context.Context, messageID string, data map[string]any) string {
	return localize(ctx, &i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
}

// TPlural translates a message with plural support.
func TPlural(ctx context.Context, messageID string, count int) string {
	return localize(ctx, &i18n.LocalizeConfig{
		MessageID:    messageID,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func localize(ctx context.Context, cfg *i18n.LocalizeConfig) string {
	msg, err := getLocalizer(ctx).Localize(cfg)
	if err != nil {
		return cfg.MessageID
	}
	return msg
}

// MatchLanguage matches the best language from Accept-Language header.
func MatchLanguage(acceptLanguage string) language.Tag {
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	return tag
}

func getBundle() *i18n.Bundle {
	// Translations are embedded, so a failure here is caught by the tests.
	_ = Init()
	if bundle == nil {
		return i18n.NewBundle(language.English)
	}
	return bundle
}

func getLocalizer(ctx context.Context) *i18n.Localizer {
	if localizer, ok := ctx.Value(localizerContextKey{}).(*i18n.Localizer); ok {
		return localizer
	}
	return i18n.NewLocalizer(getBundle(), "en")
}
