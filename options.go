package qna

import (
	"log/slog"

	"github.com/jamesainslie/go-qna/transform"
)

// Option configures a Pipeline.
type Option func(*config)

type config struct {
	locale string
	logger *slog.Logger
}

func defaultConfig() config {
	return config{
		locale: transform.DefaultLocale,
		logger: slog.Default(),
	}
}

// WithLocale sets the collation locale for outputs that sort by category
// and do not name their own (default: "ko").
func WithLocale(locale string) Option {
	return func(c *config) {
		if locale != "" {
			c.locale = locale
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
