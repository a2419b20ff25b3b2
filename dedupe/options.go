package dedupe

import "log/slog"

// DefaultThreshold is the cosine similarity at which two answers are
// considered the same.
const DefaultThreshold = 0.8

// Option configures a Deduplicator.
type Option func(*config)

type config struct {
	threshold float64
	logger    *slog.Logger
}

func defaultConfig() config {
	return config{
		threshold: DefaultThreshold,
		logger:    slog.Default(),
	}
}

// WithThreshold sets the similarity threshold (default: 0.8). Values outside
// (0, 1] are ignored.
func WithThreshold(t float64) Option {
	return func(c *config) {
		if t > 0 && t <= 1 {
			c.threshold = t
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
