package motion

import (
	"log/slog"
)

// Option configures an animator at construction.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	registry *Registry
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.registry == nil {
		o.registry = DefaultPresets()
	}
	return o
}

// WithLogger sets a structured logger. Animators log transitions at debug
// level; the default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegistry resolves preset names against r instead of DefaultPresets().
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}
