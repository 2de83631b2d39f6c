package binder

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option configures a Binder.
type Option func(*config)

type config struct {
	registry *Registry
	logger   logrus.FieldLogger
	idFunc   func() string
}

// WithRegistry swaps the preset registry. The default registry only knows
// the datetime preset.
func WithRegistry(reg *Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.registry = reg
		}
	}
}

// WithLogger sets the logger used to report bound elements.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithIDFunc overrides the generator used for data-mask-id values.
func WithIDFunc(fn func() string) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.idFunc = fn
		}
	}
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
