package gen

import (
	"errors"
	"log/slog"
	"runtime"
)

// Config configures an Operations.
type Config struct {
	// Workers bounds the number of files patched or written in parallel.
	Workers int

	// Logger receives debug records for every applied pass.
	Logger *slog.Logger

	// Passes, when set, replaces the release pipeline selected by Pipeline.
	Passes []Pass
}

// Option configures code generation.
type Option func(*Config) error

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "must be at least 1")
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithPasses fixes the passes applied by Transform, whatever the target.
// Passes run in the order given.
func WithPasses(passes ...Pass) Option {
	return func(c *Config) error {
		for _, p := range passes {
			if p.Rule == nil {
				return NewConfigError("Passes", p.Name, "pass has no rule")
			}
		}
		c.Passes = append(c.Passes, passes...)
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Workers: runtime.GOMAXPROCS(0),
		Logger:  slog.Default(),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}
