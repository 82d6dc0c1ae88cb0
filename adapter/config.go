package adapter

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/syssam/avrocompat/compiler/bridge"
)

// Config configures an adapter. The exported fields mirror the per-release
// section of the CLI configuration file.
type Config struct {
	// Java is the java executable. Empty means "java" on PATH.
	Java string `yaml:"java,omitempty"`

	// CompilerJar is the release's avro-tools jar.
	CompilerJar string `yaml:"jar,omitempty"`

	// Workers bounds parallel patching. Zero means GOMAXPROCS.
	Workers int `yaml:"workers,omitempty"`

	// Logger defaults to slog.Default().
	Logger *slog.Logger `yaml:"-"`

	// Binding, when set, replaces the avro-tools binding.
	Binding bridge.Binding `yaml:"-"`
}

// Option configures an adapter.
type Option func(*Config) error

// WithJava sets the java executable.
func WithJava(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return errors.New("adapter: java path cannot be empty")
		}
		c.Java = path
		return nil
	}
}

// WithCompilerJar sets the avro-tools jar used for code generation.
func WithCompilerJar(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return errors.New("adapter: compiler jar cannot be empty")
		}
		c.CompilerJar = path
		return nil
	}
}

// WithWorkers sets the number of files patched in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("adapter: workers must be at least 1, got %d", n)
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return errors.New("adapter: logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithBinding replaces the avro-tools binding, for example with a
// bridge.Func.
func WithBinding(b bridge.Binding) Option {
	return func(c *Config) error {
		if b == nil {
			return errors.New("adapter: binding cannot be nil")
		}
		c.Binding = b
		return nil
	}
}

// WithConfig copies the non-zero fields of cfg.
func WithConfig(cfg Config) Option {
	return func(c *Config) error {
		if cfg.Java != "" {
			c.Java = cfg.Java
		}
		if cfg.CompilerJar != "" {
			c.CompilerJar = cfg.CompilerJar
		}
		if cfg.Workers > 0 {
			c.Workers = cfg.Workers
		}
		if cfg.Logger != nil {
			c.Logger = cfg.Logger
		}
		if cfg.Binding != nil {
			c.Binding = cfg.Binding
		}
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
