package client

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tompro/redis-ts/internal/options"
)

// Config holds the connection settings DialContext applies.
type Config struct {
	// DialTimeout bounds the TCP connect. Zero means no limit beyond the
	// context's own deadline.
	DialTimeout time.Duration
	// ReadTimeout and WriteTimeout bound each command round-trip. The
	// context deadline applies on top when it is earlier.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Password is sent with AUTH right after connecting when non-empty.
	Password string
	// Database is selected with SELECT after connecting when non-zero.
	Database int
	// Logger receives per-command debug traces. Defaults to a discard
	// logger.
	Logger logrus.FieldLogger
}

// Option configures a Config.
type Option = options.Option[*Config]

func applyOptions(cfg *Config, opts []Option) error {
	return options.Apply(cfg, opts...)
}

func defaultConfig() *Config {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return &Config{
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		Logger:       log,
	}
}

// WithDialTimeout bounds the TCP connect.
func WithDialTimeout(d time.Duration) Option {
	return options.NoError(func(cfg *Config) {
		cfg.DialTimeout = d
	})
}

// WithReadTimeout bounds waiting for each command reply.
func WithReadTimeout(d time.Duration) Option {
	return options.NoError(func(cfg *Config) {
		cfg.ReadTimeout = d
	})
}

// WithWriteTimeout bounds writing each command frame.
func WithWriteTimeout(d time.Duration) Option {
	return options.NoError(func(cfg *Config) {
		cfg.WriteTimeout = d
	})
}

// WithAuth authenticates the connection with AUTH before any command.
func WithAuth(password string) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Password = password
	})
}

// WithDatabase selects a logical database with SELECT before any command.
func WithDatabase(db int) Option {
	return options.New(func(cfg *Config) error {
		if db < 0 {
			return fmt.Errorf("invalid database index %d", db)
		}
		cfg.Database = db

		return nil
	})
}

// WithLogger sets the logger for per-command debug traces.
func WithLogger(logger logrus.FieldLogger) Option {
	return options.New(func(cfg *Config) error {
		if logger == nil {
			return fmt.Errorf("nil logger")
		}
		cfg.Logger = logger

		return nil
	})
}
