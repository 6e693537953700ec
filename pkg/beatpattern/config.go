package beatpattern

import (
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/segment"
)

type Config struct {
	DBPath         string
	Workers        int
	JumpStrategy   segment.Strategy
	StreamStrategy segment.Strategy
	Logger         Logger
	Storage        Storage
}

type Option func(*Config)

func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

// WithWorkers bounds concurrent window scans of windowed strategies.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

func WithJumpStrategy(s segment.Strategy) Option {
	return func(c *Config) {
		c.JumpStrategy = s
	}
}

func WithStreamStrategy(s segment.Strategy) Option {
	return func(c *Config) {
		c.StreamStrategy = s
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func WithStorage(storage Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

func defaultConfig() *Config {
	return &Config{
		DBPath:  "beatpattern.sqlite3",
		Workers: 1,
		Logger:  nil,
	}
}
