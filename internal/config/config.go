// Package config loads the optional TOML file shared by the command line
// tools and the HTTP server.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/himanishpuri/BeatPattern/pkg/beatpattern"
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/segment"
	"github.com/himanishpuri/BeatPattern/pkg/logger"
)

type Config struct {
	Database DatabaseConfig
	Analysis AnalysisConfig
	Server   ServerConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Path string
}

type AnalysisConfig struct {
	Workers        int
	JumpStrategy   string `toml:"jump-strategy"`
	StreamStrategy string `toml:"stream-strategy"`
}

type ServerConfig struct {
	Port           int
	AllowedOrigins []string `toml:"allowed-origins"`
}

type LogConfig struct {
	Level string
}

func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: getEnvOrDefault("BEATPATTERN_DB_PATH", "beatpattern.sqlite3")},
		Analysis: AnalysisConfig{Workers: 1},
		Server:   ServerConfig{Port: 8080, AllowedOrigins: []string{"*"}},
	}
}

// Load returns the defaults overlaid with the file at path. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	conf := Default()
	if path == "" {
		return conf, nil
	}
	if _, err := toml.DecodeFile(path, conf); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return conf, nil
}

func (c *Config) Validate() error {
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must not be negative, got %d", c.Analysis.Workers)
	}
	if _, err := ParseStrategy(c.Analysis.JumpStrategy); err != nil {
		return fmt.Errorf("analysis.jump-strategy: %w", err)
	}
	if _, err := ParseStrategy(c.Analysis.StreamStrategy); err != nil {
		return fmt.Errorf("analysis.stream-strategy: %w", err)
	}
	if c.Log.Level != "" {
		if _, ok := logger.ParseLevel(c.Log.Level); !ok {
			return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
		}
	}
	return nil
}

// ParseStrategy maps "whole" or "windowed" to a strategy. An empty name
// keeps the analyzer's default and returns nil.
func ParseStrategy(name string) (segment.Strategy, error) {
	switch name {
	case "":
		return nil, nil
	case "whole":
		return segment.Whole{}, nil
	case "windowed":
		return segment.NewWindowed(), nil
	}
	return nil, fmt.Errorf("unknown strategy %q (want whole or windowed)", name)
}

// ServiceOptions translates the file into service options.
func (c *Config) ServiceOptions() []beatpattern.Option {
	opts := []beatpattern.Option{
		beatpattern.WithDBPath(c.Database.Path),
		beatpattern.WithWorkers(c.Analysis.Workers),
	}
	if s, _ := ParseStrategy(c.Analysis.JumpStrategy); s != nil {
		opts = append(opts, beatpattern.WithJumpStrategy(s))
	}
	if s, _ := ParseStrategy(c.Analysis.StreamStrategy); s != nil {
		opts = append(opts, beatpattern.WithStreamStrategy(s))
	}
	return opts
}

// ApplyLogLevel sets the default logger level when the file names one.
func (c *Config) ApplyLogLevel() {
	if level, ok := logger.ParseLevel(c.Log.Level); ok {
		logger.SetLevel(level)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
