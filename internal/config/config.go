package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
// It is read-only after Load() returns and thread-safe for concurrent reads.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Reference ReferenceConfig `yaml:"reference"`
	Log       LogConfig       `yaml:"log"`
	Limits    LimitsConfig    `yaml:"limits"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int      `yaml:"port" env:"STATEFACTS_PORT"`
	ReadTimeout     Duration `yaml:"read_timeout" env:"STATEFACTS_READ_TIMEOUT"`
	WriteTimeout    Duration `yaml:"write_timeout" env:"STATEFACTS_WRITE_TIMEOUT"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" env:"STATEFACTS_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig selects and locates the fact overlay store.
// A zero MaintenanceInterval disables the SQLite maintenance worker.
type DatabaseConfig struct {
	Driver              string   `yaml:"driver" env:"STATEFACTS_DB_DRIVER"`
	Path                string   `yaml:"path" env:"STATEFACTS_DB_PATH"`
	MaintenanceInterval Duration `yaml:"maintenance_interval" env:"STATEFACTS_DB_MAINTENANCE_INTERVAL"`
}

// ReferenceConfig points at an external state dataset. Empty means the
// embedded dataset.
type ReferenceConfig struct {
	Path string `yaml:"path" env:"STATEFACTS_REFERENCE_PATH"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"STATEFACTS_LOG_LEVEL"`
	Format string `yaml:"format" env:"STATEFACTS_LOG_FORMAT"`
}

// LimitsConfig tunes the token bucket in front of fact mutations.
type LimitsConfig struct {
	MutationBurst  int      `yaml:"mutation_burst" env:"STATEFACTS_MUTATION_BURST"`
	MutationRefill Duration `yaml:"mutation_refill" env:"STATEFACTS_MUTATION_REFILL"`
}

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Duration is a wrapper around time.Duration that supports YAML and
// environment string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// Load loads configuration with precedence: defaults → YAML file → env vars.
// Returns an immutable Config suitable for concurrent read access.
func Load() (*Config, error) {
	cfg := newDefaults()

	configPath := getEnv("STATEFACTS_CONFIG_PATH", "config/statefacts.yaml")

	// Missing file is not an error
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	return finish(cfg)
}

// LoadFromFile loads configuration from a specific path.
// Used for testing and explicit path specification.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return finish(cfg)
}

// finish applies environment overrides and validates.
func finish(cfg *Config) (*Config, error) {
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3500,
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		Database: DatabaseConfig{
			Driver:              DriverSQLite,
			Path:                "data/statefacts.db",
			MaintenanceInterval: Duration(time.Hour),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Limits: LimitsConfig{
			MutationBurst:  100,
			MutationRefill: Duration(100 * time.Millisecond),
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// validate checks that configuration values are usable.
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database path is required for the sqlite driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	if c.Database.MaintenanceInterval < 0 {
		return errors.New("database maintenance_interval must not be negative")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	if c.Limits.MutationBurst <= 0 {
		return errors.New("limits mutation_burst must be positive")
	}
	if c.Limits.MutationRefill <= 0 {
		return errors.New("limits mutation_refill must be positive")
	}

	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
