package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported catalogue store drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Batch     BatchConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig holds catalogue storage configuration
type StoreConfig struct {
	Driver   string `mapstructure:"driver"` // "memory", "postgres" or "sqlite"
	DSN      string `mapstructure:"dsn"`    // connection string, or file path for sqlite
	MaxConns int    `mapstructure:"max_conns"`
}

// BatchConfig holds find-or-create batch limits
type BatchConfig struct {
	MaxRows    int `mapstructure:"max_rows"`
	IDAttempts int `mapstructure:"id_attempts"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Debug bool `mapstructure:"debug"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith loads configuration into a caller-provided viper instance, so
// command-line flags bound to v take precedence over file and environment.
func LoadWith(v *viper.Viper) (*Config, error) {
	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricelens/")

	// Environment variable settings
	v.SetEnvPrefix("PRICELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.shutdown_timeout", "10s")

	// Store defaults
	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.max_conns", 10)

	// Batch defaults
	v.SetDefault("batch.max_rows", 500)
	v.SetDefault("batch.id_attempts", 3)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)

	v.SetDefault("logging.debug", false)
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Store.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if config.Store.DSN == "" {
			return fmt.Errorf("store DSN is required for driver %q (set PRICELENS_STORE_DSN)", config.Store.Driver)
		}
	default:
		return fmt.Errorf("store driver must be 'memory', 'postgres' or 'sqlite', got: %s", config.Store.Driver)
	}

	if config.Batch.MaxRows <= 0 {
		return fmt.Errorf("batch max_rows must be positive, got: %d", config.Batch.MaxRows)
	}

	if config.Batch.IDAttempts <= 0 {
		return fmt.Errorf("batch id_attempts must be positive, got: %d", config.Batch.IDAttempts)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
