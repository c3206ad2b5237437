package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MongoConfig points at the item catalog database
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// RedisConfig points at the recency/catalog cache
type RedisConfig struct {
	URI string `yaml:"uri"`
}

// Addr returns host:port, with any redis:// prefix removed
func (c RedisConfig) Addr() string {
	return strings.TrimPrefix(c.URI, "redis://")
}

// HTTPConfig configures the REST listener
type HTTPConfig struct {
	Port            string        `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// AuthConfig holds admin credentials and the JWT signing secret
type AuthConfig struct {
	AdminUsername      string        `yaml:"admin_username"`
	AdminPassword      string        `yaml:"-"` // Never read from or written to files
	JWTSecret          string        `yaml:"-"`
	RespondentTokenTTL time.Duration `yaml:"respondent_token_ttl"`
}

// SelectionConfig controls the adaptive selection path
type SelectionConfig struct {
	// Enabled switches between adaptive selection and the static fallback.
	Enabled          bool          `yaml:"enabled"`
	MaxPadIterations int           `yaml:"max_pad_iterations"`
	DefaultTarget    int           `yaml:"default_target"`
	RecentWindow     time.Duration `yaml:"recent_window"`
	CatalogCacheTTL  time.Duration `yaml:"catalog_cache_ttl"`
}

// LoggingConfig controls the zap logger
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Config is the full service configuration
type Config struct {
	Mongo     MongoConfig     `yaml:"mongo"`
	Redis     RedisConfig     `yaml:"redis"`
	HTTP      HTTPConfig      `yaml:"http"`
	Auth      AuthConfig      `yaml:"auth"`
	Selection SelectionConfig `yaml:"selection"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "pulsecheck",
		},
		Redis: RedisConfig{URI: "localhost:6379"},
		HTTP: HTTPConfig{
			Port:            "8080",
			ShutdownTimeout: 30 * time.Second,
		},
		Auth: AuthConfig{
			AdminUsername:      "admin",
			AdminPassword:      "password123",
			JWTSecret:          "super-secret-key-change-in-production",
			RespondentTokenTTL: 24 * time.Hour,
		},
		Selection: SelectionConfig{
			Enabled:          true,
			MaxPadIterations: 100,
			DefaultTarget:    5,
			RecentWindow:     14 * 24 * time.Hour,
			CatalogCacheTTL:  10 * time.Minute,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// PULSE_CONFIG (if any), then environment variables.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv("PULSE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Mongo.URI = getEnvOrDefault("MONGO_URI", c.Mongo.URI)
	c.Mongo.Database = getEnvOrDefault("MONGO_DB", c.Mongo.Database)
	c.Redis.URI = getEnvOrDefault("REDIS_URI", c.Redis.URI)
	c.HTTP.Port = getEnvOrDefault("PORT", c.HTTP.Port)
	c.Auth.AdminUsername = getEnvOrDefault("ADMIN_USERNAME", c.Auth.AdminUsername)
	c.Auth.AdminPassword = getEnvOrDefault("ADMIN_PASSWORD", c.Auth.AdminPassword)
	c.Auth.JWTSecret = getEnvOrDefault("JWT_SECRET", c.Auth.JWTSecret)
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", c.Logging.Level)

	var err error
	if c.Selection.Enabled, err = getEnvBool("SELECTION_ENABLED", c.Selection.Enabled); err != nil {
		return err
	}
	if c.Selection.MaxPadIterations, err = getEnvInt("SELECTION_MAX_PAD_ITERATIONS", c.Selection.MaxPadIterations); err != nil {
		return err
	}
	if c.Selection.DefaultTarget, err = getEnvInt("SELECTION_DEFAULT_TARGET", c.Selection.DefaultTarget); err != nil {
		return err
	}
	if c.Selection.RecentWindow, err = getEnvDuration("RECENT_WINDOW", c.Selection.RecentWindow); err != nil {
		return err
	}
	if c.Selection.CatalogCacheTTL, err = getEnvDuration("CATALOG_CACHE_TTL", c.Selection.CatalogCacheTTL); err != nil {
		return err
	}
	if c.Auth.RespondentTokenTTL, err = getEnvDuration("RESPONDENT_TOKEN_TTL", c.Auth.RespondentTokenTTL); err != nil {
		return err
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
