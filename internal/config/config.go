// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported storage backends for the post snapshot.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port                     string `mapstructure:"PORT"`
	Env                      string `mapstructure:"APP_ENV"`
	DBDriver                 string `mapstructure:"DB_DRIVER"`
	DBHost                   string `mapstructure:"DB_HOST"`
	DBPort                   string `mapstructure:"DB_PORT"`
	DBUser                   string `mapstructure:"DB_USER"`
	DBPassword               string `mapstructure:"DB_PASSWORD"`
	DBName                   string `mapstructure:"DB_NAME"`
	DBSSLMode                string `mapstructure:"DB_SSLMODE"`
	DBMaxOpenConns           int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns           int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMinutes int    `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	SQLitePath               string `mapstructure:"SQLITE_PATH"`
	RedisURL                 string `mapstructure:"REDIS_URL"`
	AllowedOrigins           string `mapstructure:"ALLOWED_ORIGINS"`
	FeatureFlags             string `mapstructure:"FEATURE_FLAGS"`
	TimeZone                 string `mapstructure:"TIME_ZONE"`
	ShareBaseURL             string `mapstructure:"SHARE_BASE_URL"`
	FeedCacheTTLSeconds      int    `mapstructure:"FEED_CACHE_TTL_SECONDS"`
	RouteCacheTTLSeconds     int    `mapstructure:"ROUTE_CACHE_TTL_SECONDS"`
	WriteRateLimit           int    `mapstructure:"WRITE_RATE_LIMIT"`
	WriteRateWindowSeconds   int    `mapstructure:"WRITE_RATE_WINDOW_SECONDS"`
	TracingExporter          string `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint             string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base file is optional; APP_ENV may come from it or the environment.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "test" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_DRIVER", DriverMemory)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "fachnmchi")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	viper.SetDefault("SQLITE_PATH", "fachnmchi.db")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080")
	viper.SetDefault("FEATURE_FLAGS", "")
	viper.SetDefault("TIME_ZONE", "Africa/Casablanca")
	viper.SetDefault("SHARE_BASE_URL", "http://localhost:5173")
	viper.SetDefault("FEED_CACHE_TTL_SECONDS", 30)
	viper.SetDefault("ROUTE_CACHE_TTL_SECONDS", 300)
	viper.SetDefault("WRITE_RATE_LIMIT", 30)
	viper.SetDefault("WRITE_RATE_WINDOW_SECONDS", 60)
	viper.SetDefault("TRACING_EXPORTER", "none")
	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.DBSSLMode = strings.ToLower(strings.TrimSpace(c.DBSSLMode))
	c.TracingExporter = strings.ToLower(strings.TrimSpace(c.TracingExporter))
	c.ShareBaseURL = strings.TrimRight(strings.TrimSpace(c.ShareBaseURL), "/")
}

// Validate ensures that required configuration values are present and usable.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}

	switch c.DBDriver {
	case DriverMemory, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be one of memory, postgres, sqlite (got %q)", c.DBDriver)
	}
	if c.DBDriver == DriverSQLite && c.SQLitePath == "" {
		return errors.New("SQLITE_PATH is required for the sqlite driver")
	}
	if c.DBConnMaxLifetimeMinutes < 0 {
		return errors.New("DB_CONN_MAX_LIFETIME_MINUTES must not be negative")
	}

	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("TIME_ZONE %q: %w", c.TimeZone, err)
	}
	if c.FeedCacheTTLSeconds < 0 || c.RouteCacheTTLSeconds < 0 {
		return errors.New("cache TTLs must not be negative")
	}
	if c.WriteRateLimit < 0 || c.WriteRateWindowSeconds < 0 {
		return errors.New("write rate limit settings must not be negative")
	}

	switch c.TracingExporter {
	case "", "none", "stdout", "otlp":
	default:
		return fmt.Errorf("TRACING_EXPORTER must be one of none, stdout, otlp (got %q)", c.TracingExporter)
	}

	if c.IsProduction() {
		if c.DBDriver == DriverPostgres {
			if c.DBPassword == "password" || c.DBPassword == "" {
				return errors.New("a strong DB_PASSWORD is required in production")
			}
			if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
				return errors.New("DB_SSLMODE must not be 'disable' in production")
			}
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	}

	return nil
}

// IsProduction reports whether the app runs with a production profile.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Location returns the time zone derived times are rendered in. Validate
// has already checked that it loads; UTC is the fallback for hand-built configs.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil || c.TimeZone == "" {
		return time.UTC
	}
	return loc
}

// FeedCacheTTL is how long a ranked feed view stays cached.
func (c *Config) FeedCacheTTL() time.Duration {
	return time.Duration(c.FeedCacheTTLSeconds) * time.Second
}

// RouteCacheTTL is how long a planned route set stays cached.
func (c *Config) RouteCacheTTL() time.Duration {
	return time.Duration(c.RouteCacheTTLSeconds) * time.Second
}

// WriteRateWindow is the window of the per-client write rate limit.
func (c *Config) WriteRateWindow() time.Duration {
	return time.Duration(c.WriteRateWindowSeconds) * time.Second
}
