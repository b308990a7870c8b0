package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/khudaiyar/aerora/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Database  DatabaseConfig  `split_words:"true"`
	Provider  ProviderConfig  `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	Scheduler SchedulerConfig `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"aerora"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted database connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// ProviderConfig contains settings for the upstream weather/geocoding API
type ProviderConfig struct {
	APIKey         string `envconfig:"WEATHER_API_KEY" required:"true"`
	BaseURL        string `envconfig:"WEATHER_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	GeoBaseURL     string `envconfig:"GEO_API_BASE_URL" default:"https://api.openweathermap.org/geo/1.0"`
	TimeoutSeconds int    `envconfig:"WEATHER_API_TIMEOUT_SECONDS" default:"10"`
	SearchLimit    int    `envconfig:"GEO_SEARCH_LIMIT" default:"5"`
}

// Timeout returns the HTTP client timeout for upstream calls.
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// CacheConfig contains cache backend selection and per-kind TTLs
type CacheConfig struct {
	Type               string `envconfig:"CACHE_TYPE" default:"memory"`
	RedisAddr          string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword      string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB            int    `envconfig:"REDIS_DB" default:"0"`
	CurrentTTLMinutes  int    `envconfig:"CACHE_CURRENT_TTL_MINUTES" default:"10"`
	ForecastTTLMinutes int    `envconfig:"CACHE_FORECAST_TTL_MINUTES" default:"60"`
	HourlyTTLMinutes   int    `envconfig:"CACHE_HOURLY_TTL_MINUTES" default:"30"`
	GeocodeTTLMinutes  int    `envconfig:"CACHE_GEOCODE_TTL_MINUTES" default:"1440"`
}

// CurrentTTL returns the TTL for current-weather cache entries.
func (c CacheConfig) CurrentTTL() time.Duration {
	return time.Duration(c.CurrentTTLMinutes) * time.Minute
}

// ForecastTTL returns the TTL for week-forecast cache entries.
func (c CacheConfig) ForecastTTL() time.Duration {
	return time.Duration(c.ForecastTTLMinutes) * time.Minute
}

// HourlyTTL returns the TTL for hourly-forecast cache entries.
func (c CacheConfig) HourlyTTL() time.Duration {
	return time.Duration(c.HourlyTTLMinutes) * time.Minute
}

// GeocodeTTL returns the TTL for geocoding cache entries.
func (c CacheConfig) GeocodeTTL() time.Duration {
	return time.Duration(c.GeocodeTTLMinutes) * time.Minute
}

// SchedulerConfig contains settings for the background cleanup job
type SchedulerConfig struct {
	CleanupIntervalMinutes int `envconfig:"CLEANUP_INTERVAL_MINUTES" default:"1440"`
	RetentionDays          int `envconfig:"WEATHER_RETENTION_DAYS" default:"30"`
}

// CleanupInterval returns how often the retention job runs.
func (s SchedulerConfig) CleanupInterval() time.Duration {
	return time.Duration(s.CleanupIntervalMinutes) * time.Minute
}

// Retention returns how long persisted observations are kept.
func (s SchedulerConfig) Retention() time.Duration {
	return time.Duration(s.RetentionDays) * 24 * time.Hour
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Provider.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// ValidateSSLMode validates the SSL mode configuration
func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > 65535 {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	if err := d.ValidateSSLMode(); err != nil {
		return err
	}
	return nil
}

// Validate checks upstream provider configuration
func (p *ProviderConfig) Validate() error {
	if p.APIKey == "" {
		return errors.NewConfigurationError("WEATHER_API_KEY is required", nil)
	}
	if err := validateBaseURL("WEATHER_API_BASE_URL", p.BaseURL); err != nil {
		return err
	}
	if err := validateBaseURL("GEO_API_BASE_URL", p.GeoBaseURL); err != nil {
		return err
	}
	if p.TimeoutSeconds < 1 || p.TimeoutSeconds > 120 {
		return errors.NewConfigurationError("WEATHER_API_TIMEOUT_SECONDS must be between 1 and 120", nil)
	}
	if p.SearchLimit < 1 || p.SearchLimit > 10 {
		return errors.NewConfigurationError("GEO_SEARCH_LIMIT must be between 1 and 10", nil)
	}
	return nil
}

func validateBaseURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	if c.Type != "memory" && c.Type != "redis" {
		return errors.NewConfigurationError("CACHE_TYPE must be either 'memory' or 'redis'", nil)
	}
	if c.Type == "redis" && c.RedisAddr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when CACHE_TYPE is 'redis'", nil)
	}
	for name, minutes := range map[string]int{
		"CACHE_CURRENT_TTL_MINUTES":  c.CurrentTTLMinutes,
		"CACHE_FORECAST_TTL_MINUTES": c.ForecastTTLMinutes,
		"CACHE_HOURLY_TTL_MINUTES":   c.HourlyTTLMinutes,
		"CACHE_GEOCODE_TTL_MINUTES":  c.GeocodeTTLMinutes,
	} {
		if minutes < 1 {
			return errors.NewConfigurationError(name+" must be at least 1 minute", nil)
		}
		if minutes > 10080 {
			return errors.NewConfigurationError(name+" cannot exceed 10080 minutes (7 days)", nil)
		}
	}
	return nil
}

// Validate checks scheduler configuration
func (s *SchedulerConfig) Validate() error {
	if s.CleanupIntervalMinutes < 1 {
		return errors.NewConfigurationError("CLEANUP_INTERVAL_MINUTES must be at least 1 minute", nil)
	}
	if s.RetentionDays < 1 {
		return errors.NewConfigurationError("WEATHER_RETENTION_DAYS must be at least 1 day", nil)
	}
	return nil
}
