package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// CMS drivers
const (
	DriverCosmic   = "cosmic"
	DriverPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Content bucket configuration
	CMS CMSConfig

	// Database configuration, used by the postgres bucket driver
	Database DatabaseConfig

	// Page composition limits
	Pages PagesConfig

	// Newsletter form configuration
	Newsletter NewsletterConfig

	// Signup form configuration
	Signup SignupConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	// SiteURL is the public origin used in canonical and social links
	SiteURL string `env:"SITE_URL" envDefault:"http://localhost:8080"`
}

// CMSConfig holds content bucket settings
type CMSConfig struct {
	Driver       string        `env:"CMS_DRIVER" envDefault:"cosmic"`
	APIURL       string        `env:"COSMIC_API_URL" envDefault:"https://api.cosmicjs.com/v3"`
	BucketSlug   string        `env:"COSMIC_BUCKET_SLUG"`
	ReadKey      string        `env:"COSMIC_READ_KEY"`
	WriteKey     string        `env:"COSMIC_WRITE_KEY"`
	Timeout      time.Duration `env:"CMS_TIMEOUT" envDefault:"10s"`
	SettingsSlug string        `env:"CMS_SETTINGS_SLUG" envDefault:"site-configuration"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string        `env:"DB_HOST" envDefault:"localhost"`
	Port           string        `env:"DB_PORT" envDefault:"5432"`
	User           string        `env:"DB_USER" envDefault:"postgres"`
	Password       string        `env:"DB_PASSWORD" envDefault:"postgres"`
	Name           string        `env:"DB_NAME" envDefault:"ai_picks_site"`
	SSLMode        string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns   int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns   int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxLifetime    time.Duration `env:"DB_MAX_LIFETIME" envDefault:"5m"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
	MigrationsPath string        `env:"MIGRATIONS_PATH" envDefault:"./migrations"`
}

// PagesConfig holds how many records each page section fetches
type PagesConfig struct {
	HomePosts          int `env:"HOME_POST_LIMIT" envDefault:"3"`
	HomePicks          int `env:"HOME_PICK_LIMIT" envDefault:"5"`
	HomeTestimonials   int `env:"HOME_TESTIMONIAL_LIMIT" envDefault:"3"`
	BlogPosts          int `env:"BLOG_POST_LIMIT" envDefault:"20"`
	SignupTestimonials int `env:"SIGNUP_TESTIMONIAL_LIMIT" envDefault:"6"`
}

// NewsletterConfig holds newsletter endpoint settings
type NewsletterConfig struct {
	// RatePerMinute is the per-client submission allowance
	RatePerMinute int `env:"NEWSLETTER_RATE_PER_MINUTE" envDefault:"6"`
	Burst         int `env:"NEWSLETTER_BURST" envDefault:"3"`
}

// SignupConfig holds signup form settings
type SignupConfig struct {
	// ProcessingDelay simulates the payment provider round trip
	ProcessingDelay time.Duration `env:"SIGNUP_PROCESSING_DELAY" envDefault:"2s"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "pretty"
	File   string `env:"LOG_FILE"`
	Env    string `env:"ENV" envDefault:"production"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.CMS.Driver {
	case DriverCosmic:
		if c.CMS.BucketSlug == "" {
			return fmt.Errorf("COSMIC_BUCKET_SLUG is required")
		}
		if c.CMS.ReadKey == "" {
			return fmt.Errorf("COSMIC_READ_KEY is required")
		}
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	default:
		return fmt.Errorf("CMS_DRIVER must be one of: %s, %s", DriverCosmic, DriverPostgres)
	}
	if c.CMS.SettingsSlug == "" {
		return fmt.Errorf("CMS_SETTINGS_SLUG is required")
	}
	if c.Newsletter.RatePerMinute <= 0 {
		return fmt.Errorf("NEWSLETTER_RATE_PER_MINUTE must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}
