package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// StorageMode selects the store backing the marketplace.
type StorageMode string

const (
	StoragePostgres StorageMode = "postgres"
	StorageMemory   StorageMode = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageMode.
func (s *StorageMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "postgres", "memory":
		*s = StorageMode(v)
		return nil
	default:
		return fmt.Errorf("invalid STORAGE: %q (valid options: postgres, memory)", v)
	}
}

// Config is the application configuration, loaded from the environment.
type Config struct {
	// Env is "development" or "production"; controls logging and cookie defaults.
	Env     string      `env:"APP_ENV" envDefault:"development"`
	Storage StorageMode `env:"STORAGE" envDefault:"postgres"`

	HTTP   HTTPConfig
	DB     DBConfig `envPrefix:"DB_"`
	Auth   AuthConfig
	Alerts AlertsConfig
}

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	Addr string `env:"HTTP_ADDR"`
	// Port is honoured when HTTP_ADDR is empty, matching common PaaS conventions.
	Port            string        `env:"PORT"                  envDefault:"5000"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS"          envDefault:"http://localhost:5173" envSeparator:","`
}

// DBConfig contains PostgreSQL connection settings.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"solosphere"`
	Password string `env:"PASSWORD" envDefault:"solosphere"`
	Name     string `env:"NAME"     envDefault:"solosphere"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"`
	MaxConns int32  `env:"MAX_CONNS" envDefault:"10"`
}

// DSN renders the connection string for pgxpool.
func (d DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode, d.MaxConns,
	)
}

// AuthConfig controls token signing and the auth cookie.
type AuthConfig struct {
	JWTSecret    string        `env:"JWT_SECRET,notEmpty"`
	TokenTTL     time.Duration `env:"TOKEN_TTL"     envDefault:"8760h"`
	CookieName   string        `env:"COOKIE_NAME"   envDefault:"token"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

// AlertsConfig controls background email notifications.
type AlertsConfig struct {
	Enabled     bool   `env:"ALERTS_ENABLED"     envDefault:"false"`
	RedisAddr   string `env:"REDIS_ADDR"         envDefault:"127.0.0.1:6379"`
	Concurrency int    `env:"ALERTS_CONCURRENCY" envDefault:"5"`

	SMTP SMTPConfig `envPrefix:"SMTP_"`
}

// SMTPConfig holds mail relay settings. An empty Host means log-only delivery.
type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT"     envDefault:"465"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"     envDefault:"no-reply@solosphere.local"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Sanitize()
	return &cfg, nil
}

// Sanitize applies guardrails to values loaded from env.
func (c *Config) Sanitize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env == "" {
		c.Env = "development"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":" + c.HTTP.Port
	}
	if c.HTTP.ReadTimeout <= 0 {
		c.HTTP.ReadTimeout = 10 * time.Second
	}
	if c.HTTP.WriteTimeout <= 0 {
		c.HTTP.WriteTimeout = 15 * time.Second
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 365 * 24 * time.Hour
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "token"
	}
	if c.IsProduction() {
		// Cross-site SPA cookies require Secure in production.
		c.Auth.CookieSecure = true
	}
	if c.Alerts.Concurrency < 1 {
		c.Alerts.Concurrency = 1
	}
	if c.DB.MaxConns < 1 {
		c.DB.MaxConns = 1
	}
}

// IsProduction reports whether APP_ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}
