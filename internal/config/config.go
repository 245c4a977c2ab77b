// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendSQLite = "sqlite"
	SessionBackendRedis  = "redis"
)

// Client configures the storefront client and CLI.
type Client struct {
	APIURL             string        `env:"STOREFRONT_API_URL" envDefault:"http://localhost:8000"`
	RequestTimeout     time.Duration `env:"STOREFRONT_REQUEST_TIMEOUT" envDefault:"10s"`
	SessionBackend     string        `env:"STOREFRONT_SESSION_BACKEND" envDefault:"sqlite"`
	SessionPath        string        `env:"STOREFRONT_SESSION_PATH" envDefault:"storefront.db"`
	RedisAddr          string        `env:"STOREFRONT_REDIS_ADDR" envDefault:"localhost:6379"`
	SessionKey         string        `env:"STOREFRONT_SESSION_KEY" envDefault:"default"`
	LogLevel           string        `env:"STOREFRONT_LOG_LEVEL" envDefault:"warn"`
	LogFormat          string        `env:"STOREFRONT_LOG_FORMAT" envDefault:"text"`
	BreakerFailures    uint32        `env:"STOREFRONT_BREAKER_FAILURES" envDefault:"5"`
	BreakerOpenTimeout time.Duration `env:"STOREFRONT_BREAKER_OPEN_TIMEOUT" envDefault:"30s"`
}

// FakeShop configures the local development commerce service.
type FakeShop struct {
	HTTPPort        string        `env:"FAKESHOP_HTTP_PORT" envDefault:"8000"`
	JWTSecret       string        `env:"FAKESHOP_JWT_SECRET" envDefault:"fakeshop-dev-secret"`
	TokenTTL        time.Duration `env:"FAKESHOP_TOKEN_TTL" envDefault:"24h"`
	ShutdownTimeout time.Duration `env:"FAKESHOP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel        string        `env:"FAKESHOP_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"FAKESHOP_LOG_FORMAT" envDefault:"json"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func LoadClient() (Client, error) {
	var cfg Client
	if err := ParseEnv(&cfg); err != nil {
		return Client{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Client{}, err
	}
	return cfg, nil
}

func (c Client) Validate() error {
	switch c.SessionBackend {
	case SessionBackendMemory, SessionBackendSQLite, SessionBackendRedis:
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
	if c.APIURL == "" {
		return fmt.Errorf("STOREFRONT_API_URL is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

func LoadFakeShop() (FakeShop, error) {
	var cfg FakeShop
	if err := ParseEnv(&cfg); err != nil {
		return FakeShop{}, err
	}
	return cfg, nil
}
