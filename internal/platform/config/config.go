package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures process-wide configuration. Everything is read-only after
// FromEnv returns; vendor credentials never appear anywhere else.
type Config struct {
	Addr string `env:"SESSIONGATE_ADDR" envDefault:":8080"`

	// SiteURL is the public origin of the application, used for billing
	// portal return links.
	SiteURL string `env:"SITE_URL" envDefault:"http://localhost:8080"`

	Identity IdentityConfig
	Billing  BillingConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Audit    AuditConfig
}

// IdentityConfig points at the JWT-issuing identity provider.
type IdentityConfig struct {
	BaseURL string `env:"IDENTITY_BASE_URL" envDefault:"http://localhost:9999"`

	// AdminToken authorizes admin-delete-user calls. Supplied out-of-band by
	// the hosting platform; empty disables account deletion.
	AdminToken string `env:"IDENTITY_ADMIN_TOKEN"`

	Timeout time.Duration `env:"IDENTITY_TIMEOUT" envDefault:"10s"`
}

// BillingConfig points at the billing provider.
type BillingConfig struct {
	SecretKey string `env:"STRIPE_SECRET_KEY"`

	// DefaultPriceID is the free plan every confirmed signup is subscribed to.
	DefaultPriceID string `env:"STRIPE_DEFAULT_PRICE_PLAN"`

	// UpdatesWebhookSecret verifies subscription-change webhook signatures.
	// Empty skips verification (dev only).
	UpdatesWebhookSecret string `env:"STRIPE_UPDATES_WEBHOOK_SECRET"`

	PlanCacheTTL time.Duration `env:"PLAN_CACHE_TTL" envDefault:"5m"`
}

// DatabaseConfig points at the user record store. An empty URL selects the
// in-memory store (dev only).
type DatabaseConfig struct {
	URL string `env:"DATABASE_URL"`
}

// RedisConfig configures the optional Redis cache.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// AuditConfig configures the audit event trail. Empty brokers fall back to
// the log sink.
type AuditConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"AUDIT_TOPIC" envDefault:"sessiongate.audit"`
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
