// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
	OTPTTL    time.Duration `yaml:"otp_ttl"`
}

// PricingConfig carries the policy defaults the pricing engine falls back to
// when no rule matches. These were hardcoded tables in earlier revisions of
// the product; they are configuration, not domain law.
type PricingConfig struct {
	// FallbackDiscounts is a flat deduction keyed by billing interval,
	// applied only when no discount rule matches.
	FallbackDiscounts map[string]int64 `yaml:"fallback_discounts"`
	// DefaultTaxPercent applies when no tax rule matches the interval.
	DefaultTaxPercent int64 `yaml:"default_tax_percent"`
	// MembershipFee is the one-time charge for first-time customers.
	MembershipFee int64 `yaml:"membership_fee"`
	// LoyaltyCredits is awarded to the customer on confirmation, keyed by
	// billing interval.
	LoyaltyCredits map[string]int64 `yaml:"loyalty_credits"`
	// InvoiceDueDays sets how many days after confirmation an invoice is due.
	InvoiceDueDays int `yaml:"invoice_due_days"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Pricing  PricingConfig  `yaml:"pricing"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = time.Hour
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = 24 * time.Hour
	}
	if cfg.Auth.OTPTTL <= 0 {
		cfg.Auth.OTPTTL = 10 * time.Minute
	}
	cfg.Pricing.applyDefaults()

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func (p *PricingConfig) applyDefaults() {
	if len(p.FallbackDiscounts) == 0 {
		p.FallbackDiscounts = map[string]int64{
			"Monthly":     100,
			"Quarterly":   200,
			"Half-Yearly": 300,
			"Yearly":      400,
		}
	}
	if p.DefaultTaxPercent == 0 {
		p.DefaultTaxPercent = 10
	}
	if p.MembershipFee == 0 {
		p.MembershipFee = 50
	}
	if len(p.LoyaltyCredits) == 0 {
		p.LoyaltyCredits = map[string]int64{
			"Monthly":     5,
			"Quarterly":   10,
			"Half-Yearly": 15,
			"Yearly":      10,
		}
	}
	if p.InvoiceDueDays <= 0 {
		p.InvoiceDueDays = 7
	}
}
