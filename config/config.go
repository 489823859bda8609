// Package config loads the storefront settings. Values are layered: defaults,
// then an optional YAML file, then STOREFRONT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfiguration is wrapped by every load and validation failure.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Session backends.
const (
	BackendCookie   = "cookie"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Identity providers.
const (
	ProviderLocal    = "local"
	ProviderFirebase = "firebase"
)

// Config holds every setting of the service.
type Config struct {
	Port        int    `yaml:"port"`
	Environment string `yaml:"environment"`

	Session   SessionConfig   `yaml:"session"`
	Auth      AuthConfig      `yaml:"auth"`
	Orders    OrdersConfig    `yaml:"orders"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
}

// SessionConfig selects where cart, order and address state is kept.
type SessionConfig struct {
	Backend     string `yaml:"backend"`
	RedisURL    string `yaml:"redis_url"`
	DatabaseURL string `yaml:"database_url"`
	// SecureCookies sets the Secure attribute on every cookie the API writes.
	// Unset means on in production and off elsewhere.
	SecureCookies *bool `yaml:"secure_cookies"`
}

// AuthConfig selects the identity provider.
type AuthConfig struct {
	Provider       string        `yaml:"provider"`
	JWTSecret      string        `yaml:"jwt_secret"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	FirebaseAPIKey string        `yaml:"firebase_api_key"`
	RequireUser    bool          `yaml:"require_user"`
}

// OrdersConfig holds order history rules.
type OrdersConfig struct {
	RequireCancelBeforeDelete bool `yaml:"require_cancel_before_delete"`
}

// RateLimitConfig limits requests per client IP. RPS 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// TelemetryConfig toggles tracing.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LogConfig sets the minimum log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a configuration that runs locally with cookie-held
// state and the local identity provider.
func DefaultConfig() *Config {
	return &Config{
		Port:        8080,
		Environment: "development",
		Session: SessionConfig{
			Backend: BackendCookie,
		},
		Auth: AuthConfig{
			Provider:  ProviderLocal,
			JWTSecret: "change-me",
			TokenTTL:  24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			RPS:   20,
			Burst: 40,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// SecureCookies reports whether cookies carry the Secure attribute: the
// explicit session.secure_cookies setting, or IsProduction when unset.
func (c *Config) SecureCookies() bool {
	if c.Session.SecureCookies != nil {
		return *c.Session.SecureCookies
	}
	return c.IsProduction()
}

// LoadFromFile overlays the YAML file at path. Unknown keys are rejected.
func (c *Config) LoadFromFile(path string) error {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config file extension %q: %w", ext, ErrInvalidConfiguration)
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to open config file %s: %w", cleanPath, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %v: %w", cleanPath, err, ErrInvalidConfiguration)
	}
	return nil
}

// LoadFromEnv overlays STOREFRONT_* environment variables. Malformed numbers,
// booleans and durations are reported rather than ignored.
func (c *Config) LoadFromEnv() error {
	var errs []error
	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := os.LookupEnv(name); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = n
		}
	}
	float := func(name string, dst *float64) {
		if v, ok := os.LookupEnv(name); ok {
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := os.LookupEnv(name); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = b
		}
	}
	optionalBool := func(name string, dst **bool) {
		if v, ok := os.LookupEnv(name); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = &b
		}
	}
	duration := func(name string, dst *time.Duration) {
		if v, ok := os.LookupEnv(name); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = d
		}
	}

	integer("STOREFRONT_PORT", &c.Port)
	str("STOREFRONT_ENVIRONMENT", &c.Environment)

	str("STOREFRONT_SESSION_BACKEND", &c.Session.Backend)
	str("STOREFRONT_SESSION_REDIS_URL", &c.Session.RedisURL)
	str("STOREFRONT_SESSION_DATABASE_URL", &c.Session.DatabaseURL)
	optionalBool("STOREFRONT_SESSION_SECURE_COOKIES", &c.Session.SecureCookies)

	str("STOREFRONT_AUTH_PROVIDER", &c.Auth.Provider)
	str("STOREFRONT_AUTH_JWT_SECRET", &c.Auth.JWTSecret)
	duration("STOREFRONT_AUTH_TOKEN_TTL", &c.Auth.TokenTTL)
	str("STOREFRONT_AUTH_FIREBASE_API_KEY", &c.Auth.FirebaseAPIKey)
	boolean("STOREFRONT_AUTH_REQUIRE_USER", &c.Auth.RequireUser)

	boolean("STOREFRONT_ORDERS_REQUIRE_CANCEL_BEFORE_DELETE", &c.Orders.RequireCancelBeforeDelete)

	float("STOREFRONT_RATE_LIMIT_RPS", &c.RateLimit.RPS)
	integer("STOREFRONT_RATE_LIMIT_BURST", &c.RateLimit.Burst)

	if v, ok := os.LookupEnv("STOREFRONT_CORS_ALLOWED_ORIGINS"); ok {
		c.CORS.AllowedOrigins = parseStringList(v)
	}

	boolean("STOREFRONT_TELEMETRY_ENABLED", &c.Telemetry.Enabled)
	str("STOREFRONT_LOG_LEVEL", &c.Log.Level)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errors.Join(errs...))
	}
	return nil
}

// Validate checks the settings that would otherwise fail at startup.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: %w", c.Port, ErrInvalidConfiguration)
	}

	switch c.Session.Backend {
	case BackendCookie, BackendMemory:
	case BackendRedis:
		if c.Session.RedisURL == "" {
			return fmt.Errorf("session.redis_url is required for the redis backend: %w", ErrInvalidConfiguration)
		}
	case BackendPostgres:
		if c.Session.DatabaseURL == "" {
			return fmt.Errorf("session.database_url is required for the postgres backend: %w", ErrInvalidConfiguration)
		}
	default:
		return fmt.Errorf("unknown session backend %q: %w", c.Session.Backend, ErrInvalidConfiguration)
	}

	switch c.Auth.Provider {
	case ProviderLocal:
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret is required for the local provider: %w", ErrInvalidConfiguration)
		}
		if c.IsProduction() && c.Auth.JWTSecret == DefaultConfig().Auth.JWTSecret {
			return fmt.Errorf("auth.jwt_secret must be changed in production: %w", ErrInvalidConfiguration)
		}
	case ProviderFirebase:
		if c.Auth.FirebaseAPIKey == "" {
			return fmt.Errorf("auth.firebase_api_key is required for the firebase provider: %w", ErrInvalidConfiguration)
		}
	default:
		return fmt.Errorf("unknown auth provider %q: %w", c.Auth.Provider, ErrInvalidConfiguration)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive: %w", ErrInvalidConfiguration)
	}

	if c.RateLimit.RPS < 0 || (c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1) {
		return fmt.Errorf("rate_limit needs rps >= 0 and burst >= 1: %w", ErrInvalidConfiguration)
	}
	return nil
}

// Load builds the configuration from defaults, the file at path (skipped when
// empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseStringList splits a comma-separated list, dropping empty entries.
func parseStringList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
