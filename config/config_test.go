package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendCookie, cfg.Session.Backend)
	assert.Equal(t, ProviderLocal, cfg.Auth.Provider)
	assert.False(t, cfg.Orders.RequireCancelBeforeDelete)
}

func TestLoadFromFile(t *testing.T) {
	path := writeFile(t, "storefront.yaml", `
port: 9090
environment: staging
session:
  backend: redis
  redis_url: redis://localhost:6379/0
auth:
  token_ttl: 2h
  require_user: true
orders:
  require_cancel_before_delete: true
cors:
  allowed_origins: [https://shop.example.com]
`)

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, BackendRedis, cfg.Session.Backend)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Auth.RequireUser)
	assert.True(t, cfg.Orders.RequireCancelBeforeDelete)
	assert.Equal(t, []string{"https://shop.example.com"}, cfg.CORS.AllowedOrigins)
	// Untouched keys keep their defaults.
	assert.Equal(t, ProviderLocal, cfg.Auth.Provider)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFileErrors(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.LoadFromFile(writeFile(t, "storefront.json", `{}`))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	err = cfg.LoadFromFile(writeFile(t, "unknown.yaml", "colour: blue\n"))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	err = cfg.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STOREFRONT_PORT", "7070")
	t.Setenv("STOREFRONT_SESSION_BACKEND", "postgres")
	t.Setenv("STOREFRONT_SESSION_DATABASE_URL", "postgres://shop@localhost/shop")
	t.Setenv("STOREFRONT_AUTH_TOKEN_TTL", "90m")
	t.Setenv("STOREFRONT_RATE_LIMIT_RPS", "2.5")
	t.Setenv("STOREFRONT_CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("STOREFRONT_TELEMETRY_ENABLED", "true")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, BackendPostgres, cfg.Session.Backend)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoadFromEnvRejectsMalformedValues(t *testing.T) {
	t.Setenv("STOREFRONT_PORT", "eighty")
	t.Setenv("STOREFRONT_AUTH_REQUIRE_USER", "maybe")

	cfg := DefaultConfig()
	err := cfg.LoadFromEnv()
	require.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "STOREFRONT_PORT")
	assert.Contains(t, err.Error(), "STOREFRONT_AUTH_REQUIRE_USER")
	assert.Equal(t, 8080, cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Port = 70000 }},
		{"unknown backend", func(c *Config) { c.Session.Backend = "disk" }},
		{"redis without url", func(c *Config) { c.Session.Backend = BackendRedis }},
		{"postgres without url", func(c *Config) { c.Session.Backend = BackendPostgres }},
		{"unknown provider", func(c *Config) { c.Auth.Provider = "ldap" }},
		{"firebase without key", func(c *Config) { c.Auth.Provider = ProviderFirebase }},
		{"empty secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"default secret in production", func(c *Config) { c.Environment = "production" }},
		{"zero token ttl", func(c *Config) { c.Auth.TokenTTL = 0 }},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfiguration)
		})
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "storefront.yml", "session:\n  backend: memory\n")
	t.Setenv("STOREFRONT_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Session.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)

	t.Setenv("STOREFRONT_SESSION_BACKEND", "redis")
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestSecureCookiesFollowEnvironment(t *testing.T) {
	t.Setenv("STOREFRONT_ENVIRONMENT", "production")
	t.Setenv("STOREFRONT_AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Nil(t, cfg.Session.SecureCookies)
	assert.True(t, cfg.SecureCookies())

	assert.False(t, DefaultConfig().SecureCookies())
}

func TestSecureCookiesExplicitSetting(t *testing.T) {
	t.Setenv("STOREFRONT_ENVIRONMENT", "production")
	t.Setenv("STOREFRONT_AUTH_JWT_SECRET", "s3cret")
	t.Setenv("STOREFRONT_SESSION_SECURE_COOKIES", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.SecureCookies())

	path := writeFile(t, "dev.yaml", "session:\n  secure_cookies: true\n")
	dev := DefaultConfig()
	require.NoError(t, dev.LoadFromFile(path))
	assert.True(t, dev.SecureCookies())
}
