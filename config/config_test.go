package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// requiredEnv sets the variables Load refuses to start without
func requiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("WIST_FIRECRAWL_API_KEY", "fc-test")
	t.Setenv("WIST_AUTH_JWT_SECRET", "jwt-test")
}

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		requiredEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Server.RequestTimeout != 30*time.Second {
			t.Errorf("Server.RequestTimeout = %v, want 30s", cfg.Server.RequestTimeout)
		}
		if cfg.Firecrawl.BaseURL != "https://api.firecrawl.dev" {
			t.Errorf("Firecrawl.BaseURL = %s, want https://api.firecrawl.dev", cfg.Firecrawl.BaseURL)
		}
		if cfg.Database.Driver != "sqlite" {
			t.Errorf("Database.Driver = %s, want sqlite", cfg.Database.Driver)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.Auth.TokenTTL != 24*time.Hour {
			t.Errorf("Auth.TokenTTL = %v, want 24h", cfg.Auth.TokenTTL)
		}
		if cfg.Auth.Issuer != "wist" || cfg.Auth.Audience != "wist-clients" {
			t.Errorf("Auth issuer/audience = %s/%s", cfg.Auth.Issuer, cfg.Auth.Audience)
		}
		if cfg.Events.Enabled {
			t.Errorf("Events.Enabled = true, want false")
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
		if cfg.RateLimit.Upstream != 60 {
			t.Errorf("RateLimit.Upstream = %d, want 60", cfg.RateLimit.Upstream)
		}
		if cfg.Log.Level != "info" {
			t.Errorf("Log.Level = %s, want info", cfg.Log.Level)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		requiredEnv(t)
		t.Setenv("WIST_SERVER_PORT", "3000")
		t.Setenv("WIST_SERVER_ENVIRONMENT", "production")
		t.Setenv("WIST_SERVER_REQUEST_TIMEOUT", "5s")
		t.Setenv("WIST_FIRECRAWL_BASE_URL", "http://firecrawl.internal")
		t.Setenv("WIST_DATABASE_DRIVER", "postgres")
		t.Setenv("WIST_DATABASE_DSN", "postgres://wist@db/wist?sslmode=disable")
		t.Setenv("WIST_CACHE_TYPE", "redis")
		t.Setenv("WIST_CACHE_REDIS_URL", "redis://localhost:6379/0")
		t.Setenv("WIST_CACHE_TTL", "10m")
		t.Setenv("WIST_EVENTS_ENABLED", "true")
		t.Setenv("WIST_EVENTS_BROKERS", "k1:9092,k2:9092")
		t.Setenv("WIST_RATELIMIT_UPSTREAM", "5")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "3000" {
			t.Errorf("Server.Port = %s, want 3000", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Server.RequestTimeout != 5*time.Second {
			t.Errorf("Server.RequestTimeout = %v, want 5s", cfg.Server.RequestTimeout)
		}
		if cfg.Firecrawl.APIKey != "fc-test" {
			t.Errorf("Firecrawl.APIKey = %s, want fc-test", cfg.Firecrawl.APIKey)
		}
		if cfg.Firecrawl.BaseURL != "http://firecrawl.internal" {
			t.Errorf("Firecrawl.BaseURL = %s", cfg.Firecrawl.BaseURL)
		}
		if cfg.Database.Driver != "postgres" || !strings.HasPrefix(cfg.Database.DSN, "postgres://") {
			t.Errorf("Database = %+v", cfg.Database)
		}
		if cfg.Cache.Type != "redis" || cfg.Cache.RedisURL != "redis://localhost:6379/0" {
			t.Errorf("Cache = %+v", cfg.Cache)
		}
		if cfg.Cache.TTL != 10*time.Minute {
			t.Errorf("Cache.TTL = %v, want 10m", cfg.Cache.TTL)
		}
		if !cfg.Events.Enabled || len(cfg.Events.Brokers) != 2 || cfg.Events.Brokers[1] != "k2:9092" {
			t.Errorf("Events = %+v", cfg.Events)
		}
		if cfg.RateLimit.Upstream != 5 {
			t.Errorf("RateLimit.Upstream = %d, want 5", cfg.RateLimit.Upstream)
		}
	})

	t.Run("fails without firecrawl api key", func(t *testing.T) {
		t.Setenv("WIST_AUTH_JWT_SECRET", "jwt-test")
		t.Setenv("WIST_FIRECRAWL_API_KEY", "")

		_, err := Load()
		if err == nil || !strings.Contains(err.Error(), "WIST_FIRECRAWL_API_KEY") {
			t.Errorf("Load() error = %v, want missing api key error", err)
		}
	})

	t.Run("fails with invalid cache type", func(t *testing.T) {
		requiredEnv(t)
		t.Setenv("WIST_CACHE_TYPE", "memcached")

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for invalid cache type")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	chdirTemp := func(t *testing.T) {
		t.Helper()
		originalDir, _ := os.Getwd()
		t.Cleanup(func() { os.Chdir(originalDir) })
		os.Chdir(t.TempDir())
	}

	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		chdirTemp(t)

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables and skips comments", func(t *testing.T) {
		chdirTemp(t)

		envContent := `
# Comment line
WIST_TEST_VAR_1=value1

   # indented comment
WIST_TEST_VAR_2=value2
# WIST_TEST_COMMENTED=should_not_load
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}
		for _, name := range []string{"WIST_TEST_VAR_1", "WIST_TEST_VAR_2", "WIST_TEST_COMMENTED"} {
			os.Unsetenv(name)
			defer os.Unsetenv(name)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("WIST_TEST_VAR_1") != "value1" {
			t.Errorf("WIST_TEST_VAR_1 = %s, want value1", os.Getenv("WIST_TEST_VAR_1"))
		}
		if os.Getenv("WIST_TEST_VAR_2") != "value2" {
			t.Errorf("WIST_TEST_VAR_2 = %s, want value2", os.Getenv("WIST_TEST_VAR_2"))
		}
		if os.Getenv("WIST_TEST_COMMENTED") != "" {
			t.Errorf("WIST_TEST_COMMENTED should not be loaded from comment")
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("WIST_TEST_OVERRIDE", "existing-value")

		if err := os.WriteFile(".env", []byte("WIST_TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("WIST_TEST_OVERRIDE") != "existing-value" {
			t.Errorf("WIST_TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("WIST_TEST_OVERRIDE"))
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{RequestTimeout: 30 * time.Second},
			Firecrawl: FirecrawlConfig{APIKey: "fc-test", BaseURL: "https://api.firecrawl.dev"},
			Database:  DatabaseConfig{Driver: "sqlite"},
			Cache:     CacheConfig{Type: "memory"},
			Auth:      AuthConfig{JWTSecret: "secret"},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing api key", func(c *Config) { c.Firecrawl.APIKey = "" }},
		{"missing jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"invalid cache type", func(c *Config) { c.Cache.Type = "disk" }},
		{"redis without url", func(c *Config) { c.Cache.Type = "redis" }},
		{"events without topic", func(c *Config) { c.Events = EventsConfig{Enabled: true, Brokers: []string{"k:9092"}} }},
		{"zero request timeout", func(c *Config) { c.Server.RequestTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := validate(cfg); err == nil {
				t.Error("validate() error = nil, want error")
			}
		})
	}
}
