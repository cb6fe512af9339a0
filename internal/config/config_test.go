package config

import (
	"strings"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DZ_API_BASE_URL", "https://api.daewa.zone")
	t.Setenv("DZ_UPSTREAM_URL", "http://localhost:3000")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got := cfg.ServerAddr(); got != "localhost:8080" {
		t.Errorf("ServerAddr() = %q, want localhost:8080", got)
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true by default")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true, want false without DZ_REDIS_URL")
	}
	if cfg.LenientLoginReferer {
		t.Error("LenientLoginReferer = true, want false by default")
	}
	if cfg.CacheStaleAfter >= cfg.CacheTTL {
		t.Errorf("default staleness %s not below TTL %s", cfg.CacheStaleAfter, cfg.CacheTTL)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DZ_API_BASE_URL", "")
	t.Setenv("DZ_UPSTREAM_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for missing required URLs")
	}
}

func TestLoadRejectsRelativeURL(t *testing.T) {
	setRequired(t)
	t.Setenv("DZ_UPSTREAM_URL", "localhost:3000")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for URL without scheme")
	}
	if !strings.Contains(err.Error(), "DZ_UPSTREAM_URL") {
		t.Errorf("error = %v, want it to name DZ_UPSTREAM_URL", err)
	}
}

func TestLoadRejectsStaleAfterAboveTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("DZ_CACHE_TTL", "10s")
	t.Setenv("DZ_CACHE_STALE_AFTER", "1m")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error when staleness exceeds TTL")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DZ_ENV", "production")
	t.Setenv("DZ_SERVER_PORT", "9090")
	t.Setenv("DZ_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("DZ_LENIENT_LOGIN_REFERER", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false for production")
	}
	if got := cfg.ServerAddr(); got != "localhost:9090" {
		t.Errorf("ServerAddr() = %q, want localhost:9090", got)
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() = false, want true")
	}
	if !cfg.LenientLoginReferer {
		t.Error("LenientLoginReferer = false, want true")
	}
}
