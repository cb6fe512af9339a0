// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the gateway configuration from environment
// variables.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ServerHost string `env:"DZ_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"DZ_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"DZ_ENV" envDefault:"development"`
	LogLevel   string `env:"DZ_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"DZ_LOG_FORMAT" envDefault:"text"` // text or json

	// APIBaseURL is the Daewa Zone API the client talks to.
	APIBaseURL string `env:"DZ_API_BASE_URL,required"`
	// APITimeout bounds every API request.
	APITimeout time.Duration `env:"DZ_API_TIMEOUT" envDefault:"30s"`

	// UpstreamURL is the dashboard frontend the gateway proxies page
	// requests to.
	UpstreamURL string `env:"DZ_UPSTREAM_URL,required"`

	// Cache configuration
	RedisURL        string        `env:"DZ_REDIS_URL"` // Optional Redis URL for distributed caching
	CachePrefix     string        `env:"DZ_CACHE_PREFIX" envDefault:"dz:"`
	CacheTTL        time.Duration `env:"DZ_CACHE_TTL" envDefault:"1h"`
	CacheStaleAfter time.Duration `env:"DZ_CACHE_STALE_AFTER" envDefault:"30s"`

	// LenientLoginReferer lets a dashboard request through without a
	// session cookie when navigated to from the login page. Off by
	// default.
	LenientLoginReferer bool `env:"DZ_LENIENT_LOGIN_REFERER" envDefault:"false"`

	// Login protection
	LoginRateLimit float64 `env:"DZ_LOGIN_RATE_LIMIT" envDefault:"0.5"`
	LoginRateBurst int     `env:"DZ_LOGIN_RATE_BURST" envDefault:"5"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	for name, raw := range map[string]string{
		"DZ_API_BASE_URL": cfg.APIBaseURL,
		"DZ_UPSTREAM_URL": cfg.UpstreamURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}

	if cfg.CacheStaleAfter > cfg.CacheTTL {
		return nil, fmt.Errorf("DZ_CACHE_STALE_AFTER (%s) must not exceed DZ_CACHE_TTL (%s)",
			cfg.CacheStaleAfter, cfg.CacheTTL)
	}

	return cfg, nil
}
