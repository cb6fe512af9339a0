// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command dzadmin is the admin gateway for the Daewa Zone dashboard.
// It guards page routes behind the session cookie, rate limits the
// login endpoint, caches API reads, and reverse proxies everything
// else to the dashboard frontend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/daewazone/admin-go/internal/cache"
	"github.com/daewazone/admin-go/internal/client"
	"github.com/daewazone/admin-go/internal/config"
	"github.com/daewazone/admin-go/internal/handler"
	"github.com/daewazone/admin-go/internal/logging"
	"github.com/daewazone/admin-go/internal/middleware"
	"github.com/daewazone/admin-go/internal/store"
	"github.com/daewazone/admin-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "dzadmin - Daewa Zone admin gateway\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DZ_API_BASE_URL        Daewa Zone API base URL (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DZ_UPSTREAM_URL        Dashboard frontend URL to proxy (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DZ_SERVER_PORT         Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DZ_ENV                 Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DZ_REDIS_URL           Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DZ_CACHE_TTL           Cache entry lifetime (default: 1h)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DZ_CACHE_STALE_AFTER   Age before background revalidation (default: 30s)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("dzadmin %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logging.Setup(cfg.LogFormat, cfg.LogLevel)

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	upstream, err := url.Parse(cfg.UpstreamURL)
	if err != nil {
		return fmt.Errorf("parsing upstream URL: %w", err)
	}

	// Cache backend: Redis when configured, in-process memory otherwise.
	cacheCfg := cache.DefaultConfig()
	cacheCfg.RedisURL = cfg.RedisURL
	cacheCfg.Prefix = cfg.CachePrefix
	cacheCfg.DefaultTTL = cfg.CacheTTL

	backend, err := cache.New(cacheCfg)
	if err != nil {
		slog.Warn("cache backend init failed, falling back to memory", "error", err)
		cacheCfg.RedisURL = ""
		backend, _ = cache.New(cacheCfg)
	}
	if cacheCfg.RedisURL != "" {
		slog.Info("cache initialized", "backend", "redis", "url", cacheCfg.RedisURL)
	} else {
		slog.Info("cache initialized", "backend", "memory")
	}

	cacheStore := store.New(store.Options{
		Backend:    backend,
		StaleAfter: cfg.CacheStaleAfter,
		TTL:        cfg.CacheTTL,
	})
	defer func() {
		if err := cacheStore.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	apiClient := client.New(client.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Debug:   cfg.IsDevelopment(),
	})
	registry := store.NewRegistry(apiClient, cacheStore)

	apiURL, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return fmt.Errorf("parsing API URL: %w", err)
	}

	guard := middleware.NewGuard(middleware.GuardConfig{
		LenientLoginReferer: cfg.LenientLoginReferer,
	})

	loginProtection := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit: cfg.LoginRateLimit,
		IPBurst:     cfg.LoginRateBurst,
	})
	defer func() { _ = loginProtection.Close() }()

	frontendProxy := handler.NewProxy(upstream)
	apiProxy := handler.NewProxy(apiURL)
	apiHandler := handler.NewAPIHandler(registry)
	health := handler.NewHealthHandler(upstream, cacheStore, versionInfo)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	r.Get("/health", health.Health)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		// The login endpoint is proxied with brute-force protection.
		r.With(loginProtection.Middleware()).Post("/auth/admin-login", apiProxy.ServeHTTP)

		// Reads are served from the cache.
		apiHandler.Routes(r)

		// Everything else (auth, writes, uploads) is forwarded to the
		// API; successful writes clear the affected cache entries.
		invalidate := handler.InvalidateOnWrite(cacheStore)
		r.With(invalidate).NotFound(apiProxy.ServeHTTP)
		r.With(invalidate).MethodNotAllowed(apiProxy.ServeHTTP)
	})

	// Page routes go through the route guard to the frontend.
	r.With(guard.Middleware()).NotFound(frontendProxy.ServeHTTP)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server",
			"addr", cfg.ServerAddr(),
			"env", cfg.Env,
			"version", versionInfo.String(),
			"upstream", upstream.Host,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
