// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the gateway HTTP handlers: the reverse
// proxy to the dashboard frontend and the health endpoints.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"
)

// NewProxy builds a reverse proxy forwarding requests to the upstream
// dashboard frontend. Upstream failures answer 502 in the JSON error
// shape the API uses.
func NewProxy(upstream *url.URL) http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(upstream)

	// Streaming responses (dev server events, media) must not buffer.
	proxy.FlushInterval = 100 * time.Millisecond

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		slog.Error("upstream proxy error",
			"upstream", upstream.Host,
			"path", r.URL.Path,
			"error", err,
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "Upstream unavailable",
		})
	}

	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Header.Set("X-Forwarded-Host", r.Host)
	}

	return proxy
}
