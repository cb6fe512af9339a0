// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"runtime"
	"time"

	"github.com/daewazone/admin-go/internal/client"
	"github.com/daewazone/admin-go/internal/store"
	"github.com/daewazone/admin-go/internal/version"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	upstream  *url.URL
	store     *store.Store
	probe     *http.Client
	version   version.Info
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(upstream *url.URL, s *store.Store, info version.Info) *HealthHandler {
	return &HealthHandler{
		upstream:  upstream,
		store:     s,
		probe:     &http.Client{Timeout: 3 * time.Second},
		version:   info,
		startTime: time.Now(),
	}
}

// StartTime returns when the handler (and application) was started.
func (h *HealthHandler) StartTime() time.Time {
	return h.startTime
}

// HealthStatusPublic is the minimal health response for callers
// without a session.
type HealthStatusPublic struct {
	Status string `json:"status"`
}

// HealthStatus is the detailed health response.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health handles GET /health requests. Callers without a session
// cookie get the minimal status; everyone else gets check details.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	upstreamCheck := h.checkUpstream()
	cacheCheck := h.checkCache()

	overallStatus := "healthy"
	if upstreamCheck.Status != "healthy" || cacheCheck.Status != "healthy" {
		overallStatus = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")

	if overallStatus != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	if !h.hasSession(r) {
		_ = json.NewEncoder(w).Encode(HealthStatusPublic{
			Status: overallStatus,
		})
		return
	}

	status := HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version.String(),
		Checks: map[string]Check{
			"upstream": upstreamCheck,
			"cache":    cacheCheck,
		},
	}

	if r.URL.Query().Get("verbose") == "true" {
		status.System = h.getSystemInfo()
	}

	_ = json.NewEncoder(w).Encode(status)
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "alive",
	})
}

// Readiness handles GET /health/ready - checks if the gateway can
// reach the upstream frontend.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	upstreamCheck := h.checkUpstream()

	w.Header().Set("Content-Type", "application/json")

	if upstreamCheck.Status == "healthy" {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "ready",
		})
		return
	}

	w.WriteHeader(http.StatusServiceUnavailable)
	resp := map[string]string{
		"status": "not_ready",
	}
	if h.hasSession(r) {
		resp["message"] = upstreamCheck.Message
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// hasSession reports whether the caller presents a session cookie.
// Presence gates detail exposure only; token validity is the API's
// concern.
func (h *HealthHandler) hasSession(r *http.Request) bool {
	c, err := r.Cookie(client.AccessTokenCookie)
	return err == nil && c.Value != ""
}

// checkUpstream verifies the dashboard frontend answers at all. Any
// HTTP response counts: a 404 from the frontend still means it is up.
func (h *HealthHandler) checkUpstream() Check {
	start := time.Now()

	req, err := http.NewRequest(http.MethodHead, h.upstream.String(), nil)
	if err != nil {
		return Check{Status: "unhealthy", Message: err.Error()}
	}

	resp, err := h.probe.Do(req)
	latency := time.Since(start)
	if err != nil {
		return Check{
			Status:  "unhealthy",
			Message: err.Error(),
			Latency: latency.String(),
		}
	}
	_ = resp.Body.Close()

	return Check{
		Status:  "healthy",
		Message: "Connected",
		Latency: latency.String(),
	}
}

// checkCache reports cache backend health and hit statistics.
func (h *HealthHandler) checkCache() Check {
	if h.store == nil {
		return Check{Status: "healthy", Message: "No cache configured"}
	}

	stats, ok := h.store.Stats()
	if !ok {
		return Check{Status: "healthy", Message: "Backend reports no statistics"}
	}

	return Check{
		Status: "healthy",
		Message: fmt.Sprintf("%d items, %d hits, %d misses",
			stats.Items, stats.Hits, stats.Misses),
	}
}

// getSystemInfo returns system-level metrics.
func (h *HealthHandler) getSystemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
