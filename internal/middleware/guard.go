// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for route guarding,
// login protection, and security headers.
package middleware

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/daewazone/admin-go/internal/client"
)

// Well-known guard paths.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// GuardConfig holds configuration for the route guard.
type GuardConfig struct {
	// CookieName is the session cookie checked for presence. Defaults
	// to the access token cookie the API issues.
	CookieName string

	// PublicPaths are page paths reachable without a session, in
	// addition to the login page.
	PublicPaths []string

	// LenientLoginReferer, when enabled, lets a request for the
	// dashboard through without a session cookie if it was navigated
	// to from the login page. Off by default: it trades a guard
	// guarantee for tolerance of slow cookie propagation.
	LenientLoginReferer bool
}

// Guard is the route guard for admin pages. It only inspects cookie
// presence; whether the token is actually valid is decided by the API
// on the first data request the page makes.
type Guard struct {
	cookieName string
	public     map[string]bool
	lenient    bool
}

// NewGuard creates a route guard.
func NewGuard(cfg GuardConfig) *Guard {
	if cfg.CookieName == "" {
		cfg.CookieName = client.AccessTokenCookie
	}

	// The root path renders the login screen for visitors, so it is
	// public for the unauthenticated case.
	public := map[string]bool{LoginPath: true, "/": true}
	for _, p := range cfg.PublicPaths {
		public[p] = true
	}

	return &Guard{
		cookieName: cfg.CookieName,
		public:     public,
		lenient:    cfg.LenientLoginReferer,
	}
}

// Middleware returns the guard as HTTP middleware. It never fails a
// request: every outcome is either pass-through or a redirect.
func (g *Guard) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if g.bypass(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			authed := g.hasSession(r)

			switch {
			case authed && (r.URL.Path == LoginPath || r.URL.Path == "/"):
				// Already signed in; the login page and the root are
				// not useful destinations.
				http.Redirect(w, r, DashboardPath, http.StatusSeeOther)

			case !authed && !g.public[r.URL.Path]:
				if g.lenient && g.cameFromLogin(r) {
					next.ServeHTTP(w, r)
					return
				}
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)

			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// bypass reports whether the guard should ignore the path entirely.
// Framework internals, static assets, and anything with a file
// extension are never page navigations, and API calls carry their own
// authorization.
func (g *Guard) bypass(p string) bool {
	if strings.HasPrefix(p, "/_next/") ||
		strings.HasPrefix(p, "/static/") ||
		strings.HasPrefix(p, "/images/") ||
		strings.HasPrefix(p, "/api/") {
		return true
	}
	return path.Ext(p) != ""
}

// hasSession reports whether the request carries a non-empty session
// cookie.
func (g *Guard) hasSession(r *http.Request) bool {
	c, err := r.Cookie(g.cookieName)
	return err == nil && c.Value != ""
}

// cameFromLogin reports whether the request was navigated to from the
// login page on the same host.
func (g *Guard) cameFromLogin(r *http.Request) bool {
	if r.URL.Path != DashboardPath {
		return false
	}
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path != LoginPath {
		return false
	}
	return ref.Host == "" || ref.Host == r.Host
}
