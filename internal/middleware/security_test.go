package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		isDev    bool
		wantHSTS bool
	}{
		{name: "production mode enables HSTS", isDev: false, wantHSTS: true},
		{name: "development mode disables HSTS", isDev: true, wantHSTS: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSecurityHeadersConfig(tt.isDev)
			handler := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			hsts := rec.Header().Get("Strict-Transport-Security")
			if tt.wantHSTS && hsts == "" {
				t.Error("expected HSTS header but got none")
			}
			if !tt.wantHSTS && hsts != "" {
				t.Errorf("expected no HSTS header but got: %s", hsts)
			}

			if csp := rec.Header().Get("Content-Security-Policy"); !strings.Contains(csp, "default-src 'self'") {
				t.Errorf("CSP = %q, want default-src 'self'", csp)
			}
			if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
			}
			if got := rec.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
				t.Errorf("X-Frame-Options = %q, want SAMEORIGIN", got)
			}
		})
	}
}

func TestSecurityHeadersDevCSPAllowsEval(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(true)
	if !strings.Contains(cfg.ContentSecurityPolicy, "'unsafe-eval'") {
		t.Error("development CSP should allow eval for the dev server")
	}

	prod := DefaultSecurityHeadersConfig(false)
	if strings.Contains(prod.ContentSecurityPolicy, "'unsafe-eval'") {
		t.Error("production CSP must not allow eval")
	}
}

func TestSecurityHeadersExcludePaths(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false)
	cfg.ExcludePaths = []string{"/api/"}
	handler := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/category", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if csp := rec.Header().Get("Content-Security-Policy"); csp != "" {
		t.Errorf("excluded path got CSP header: %q", csp)
	}
}

func TestBuildCSPOrderIsStable(t *testing.T) {
	a := buildCSP(map[string]string{"default-src": "'self'", "img-src": "data:", "object-src": "'none'"})
	b := buildCSP(map[string]string{"object-src": "'none'", "default-src": "'self'", "img-src": "data:"})
	if a != b {
		t.Errorf("CSP output not stable: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "default-src 'self'") {
		t.Errorf("CSP = %q, want default-src first", a)
	}
}
