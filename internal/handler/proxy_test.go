package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestProxyForwardsRequests(t *testing.T) {
	var gotPath, gotForwardedHost string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotForwardedHost = r.Header.Get("X-Forwarded-Host")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>dashboard</html>"))
	}))
	defer upstream.Close()

	u, err := url.Parse(upstream.URL)
	if err != nil {
		t.Fatal(err)
	}
	proxy := NewProxy(u)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/contents?page=2", nil)
	req.Host = "admin.daewa.zone"
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotPath != "/dashboard/contents" {
		t.Errorf("upstream path = %q, want /dashboard/contents", gotPath)
	}
	if gotForwardedHost != "admin.daewa.zone" {
		t.Errorf("X-Forwarded-Host = %q, want admin.daewa.zone", gotForwardedHost)
	}
	if !strings.Contains(rec.Body.String(), "dashboard") {
		t.Errorf("body = %q, want upstream content", rec.Body.String())
	}
}

func TestProxyUpstreamDown(t *testing.T) {
	// A closed server guarantees a connection error.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	u, err := url.Parse(upstream.URL)
	if err != nil {
		t.Fatal(err)
	}
	upstream.Close()

	proxy := NewProxy(u)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if !strings.Contains(rec.Body.String(), "Upstream unavailable") {
		t.Errorf("body = %q, want upstream error message", rec.Body.String())
	}
}
