package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/daewazone/admin-go/internal/store"
	"github.com/daewazone/admin-go/internal/version"
)

func newHealthHandler(t *testing.T, upstreamUp bool) *HealthHandler {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	if upstreamUp {
		t.Cleanup(upstream.Close)
	} else {
		upstream.Close()
	}

	u, err := url.Parse(upstream.URL)
	if err != nil {
		t.Fatal(err)
	}

	s := store.New(store.Options{})
	t.Cleanup(func() { _ = s.Close() })

	return NewHealthHandler(u, s, version.Info{Version: "v1.0.0", GitCommit: "abc1234"})
}

func TestHealthMinimalWithoutSession(t *testing.T) {
	h := newHealthHandler(t, true)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", resp["status"])
	}
	if _, ok := resp["checks"]; ok {
		t.Error("unauthenticated response must not expose check details")
	}
}

func TestHealthDetailedWithSession(t *testing.T) {
	h := newHealthHandler(t, true)

	req := httptest.NewRequest(http.MethodGet, "/health?verbose=true", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "tok"})
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	var resp HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Version != "v1.0.0 (abc1234)" {
		t.Errorf("version = %q, want v1.0.0 (abc1234)", resp.Version)
	}
	if resp.Checks["upstream"].Status != "healthy" {
		t.Errorf("upstream check = %+v, want healthy", resp.Checks["upstream"])
	}
	if resp.Checks["cache"].Status != "healthy" {
		t.Errorf("cache check = %+v, want healthy", resp.Checks["cache"])
	}
	if resp.System == nil {
		t.Error("verbose response missing system info")
	}
}

func TestHealthDegradedWhenUpstreamDown(t *testing.T) {
	h := newHealthHandler(t, false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp["status"] != "degraded" {
		t.Errorf("status = %v, want degraded", resp["status"])
	}
}

func TestLiveness(t *testing.T) {
	h := newHealthHandler(t, false) // liveness ignores upstream state

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestReadiness(t *testing.T) {
	t.Run("ready when upstream answers", func(t *testing.T) {
		h := newHealthHandler(t, true)
		rec := httptest.NewRecorder()
		h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("not ready hides details without session", func(t *testing.T) {
		h := newHealthHandler(t, false)
		rec := httptest.NewRecorder()
		h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if _, ok := resp["message"]; ok {
			t.Error("unauthenticated caller must not see failure details")
		}
	})
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
