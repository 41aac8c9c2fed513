package middleware_test

import (
	"compress/flate"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"galaxy/internal/platform/net/middleware"
)

func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestCompress_CSV(t *testing.T) {
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, strings.Repeat("hotosm-project-11224,4.2\n", 200))
	}), middleware.Compress(flate.BestSpeed))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("csv should be compressed, headers=%v", rec.Header())
	}
}

func TestStripSlashesAndRealIP(t *testing.T) {
	var path, remote string
	h := chain(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		path, remote = r.URL.Path, r.RemoteAddr
	}), middleware.RealIP(), middleware.StripSlashes())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/training/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if path != "/api/v1/training" || remote != "203.0.113.9" {
		t.Fatalf("path=%q remote=%q", path, remote)
	}
}

func TestTimeout_CancelsContext(t *testing.T) {
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}), middleware.Timeout(10*time.Millisecond))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRateLimitByIP(t *testing.T) {
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}), middleware.RateLimitByIP(2, time.Minute))

	codes := []int{}
	last := ""
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/mapathon/summary", nil)
		req.RemoteAddr = "198.51.100.7:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		last = rec.Body.String()
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
	if !strings.Contains(last, `"code":3`) {
		t.Fatalf("429 should carry the envelope: %s", last)
	}
}

func TestCORS_Preflight(t *testing.T) {
	cases := []struct {
		name, origin, method string
		origins              []string
		allowed              bool
	}{
		{"any origin by default", "https://tasks.hotosm.org", http.MethodPost, nil, true},
		{"listed origin", "https://tasks.hotosm.org", http.MethodPost, []string{"https://tasks.hotosm.org"}, true},
		{"unlisted origin", "https://evil.example", http.MethodPost, []string{"https://tasks.hotosm.org"}, false},
		{"writes are not reports", "https://tasks.hotosm.org", http.MethodDelete, nil, false},
	}
	for _, c := range cases {
		h := chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}), middleware.CORS(c.origins...))
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/organization/hashtags", nil)
		req.Header.Set("Origin", c.origin)
		req.Header.Set("Access-Control-Request-Method", c.method)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		got := rec.Header().Get("Access-Control-Allow-Origin") != ""
		if got != c.allowed {
			t.Fatalf("%s: allowed=%v headers=%v", c.name, got, rec.Header())
		}
	}
}
