package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func apply(h http.Handler, stack []func(http.Handler) http.Handler) http.Handler {
	for i := len(stack) - 1; i >= 0; i-- {
		h = stack[i](h)
	}
	return h
}

func TestCommonStack(t *testing.T) {
	var path string
	h := apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}), CommonStack(StackOptions{}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/training/", nil))
	if rec.Code != http.StatusNoContent || path != "/api/v1/training" {
		t.Fatalf("code=%d path=%q", rec.Code, path)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header missing")
	}
}

func TestCommonStack_PanicBecomesEnvelope(t *testing.T) {
	h := apply(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), CommonStack(StackOptions{}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/meta/version", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestCommonStack_RequestTimeout(t *testing.T) {
	h := apply(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}), CommonStack(StackOptions{RequestTimeout: 20 * time.Millisecond}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/mapathon/detail", nil))
	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("code = %d", rec.Code)
	}
}
