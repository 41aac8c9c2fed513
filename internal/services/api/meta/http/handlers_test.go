package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	phttp "galaxy/internal/platform/net/http"
)

type fakeSources struct {
	names  []string
	down   map[string]error
	states map[string]string
}

func (f fakeSources) Names() []string { return f.names }

func (f fakeSources) Ping(_ context.Context, name string) error { return f.down[name] }

func (f fakeSources) State(name string) string { return f.states[name] }

func ready(t *testing.T, d Deps) (int, ReadyResponse) {
	t.Helper()
	mux := chi.NewMux()
	Register(phttp.AdaptChi(mux), d)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/ready", nil))
	var env struct {
		Data ReadyResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v", rec.Body, err)
	}
	return rec.Code, env.Data
}

func TestReady(t *testing.T) {
	all := []string{"underpass", "tm", "raw"}
	cases := []struct {
		name    string
		sources Readiness
		code    int
		overall string
	}{
		{"all up", fakeSources{names: all, states: map[string]string{"underpass": "closed"}}, 200, CheckOK},
		{"one disabled", fakeSources{names: all[:2]}, 200, CheckDegraded},
		{"breaker open", fakeSources{names: all, states: map[string]string{"raw": "open"}}, 200, CheckDegraded},
		{"one down", fakeSources{names: all, down: map[string]error{"raw": errors.New("refused")}}, 503, CheckFail},
		{"no store", nil, 200, CheckDegraded},
	}
	for _, c := range cases {
		code, resp := ready(t, Deps{Sources: c.sources, Expected: all})
		if code != c.code || resp.Status != c.overall {
			t.Fatalf("%s: code=%d status=%q checks=%+v", c.name, code, resp.Status, resp.Checks)
		}
		if len(resp.Checks) != len(all) {
			t.Fatalf("%s: every expected source should be listed: %+v", c.name, resp.Checks)
		}
	}
}

func TestReady_FailCarriesError(t *testing.T) {
	_, resp := ready(t, Deps{
		Sources:  fakeSources{names: []string{"raw"}, down: map[string]error{"raw": errors.New("refused")}},
		Expected: []string{"raw"},
	})
	if resp.Checks[0].Error != "refused" {
		t.Fatalf("check = %+v", resp.Checks[0])
	}
}

func TestHealthAndVersion(t *testing.T) {
	mux := chi.NewMux()
	Register(phttp.AdaptChi(mux), Deps{ServiceName: "galaxy-api", StartedAt: time.Now().Add(-time.Minute)})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/health", nil))
	var env struct {
		Data HealthResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if !env.Data.OK || env.Data.Service != "galaxy-api" || env.Data.Uptime < 60 {
		t.Fatalf("health = %+v", env.Data)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/version", nil))
	if rec.Code != stdhttp.StatusOK || !strings.Contains(rec.Body.String(), `"go_version"`) {
		t.Fatalf("version: %d %s", rec.Code, rec.Body)
	}
}

// slowSources blocks every ping until ctx expires
type slowSources struct{ fakeSources }

func (slowSources) Ping(ctx context.Context, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestReady_PingsInParallel(t *testing.T) {
	all := []string{"underpass", "tm", "raw"}
	start := time.Now()
	code, resp := ready(t, Deps{Sources: slowSources{fakeSources{names: all}}, Expected: all, PingTimeout: 100 * time.Millisecond})
	if code != stdhttp.StatusServiceUnavailable || resp.Status != CheckFail {
		t.Fatalf("code=%d resp=%+v", code, resp)
	}
	if took := time.Since(start); took > 250*time.Millisecond {
		t.Fatalf("pings ran one after another: %s", took)
	}
	for i, c := range resp.Checks {
		if c.Name != all[i] {
			t.Fatalf("checks out of order: %+v", resp.Checks)
		}
	}
}
