// Package middleware adapts chi, cors and httprate middleware for the api
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	perr "galaxy/internal/platform/errors"
	phttp "galaxy/internal/platform/net/http"
)

// RealIP trusts X-Forwarded-For and X-Real-IP; the api runs behind a proxy
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// StripSlashes lets /training/ and /training reach the same route
func StripSlashes() func(http.Handler) http.Handler { return chimw.StripSlashes }

// Timeout cancels the request context after d, which aborts the running query
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// Compress gzips json, csv and geojson bodies; quality reports get large
func Compress(level int) func(http.Handler) http.Handler {
	return chimw.Compress(level, "application/json", "application/geo+json", "text/csv")
}

// RateLimitByIP answers a 429 envelope once an address exceeds requests per window
func RateLimitByIP(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			phttp.WriteError(w, r, perr.Newf(perr.ErrorCodeTooManyRequests, "rate limit of %d requests per %s exceeded", requests, window))
		}),
	)
}

// CORS allows browser dashboards to call the api. Reports only need GET and
// POST; an empty origin list allows every origin.
func CORS(origins ...string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return chicors.Handler(chicors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:         300,
	})
}
