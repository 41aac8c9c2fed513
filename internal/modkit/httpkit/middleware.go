package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"galaxy/internal/platform/net/middleware"
)

// StackOptions tunes the /api/v1 middleware stack
type StackOptions struct {
	// RequestTimeout cancels a request and its query; it should exceed the query timeout
	RequestTimeout time.Duration
	// SlowRequest promotes access log lines to warn
	SlowRequest time.Duration
	// CORSOrigins empty means any origin
	CORSOrigins []string
}

// CommonStack is the middleware every report route runs through, outermost first.
// api.Mount appends the rate limiter.
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 30 * time.Second
	}
	if o.SlowRequest <= 0 {
		o.SlowRequest = 2 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.CORS(o.CORSOrigins...),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.RequestTimeout),
	}
}
