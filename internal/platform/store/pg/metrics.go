package pg

import (
	"context"
	"errors"

	perr "galaxy/internal/platform/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var queryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "galaxy_db_query_duration_seconds",
		Help: "Duration of report statements by source, query and outcome",
		// report aggregations run from milliseconds up to the statement timeout
		Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"source", "query", "outcome"},
)

// Metrics returns a tracer that records statement latency for source
func Metrics(source string) QueryTracer { return metricsTracer{source: source} }

type metricsTracer struct{ source string }

func (m metricsTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	queryDuration.
		WithLabelValues(m.source, Label(ctx), outcome(ev.Err)).
		Observe(float64(ev.ElapsedUS) / 1e6)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case perr.IsTimeout(err):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	return "error"
}
