package store

import (
	"context"
	"errors"
	"time"

	perr "galaxy/internal/platform/errors"
	"galaxy/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	gobreaker "github.com/sony/gobreaker/v2"
)

var breakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "galaxy_source_breaker_state",
		Help: "Circuit breaker state per source (0 closed, 1 half open, 2 open)",
	},
	[]string{"source"},
)

// breakerRunner fails fast once a source keeps timing out or refusing connections
// query level errors (bad column, bad cast) mean the server is fine and do not count
type breakerRunner struct {
	inner TxRunner
	cb    *gobreaker.TwoStepCircuitBreaker[struct{}]
}

func newBreaker(name string, cfg BreakerConfig, inner TxRunner, log logger.Logger) *breakerRunner {
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MinRequests == 0 {
		cfg.MinRequests = 5
	}
	if cfg.FailureRatio <= 0 || cfg.FailureRatio > 1 {
		cfg.FailureRatio = 0.6
	}

	breakerState.WithLabelValues(name).Set(0)
	cb := gobreaker.NewTwoStepCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			if c.Requests < cfg.MinRequests {
				return false
			}
			return float64(c.TotalFailures)/float64(c.Requests) >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			breakerState.WithLabelValues(name).Set(float64(to))
			log.Warn().Str("source", name).Str("from", from.String()).Str("to", to.String()).Msg("source breaker state change")
		},
	})
	return &breakerRunner{inner: inner, cb: cb}
}

// healthy reports whether err says nothing bad about the source itself
func healthy(err error) bool {
	switch {
	case err == nil, errors.Is(err, pgx.ErrNoRows), errors.Is(err, context.Canceled):
		return true
	}
	code, ok := perr.DBErrorCode(err)
	return ok && (code == perr.ErrorCodeDB || code == perr.ErrorCodeInvalidArgument)
}

func (b *breakerRunner) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	done, err := b.cb.Allow()
	if err != nil {
		return nil, err
	}
	rs, err := b.inner.Query(ctx, sql, args...)
	if err != nil {
		done(healthy(err))
		return nil, err
	}
	return &breakerRows{Rows: rs, done: done}, nil
}

func (b *breakerRunner) QueryRow(ctx context.Context, sql string, args ...any) Row {
	done, err := b.cb.Allow()
	if err != nil {
		return errRow{err: err}
	}
	return breakerRow{r: b.inner.QueryRow(ctx, sql, args...), done: done}
}

func (b *breakerRunner) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	done, err := b.cb.Allow()
	if err != nil {
		return err
	}
	err = b.inner.Tx(ctx, fn)
	done(healthy(err))
	return err
}

// Ping bypasses the breaker so readiness reports the database, not our counters
func (b *breakerRunner) Ping(ctx context.Context) error {
	if p, ok := b.inner.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (b *breakerRunner) Close() error {
	if c, ok := b.inner.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// State is the breaker state as text, for readiness output
func (b *breakerRunner) State() string { return b.cb.State().String() }

type breakerRows struct {
	Rows
	done func(bool)
}

func (r *breakerRows) Close() {
	r.Rows.Close()
	if r.done != nil {
		r.done(healthy(r.Rows.Err()))
		r.done = nil
	}
}

type breakerRow struct {
	r    Row
	done func(bool)
}

func (r breakerRow) Scan(dest ...any) error {
	err := r.r.Scan(dest...)
	r.done(healthy(err))
	return err
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// Classify maps a source error onto the perr taxonomy
// a rejected call (breaker open) is unavailable; everything else goes through FromPostgres
func Classify(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, msg)
	}
	return perr.FromPostgres(err, msg)
}
