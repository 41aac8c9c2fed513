package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	perr "galaxy/internal/platform/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

func TestHealthy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"no rows", pgx.ErrNoRows, true},
		{"client went away", context.Canceled, true},
		{"undefined column", &pgconn.PgError{Code: "42703"}, true},
		{"bad cast", fmt.Errorf("q: %w", &pgconn.PgError{Code: "22P02"}), true},
		{"statement timeout", &pgconn.PgError{Code: "57014"}, false},
		{"shutting down", &pgconn.PgError{Code: "57P01"}, false},
		{"dial", errors.New("dial tcp: connection refused"), false},
		{"deadline", context.DeadlineExceeded, false},
	}
	for _, c := range cases {
		if got := healthy(c.err); got != c.want {
			t.Fatalf("%s: healthy = %v, want %v", c.name, got, c.want)
		}
	}
}

func tripping() BreakerConfig {
	return BreakerConfig{MinRequests: 2, FailureRatio: 0.5, Timeout: time.Hour}
}

func TestBreaker_OpensOnTimeoutsAndRejects(t *testing.T) {
	t.Parallel()

	inner := &fakeRunner{fakeRowQuerier: fakeRowQuerier{queryErr: &pgconn.PgError{Code: "57014"}}}
	b := newBreaker("breaker-open", tripping(), inner, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := b.Query(ctx, "SELECT pg_sleep(100)"); err == nil {
			t.Fatalf("expected inner error")
		}
	}
	if b.State() != "open" {
		t.Fatalf("state = %s, want open", b.State())
	}

	_, err := b.Query(ctx, "SELECT 1")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("open breaker should reject, got %v", err)
	}
	if err := b.QueryRow(ctx, "SELECT 1").Scan(new(int)); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("QueryRow should reject, got %v", err)
	}
	if err := b.Tx(ctx, func(RowQuerier) error { return nil }); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("Tx should reject, got %v", err)
	}
	if !perr.IsCode(Classify(err, "run report"), perr.ErrorCodeUnavailable) {
		t.Fatalf("rejection should classify as unavailable")
	}

	// readiness still reaches the database
	if err := b.Ping(ctx); err != nil {
		t.Fatalf("Ping should bypass the breaker: %v", err)
	}
}

func TestBreaker_QueryErrorsDoNotTrip(t *testing.T) {
	t.Parallel()

	inner := &fakeRunner{fakeRowQuerier: fakeRowQuerier{queryErr: &pgconn.PgError{Code: "42P01"}}}
	b := newBreaker("breaker-closed", tripping(), inner, zerolog.Nop())

	for i := 0; i < 5; i++ {
		_, _ = b.Query(context.Background(), "SELECT * FROM missing")
	}
	if b.State() != "closed" {
		t.Fatalf("state = %s, want closed", b.State())
	}
}

func TestBreaker_RowsReportOnClose(t *testing.T) {
	t.Parallel()

	rs := newRows([]string{"n"}, nil)
	rs.err = &pgconn.PgError{Code: "57014"}
	inner := &fakeRunner{fakeRowQuerier: fakeRowQuerier{queryRows: rs}}
	b := newBreaker("breaker-rows", tripping(), inner, zerolog.Nop())

	for i := 0; i < 2; i++ {
		r, err := b.Query(context.Background(), "SELECT n FROM t")
		if err != nil {
			t.Fatal(err)
		}
		for r.Next() {
		}
		r.Close()
		r.Close()
	}
	if b.State() != "open" {
		t.Fatalf("iteration timeouts should count, state = %s", b.State())
	}
	if !inner.queryRows.(*fakeRows).closed {
		t.Fatalf("inner rows not closed")
	}
}

func TestBreaker_TxAndClose(t *testing.T) {
	t.Parallel()

	inner := &fakeRunner{}
	b := newBreaker("breaker-tx", BreakerConfig{}, inner, zerolog.Nop())

	called := false
	err := b.Tx(context.Background(), func(q RowQuerier) error {
		called = true
		return nil
	})
	if err != nil || !called {
		t.Fatalf("Tx = %v, called=%v", err, called)
	}
	if err := b.Close(); err != nil || !inner.closed {
		t.Fatalf("Close should reach inner")
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	if Classify(nil, "x") != nil {
		t.Fatalf("nil stays nil")
	}
	if !perr.IsCode(Classify(gobreaker.ErrTooManyRequests, "x"), perr.ErrorCodeUnavailable) {
		t.Fatalf("half open rejection should be unavailable")
	}
	err := Classify(&pgconn.PgError{Code: "57014"}, "mapped features")
	if !perr.IsCode(err, perr.ErrorCodeTimeout) {
		t.Fatalf("statement timeout should classify as timeout: %v", err)
	}
	if e, ok := perr.As(err); !ok || e.DBCode() != "57014" {
		t.Fatalf("sqlstate lost: %v", err)
	}
}
