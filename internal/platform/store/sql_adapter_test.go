package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"galaxy/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxRows is a pgx.Rows over literal values
type pgxRows struct {
	pgx.Rows // unused methods panic

	cols   []string
	data   [][]any
	pos    int
	err    error
	closed bool
}

func (r *pgxRows) Next() bool {
	if r.err != nil || r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *pgxRows) Scan(dest ...any) error {
	for i, v := range r.data[r.pos-1] {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

func (r *pgxRows) Err() error { return r.err }
func (r *pgxRows) Close()     { r.closed = true }

func (r *pgxRows) FieldDescriptions() []pgconn.FieldDescription {
	out := make([]pgconn.FieldDescription, len(r.cols))
	for i, c := range r.cols {
		out[i].Name = c
	}
	return out
}

type pgxRow func(dest ...any) error

func (f pgxRow) Scan(dest ...any) error { return f(dest...) }

// pgxStub stands in for a pool or a tx
type pgxStub struct {
	rows   *pgxRows
	err    error
	scalar int
}

func (s *pgxStub) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s *pgxStub) QueryRow(context.Context, string, ...any) pgx.Row {
	return pgxRow(func(dest ...any) error {
		if s.err != nil {
			return s.err
		}
		*dest[0].(*int) = s.scalar
		return nil
	})
}

type recordingTracer struct {
	events []pg.QueryEvent
	labels []string
}

func (r *recordingTracer) OnQuery(ctx context.Context, ev pg.QueryEvent) {
	r.events = append(r.events, ev)
	r.labels = append(r.labels, pg.Label(ctx))
}

func TestTxQuerier_TracesAfterScan(t *testing.T) {
	t.Parallel()

	src := &pgxRows{cols: []string{"hashtag", "edits"}, data: [][]any{{"hotosm", 12}, {"missingmaps", 3}}}
	tr := &recordingTracer{}
	q := txQuerier{q: &pgxStub{rows: src, scalar: 42}, obs: observer{tracer: tr}}
	ctx := pg.WithLabel(context.Background(), "mapathon_summary/mapped_features")

	rs, err := q.Query(ctx, "SELECT hashtag, edits FROM changesets")
	if err != nil {
		t.Fatal(err)
	}
	if got := rs.Columns(); !reflect.DeepEqual(got, []string{"hashtag", "edits"}) {
		t.Fatalf("Columns = %v", got)
	}
	if len(tr.events) != 0 {
		t.Fatalf("event emitted before the rows were closed")
	}
	total := 0
	for rs.Next() {
		var tag string
		var n int
		if err := rs.Scan(&tag, &n); err != nil {
			t.Fatal(err)
		}
		total += n
	}
	rs.Close()
	rs.Close()
	if total != 15 || !src.closed {
		t.Fatalf("total = %d closed = %v", total, src.closed)
	}
	if len(tr.events) != 1 || tr.labels[0] != "mapathon_summary/mapped_features" {
		t.Fatalf("want one labelled event, got %d %v", len(tr.events), tr.labels)
	}

	var n int
	if err := q.QueryRow(ctx, "SELECT count(*) FROM users").Scan(&n); err != nil || n != 42 {
		t.Fatalf("QueryRow = %d, %v", n, err)
	}
	if len(tr.events) != 2 {
		t.Fatalf("QueryRow should emit after Scan")
	}
}

func TestTxQuerier_TracesFailures(t *testing.T) {
	t.Parallel()

	tr := &recordingTracer{}
	q := txQuerier{q: &pgxStub{err: errors.New("conn closed")}, obs: observer{tracer: tr}}

	if _, err := q.Query(context.Background(), "SELECT 1"); err == nil {
		t.Fatalf("expected Query error")
	}
	if err := q.QueryRow(context.Background(), "SELECT 1").Scan(new(int)); err == nil {
		t.Fatalf("expected Scan error")
	}

	broken := &pgxRows{err: &pgconn.PgError{Code: "57014"}}
	q = txQuerier{q: &pgxStub{rows: broken}, obs: observer{tracer: tr}}
	rs, err := q.Query(context.Background(), "SELECT pg_sleep(60)")
	if err != nil {
		t.Fatal(err)
	}
	for rs.Next() {
	}
	rs.Close()

	if len(tr.events) != 3 {
		t.Fatalf("every statement should be traced, got %d", len(tr.events))
	}
	for i, ev := range tr.events {
		if ev.Err == nil {
			t.Fatalf("event %d lost its error", i)
		}
	}
}

func TestObserver_SlowFlag(t *testing.T) {
	t.Parallel()

	tr := &recordingTracer{}
	past := time.Now().Add(-50 * time.Millisecond)

	observer{tracer: tr, slowUS: 10_000}.emit(context.Background(), "SELECT 1", nil, past, nil)
	observer{tracer: tr}.emit(context.Background(), "SELECT 1", nil, past, nil)
	observer{}.emit(context.Background(), "SELECT 1", nil, past, nil)

	if len(tr.events) != 2 || !tr.events[0].Slow || tr.events[1].Slow {
		t.Fatalf("slow flags wrong: %+v", tr.events)
	}
}
