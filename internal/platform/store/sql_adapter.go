package store

import (
	"context"
	"errors"
	"time"

	"galaxy/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
)

// reportTx is the isolation every multi statement report runs under
var reportTx = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

// pgAdapter serves one source's pool as a TxRunner and reports every
// statement to the pool's tracer
type pgAdapter struct {
	p *pg.PG
}

func newPGAdapter(p *pg.PG) *pgAdapter { return &pgAdapter{p: p} }

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil || a.p.Pool == nil {
		return errors.New("pg: nil adapter")
	}
	return a.p.Pool.Ping(ctx)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return query(ctx, a.p.Pool, a.observer(), sql, args)
}

func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return queryRow(ctx, a.p.Pool, a.observer(), sql, args)
}

func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.BeginTx(ctx, reportTx)
	if err != nil {
		return err
	}
	// a no-op after Commit
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(txQuerier{q: tx, obs: a.observer()}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (a *pgAdapter) observer() observer {
	if a == nil || a.p == nil {
		return observer{}
	}
	return observer{tracer: a.p.Tracer, slowUS: int64(a.p.SlowMs) * 1000}
}

// pgxQuerier is the part of pgxpool.Pool and pgx.Tx we read through
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// query emits once the result set is closed so the timing covers the scan
func query(ctx context.Context, q pgxQuerier, obs observer, sql string, args []any) (Rows, error) {
	start := time.Now()
	rs, err := q.Query(ctx, sql, args...)
	if err != nil {
		obs.emit(ctx, sql, args, start, err)
		return nil, err
	}
	return &rows{r: rs, done: func(err error) { obs.emit(ctx, sql, args, start, err) }}, nil
}

func queryRow(ctx context.Context, q pgxQuerier, obs observer, sql string, args []any) Row {
	start := time.Now()
	r := q.QueryRow(ctx, sql, args...)
	return row{
		r: r,
		after: func(scanErr error) {
			obs.emit(ctx, sql, args, start, scanErr)
		},
	}
}

// observer sends query events to the configured tracer
type observer struct {
	tracer pg.QueryTracer
	slowUS int64
}

func (o observer) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if o.tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	slow := o.slowUS > 0 && elapsedUS >= o.slowUS
	o.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      slow,
	})
}

type row struct {
	r     pgx.Row
	after func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type rows struct {
	r    pgx.Rows
	done func(error)
}

func (x *rows) Next() bool            { return x.r.Next() }
func (x *rows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x *rows) Err() error            { return x.r.Err() }

// Close is idempotent; the trace event fires on the first call
func (x *rows) Close() {
	x.r.Close()
	if x.done != nil {
		x.done(x.r.Err())
		x.done = nil
	}
}

func (x *rows) Columns() []string {
	f := x.r.FieldDescriptions()
	out := make([]string, len(f))
	for i := range f {
		out[i] = f[i].Name
	}
	return out
}

// txQuerier is what a report sees inside Tx, traced like the pool
type txQuerier struct {
	q   pgxQuerier
	obs observer
}

func (t txQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return query(ctx, t.q, t.obs, sql, args)
}

func (t txQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return queryRow(ctx, t.q, t.obs, sql, args)
}
