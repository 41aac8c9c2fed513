// Package repotest provides a scripted report source for service tests
//
// Rows are keyed by statement label ("kind/name"), the same label repokit puts on the
// context for traces, so tests script results per planned statement without matching SQL.
package repotest

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/jackc/pgx/v5"

	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
	"galaxy/internal/platform/store"
	"galaxy/internal/platform/store/pg"
)

// DB is a scripted source; zero value answers every statement with no rows
type DB struct {
	mu   sync.Mutex
	rows map[string][][]any
	errs map[string]error

	// TxErr fails the snapshot itself, e.g. a begin failure
	TxErr error

	calls []Call
	txs   int
}

// Call is one recorded statement
type Call struct {
	Label string
	SQL   string
	Args  []any
}

// New returns an empty scripted source
func New() *DB { return &DB{rows: map[string][][]any{}, errs: map[string]error{}} }

// On scripts the rows returned for a statement label
func (d *DB) On(label string, rows ...[]any) *DB {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.rows == nil {
		d.rows = map[string][][]any{}
	}
	d.rows[label] = rows
	return d
}

// Fail scripts an execution error for a statement label
func (d *DB) Fail(label string, err error) *DB {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.errs == nil {
		d.errs = map[string]error{}
	}
	d.errs[label] = err
	return d
}

// Calls returns the recorded statements in execution order
func (d *DB) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// Labels returns the recorded statement labels in execution order
func (d *DB) Labels() []string {
	var out []string
	for _, c := range d.Calls() {
		out = append(out, c.Label)
	}
	return out
}

// Txs returns how many snapshots were opened
func (d *DB) Txs() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.txs
}

func (d *DB) record(ctx context.Context, sql string, args []any) ([][]any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	l := pg.Label(ctx)
	d.calls = append(d.calls, Call{Label: l, SQL: sql, Args: args})
	if err := d.errs[l]; err != nil {
		return nil, err
	}
	return d.rows[l], nil
}

// Query replays the scripted rows of the statement label on ctx
func (d *DB) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	data, err := d.record(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	return &rows{data: data}, nil
}

// QueryRow replays the first scripted row; no scripted rows scans as pgx.ErrNoRows
func (d *DB) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	data, err := d.record(ctx, sql, args)
	return row{data: data, err: err}
}

// Tx runs fn against the same scripted source
func (d *DB) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	d.mu.Lock()
	d.txs++
	txErr := d.TxErr
	d.mu.Unlock()
	if txErr != nil {
		return txErr
	}
	return fn(d)
}

// Sources maps report sources to scripted databases
type Sources map[report.Source]*DB

// Resolver serves each scripted source; others are unavailable
func (s Sources) Resolver() repokit.Resolver {
	return func(src report.Source) (repokit.TxRunner, error) {
		if db, ok := s[src]; ok {
			return db, nil
		}
		return nil, fmt.Errorf("source %s is not scripted", src)
	}
}

// Named adapts the sources to the by-name lookup of modkit.Deps.DB
func (s Sources) Named() repokit.Sources { return named(s) }

type named Sources

func (n named) Source(name string) (repokit.TxRunner, error) {
	src, ok := report.ParseSource(name)
	if !ok {
		return nil, fmt.Errorf("unknown source %q", name)
	}
	return Sources(n).Resolver()(src)
}

// Resolver serves d for every source
func (d *DB) Resolver() repokit.Resolver {
	return func(report.Source) (repokit.TxRunner, error) { return d, nil }
}

type rows struct {
	data [][]any
	i    int
}

func (r *rows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *rows) Scan(dest ...any) error { return Assign(r.data[r.i-1], dest) }
func (r *rows) Err() error             { return nil }
func (r *rows) Close()                 {}
func (r *rows) Columns() []string      { return nil }

type row struct {
	data [][]any
	err  error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(r.data) == 0 {
		return pgx.ErrNoRows
	}
	return Assign(r.data[0], dest)
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Assign copies scripted values into scan destinations
// nil leaves a NULL (zero) value; a plain value fills a pointer destination the way the
// driver does for nullable columns
func Assign(src []any, dest []any) error {
	if len(src) != len(dest) {
		return fmt.Errorf("scan: %d values into %d destinations", len(src), len(dest))
	}
	for i := range dest {
		dv := reflect.ValueOf(dest[i])
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("scan: destination %d is not a pointer", i)
		}
		target := dv.Elem()
		if src[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		sv := reflect.ValueOf(src[i])
		switch {
		case sv.Type().AssignableTo(target.Type()):
			target.Set(sv)
		case target.Kind() == reflect.Pointer && sv.Type().AssignableTo(target.Type().Elem()):
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(sv)
			target.Set(p)
		case numeric(sv.Kind()) && numeric(target.Kind()):
			target.Set(sv.Convert(target.Type()))
		default:
			return fmt.Errorf("scan: cannot assign %s to %s", sv.Type(), target.Type())
		}
	}
	return nil
}
