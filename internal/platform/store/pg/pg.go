// Package pg opens the pgx pools behind the report sources and traces
// what runs on them.
package pg

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config describes one source pool
type Config struct {
	URL      string
	MaxConns int32
	SlowMs   int

	// AppName shows up as application_name in pg_stat_activity
	AppName string

	// StatementTimeout is sent as a startup parameter; zero keeps the server default
	StatementTimeout time.Duration

	// ReadOnly makes every session default to read only transactions
	ReadOnly bool

	Tracer QueryTracer
}

// PG is one open pool plus the tracer its statements report to
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int
}

var newPool = pgxpool.NewWithConfig

// PoolConfig parses cfg.URL and layers the session parameters on top of it
func PoolConfig(cfg Config) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}

	set := func(k, v string) {
		if pc.ConnConfig.RuntimeParams == nil {
			pc.ConnConfig.RuntimeParams = map[string]string{}
		}
		pc.ConnConfig.RuntimeParams[k] = v
	}
	if cfg.AppName != "" {
		set("application_name", cfg.AppName)
	}
	if cfg.StatementTimeout > 0 {
		set("statement_timeout", strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10))
	}
	if cfg.ReadOnly {
		set("default_transaction_read_only", "on")
	}
	return pc, nil
}

// Open builds the pool; it does not wait for the server to answer
func Open(ctx context.Context, cfg Config) (*PG, error) {
	pc, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := newPool(ctx, pc)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool, Tracer: cfg.Tracer, SlowMs: cfg.SlowMs}, nil
}

// Close is safe on nil
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
