// Package store provides the read side seams over the reporting databases
//
// Every source is its own pgx pool wrapped by a circuit breaker. Repositories only ever see
// RowQuerier and TxRunner, so they can be exercised with hand rolled fakes.
package store

import (
	"context"
	"errors"
	"fmt"

	perr "galaxy/internal/platform/errors"
	"galaxy/internal/platform/logger"
)

// Store is the facade over the configured sources
// zero value is safe but holds no sources
type Store struct {
	// Log is the logger used by subclients
	// zero means a no op zerolog logger
	Log logger.Logger

	sources map[string]TxRunner
	order   []string
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// RowQuerier is the read surface repos use for sql
type RowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs fn inside a read only repeatable read transaction
// so every statement of one report sees the same snapshot
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store with every enabled source
// on failure the sources opened so far are closed again
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// defaults for zero logger to avoid nil checks
	s.Log = s.Log.With().Logger()

	for _, sc := range cfg.Sources {
		if !sc.PG.Enabled {
			continue
		}
		r, err := openPG(ctx, cfg.AppName, sc, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("source %s: %w", sc.Name, err)
		}
		if err := s.attach(sc.Name, newBreaker(sc.Name, sc.Breaker, r, s.Log)); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}

	return s, nil
}

func (s *Store) attach(name string, r TxRunner) error {
	if name == "" || r == nil {
		return errors.New("store: source needs a name and a runner")
	}
	if s.sources == nil {
		s.sources = map[string]TxRunner{}
	}
	if _, ok := s.sources[name]; !ok {
		s.order = append(s.order, name)
	}
	s.sources[name] = r
	return nil
}

// Source returns the runner registered under name
// an unknown or disabled source is reported as unavailable
func (s *Store) Source(name string) (TxRunner, error) {
	if s != nil {
		if r, ok := s.sources[name]; ok {
			return r, nil
		}
	}
	return nil, perr.Unavailablef("source %q is not configured", name)
}

// Names lists registered sources in registration order
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Ping checks one source; used by readiness
func (s *Store) Ping(ctx context.Context, name string) error {
	r, err := s.Source(name)
	if err != nil {
		return err
	}
	if p, ok := r.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// State reports the breaker state of a source, empty when it has no breaker
func (s *Store) State(name string) string {
	r, err := s.Source(name)
	if err != nil {
		return ""
	}
	if b, ok := r.(interface{ State() string }); ok {
		return b.State()
	}
	return ""
}

// Guard verifies every registered source answers a ping
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for _, name := range s.order {
		if err := s.Ping(ctx, name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes all sources gracefully
func (s *Store) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, name := range s.order {
		if c, ok := s.sources[name].(interface{ Close() error }); ok {
			if e := c.Close(); e != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, e))
			}
		}
	}
	return errors.Join(errs...)
}
