package repokit

import (
	"context"

	"galaxy/internal/platform/store"
)

// Setting is a server parameter scoped to one report snapshot, e.g. work_mem for
// the heavier aggregations
type Setting struct {
	Name  string
	Value string
}

// Apply sets s until the surrounding transaction ends.
// set_config is used because SET does not take bind parameters.
func (s Setting) Apply(ctx context.Context, q Queryer) error {
	var applied string
	if err := q.QueryRow(ctx, "SELECT set_config($1, $2, true)", s.Name, s.Value).Scan(&applied); err != nil {
		return store.Classify(err, "set "+s.Name)
	}
	return nil
}

// Configure applies settings at the start of every Tx on inner.
// Query and QueryRow outside a Tx are passed through untouched.
func Configure(inner TxRunner, settings ...Setting) TxRunner {
	if len(settings) == 0 {
		return inner
	}
	return configured{TxRunner: inner, settings: settings}
}

type configured struct {
	TxRunner
	settings []Setting
}

func (c configured) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return c.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, s := range c.settings {
			if err := s.Apply(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}
