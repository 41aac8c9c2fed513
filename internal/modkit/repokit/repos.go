// Package repokit provides common types and helpers for repository implementations
package repokit

import (
	"context"

	"galaxy/internal/core/report"
	"galaxy/internal/platform/store"
)

// Queryer is the read surface SQL repos depend on
type Queryer = store.RowQuerier

// TxRunner can execute a function inside a report snapshot
type TxRunner = store.TxRunner

type (
	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row
)

// Sources resolves a runner per named database; *store.Store satisfies it
type Sources interface {
	Source(name string) (TxRunner, error)
}

// For returns the runner serving a report source
func For(s Sources, src report.Source) (TxRunner, error) {
	return s.Source(src.String())
}

// WithTx runs fn inside a transaction using the provided TxRunner
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
