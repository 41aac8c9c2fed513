package repokit

import (
	"context"
	stderrs "errors"
	"time"

	"galaxy/internal/core/report"
	perr "galaxy/internal/platform/errors"
	"galaxy/internal/platform/store"
)

// Binder binds a module's repo to the Queryer of one snapshot
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain func to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// Resolver returns the runner serving a report source, e.g. modkit.Deps.Source
type Resolver func(report.Source) (TxRunner, error)

// Snapshot binds a repo inside one read-only snapshot of the source's runner and calls fn
// a positive timeout bounds the whole snapshot; an expired deadline is a timeout error
// whatever the driver reported
func Snapshot[T any](ctx context.Context, db Resolver, src report.Source, timeout time.Duration, b Binder[T], fn func(context.Context, T) error) error {
	r, err := db(src)
	if err != nil {
		return err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	err = r.Tx(ctx, func(q Queryer) error {
		if q == nil {
			panic("repokit: runner handed a nil Queryer to " + src.String() + " snapshot")
		}
		return fn(ctx, b.Bind(q))
	})
	if err == nil {
		return nil
	}
	if stderrs.Is(ctx.Err(), context.DeadlineExceeded) && !perr.IsCode(err, perr.ErrorCodeTimeout) {
		return perr.Wrapf(err, perr.ErrorCodeTimeout, "%s report exceeded %s", src, timeout)
	}
	return store.Classify(err, src.String()+" snapshot")
}
