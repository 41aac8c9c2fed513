package repokit

import (
	"context"

	"galaxy/internal/core/report"
	"galaxy/internal/platform/store"
	"galaxy/internal/platform/store/pg"
)

// Label names a planned statement for traces and metrics, e.g. "mapathon_summary/mapped_features"
func Label(q report.Query) string { return q.Kind.String() + "/" + q.Name }

// Many runs a planned statement and scans every row; no rows is a nil slice.
// Driver failures are classified, errors returned by scan keep their own code.
func Many[T any](ctx context.Context, q Queryer, query report.Query, scan func(Row) (T, error)) ([]T, error) {
	label := Label(query)
	rows, err := q.Query(pg.WithLabel(ctx, label), query.SQL, query.Args...)
	if err != nil {
		return nil, store.Classify(err, label)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, store.Classify(err, label)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Classify(err, label)
	}
	return out, nil
}

// Scalar runs a planned single value statement, e.g. a contributor count
func Scalar[T any](ctx context.Context, q Queryer, query report.Query) (T, error) {
	var v T
	label := Label(query)
	if err := q.QueryRow(pg.WithLabel(ctx, label), query.SQL, query.Args...).Scan(&v); err != nil {
		var zero T
		return zero, store.Classify(err, label)
	}
	return v, nil
}
