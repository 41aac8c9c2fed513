package pg

import "context"

type labelKey struct{}

// WithLabel names the statements issued under ctx, e.g. "mapathon_summary/mapped_features"
// tracers attach it to logs and metrics
func WithLabel(ctx context.Context, label string) context.Context {
	return context.WithValue(ctx, labelKey{}, label)
}

// Label returns the statement label on ctx or "unlabeled"
func Label(ctx context.Context) string {
	if s, ok := ctx.Value(labelKey{}).(string); ok && s != "" {
		return s
	}
	return "unlabeled"
}
