package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	HashtagReport(ctx context.Context, in HashtagInput) (Document, error)
	HashtagSummary(ctx context.Context, in HashtagFilters) ([]SummaryRow, error)
	UsernameReport(ctx context.Context, in UsernameInput) (Document, error)
	ProjectReport(ctx context.Context, in ProjectInput) (Document, error)
}
