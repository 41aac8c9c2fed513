package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Summary(ctx context.Context, in Input) (Summary, error)
	Detail(ctx context.Context, in Input) (Detail, error)
	Changesets(ctx context.Context, in Input) ([]Changeset, error)
}
