package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Organisations(ctx context.Context) ([]Organisation, error)
	List(ctx context.Context, in ListInput) ([]Training, error)
}
