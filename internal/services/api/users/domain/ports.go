package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	List(ctx context.Context, in ListInput) ([]User, error)
	Statistics(ctx context.Context, in StatisticsInput) (Statistics, error)
}
