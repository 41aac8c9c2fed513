package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Hashtags(ctx context.Context, in HashtagInput) ([]HashtagBucket, error)
}
