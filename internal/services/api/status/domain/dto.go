// Package domain holds DTOs for data recency
package domain

import (
	"context"
	"time"
)

// Freshness is how far a derived table lags behind the database clock
type Freshness struct {
	Target      string     `json:"target" example:"changesets"`
	LastUpdated *time.Time `json:"last_updated" example:"2021-08-27T11:00:00Z"`
	LagSeconds  float64    `json:"lag_seconds" example:"42"`
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Freshness(ctx context.Context, target string) (Freshness, error)
}
