package store

import (
	"galaxy/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithSource registers an already built runner under name
// a configured source with the same name replaces it
func WithSource(name string, r TxRunner) Option {
	return func(s *Store) error {
		return s.attach(name, r)
	}
}
