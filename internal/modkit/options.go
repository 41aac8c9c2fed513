package modkit

import "net/http"

// Option configures a module Base
type Option func(*Base)

// WithName names the module for logs
func WithName(name string) Option {
	return func(b *Base) { b.name = name }
}

// WithPrefix mounts the module under prefix, relative to /api/v1
func WithPrefix(prefix string) Option {
	return func(b *Base) { b.prefix = prefix }
}

// WithMiddlewares appends module scoped middleware
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Base) { b.mws = append(b.mws, mw...) }
}
