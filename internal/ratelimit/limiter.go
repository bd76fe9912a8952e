// Package ratelimit provides admission control for the public endpoints.
//
// The Limiter interface isolates the counter state so the backing store is
// swappable: the in-process fixed window serves a single instance, the redis
// token bucket serves multi-instance deployments.
package ratelimit

import "context"

// Limiter admits or rejects a request for the given caller key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type allowAll struct{}

func (allowAll) Allow(context.Context, string) (bool, error) { return true, nil }

// NewAllowAll returns a limiter that admits everything. Used when admission
// control is disabled.
func NewAllowAll() Limiter { return allowAll{} }
