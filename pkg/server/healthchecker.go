package server

import "context"

// HealthChecker answers whether a dependency is reachable. The API server
// reports "degraded" on /health when any wired checker returns false.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// HealthCheckerFunc adapts a plain function to HealthChecker.
type HealthCheckerFunc func(ctx context.Context) bool

func (f HealthCheckerFunc) Healthy(ctx context.Context) bool {
	return f(ctx)
}
