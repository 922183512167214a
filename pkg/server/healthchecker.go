package server

import "context"

// HealthChecker reports whether a dependency of the server can serve
// requests.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// HealthFunc adapts a plain function to HealthChecker.
type HealthFunc func(ctx context.Context) bool

func (f HealthFunc) Healthy(ctx context.Context) bool {
	return f(ctx)
}

// AlwaysHealthy is the checker of backends without a remote dependency.
var AlwaysHealthy HealthChecker = HealthFunc(func(context.Context) bool { return true })
