package health

import "context"

// Checker reports whether a dependency is available
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// CheckFunc adapts a function to the Checker interface
type CheckFunc func(ctx context.Context) error

// HealthCheck calls f(ctx)
func (f CheckFunc) HealthCheck(ctx context.Context) error {
	return f(ctx)
}
