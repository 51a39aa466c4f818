package ports

import "context"

// HealthChecker reports whether an infrastructure dependency of the sweep
// pipeline (the account database, the cycle-lock store) is reachable. The
// ops health endpoint aggregates these, and the scheduler uses the account
// directory's checker to skip a cycle instead of starting one it cannot
// finish.
type HealthChecker interface {
	// Ping verifies connectivity. Returns nil if healthy.
	Ping(ctx context.Context) error
	// Name returns the dependency name (e.g., "postgresql", "redis").
	Name() string
}
