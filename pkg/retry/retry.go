package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy retries an operation with linearly increasing backoff:
// the n-th failure waits BaseDelay × n before the next attempt.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// Default matches the upstream RPC rate-limit guidance: 3 attempts, 2s base.
var Default = Policy{MaxAttempts: 3, BaseDelay: 2 * time.Second}

// Do runs fn until it succeeds, the attempts are exhausted, or ctx is done.
// op names the operation for the returned error.
func (p Policy) Do(ctx context.Context, op string, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		if werr := sleep(ctx, p.BaseDelay*time.Duration(attempt)); werr != nil {
			return fmt.Errorf("%s: %w (last error: %v)", op, werr, err)
		}
	}
	return fmt.Errorf("%s: %d attempts exhausted: %w", op, attempts, err)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
