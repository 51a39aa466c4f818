package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const cycleLockKey = "sweep:cycle:lock"

// CycleLock implements ports.CycleLock using Redis SET NX. The TTL bounds
// how long a crashed run can keep the lock; a healthy run releases it when
// the cycle finishes.
type CycleLock struct {
	client *goredis.Client
	key    string
}

// NewCycleLock creates a new Redis-backed cycle lock.
func NewCycleLock(client *goredis.Client) *CycleLock {
	return &CycleLock{
		client: client,
		key:    cycleLockKey,
	}
}

// TryAcquire takes the lock for runID. Returns false if another run holds it.
func (l *CycleLock) TryAcquire(ctx context.Context, runID string, ttl time.Duration) (bool, error) {
	result, err := l.client.SetArgs(ctx, l.key, runID, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists — another cycle is running
			return false, nil
		}
		return false, fmt.Errorf("redis cycle lock acquire: %w", err)
	}
	return result == "OK", nil
}

// releaseScript deletes the lock only when runID still owns it, so a run
// whose lock expired cannot release a successor's lock.
var releaseScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Release frees the lock if runID still owns it.
func (l *CycleLock) Release(ctx context.Context, runID string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, runID).Err(); err != nil {
		return fmt.Errorf("redis cycle lock release: %w", err)
	}
	return nil
}
