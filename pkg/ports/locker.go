package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates session access across replicas. The session
// Manager uses it in addition to its in-process locks when configured.
type DistributedLocker interface {
	// Lock acquires a distributed lock for the given key (e.g. a session ID).
	// It blocks until the lock is held or the context is canceled.
	// The returned UnlockFunc MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
