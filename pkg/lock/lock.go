// Package lock provides a best-effort mutual exclusion across processes.
package lock

import (
	"context"
	"errors"
	"time"
)

// ErrLocked is returned by Acquire when another holder owns the key.
var ErrLocked = errors.New("lock is held by another owner")

// ReleaseFunc gives the lock back. It is safe to call after the TTL ran out.
type ReleaseFunc func(ctx context.Context) error

type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (ReleaseFunc, error)
}

// Local always succeeds. It is used when no shared store is configured and
// the process is the only writer.
type Local struct{}

func (Local) Acquire(context.Context, string, time.Duration) (ReleaseFunc, error) {
	return func(context.Context) error { return nil }, nil
}
