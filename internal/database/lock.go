package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the database lock.
var ErrLocked = errors.New("database is in use by another ordens session")

// Lock takes an exclusive advisory lock next to the database file so only one
// interactive session writes at a time. The returned func releases it.
func Lock(ctx context.Context, dbPath string, wait time.Duration) (func() error, error) {
	fl := flock.New(dbPath + ".lock")
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	ok, err := fl.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("lock %s: %w", dbPath, err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return fl.Unlock, nil
}
