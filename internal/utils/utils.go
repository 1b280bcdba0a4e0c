package utils

import (
	"context"
	"time"
)

// WaitFor blocks for the given duration, typically a retry backoff between
// collaborator calls. It returns early with the context error when the run is
// cancelled so an aborted screening batch never sits out a backoff.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
