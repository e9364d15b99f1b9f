package utils

import (
	"context"
	"math/rand"
	"time"
)

// Sleep pauses for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RandomDelay sleeps for a random duration between min and max.
// Pass time.Duration values like: RandomDelay(ctx, 2*time.Second, 5*time.Second)
//
// Fixed pauses between listing clicks are an easy pattern to spot,
// so the gap is jittered.
func RandomDelay(ctx context.Context, min, max time.Duration) error {
	return Sleep(ctx, jitter(min, max))
}

func jitter(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
