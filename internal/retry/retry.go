package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy bounds a retry loop.
type Policy struct {
	Attempts int
	Base     time.Duration
	Max      time.Duration
}

// Do calls fn until it succeeds, the attempts run out or ctx is done. The
// wait before attempt n+1 is ExponentialDelay(Base, Max, n).
func Do(ctx context.Context, p Policy, fn func(attempt int) error) error {
	if p.Attempts < 1 {
		p.Attempts = 1
	}

	var err error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if err = fn(attempt); err == nil {
			return nil
		}
		if attempt == p.Attempts {
			break
		}

		t := time.NewTimer(ExponentialDelay(p.Base, p.Max, attempt))
		select {
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
		case <-t.C:
		}
	}
	return fmt.Errorf("after %d attempts: %w", p.Attempts, err)
}
