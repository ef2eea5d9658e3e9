package cmd

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/roffe/slcan"
)

// do runs fn up to attempts times. Only a missing response is retried, any other
// failure is returned straight away.
func do(ctx context.Context, attempts uint, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(20*time.Millisecond),
		retry.DelayType(retry.FixedDelay),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, slcan.ErrTimedOut)
		}),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("no response from adapter", "attempt", n+1, "err", err)
		}),
		retry.LastErrorOnly(true),
	)
}
