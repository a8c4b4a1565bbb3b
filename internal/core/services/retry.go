package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/musedata/tracklab/internal/core/domain"
	"github.com/musedata/tracklab/internal/core/ports"
)

// RetryPolicy bounds the retry behaviour around one logical lookup.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts per lookup, counting the
	// first one.
	MaxAttempts int
	// InitialDelay is the wait before the first retry; it doubles after
	// every failed attempt.
	InitialDelay time.Duration
	// CallDelay is the fixed pause after every completed call, keeping the
	// request rate under the service limit (~10 req/s).
	CallDelay time.Duration
}

// DefaultRetryPolicy matches the catalog's documented rate limit.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		CallDelay:    200 * time.Millisecond,
	}
}

// LookupFunc is one attempt of a lookup, performed with the given token.
type LookupFunc func(ctx context.Context, token string) (*domain.LookupResult, error)

// RetryController wraps lookups with bounded retries, exponential backoff and
// the refresh-on-expiry transition. The token is threaded through explicitly:
// callers pass the current token in and keep whatever Do returns for the next
// row.
type RetryController struct {
	tokens ports.TokenSource
	policy RetryPolicy
	log    *zap.Logger

	// sleep is swapped out by tests to observe delays.
	sleep func(context.Context, time.Duration) error
}

// NewRetryController constructs a controller around a token source.
func NewRetryController(tokens ports.TokenSource, policy RetryPolicy, log *zap.Logger) *RetryController {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RetryController{
		tokens: tokens,
		policy: policy,
		log:    log,
		sleep:  sleepWithContext,
	}
}

// Do runs one logical lookup. A nil result with a nil error means the row
// should be left unmodified, whether because the catalog had no match or
// because retries were exhausted; the distinction is logged, never fatal.
// The returned token replaces the caller's when a mid-run refresh happened.
// The only error Do returns is context cancellation.
func (c *RetryController) Do(ctx context.Context, token string, fn LookupFunc) (*domain.LookupResult, string, error) {
	delay := c.policy.InitialDelay
	attempt := 1
	refreshed := false

	for {
		if err := ctx.Err(); err != nil {
			return nil, token, err
		}

		res, err := fn(ctx, token)
		switch {
		case err == nil:
			// Success or application-level miss: pause for the rate
			// limit and hand the row back.
			if serr := c.sleep(ctx, c.policy.CallDelay); serr != nil {
				return nil, token, serr
			}
			return res, token, nil

		case errors.Is(err, ports.ErrTokenExpired):
			if refreshed {
				c.log.Warn("credential rejected again after refresh, skipping row")
				return nil, token, nil
			}
			refreshed = true
			fresh, terr := c.tokens.Acquire(ctx)
			if terr != nil {
				if ctx.Err() != nil {
					return nil, token, ctx.Err()
				}
				c.log.Warn("token re-acquisition failed, skipping row", zap.Error(terr))
				return nil, token, nil
			}
			c.log.Info("refreshed expired catalog token")
			token = fresh
			// One retry with the fresh token; does not consume a
			// transport attempt.

		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			if ctx.Err() != nil {
				return nil, token, ctx.Err()
			}
			fallthrough

		default:
			// Transport failure: back off and retry, bounded.
			if attempt >= c.policy.MaxAttempts {
				c.log.Warn("lookup failed, skipping row",
					zap.Int("attempts", attempt),
					zap.Error(err))
				return nil, token, nil
			}
			if serr := c.sleep(ctx, delay); serr != nil {
				return nil, token, serr
			}
			delay *= 2
			attempt++
		}
	}
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
