package repository

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/metrics"
)

// RetryPolicy bounds automatic retries of storage errors
type RetryPolicy struct {
	MaxRetries uint64
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultRetryPolicy is used when no explicit policy is configured
var DefaultRetryPolicy = RetryPolicy{
	MaxRetries: 3,
	BaseDelay:  20 * time.Millisecond,
	MaxDelay:   250 * time.Millisecond,
}

func (p RetryPolicy) backoff() retry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = DefaultRetryPolicy.BaseDelay
	}
	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = DefaultRetryPolicy.MaxDelay
	}
	b := retry.NewExponential(base)
	b = retry.WithCappedDuration(maxDelay, b)
	return retry.WithMaxRetries(p.MaxRetries, b)
}

// WithRetry runs op, retrying only storage errors within the policy budget.
// Any other error, including game and payment errors, is returned at once.
func WithRetry[T any](ctx context.Context, p RetryPolicy, opName string, op func(context.Context) (T, error)) (T, error) {
	var (
		result  T
		attempt int
	)
	err := retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			metrics.StorageRetries.WithLabelValues(opName).Inc()
		}
		v, err := op(ctx)
		if err == nil {
			result = v
			return nil
		}
		if domain.IsStorageError(err) {
			logger.FromContext(ctx).Warn(LogMsgStorageRetry, "op", opName, "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
	return result, err
}
