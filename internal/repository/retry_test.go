package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

var fastPolicy = RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestWithRetry_RetriesStorageErrors(t *testing.T) {
	calls := 0
	got, err := WithRetry(context.Background(), fastPolicy, "test", func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, domain.ErrConflictRetryable
		}
		return 7, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_BudgetExhausted(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), fastPolicy, "test", func(ctx context.Context) (struct{}, error) {
		calls++
		return struct{}{}, domain.ErrStorage
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, int(fastPolicy.MaxRetries)+1, calls)
}

func TestWithRetry_DomainErrorsNotRetried(t *testing.T) {
	for _, want := range []error{
		domain.ErrCooldownActive,
		domain.ErrInsufficientFunds,
		domain.ErrBalanceOverflow,
		domain.ErrInvalidPayload,
		domain.ErrBadSignature,
		errors.New("plain"),
	} {
		t.Run(want.Error(), func(t *testing.T) {
			calls := 0
			_, err := WithRetry(context.Background(), fastPolicy, "test", func(ctx context.Context) (int, error) {
				calls++
				return 0, want
			})
			assert.ErrorIs(t, err, want)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestWithRetry_ZeroBudgetRunsOnce(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), RetryPolicy{}, "test", func(ctx context.Context) (int, error) {
		calls++
		return 0, domain.ErrStorage
	})

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := WithRetry(ctx, fastPolicy, "test", func(ctx context.Context) (int, error) {
		calls++
		return 0, domain.ErrStorage
	})

	require.Error(t, err)
	assert.LessOrEqual(t, calls, 1)
}

type fakeTx struct {
	rollbackErr error
	rolledBack  bool
}

func (f *fakeTx) Commit(ctx context.Context) error { return nil }
func (f *fakeTx) Rollback(ctx context.Context) error {
	f.rolledBack = true
	return f.rollbackErr
}

func TestSafeRollback(t *testing.T) {
	tx := &fakeTx{rollbackErr: errors.New(ErrMsgTxClosed)}
	SafeRollback(context.Background(), tx)
	assert.True(t, tx.rolledBack)

	tx = &fakeTx{rollbackErr: errors.New("boom")}
	assert.NotPanics(t, func() { SafeRollback(context.Background(), tx) })
}

func TestRecordResultString(t *testing.T) {
	assert.Equal(t, "accepted", Accepted.String())
	assert.Equal(t, "already_recorded", AlreadyRecorded.String())
	assert.Equal(t, "unknown", RecordResult(0).String())
}
