package repository

import (
	"context"

	"github.com/osse101/FarmBot_Go/internal/logger"
)

// ErrMsgTxClosed is returned by drivers when rolling back a committed transaction
const ErrMsgTxClosed = "tx is closed"

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Check for common "closed" errors to avoid noise
		if err.Error() != ErrMsgTxClosed {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
