// Package postgres implements the ledger store on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

// PgxPool is the subset of *pgxpool.Pool the store needs.
// It is implemented by *pgxpool.Pool and pgxmock.PgxPoolIface.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Store implements repository.LedgerStore for PostgreSQL
type Store struct {
	db            PgxPool
	startingCoins int64
	now           func() time.Time
}

var _ repository.LedgerStore = (*Store)(nil)

// NewStore creates a new Store
func NewStore(db PgxPool, startingCoins int64) *Store {
	return &Store{
		db:            db,
		startingCoins: startingCoins,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreate inserts the default record if absent, then reads it back.
// ON CONFLICT DO NOTHING makes concurrent first contacts converge on one row.
func (s *Store) GetOrCreate(ctx context.Context, userID int64, displayName string) (domain.User, error) {
	if _, err := s.db.Exec(ctx, queryInsertUser, userID, displayName, s.startingCoins, s.now()); err != nil {
		return domain.User{}, wrapErr(opInsertUser, err)
	}

	u, err := scanUser(s.db.QueryRow(ctx, querySelectUser, userID))
	if err != nil {
		if domain.IsStorageError(err) {
			return domain.User{}, err
		}
		return domain.User{}, wrapErr(opSelectUser, err)
	}
	return u, nil
}

// ApplyAtomic locks the user row, applies mutate and writes the result in one transaction
func (s *Store) ApplyAtomic(ctx context.Context, userID int64, mutate repository.Mutation) (domain.User, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return domain.User{}, wrapErr(opBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	current, err := scanUser(tx.QueryRow(ctx, querySelectUserForUpdate, userID))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.User{}, fmt.Errorf("%w: %d", domain.ErrUserNotFound, userID)
		case domain.IsStorageError(err):
			return domain.User{}, err
		default:
			return domain.User{}, wrapErr(opSelectUser, err)
		}
	}

	next, err := mutate(current.Clone())
	if err != nil {
		return domain.User{}, err
	}
	next.UserID = current.UserID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = s.now()

	inventory, lastHarvest, err := encodeState(next)
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: %w: %w", opEncodeUser, domain.ErrStorage, err)
	}

	if _, err := tx.Exec(ctx, queryUpdateUser, next.UserID, next.DisplayName, next.Coins, inventory, lastHarvest, next.UpdatedAt); err != nil {
		return domain.User{}, wrapErr(opUpdateUser, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.User{}, wrapErr(opCommitTx, err)
	}
	return next, nil
}

// RecordPaymentOnce writes the payment sentinel; zero rows affected means a prior delivery won
func (s *Store) RecordPaymentOnce(ctx context.Context, event domain.PurchaseEvent) (repository.RecordResult, error) {
	tag, err := s.db.Exec(ctx, queryInsertPayment,
		event.PaymentID, event.UserID, event.Payload, event.Currency, event.TotalAmount, s.now())
	if err != nil {
		return 0, wrapErr(opInsertPayment, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.AlreadyRecorded, nil
	}
	return repository.Accepted, nil
}

// SettlePayment moves a recorded payment to status. Settling again with the same status is a no-op.
func (s *Store) SettlePayment(ctx context.Context, paymentID string, status domain.PaymentStatus, detail string) error {
	tag, err := s.db.Exec(ctx, querySettlePayment, paymentID, string(status), detail, s.now())
	if err != nil {
		return wrapErr(opSettlePayment, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var current string
	if err := s.db.QueryRow(ctx, queryPaymentStatus, paymentID).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", domain.ErrPaymentNotFound, paymentID)
		}
		return wrapErr(opSettlePayment, err)
	}
	if domain.PaymentStatus(current) == status {
		return nil
	}
	return fmt.Errorf("%w: %s is %s", domain.ErrPaymentSettled, paymentID, current)
}

// ListUnsettledPayments returns payments still recorded before olderThan, oldest first
func (s *Store) ListUnsettledPayments(ctx context.Context, olderThan time.Time, limit int) ([]domain.PaymentRecord, error) {
	rows, err := s.db.Query(ctx, queryListUnsettled, olderThan, limit)
	if err != nil {
		return nil, wrapErr(opListUnsettled, err)
	}
	defer rows.Close()

	var records []domain.PaymentRecord
	for rows.Next() {
		var (
			rec    domain.PaymentRecord
			status string
		)
		if err := rows.Scan(&rec.PaymentID, &rec.UserID, &rec.Payload, &rec.Currency, &rec.TotalAmount,
			&status, &rec.Detail, &rec.RecordedAt, &rec.SettledAt); err != nil {
			return nil, wrapErr(opListUnsettled, err)
		}
		rec.Status = domain.PaymentStatus(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(opListUnsettled, err)
	}
	return records, nil
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return wrapErr(opPing, err)
	}
	return nil
}

// Close releases the pool
func (s *Store) Close() {
	s.db.Close()
}
