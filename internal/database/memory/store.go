// Package memory implements the ledger store in process memory for tests and local development.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/osse101/FarmBot_Go/internal/concurrency"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

// Store implements repository.LedgerStore with maps.
// ApplyAtomic holds a per-user lock while mutating a clone, then swaps it in.
type Store struct {
	mu       sync.RWMutex
	users    map[int64]domain.User
	payments map[string]domain.PaymentRecord

	locks         *concurrency.LockManager
	startingCoins int64
	now           func() time.Time
}

var _ repository.LedgerStore = (*Store)(nil)

// NewStore creates a new Store
func NewStore(startingCoins int64) *Store {
	return &Store{
		users:         make(map[int64]domain.User),
		payments:      make(map[string]domain.PaymentRecord),
		locks:         concurrency.NewLockManager(),
		startingCoins: startingCoins,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the store clock
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) GetOrCreate(ctx context.Context, userID int64, displayName string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		u = domain.NewUser(userID, displayName, s.startingCoins, s.now())
		s.users[userID] = u
	}
	return u.Clone(), nil
}

func (s *Store) ApplyAtomic(ctx context.Context, userID int64, mutate repository.Mutation) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	var result domain.User
	err := s.locks.WithLock(userID, func() error {
		s.mu.RLock()
		current, ok := s.users[userID]
		s.mu.RUnlock()
		if !ok {
			return fmt.Errorf("%w: %d", domain.ErrUserNotFound, userID)
		}

		next, err := mutate(current.Clone())
		if err != nil {
			return err
		}
		next.UserID = current.UserID
		next.CreatedAt = current.CreatedAt
		next.UpdatedAt = s.now()

		s.mu.Lock()
		s.users[userID] = next.Clone()
		s.mu.Unlock()

		result = next
		return nil
	})
	return result, err
}

func (s *Store) RecordPaymentOnce(ctx context.Context, event domain.PurchaseEvent) (repository.RecordResult, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.payments[event.PaymentID]; exists {
		return repository.AlreadyRecorded, nil
	}
	s.payments[event.PaymentID] = domain.PaymentRecord{
		PurchaseEvent: event,
		Status:        domain.PaymentRecorded,
		RecordedAt:    s.now(),
	}
	return repository.Accepted, nil
}

func (s *Store) SettlePayment(ctx context.Context, paymentID string, status domain.PaymentStatus, detail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.payments[paymentID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPaymentNotFound, paymentID)
	}
	if rec.Status != domain.PaymentRecorded {
		if rec.Status == status {
			return nil
		}
		return fmt.Errorf("%w: %s is %s", domain.ErrPaymentSettled, paymentID, rec.Status)
	}

	settled := s.now()
	rec.Status = status
	rec.Detail = detail
	rec.SettledAt = &settled
	s.payments[paymentID] = rec
	return nil
}

func (s *Store) ListUnsettledPayments(ctx context.Context, olderThan time.Time, limit int) ([]domain.PaymentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.PaymentRecord
	for _, rec := range s.payments {
		if rec.Status == domain.PaymentRecorded && rec.RecordedAt.Before(olderThan) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.Before(out[j].RecordedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Payment returns the stored record for paymentID
func (s *Store) Payment(paymentID string) (domain.PaymentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.payments[paymentID]
	return rec, ok
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Close() {}
