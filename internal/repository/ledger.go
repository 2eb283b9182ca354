package repository

import (
	"context"
	"time"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// Mutation is a pure transform applied to a user inside one atomic step.
// Returning an error aborts the step without writing anything.
type Mutation func(domain.User) (domain.User, error)

// Identity is the no-op mutation
func Identity(u domain.User) (domain.User, error) { return u, nil }

// RecordResult is the outcome of RecordPaymentOnce
type RecordResult int

const (
	// Accepted means this call wrote the payment sentinel
	Accepted RecordResult = iota + 1
	// AlreadyRecorded means an earlier delivery wrote it
	AlreadyRecorded
)

func (r RecordResult) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case AlreadyRecorded:
		return "already_recorded"
	default:
		return "unknown"
	}
}

// LedgerStore is the durable owner of users and payment records.
// Implementations guarantee per-user linearizability of ApplyAtomic.
type LedgerStore interface {
	// GetOrCreate returns the user, creating the default record on first contact.
	// Concurrent first contacts for one id all receive the same record.
	GetOrCreate(ctx context.Context, userID int64, displayName string) (domain.User, error)

	// ApplyAtomic runs mutate against the current record and persists the result
	// as one step. Mutation errors are returned unchanged.
	ApplyAtomic(ctx context.Context, userID int64, mutate Mutation) (domain.User, error)

	// RecordPaymentOnce atomically writes the idempotency sentinel for a payment.
	RecordPaymentOnce(ctx context.Context, event domain.PurchaseEvent) (RecordResult, error)

	// SettlePayment moves a recorded payment to a terminal status.
	SettlePayment(ctx context.Context, paymentID string, status domain.PaymentStatus, detail string) error

	// ListUnsettledPayments returns payments still recorded before olderThan.
	ListUnsettledPayments(ctx context.Context, olderThan time.Time, limit int) ([]domain.PaymentRecord, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	Close()
}
