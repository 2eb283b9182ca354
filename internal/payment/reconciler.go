// Package payment turns Telegram Stars payment confirmations into exactly
// one ledger credit each.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/farm"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/metrics"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

// Outcome is the result of reconciling one payment delivery
type Outcome int

const (
	OutcomeApplied Outcome = iota + 1
	OutcomeDuplicate
	OutcomeInvalidPayload
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeInvalidPayload:
		return "invalid_payload"
	default:
		return "unknown"
	}
}

// ErrNotRecorded marks failures that happened before the payment sentinel
// was written. Only these are safe for Telegram to redeliver.
var ErrNotRecorded = errors.New(ErrMsgNotRecorded)

// Crediter applies a purchase effect to a player
type Crediter interface {
	Credit(ctx context.Context, userID int64, displayName string, effect domain.Effect) (domain.User, error)
}

// Config tunes the reconciler
type Config struct {
	CacheSize      int
	CacheTTL       time.Duration
	UnsettledGrace time.Duration
	Retry          repository.RetryPolicy
}

// Reconciler records, parses and credits payments
type Reconciler struct {
	store     repository.LedgerStore
	crediter  Crediter
	catalog   *farm.Catalog
	publisher event.Publisher
	settled   *settledCache
	grace     time.Duration
	retry     repository.RetryPolicy
	now       func() time.Time
}

// NewReconciler creates a Reconciler. Every catalog product payload must parse.
func NewReconciler(store repository.LedgerStore, crediter Crediter, catalog *farm.Catalog, publisher event.Publisher, cfg Config) (*Reconciler, error) {
	for _, p := range catalog.Products {
		if _, err := ParsePayload(p.Payload); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", ErrMsgCatalogPayload, p.ID, err)
		}
	}

	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.UnsettledGrace <= 0 {
		cfg.UnsettledGrace = DefaultUnsettledGrace
	}

	return &Reconciler{
		store:     store,
		crediter:  crediter,
		catalog:   catalog,
		publisher: publisher,
		settled:   newSettledCache(cfg.CacheSize, cfg.CacheTTL),
		grace:     cfg.UnsettledGrace,
		retry:     cfg.Retry,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// Reconcile applies a confirmed payment at most once.
//
// The sentinel is written before the payload is parsed, so a redelivered
// invalid payment is a Duplicate rather than a second rejection. A credit
// failure after the sentinel leaves the payment recorded for the unsettled
// sweep; it is never retried automatically.
func (r *Reconciler) Reconcile(ctx context.Context, purchase domain.PurchaseEvent) (Outcome, error) {
	log := logger.FromContext(ctx).With("payment_id", purchase.PaymentID, "user_id", purchase.UserID)

	if purchase.PaymentID == "" {
		return 0, fmt.Errorf("%w: %w: %s", ErrNotRecorded, domain.ErrInvalidInput, ErrMsgMissingID)
	}
	if purchase.UserID <= 0 {
		return 0, fmt.Errorf("%w: %w: %s", ErrNotRecorded, domain.ErrInvalidInput, ErrMsgMissingUser)
	}

	if r.settled.Seen(purchase.PaymentID) {
		return r.duplicate(log), nil
	}

	recorded, err := repository.WithRetry(ctx, r.retry, opRecord, func(ctx context.Context) (repository.RecordResult, error) {
		return r.store.RecordPaymentOnce(ctx, purchase)
	})
	if err != nil {
		metrics.PaymentsReconciled.WithLabelValues(OutcomeLabelFailed).Inc()
		return 0, fmt.Errorf("%w: %w", ErrNotRecorded, err)
	}
	if recorded == repository.AlreadyRecorded {
		r.settled.Mark(purchase.PaymentID, domain.PaymentRecorded)
		return r.duplicate(log), nil
	}

	effect, parseErr := ParsePayload(purchase.Payload)
	if parseErr != nil {
		log.Warn(LogMsgInvalidPayload, "payload", purchase.Payload, "reason", parseErr)
		r.settle(ctx, purchase.PaymentID, domain.PaymentInvalid, parseErr.Error())
		r.publish(ctx, event.NewPaymentRejectedEvent(purchase, parseErr.Error()))
		metrics.PaymentsReconciled.WithLabelValues(OutcomeInvalidPayload.String()).Inc()
		return OutcomeInvalidPayload, parseErr
	}

	user, err := r.crediter.Credit(ctx, purchase.UserID, "", effect)
	if err != nil {
		log.Error(LogMsgCreditFailed, "payload", purchase.Payload, "error", err)
		metrics.PaymentsReconciled.WithLabelValues(OutcomeLabelFailed).Inc()
		return 0, err
	}

	r.settle(ctx, purchase.PaymentID, domain.PaymentApplied, describe(effect))
	r.publish(ctx, event.NewPaymentAppliedEvent(purchase.PaymentID, effect, user))
	metrics.PaymentsReconciled.WithLabelValues(OutcomeApplied.String()).Inc()
	log.Info(LogMsgReconciled, "effect", effect.Kind, "coins", user.Coins)

	return OutcomeApplied, nil
}

func (r *Reconciler) duplicate(log *slog.Logger) Outcome {
	metrics.PaymentsReconciled.WithLabelValues(OutcomeDuplicate.String()).Inc()
	log.Info(LogMsgDuplicate)
	return OutcomeDuplicate
}

// settle marks the outcome on the payment record. A failure is logged and the
// row stays recorded, which the unsettled sweep will report.
func (r *Reconciler) settle(ctx context.Context, paymentID string, status domain.PaymentStatus, detail string) {
	_, err := repository.WithRetry(ctx, r.retry, opSettle, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.store.SettlePayment(ctx, paymentID, status, detail)
	})
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgSettleFailed, "payment_id", paymentID, "status", status, "error", err)
		return
	}
	r.settled.Mark(paymentID, status)
}

func (r *Reconciler) publish(ctx context.Context, evt event.Event) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

// FlagUnsettled reports payments still recorded after the grace period.
// It returns how many were found.
func (r *Reconciler) FlagUnsettled(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	now := r.now()

	pending, err := repository.WithRetry(ctx, r.retry, opList, func(ctx context.Context) ([]domain.PaymentRecord, error) {
		return r.store.ListUnsettledPayments(ctx, now.Add(-r.grace), UnsettledScanLimit)
	})
	if err != nil {
		return 0, err
	}

	metrics.PaymentsUnsettled.Set(float64(len(pending)))
	for _, rec := range pending {
		log.Error(LogMsgUnsettled,
			"payment_id", rec.PaymentID,
			"user_id", rec.UserID,
			"payload", rec.Payload,
			"age", now.Sub(rec.RecordedAt).Truncate(time.Second))
		r.publish(ctx, event.NewPaymentUnsettledEvent(rec, now))
	}
	return len(pending), nil
}

// ListUnsettled returns payments still recorded after the grace period
func (r *Reconciler) ListUnsettled(ctx context.Context, limit int) ([]domain.PaymentRecord, error) {
	if limit <= 0 || limit > UnsettledScanLimit {
		limit = UnsettledScanLimit
	}
	return repository.WithRetry(ctx, r.retry, opList, func(ctx context.Context) ([]domain.PaymentRecord, error) {
		return r.store.ListUnsettledPayments(ctx, r.now().Add(-r.grace), limit)
	})
}

// ValidateCheckout decides a pre-checkout query before Telegram charges the user.
// The payload must be a catalog product paid in XTR at its listed price.
func (r *Reconciler) ValidateCheckout(userID int64, payload, currency string, amount int64) error {
	if userID <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingUser)
	}
	if _, err := ParsePayload(payload); err != nil {
		return err
	}
	product, ok := r.catalog.ProductByPayload(payload)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownProduct, payload)
	}
	if currency != domain.CurrencyStars {
		return fmt.Errorf("%w: %s", domain.ErrPaymentMismatch, ErrMsgWrongCurrency)
	}
	if amount != product.PriceStars {
		return fmt.Errorf("%w: %s: got %d, want %d", domain.ErrPaymentMismatch, ErrMsgWrongAmount, amount, product.PriceStars)
	}
	return nil
}
