package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version    string         `json:"version"` // Event schema version (e.g., "1.0")
	ID         string         `json:"id"`
	Type       Type           `json:"type"`
	Payload    interface{}    `json:"payload"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Payment event types
const (
	PaymentApplied   Type = Type(domain.EventTypePaymentApplied)
	PaymentRejected  Type = Type(domain.EventTypePaymentRejected)
	PaymentUnsettled Type = Type(domain.EventTypePaymentUnsettled)
)

// Typed event payloads for type safety

// PaymentAppliedPayloadV1 is published after a purchase effect reached the ledger
type PaymentAppliedPayloadV1 struct {
	PaymentID string          `json:"payment_id"`
	UserID    int64           `json:"user_id"`
	Effect    domain.Effect   `json:"effect"`
	Coins     int64           `json:"coins"`
	Item      domain.ItemKind `json:"item,omitempty"`
	ItemCount int64           `json:"item_count,omitempty"`
}

// PaymentRejectedPayloadV1 is published when a recorded payment carried an unusable payload
type PaymentRejectedPayloadV1 struct {
	PaymentID string `json:"payment_id"`
	UserID    int64  `json:"user_id"`
	Payload   string `json:"payload"`
	Reason    string `json:"reason"`
}

// PaymentUnsettledPayloadV1 flags a payment that stayed recorded past the grace period
type PaymentUnsettledPayloadV1 struct {
	PaymentID  string    `json:"payment_id"`
	UserID     int64     `json:"user_id"`
	Payload    string    `json:"payload"`
	RecordedAt time.Time `json:"recorded_at"`
	AgeSeconds int64     `json:"age_seconds"`
}

func newEvent(eventType Type, payload interface{}) Event {
	return Event{
		Version:    EventSchemaVersion,
		ID:         uuid.NewString(),
		Type:       eventType,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// NewPaymentAppliedEvent creates a payment.applied event carrying the post-credit balance
func NewPaymentAppliedEvent(paymentID string, effect domain.Effect, user domain.User) Event {
	payload := PaymentAppliedPayloadV1{
		PaymentID: paymentID,
		UserID:    user.UserID,
		Effect:    effect,
		Coins:     user.Coins,
	}
	if effect.Kind == domain.EffectItemGrant {
		payload.Item = effect.Item
		payload.ItemCount = user.Count(effect.Item)
	}
	return newEvent(PaymentApplied, payload)
}

// NewPaymentRejectedEvent creates a payment.rejected event
func NewPaymentRejectedEvent(purchase domain.PurchaseEvent, reason string) Event {
	return newEvent(PaymentRejected, PaymentRejectedPayloadV1{
		PaymentID: purchase.PaymentID,
		UserID:    purchase.UserID,
		Payload:   purchase.Payload,
		Reason:    reason,
	})
}

// NewPaymentUnsettledEvent creates a payment.unsettled event
func NewPaymentUnsettledEvent(rec domain.PaymentRecord, now time.Time) Event {
	return newEvent(PaymentUnsettled, PaymentUnsettledPayloadV1{
		PaymentID:  rec.PaymentID,
		UserID:     rec.UserID,
		Payload:    rec.Payload,
		RecordedAt: rec.RecordedAt,
		AgeSeconds: int64(now.Sub(rec.RecordedAt) / time.Second),
	})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the publishing half of Bus
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
