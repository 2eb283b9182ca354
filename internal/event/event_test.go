package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	handled := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		if event.Type != eventType {
			t.Errorf("Expected event type %s, got %s", eventType, event.Type)
		}
		if event.Payload.(string) != "payload" {
			t.Errorf("Expected payload 'payload', got %v", event.Payload)
		}
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{
		Version: "1.0",
		Type:    eventType,
		Payload: "payload",
	})

	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if !handled {
		t.Error("Handler was not called")
	}
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	count := 0

	handler := func(ctx context.Context, event Event) error {
		count++
		return nil
	}

	bus.Subscribe(eventType, handler)
	bus.Subscribe(eventType, handler)

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected 2 handlers to be called, got %d", count)
	}
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	if err == nil {
		t.Error("Expected error from Publish, got nil")
	}
}

func TestPaymentEventConstructors(t *testing.T) {
	user := domain.NewUser(42, "Ada", 300, time.Now())
	user.Inventory[domain.AnimalCow] = 2

	applied := NewPaymentAppliedEvent("p1", domain.Effect{Kind: domain.EffectItemGrant, Item: domain.AnimalCow}, user)
	assert.Equal(t, PaymentApplied, applied.Type)
	assert.Equal(t, EventSchemaVersion, applied.Version)
	assert.NotEmpty(t, applied.ID)

	payload, err := DecodePayload[PaymentAppliedPayloadV1](applied.Payload)
	require.NoError(t, err)
	assert.Equal(t, int64(42), payload.UserID)
	assert.Equal(t, int64(300), payload.Coins)
	assert.Equal(t, domain.AnimalCow, payload.Item)
	assert.Equal(t, int64(2), payload.ItemCount)

	rejected := NewPaymentRejectedEvent(domain.PurchaseEvent{PaymentID: "p2", UserID: 42, Payload: "bogus"}, "no grammar")
	assert.Equal(t, PaymentRejected, rejected.Type)
	assert.NotEqual(t, applied.ID, rejected.ID)

	recordedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	unsettled := NewPaymentUnsettledEvent(domain.PaymentRecord{
		PurchaseEvent: domain.PurchaseEvent{PaymentID: "p3", UserID: 7},
		RecordedAt:    recordedAt,
	}, recordedAt.Add(15*time.Minute))
	up, err := DecodePayload[PaymentUnsettledPayloadV1](unsettled.Payload)
	require.NoError(t, err)
	assert.Equal(t, int64(900), up.AgeSeconds)
}

func TestDecodePayload_JSONFallback(t *testing.T) {
	raw := map[string]interface{}{"payment_id": "p9", "user_id": float64(5), "payload": "x", "reason": "bad"}

	got, err := DecodePayload[PaymentRejectedPayloadV1](raw)

	require.NoError(t, err)
	assert.Equal(t, "p9", got.PaymentID)
	assert.Equal(t, int64(5), got.UserID)
}
