package metrics

import (
	"context"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all payment events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range []event.Type{
		event.PaymentApplied,
		event.PaymentRejected,
		event.PaymentUnsettled,
	} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	if evt.Type == event.PaymentApplied {
		payload, err := event.DecodePayload[event.PaymentAppliedPayloadV1](evt.Payload)
		if err != nil {
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			logger.FromContext(ctx).Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		if payload.Effect.Kind == domain.EffectCoinGrant {
			CoinsPurchased.Add(float64(payload.Effect.Coins))
		}
	}

	logger.FromContext(ctx).Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
