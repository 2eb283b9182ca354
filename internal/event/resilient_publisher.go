package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/FarmBot_Go/internal/logger"
)

type retryEntry struct {
	event   Event
	attempt int
	lastErr error
}

// ResilientPublisher wraps a Bus so a failing subscriber never fails the caller.
// Failed events are retried in the background with exponential backoff and
// written to a dead-letter file once retries are exhausted.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

var _ Bus = (*ResilientPublisher)(nil)

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	if maxRetries <= 0 {
		maxRetries = RetryMaxAttempts
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	rp.wg.Add(1)
	go rp.retryWorker()
	return rp, nil
}

// PublishWithRetry publishes once synchronously and queues a retry on failure
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := rp.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", event.Type, "error", err)
	rp.enqueue(retryEntry{event: event, attempt: 1, lastErr: err})
}

// Publish implements Bus. It never returns an error; failures are retried or dead-lettered.
func (rp *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	rp.PublishWithRetry(ctx, event)
	return nil
}

// Subscribe delegates to the inner bus
func (rp *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	rp.bus.Subscribe(eventType, handler)
}

func (rp *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case <-rp.shutdown:
		rp.writeDeadLetter(entry)
		return
	default:
	}

	select {
	case rp.retryQueue <- entry:
	default:
		logger.Warn(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		rp.writeDeadLetter(entry)
	}
}

func (rp *ResilientPublisher) retryWorker() {
	defer rp.wg.Done()

	for {
		select {
		case entry := <-rp.retryQueue:
			rp.process(entry, false)
		case <-rp.shutdown:
			rp.drain()
			return
		}
	}
}

// process waits out the backoff for entry, then tries once more.
// While draining, failures go straight to the dead-letter file.
func (rp *ResilientPublisher) process(entry retryEntry, draining bool) {
	if !draining {
		timer := time.NewTimer(CalculateRetryDelay(rp.retryDelay, entry.attempt))
		select {
		case <-timer.C:
		case <-rp.shutdown:
			timer.Stop()
			draining = true
		}
	}

	err := rp.bus.Publish(context.Background(), entry.event)
	if err == nil {
		logger.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
		return
	}
	entry.lastErr = err

	if draining || entry.attempt >= rp.maxRetries {
		logger.Warn(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempt", entry.attempt)
		rp.writeDeadLetter(entry)
		return
	}

	logger.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)
	entry.attempt++
	rp.enqueue(entry)
}

func (rp *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case entry := <-rp.retryQueue:
			rp.process(entry, true)
			drained++
		default:
			if drained > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (rp *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if rp.deadLetter == nil {
		return
	}
	if err := rp.deadLetter.Write(entry.event, entry.attempt, entry.lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", entry.event.Type, "error", err)
	}
}

// Shutdown stops the retry worker after one final attempt per queued event
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	rp.closeOnce.Do(func() { close(rp.shutdown) })

	done := make(chan struct{})
	go func() {
		rp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if rp.deadLetter != nil {
			return rp.deadLetter.Close()
		}
		return nil
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
