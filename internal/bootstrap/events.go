package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/FarmBot_Go/internal/config"
	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/metrics"
)

// InitializeEventSystem creates the event bus and the resilient publisher
// in front of it, and subscribes the metrics collector to the bus.
// Unset retry settings fall back to the package defaults.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	maxRetries := cfg.EventMaxRetries
	if maxRetries == 0 {
		maxRetries = EventDefaultMaxRetries
	}

	retryDelay := cfg.EventRetryDelay
	if retryDelay == 0 {
		retryDelay = EventDefaultRetryDelay
	}

	deadLetterPath := cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = EventDefaultDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	resilientPublisher, err := event.NewResilientPublisher(eventBus, maxRetries, retryDelay, deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	metrics.NewEventMetricsCollector().Register(eventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetterPath)

	return eventBus, resilientPublisher, nil
}
