package bootstrap

import (
	"os"
	"time"

	"github.com/osse101/FarmBot_Go/internal/logger"
)

// ServiceName is attached to every log record
const ServiceName = logger.DefaultServiceName

// ============================================================================
// Event System Defaults
// ============================================================================

const (
	EventDefaultMaxRetries     = 3
	EventDefaultRetryDelay     = 2 * time.Second
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"

	DirPermission os.FileMode = 0755
)

// StorageRetryMaxDelay caps the backoff between storage retries
const StorageRetryMaxDelay = 250 * time.Millisecond

// ============================================================================
// Log Messages - Startup
// ============================================================================

const (
	LogMsgStartingFarmBot     = "Starting FarmBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgStoreOpened         = "Ledger store opened"
	LogMsgMigrationsRunning   = "Running database migrations"
)

// ============================================================================
// Log Messages - Event System
// ============================================================================

const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
)

// ============================================================================
// Error Messages - Store
// ============================================================================

const (
	ErrMsgUnknownBackend  = "unknown store backend"
	ErrMsgFailedConnectDB = "failed to connect to database"
	ErrMsgFailedMigrate   = "failed to run migrations"
	ErrMsgFailedConnectRD = "failed to connect to redis"
)

// ============================================================================
// Log Messages - Shutdown
// ============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownScheduler      = "Stopping scheduler..."
	LogMsgShuttingDownWorkers        = "Draining worker pool..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgClosingStore               = "Closing ledger store..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)
