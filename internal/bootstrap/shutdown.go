package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/scheduler"
	"github.com/osse101/FarmBot_Go/internal/server"
	"github.com/osse101/FarmBot_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	ResilientPublisher *event.ResilientPublisher
	Store              Store
}

// GracefulShutdown stops the application in dependency order:
// 1. HTTP server (stop accepting webhooks and Mini-App calls)
// 2. Scheduler (no new sweeps)
// 3. Worker pool (finish queued notifications and sweeps)
// 4. Event publisher (flush pending retries to the dead-letter file)
// 5. Ledger store
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	if c.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		slog.Info(LogMsgShuttingDownScheduler)
		c.Scheduler.Stop()
	}

	if c.WorkerPool != nil {
		slog.Info(LogMsgShuttingDownWorkers)
		c.WorkerPool.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Store != nil {
		slog.Info(LogMsgClosingStore)
		c.Store.Close()
	}

	slog.Info(LogMsgServerStopped)
}
