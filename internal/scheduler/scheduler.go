// Package scheduler enqueues recurring jobs onto the worker pool.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/worker"
)

// LogMsgJobDropped is logged when a tick finds the worker queue full
const LogMsgJobDropped = "Scheduled job dropped, worker queue full"

// Enqueuer accepts jobs without blocking
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	workerPool Enqueuer
	quit       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval, starting one interval from now.
// A tick that finds the queue full is skipped; the next tick tries again.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !s.workerPool.Enqueue(job) {
					logger.FromContext(context.Background()).Warn(LogMsgJobDropped, "job", fmt.Sprintf("%T", job))
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
	})
	s.wg.Wait()
}
