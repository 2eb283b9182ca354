package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/FarmBot_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc func(ctx context.Context) error

func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Pool runs jobs on a fixed number of goroutines
type Pool struct {
	workers    int
	jobQueue   chan Job
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
	jobTimeout time.Duration
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, queueSize),
		quit:       make(chan struct{}),
		jobTimeout: DefaultJobTimeout,
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			// finish what was already accepted
			for {
				select {
				case job := <-p.jobQueue:
					p.run(job)
				default:
					return
				}
			}
		}
	}
}

func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.jobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgWorkerJobPanicked, "job", fmt.Sprintf("%T", job), "panic", r)
		}
	}()

	if err := job.Process(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "job", fmt.Sprintf("%T", job), "error", err)
	}
}

// Enqueue adds a job without blocking.
// It reports false when the queue is full or the pool is stopping.
func (p *Pool) Enqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}

	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// Stop stops accepting jobs, runs the queued ones and waits for the workers
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
		p.wg.Wait()
		logger.FromContext(context.Background()).Info(LogMsgWorkerPoolStopped)
	})
}
