package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/FarmBot_Go/internal/testing/leaktest"
	"github.com/osse101/FarmBot_Go/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount int32
	Done     chan struct{}
}

func (m *MockJob) Process(ctx context.Context) error {
	atomic.AddInt32(&m.RunCount, 1)
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &MockJob{
		Done: make(chan struct{}, 10),
	}

	sched.Schedule(10*time.Millisecond, job)

	timeout := time.After(time.Second)
	runCount := 0

	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, atomic.LoadInt32(&job.RunCount), int32(2))
}

type refusingPool struct {
	attempts int32
}

func (p *refusingPool) Enqueue(job worker.Job) bool {
	atomic.AddInt32(&p.attempts, 1)
	return false
}

func TestScheduler_FullQueueSkipsTick(t *testing.T) {
	pool := &refusingPool{}
	sched := New(pool)

	sched.Schedule(5*time.Millisecond, &MockJob{Done: make(chan struct{}, 1)})
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&pool.attempts) >= 3 }, time.Second, 5*time.Millisecond)

	sched.Stop()
}

func TestScheduler_StopReleasesGoroutines(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		sched := New(&refusingPool{})
		sched.Schedule(time.Hour, &MockJob{})
		sched.Schedule(time.Hour, &MockJob{})
		sched.Stop()
		sched.Stop()
	})
}
