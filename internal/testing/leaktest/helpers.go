// Package leaktest checks that background goroutines started by a test are gone
// by the time it ends.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// settleTimeout bounds how long Check waits for goroutines to exit
const settleTimeout = 2 * time.Second

// GoroutineChecker records the goroutine count at construction
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker creates a new checker and records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test if more than tolerance goroutines are still running
// once settleTimeout has passed.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	after := waitAtMost(g.before+tolerance, settleTimeout)
	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails if it left goroutines behind
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// WaitForGoroutines waits until at most target goroutines remain
func WaitForGoroutines(t *testing.T, target int, timeout time.Duration) {
	t.Helper()

	if n := waitAtMost(target, timeout); n > target {
		t.Errorf("Timeout waiting for goroutines to complete: current=%d, target=%d", n, target)
	}
}

func waitAtMost(target int, timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target || time.Now().After(deadline) {
			return n
		}
		time.Sleep(10 * time.Millisecond)
	}
}
