package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per user id. Locks are never evicted;
// the set is bounded by the number of distinct players.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for userID
func (lm *LockManager) GetLock(userID int64) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// WithLock runs fn while holding the lock for userID
func (lm *LockManager) WithLock(userID int64, fn func() error) error {
	mu := lm.GetLock(userID)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}
