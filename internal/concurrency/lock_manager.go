package concurrency

import (
	"sync"
)

// LockManager handles named locks. Locks are not reentrant: acquire them only
// at the outermost operation of a request.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Lock acquires the lock for key and returns its release func
func (lm *LockManager) Lock(key string) func() {
	mu := lm.GetLock(key)
	mu.Lock()
	return mu.Unlock
}

// OwnerKey is the lock key serializing all ledger mutations of one owner
func OwnerKey(ownerID string) string {
	return "owner:" + ownerID
}
