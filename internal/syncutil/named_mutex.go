// Package syncutil contains synchronization primitives
package syncutil

import (
	"sync"

	"github.com/gogf/gf/encoding/ghash"
)

// NamedMutex is a struct allowing to lock/unlock using a key
// It is expected that 2 keys may collide
type NamedMutex struct {
	locks []sync.RWMutex
	size  uint32
}

// NewNamedMutex creates a new NamedMutex with the given capacity.
// If the max number is below 2, 2 will be used.
// using a prime number as max offers better performance
func NewNamedMutex(maxMutexes uint32) *NamedMutex {
	if maxMutexes < 2 {
		maxMutexes = 2
	}

	return &NamedMutex{
		size:  maxMutexes,
		locks: make([]sync.RWMutex, maxMutexes),
	}
}

func (mu *NamedMutex) get(key []byte) *sync.RWMutex {
	return &mu.locks[ghash.SDBMHash(key)%mu.size]
}

// Lock locks the provided key. If the lock is already in use, the
// calling goroutine blocks until the mutex is available.
func (mu *NamedMutex) Lock(key []byte) {
	mu.get(key).Lock()
}

// Unlock unlocks the provided key. It is a run-time error if the key
// is not locked on entry to Unlock.
func (mu *NamedMutex) Unlock(key []byte) {
	mu.get(key).Unlock()
}

// RLock locks the provided key for reading.
func (mu *NamedMutex) RLock(key []byte) {
	mu.get(key).RLock()
}

// RUnlock undoes a single RLock call
func (mu *NamedMutex) RUnlock(key []byte) {
	mu.get(key).RUnlock()
}

// WithLock runs f while holding the lock of the given key
func (mu *NamedMutex) WithLock(key []byte, f func() error) error {
	mu.Lock(key)
	defer mu.Unlock(key)
	return f()
}

// WithRLock runs f while holding the read lock of the given key
func (mu *NamedMutex) WithRLock(key []byte, f func() error) error {
	mu.RLock(key)
	defer mu.RUnlock(key)
	return f()
}
