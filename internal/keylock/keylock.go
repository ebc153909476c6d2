// Package keylock serializes work that shares a key within one process.
package keylock

import "sync"

// Locker hands out one mutex per key. Mutexes are kept for the life of the
// Locker; the key space here is bounded by the number of owners.
type Locker struct {
	mu    sync.RWMutex
	locks map[string]*sync.Mutex
}

func New() *Locker {
	return &Locker{locks: make(map[string]*sync.Mutex)}
}

// Lock blocks until key is free and returns the matching unlock func.
func (l *Locker) Lock(key string) (unlock func()) {
	m := l.get(key)
	m.Lock()
	return m.Unlock
}

// With runs fn while holding key.
func (l *Locker) With(key string, fn func() error) error {
	unlock := l.Lock(key)
	defer unlock()
	return fn()
}

func (l *Locker) get(key string) *sync.Mutex {
	l.mu.RLock()
	m, ok := l.locks[key]
	l.mu.RUnlock()
	if ok {
		return m
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	// Double-check in case another goroutine created it first
	if m, ok = l.locks[key]; !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}
