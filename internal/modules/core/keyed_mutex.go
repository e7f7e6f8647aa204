package core

import "sync"

// KeyedMutex provides mutual exclusion per string key. Command
// handlers hold the session's key across load-mutate-save so two
// concurrent writes to the same session cannot overwrite each other.
// Locks are dropped from the map once the last holder releases.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu      sync.Mutex
	holders int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: map[string]*keyedLock{}}
}

// Lock blocks until the key is free and returns the unlock function.
func (m *KeyedMutex) Lock(key string) func() {
	m.mu.Lock()
	lock, found := m.locks[key]
	if !found {
		lock = &keyedLock{}
		m.locks[key] = lock
	}
	lock.holders++
	m.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		m.mu.Lock()
		lock.holders--
		if lock.holders == 0 {
			delete(m.locks, key)
		}
		m.mu.Unlock()
	}
}
