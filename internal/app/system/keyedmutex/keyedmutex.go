// Package keyedmutex serializes work per string key.
//
// Handlers use it to serialize embedded-comment mutations per campsite id,
// so two concurrent appends to the same document cannot interleave their
// read-check-write sequences. Mongo's array operators are atomic on their
// own; the lock additionally protects the existence/ownership checks that
// precede them.
package keyedmutex

import "sync"

// KeyedMutex provides a mutex per key. The zero value is not usable;
// call New.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New returns an empty KeyedMutex.
func New() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*entry)}
}

// Lock acquires the mutex for key, blocking until it is available.
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key. The entry is dropped from the map
// once no goroutine holds or waits on it, so the map does not grow with
// the number of distinct documents ever touched.
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
	}
	k.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}
