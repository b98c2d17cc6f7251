// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Revision is a monotonically increasing counter over the whole ledger. It
// is bumped exactly once per successful mutation (create, update, delete)
// and never by reads, so pollers can cheaply detect whether anything
// changed. The counter is shared by all repositories of one store.
type Revision struct {
	counter atomic.Uint64
}

// NewRevision creates a Revision starting at zero.
func NewRevision() *Revision {
	return &Revision{}
}

// Bump records one successful mutation and returns the new revision.
func (r *Revision) Bump() uint64 {
	return r.counter.Add(1)
}

// Revision returns the current revision.
func (r *Revision) Revision() uint64 {
	return r.counter.Load()
}

// recordLocks serializes mutations per record id. Two concurrent updates
// to the same record are applied one after the other; updates to distinct
// records proceed in parallel. Locks are held only for the duration of a
// single read-modify-write cycle.
type recordLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*recordLock
}

type recordLock struct {
	mu   sync.Mutex
	refs int
}

func newRecordLocks() *recordLocks {
	return &recordLocks{
		locks: make(map[uuid.UUID]*recordLock),
	}
}

// lock acquires the mutex for the given record id and returns the unlock
// function. Lock entries are reference counted and removed once the last
// holder releases, so the map does not grow with the store.
func (l *recordLocks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &recordLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
