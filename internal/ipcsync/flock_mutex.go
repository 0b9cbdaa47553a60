// File: internal/ipcsync/flock_mutex.go
// Named, cross-process Mutex backend using an advisory file lock. Works
// on every platform gofrs/flock supports; named queues as a whole remain
// Linux-only because of the semaphore and region backends below.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ipcsync

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

type flockMutex struct {
	fl *flock.Flock
}

// NewFlockMutex returns a Mutex backed by an exclusive advisory lock on a
// file derived from the mangled mutex name, under the OS temp directory.
func NewFlockMutex(mangledName string) Mutex {
	path := filepath.Join(os.TempDir(), mangledName+".lock")
	return &flockMutex{fl: flock.New(path)}
}

// Lock blocks until the lock is acquired. flock(2)'s LOCK_EX with no
// LOCK_NB is inherently an infinite wait, matching the engine's only
// calling convention (mutex.lock(INFINITE)).
func (m *flockMutex) Lock() error { return m.fl.Lock() }

func (m *flockMutex) Unlock() error { return m.fl.Unlock() }

// Close releases the file descriptor. The lock file itself is left on
// disk — removing it could race with another process about to acquire
// it.
func (m *flockMutex) Close() error { return m.fl.Close() }
