// File: internal/ipcsync/ipcsync.go
// Package ipcsync provides the two OS primitives the queue engine blocks
// on: a counting semaphore (fillCount/emptyCount) and a mutex protecting
// the region's header and node lists. Each has an in-process backend
// (used by unnamed queues, available on every platform) and a named,
// cross-process backend (System V semaphores plus a file lock, Linux
// only).
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ipcsync

import (
	"sync"
	"time"

	"github.com/momentics/msgqueue/api"
)

// Semaphore is a counting semaphore with a millisecond timeout on Wait;
// api.WaitForever blocks indefinitely, 0 returns immediately.
type Semaphore interface {
	Wait(timeout int) error
	Post() error
	Close() error
}

// Mutex is a simple blocking lock. Lock always waits without a timeout —
// callers never hold it across a Semaphore.Wait.
type Mutex interface {
	Lock() error
	Unlock() error
	Close() error
}

// chanSemaphore is the in-process Semaphore backend: a buffered channel
// doubling as a counting semaphore, usable on every platform.
type chanSemaphore struct {
	ch chan struct{}
}

// NewChanSemaphore returns an in-process semaphore with the given
// initial value and maximum (capacity).
func NewChanSemaphore(initial, max int) Semaphore {
	ch := make(chan struct{}, max)
	for i := 0; i < initial; i++ {
		ch <- struct{}{}
	}
	return &chanSemaphore{ch: ch}
}

func (s *chanSemaphore) Wait(timeout int) error {
	if timeout == api.WaitForever {
		<-s.ch
		return nil
	}
	if timeout <= 0 {
		select {
		case <-s.ch:
			return nil
		default:
			return api.NewError(api.ErrCodeTimedOut, "ipcsync.Semaphore.Wait", "")
		}
	}
	select {
	case <-s.ch:
		return nil
	case <-time.After(time.Duration(timeout) * time.Millisecond):
		return api.NewError(api.ErrCodeTimedOut, "ipcsync.Semaphore.Wait", "")
	}
}

func (s *chanSemaphore) Post() error {
	select {
	case s.ch <- struct{}{}:
		return nil
	default:
		// Only reachable if Post is called more often than the
		// matching Wait, which would indicate a protocol bug upstream.
		return api.NewError(api.ErrCodeGeneric, "ipcsync.Semaphore.Post", "semaphore at capacity")
	}
}

func (s *chanSemaphore) Close() error { return nil }

// inprocMutex is the in-process Mutex backend.
type inprocMutex struct {
	mu sync.Mutex
}

// NewInprocMutex returns a Mutex backed by sync.Mutex.
func NewInprocMutex() Mutex { return &inprocMutex{} }

func (m *inprocMutex) Lock() error   { m.mu.Lock(); return nil }
func (m *inprocMutex) Unlock() error { m.mu.Unlock(); return nil }
func (m *inprocMutex) Close() error  { return nil }
