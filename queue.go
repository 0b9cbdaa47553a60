// File: queue.go
// Package msgqueue implements a bounded, priority-aware message queue
// modeled on the VxWorks kernel message queue interface: fixed capacity,
// fixed-maximum-length messages, blocking send/receive with timeouts and
// an urgent head-of-line insertion option.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package msgqueue

import (
	"sync/atomic"

	"github.com/momentics/msgqueue/api"
	"github.com/momentics/msgqueue/internal/ipcsync"
	"github.com/momentics/msgqueue/internal/region"
	"github.com/momentics/msgqueue/internal/slotpool"
)

// Queue is a handle to a message queue, either process-private (unnamed)
// or attached to a named region shared with other processes. A single
// Queue must not be used from multiple goroutines without synchronizing
// calls to Delete against concurrent Send/Receive — nothing else in this
// package requires external synchronization.
type Queue struct {
	region   region.Handle
	buf      []byte
	pool     slotpool.Pool
	fillSem  ipcsync.Semaphore // fillCount: posted on send, waited on receive
	emptySem ipcsync.Semaphore // emptyCount: posted on receive, waited on send
	regionMu ipcsync.Mutex

	capacity int
	maxLen   uint32
	options  api.Option
	named    bool

	deleted atomic.Bool
}

func (q *Queue) isDeleted() bool { return q.deleted.Load() }

func wrapGeneric(op string, err error) error {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*api.Error); ok {
		return ae
	}
	return api.NewError(api.ErrCodeGeneric, op, err.Error())
}
