// File: send.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package msgqueue

import (
	"github.com/momentics/msgqueue/api"
	"github.com/momentics/msgqueue/internal/layout"
)

// Send enqueues buf, blocking up to timeout (api.WaitForever for no
// limit, otherwise a non-negative count of milliseconds) for a free
// slot. priority selects ordinary FIFO insertion (api.Normal) or
// head-of-line insertion ahead of every pending Normal message
// (api.Urgent).
func (q *Queue) Send(buf []byte, timeout int, priority api.Priority) error {
	if buf == nil {
		return api.NewError(api.ErrCodeInvalidArgument, "msgqueue.Send", "nil buffer")
	}
	if !priority.Valid() {
		return api.NewError(api.ErrCodeInvalidArgument, "msgqueue.Send", "invalid priority")
	}
	if q.isDeleted() {
		return api.NewError(api.ErrCodeCorruptHandle, "msgqueue.Send", "queue deleted")
	}
	if uint32(len(buf)) > q.maxLen {
		return api.NewError(api.ErrCodeInvalidArgument, "msgqueue.Send", "nBytes exceeds maxLen")
	}

	if err := q.emptySem.Wait(timeout); err != nil {
		return err
	}

	if err := q.regionMu.Lock(); err != nil {
		if postErr := q.emptySem.Post(); postErr != nil {
			debugf("Send: restoring emptyCount after mutex lock failure: %v", postErr)
		}
		return api.NewError(api.ErrCodeGeneric, "msgqueue.Send", "mutex lock failed")
	}

	idx, err := q.pool.Allocate()
	if err != nil {
		q.regionMu.Unlock()
		if postErr := q.emptySem.Post(); postErr != nil {
			debugf("Send: restoring emptyCount after allocate failure: %v", postErr)
		}
		return api.NewError(api.ErrCodeGeneric, "msgqueue.Send", "free list exhausted despite permit")
	}

	payload := layout.Payload(q.buf, q.capacity, q.maxLen, int(idx))
	copy(payload, buf)
	node := layout.NodeAt(q.buf, int(idx))
	node.SetLength(uint32(len(buf)))

	if priority == api.Normal {
		q.pool.LinkNormal(idx)
	} else {
		q.pool.LinkUrgent(idx)
	}

	hdr := layout.NewHeader(q.buf)
	hdr.AddMsgNum(1)
	hdr.IncSendTimes()

	if err := q.regionMu.Unlock(); err != nil {
		// The message is already queued and counters are consistent;
		// only the unlock itself failed.
		return api.NewError(api.ErrCodeGeneric, "msgqueue.Send", "mutex unlock failed")
	}

	if err := q.fillSem.Post(); err != nil {
		return api.NewError(api.ErrCodeGeneric, "msgqueue.Send", "fillCount post failed")
	}

	return nil
}
