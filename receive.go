// File: receive.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package msgqueue

import (
	"github.com/momentics/msgqueue/api"
	"github.com/momentics/msgqueue/internal/layout"
)

// Receive dequeues the next message (the oldest Normal message, or the
// most recently linked Urgent one ahead of it) into buf, blocking up to
// timeout for one to become available. It returns the number of bytes
// actually copied; if the queued message is longer than len(buf), the
// excess bytes are discarded — the message is still consumed.
func (q *Queue) Receive(buf []byte, timeout int) (int, error) {
	if buf == nil {
		return -1, api.NewError(api.ErrCodeInvalidArgument, "msgqueue.Receive", "nil buffer")
	}
	if q.isDeleted() {
		return -1, api.NewError(api.ErrCodeCorruptHandle, "msgqueue.Receive", "queue deleted")
	}

	if err := q.fillSem.Wait(timeout); err != nil {
		return -1, err
	}

	if err := q.regionMu.Lock(); err != nil {
		if postErr := q.fillSem.Post(); postErr != nil {
			debugf("Receive: restoring fillCount after mutex lock failure: %v", postErr)
		}
		return -1, api.NewError(api.ErrCodeGeneric, "msgqueue.Receive", "mutex lock failed")
	}

	hdr := layout.NewHeader(q.buf)
	idx := hdr.Tail()
	node := layout.NodeAt(q.buf, int(idx))

	n := int(node.Length())
	if n > len(buf) {
		n = len(buf)
	}
	payload := layout.Payload(q.buf, q.capacity, q.maxLen, int(idx))
	copy(buf[:n], payload[:n])

	if _, err := q.pool.UnlinkForReceive(); err != nil {
		q.regionMu.Unlock()
		return -1, api.NewError(api.ErrCodeGeneric, "msgqueue.Receive", "used list corrupt")
	}

	hdr.AddMsgNum(-1)
	hdr.IncRecvTimes()

	if err := q.regionMu.Unlock(); err != nil {
		return -1, api.NewError(api.ErrCodeGeneric, "msgqueue.Receive", "mutex unlock failed")
	}

	if err := q.emptySem.Post(); err != nil {
		return -1, api.NewError(api.ErrCodeGeneric, "msgqueue.Receive", "emptyCount post failed")
	}

	return n, nil
}
