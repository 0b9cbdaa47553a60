// File: delete.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package msgqueue

import "github.com/momentics/msgqueue/api"

// Delete releases this handle's references to the queue's four OS
// objects, exactly once. It never touches the region's contents — other
// handles to the same named queue may still be live, and the OS (not
// this library) reclaims the underlying objects once every handle has
// closed. Every close is attempted even if an earlier one fails.
func (q *Queue) Delete() error {
	if !q.deleted.CompareAndSwap(false, true) {
		return api.NewError(api.ErrCodeInvalidArgument, "msgqueue.Delete", "already deleted")
	}

	var failed bool

	if err := q.fillSem.Close(); err != nil {
		debugf("Delete: closing fillCount semaphore: %v", err)
		failed = true
	}
	if err := q.emptySem.Close(); err != nil {
		debugf("Delete: closing emptyCount semaphore: %v", err)
		failed = true
	}
	if err := q.regionMu.Close(); err != nil {
		debugf("Delete: closing mutex: %v", err)
		failed = true
	}
	if err := q.region.Close(); err != nil {
		debugf("Delete: closing region: %v", err)
		failed = true
	}

	if failed {
		return api.NewError(api.ErrCodeGeneric, "msgqueue.Delete", "one or more close operations failed")
	}
	return nil
}
