// File: stat.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package msgqueue

import (
	"fmt"
	"os"

	"github.com/momentics/msgqueue/api"
	"github.com/momentics/msgqueue/internal/layout"
)

// Stat returns a snapshot of the queue's status fields. It reads the
// header without taking the mutex: a torn snapshot across fields is an
// accepted tradeoff, and each individual field read is a single aligned
// load, so no field itself can be torn.
func (q *Queue) Stat() (api.Stat, error) {
	if q.isDeleted() {
		return api.Stat{}, api.NewError(api.ErrCodeCorruptHandle, "msgqueue.Stat", "queue deleted")
	}
	hdr := layout.NewHeader(q.buf)
	return api.Stat{
		Version:   hdr.Version(),
		Capacity:  q.capacity,
		MaxLen:    q.maxLen,
		Options:   q.options,
		MsgNum:    int(hdr.MsgNum()),
		SendTimes: int(hdr.SendTimes()),
		RecvTimes: int(hdr.RecvTimes()),
	}, nil
}

// Show writes the same fields Stat returns to standard output, in the
// original library's label=value form.
func (q *Queue) Show() error {
	st, err := q.Stat()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "msgQueue.version      = %s\n", st.Version)
	fmt.Fprintf(os.Stdout, "msgQueue.maxMsg       = %d\n", st.Capacity)
	fmt.Fprintf(os.Stdout, "msgQueue.maxMsgLength = %d\n", st.MaxLen)
	fmt.Fprintf(os.Stdout, "msgQueue.msgNum       = %d\n", st.MsgNum)
	fmt.Fprintf(os.Stdout, "msgQueue.options      = %d\n", st.Options)
	fmt.Fprintf(os.Stdout, "msgQueue.recvTimes    = %d\n", st.RecvTimes)
	fmt.Fprintf(os.Stdout, "msgQueue.sendTimes    = %d\n", st.SendTimes)
	return nil
}
