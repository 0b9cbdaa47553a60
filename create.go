// File: create.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package msgqueue

import (
	"github.com/momentics/msgqueue/api"
	"github.com/momentics/msgqueue/internal/ipcsync"
	"github.com/momentics/msgqueue/internal/layout"
	"github.com/momentics/msgqueue/internal/mangler"
	"github.com/momentics/msgqueue/internal/region"
	"github.com/momentics/msgqueue/internal/slotpool"
)

// Create creates a message queue that can hold up to maxMsgs messages of
// at most maxMsgLen bytes each. When name is empty, the queue is
// process-private (usable only within this process, on every platform);
// otherwise it is a named, cross-process queue (Linux only: named queues
// rely on System V shared memory and semaphores).
func Create(maxMsgs, maxMsgLen int, options api.Option, name string) (*Queue, error) {
	if maxMsgs <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "msgqueue.Create", "maxMsgs must be > 0")
	}
	if maxMsgLen <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "msgqueue.Create", "maxMsgLen must be > 0")
	}
	if !options.Valid() {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "msgqueue.Create", "invalid options")
	}

	if name == "" {
		return createPrivate(maxMsgs, maxMsgLen, options)
	}
	return createNamed(maxMsgs, maxMsgLen, options, name)
}

func createPrivate(maxMsgs, maxMsgLen int, options api.Option) (*Queue, error) {
	size := layout.RegionSize(maxMsgs, uint32(maxMsgLen))
	h := region.CreatePrivate(size)
	buf := h.Bytes()
	layout.Init(buf, maxMsgs, uint32(maxMsgLen), int32(options))

	return &Queue{
		region:   h,
		buf:      buf,
		pool:     slotpool.Pool{Region: buf},
		fillSem:  ipcsync.NewChanSemaphore(0, maxMsgs),
		emptySem: ipcsync.NewChanSemaphore(maxMsgs, maxMsgs),
		regionMu: ipcsync.NewInprocMutex(),
		capacity: maxMsgs,
		maxLen:   uint32(maxMsgLen),
		options:  options,
		named:    false,
	}, nil
}

func createNamed(maxMsgs, maxMsgLen int, options api.Option, name string) (*Queue, error) {
	names, err := mangler.Mangle(name)
	if err != nil {
		return nil, err
	}

	size := layout.RegionSize(maxMsgs, uint32(maxMsgLen))
	regionKey := mangler.IPCKey(names.Shmem)

	h, err := region.CreateOrAttach(regionKey, size)
	if err != nil {
		return nil, wrapGeneric("msgqueue.Create", err)
	}

	buf := h.Bytes()
	hdr := layout.NewHeader(buf)

	// First-creator-initializes: only write the header/node array when
	// the magic is absent, because the OS may have handed back a region
	// that another process already initialized under the same name.
	if !hdr.MagicValid() {
		if err := layout.Validate(buf, maxMsgs, uint32(maxMsgLen)); err != nil {
			h.Close()
			return nil, err
		}
		layout.Init(buf, maxMsgs, uint32(maxMsgLen), int32(options))
	} else if hdr.Capacity() != maxMsgs || hdr.MaxLen() != uint32(maxMsgLen) {
		// Only the magic gates first-creator-initializes; a second
		// creator asking for a different capacity/maxLen still binds to
		// whatever the first creator laid out, surfaced only as a debug
		// diagnostic rather than an error.
		debugf("Create %q: existing region capacity=%d maxLen=%d differ from requested %d/%d; using existing layout",
			name, hdr.Capacity(), hdr.MaxLen(), maxMsgs, maxMsgLen)
	}

	capacity := hdr.Capacity()
	maxLenActual := hdr.MaxLen()

	fillSem, err := ipcsync.NewSysvSemaphore(mangler.IPCKey(names.SemP), 0, true)
	if err != nil {
		h.Close()
		return nil, wrapGeneric("msgqueue.Create", err)
	}
	emptySem, err := ipcsync.NewSysvSemaphore(mangler.IPCKey(names.SemC), capacity, true)
	if err != nil {
		fillSem.Close()
		h.Close()
		return nil, wrapGeneric("msgqueue.Create", err)
	}

	return &Queue{
		region:   h,
		buf:      buf,
		pool:     slotpool.Pool{Region: buf},
		fillSem:  fillSem,
		emptySem: emptySem,
		regionMu: ipcsync.NewFlockMutex(names.Mutex),
		capacity: capacity,
		maxLen:   maxLenActual,
		options:  options,
		named:    true,
	}, nil
}
