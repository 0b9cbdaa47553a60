// File: open.go
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

// Open attaches to an already-created named queue. It never creates one
// — an absent name fails with api.ErrNotFound.
func Open(name string) (*Queue, error) {
	if name == "" {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "msgqueue.Open", "empty name")
	}

	names, err := mangler.Mangle(name)
	if err != nil {
		return nil, err
	}

	h, err := region.AttachExisting(mangler.IPCKey(names.Shmem))
	if err != nil {
		return nil, wrapGeneric("msgqueue.Open", err)
	}

	buf := h.Bytes()
	hdr := layout.NewHeader(buf)

	if hdr.Version() != api.VersionString || !hdr.MagicValid() {
		h.Close()
		return nil, api.NewError(api.ErrCodeCorruptHandle, "msgqueue.Open", name)
	}
	if err := layout.Validate(buf, hdr.Capacity(), hdr.MaxLen()); err != nil {
		h.Close()
		return nil, err
	}

	fillSem, err := ipcsync.NewSysvSemaphore(mangler.IPCKey(names.SemP), 0, false)
	if err != nil {
		h.Close()
		return nil, wrapGeneric("msgqueue.Open", err)
	}
	emptySem, err := ipcsync.NewSysvSemaphore(mangler.IPCKey(names.SemC), 0, false)
	if err != nil {
		fillSem.Close()
		h.Close()
		return nil, wrapGeneric("msgqueue.Open", err)
	}

	return &Queue{
		region:   h,
		buf:      buf,
		pool:     slotpool.Pool{Region: buf},
		fillSem:  fillSem,
		emptySem: emptySem,
		regionMu: ipcsync.NewFlockMutex(names.Mutex),
		capacity: hdr.Capacity(),
		maxLen:   hdr.MaxLen(),
		options:  api.Option(hdr.Options()),
		named:    true,
	}, nil
}
