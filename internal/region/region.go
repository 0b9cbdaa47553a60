// File: internal/region/region.go
// Package region opens or creates the shared (or private) byte buffer a
// queue's control block and message data live in.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package region

// Handle is a live view over a region's bytes plus whatever OS resources
// back it (a System V shared memory segment id and attachment for named
// regions, nothing beyond the slice itself for private ones).
type Handle interface {
	// Bytes returns the mapped/allocated buffer. Valid until Close.
	Bytes() []byte
	// WasCreated reports whether this call created the region (true) or
	// attached to one that already existed (false). For private regions
	// this is always true.
	WasCreated() bool
	// Close detaches this handle's view of the region. For named
	// regions the OS destroys the underlying object once every handle
	// has closed; for private regions the buffer is simply released to
	// the garbage collector.
	Close() error
}

// CreatePrivate allocates a zero-filled, process-private region of the
// given size — the backend for unnamed (intra-process) queues, available
// on every platform.
func CreatePrivate(size int64) Handle {
	return &privateHandle{buf: make([]byte, size)}
}

type privateHandle struct {
	buf []byte
}

func (h *privateHandle) Bytes() []byte   { return h.buf }
func (h *privateHandle) WasCreated() bool { return true }
func (h *privateHandle) Close() error     { h.buf = nil; return nil }
