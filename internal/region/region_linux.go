//go:build linux
// +build linux

// File: internal/region/region_linux.go
// Named shared memory regions backed by System V shared memory segments
// (shmget/shmat/shmctl), for cross-process queues. Close both marks the
// segment IPC_RMID (idempotent) and detaches this process's mapping; the
// kernel defers actual reclamation until the last attachment across
// every process is dropped.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package region

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/momentics/msgqueue/api"
)

// CreateOrAttach requests a System V shared memory segment keyed by the
// FNV-derived ipcKey, sized exactly size bytes. If a segment under that
// key already exists, it is attached as-is and wasCreated is false — the
// caller inspects the region's magic to decide whether to (re)initialize
// it (first-creator-initializes).
func CreateOrAttach(ipcKey int32, size int64) (Handle, error) {
	id, err := unix.SysvShmGet(int(ipcKey), int(size), unix.IPC_CREAT|unix.IPC_EXCL|0o666)
	wasCreated := true
	if err != nil {
		if err != unix.EEXIST {
			return nil, fmt.Errorf("region: shmget key=%d: %w", ipcKey, err)
		}
		wasCreated = false
		id, err = unix.SysvShmGet(int(ipcKey), 0, 0o666)
		if err != nil {
			return nil, fmt.Errorf("region: shmget(attach) key=%d: %w", ipcKey, err)
		}
	}

	buf, err := unix.SysvShmAttach(id, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("region: shmat id=%d: %w", id, err)
	}

	return &namedHandle{buf: buf, id: id, created: wasCreated}, nil
}

// AttachExisting opens a segment under ipcKey without creating it. Fails
// with api.ErrCodeNotFound if no segment exists under that key yet.
func AttachExisting(ipcKey int32) (Handle, error) {
	id, err := unix.SysvShmGet(int(ipcKey), 0, 0o666)
	if err != nil {
		if err == unix.ENOENT {
			return nil, api.NewError(api.ErrCodeNotFound, "region.AttachExisting", fmt.Sprintf("key=%d", ipcKey))
		}
		return nil, fmt.Errorf("region: shmget(open) key=%d: %w", ipcKey, err)
	}
	buf, err := unix.SysvShmAttach(id, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("region: shmat id=%d: %w", id, err)
	}
	return &namedHandle{buf: buf, id: id, created: false}, nil
}

type namedHandle struct {
	buf     []byte
	id      int
	created bool
}

func (h *namedHandle) Bytes() []byte    { return h.buf }
func (h *namedHandle) WasCreated() bool { return h.created }

// Close marks the segment IPC_RMID and detaches this process's mapping.
// IPC_RMID only schedules destruction: the kernel keeps the segment
// alive until every process's attachment (including this one, until the
// Detach call below completes) is gone, so handles still in use by
// other processes are unaffected. Marking twice is harmless — a second
// IPC_RMID on an already-marked (or already-removed) id returns EINVAL,
// which is not treated as an error here.
func (h *namedHandle) Close() error {
	if _, err := unix.SysvShmCtl(h.id, unix.IPC_RMID, nil); err != nil && err != unix.EINVAL {
		return fmt.Errorf("region: shmctl IPC_RMID id=%d: %w", h.id, err)
	}
	return unix.SysvShmDetach(h.buf)
}
