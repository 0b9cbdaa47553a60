//go:build linux
// +build linux

// File: internal/ipcsync/sysv_semaphore_linux.go
// Named, cross-process Semaphore backend using a single-member System V
// semaphore set.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ipcsync

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/msgqueue/api"
)

type sysvSemaphore struct {
	id int
}

// NewSysvSemaphore opens or creates a one-member semaphore set keyed by
// ipcKey. When create is true and no set exists yet under that key, it
// is created and initialized to initial; when one already exists, the
// existing value is left untouched (first-creator-initializes, same
// discipline as the region backend).
func NewSysvSemaphore(ipcKey int32, initial int, create bool) (Semaphore, error) {
	var id int
	var err error
	createdHere := false

	if create {
		id, err = unix.Semget(int(ipcKey), 1, unix.IPC_CREAT|unix.IPC_EXCL|0o666)
		if err == nil {
			createdHere = true
		} else if err == unix.EEXIST {
			id, err = unix.Semget(int(ipcKey), 1, 0o666)
		}
	} else {
		id, err = unix.Semget(int(ipcKey), 1, 0o666)
	}
	if err != nil {
		return nil, fmt.Errorf("ipcsync: semget key=%d: %w", ipcKey, err)
	}

	if createdHere {
		if _, err := unix.SemctlInt(id, 0, unix.SETVAL, initial); err != nil {
			return nil, fmt.Errorf("ipcsync: semctl SETVAL id=%d: %w", id, err)
		}
	}

	return &sysvSemaphore{id: id}, nil
}

func (s *sysvSemaphore) Wait(timeout int) error {
	sops := []unix.Sembuf{{SemNum: 0, SemOp: -1, SemFlg: 0}}
	if timeout == api.WaitForever {
		if err := unix.Semop(s.id, sops, nil); err != nil {
			return wrapSemopErr(err)
		}
		return nil
	}
	ts := unix.NsecToTimespec(int64(timeout) * int64(time.Millisecond))
	if err := unix.Semop(s.id, sops, &ts); err != nil {
		return wrapSemopErr(err)
	}
	return nil
}

func wrapSemopErr(err error) error {
	if err == unix.EAGAIN {
		return api.NewError(api.ErrCodeTimedOut, "ipcsync.Semaphore.Wait", "")
	}
	return api.NewError(api.ErrCodeGeneric, "ipcsync.Semaphore.Wait", err.Error())
}

func (s *sysvSemaphore) Post() error {
	sops := []unix.Sembuf{{SemNum: 0, SemOp: 1, SemFlg: 0}}
	if err := unix.Semop(s.id, sops, nil); err != nil {
		return api.NewError(api.ErrCodeGeneric, "ipcsync.Semaphore.Post", err.Error())
	}
	return nil
}

// Close marks the semaphore set IPC_RMID, which removes it immediately
// (a semaphore set has no per-attachment refcount the way a shared
// memory segment does). A second IPC_RMID on an already-removed id
// returns EINVAL, which is not treated as an error here, keeping Close
// idempotent.
func (s *sysvSemaphore) Close() error {
	if _, err := unix.SemctlInt(s.id, 0, unix.IPC_RMID, 0); err != nil && err != unix.EINVAL {
		return fmt.Errorf("ipcsync: semctl IPC_RMID id=%d: %w", s.id, err)
	}
	return nil
}
