//go:build !linux
// +build !linux

// File: internal/ipcsync/sysv_semaphore_other.go
// Named semaphores are Linux-only in this library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ipcsync

import "github.com/momentics/msgqueue/api"

func NewSysvSemaphore(ipcKey int32, initial int, create bool) (Semaphore, error) {
	return nil, api.NewError(api.ErrCodeNotSupported, "ipcsync.NewSysvSemaphore", "named semaphores require linux")
}
