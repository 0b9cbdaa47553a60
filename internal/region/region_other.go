//go:build !linux
// +build !linux

// File: internal/region/region_other.go
// Named (cross-process) shared memory is Linux-only in this library; on
// other platforms named queues fail fast with ErrNotSupported while
// unnamed (private) queues keep working everywhere via CreatePrivate.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package region

import "github.com/momentics/msgqueue/api"

func CreateOrAttach(ipcKey int32, size int64) (Handle, error) {
	return nil, api.NewError(api.ErrCodeNotSupported, "region.CreateOrAttach", "named regions require linux")
}

func AttachExisting(ipcKey int32) (Handle, error) {
	return nil, api.NewError(api.ErrCodeNotSupported, "region.AttachExisting", "named regions require linux")
}
