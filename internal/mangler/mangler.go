// File: internal/mangler/mangler.go
// Package mangler derives the four OS object names for a named queue.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package mangler

import (
	"hash/fnv"

	"github.com/momentics/msgqueue/api"
)

// Prefixes for the four OS objects a named queue owns.
const (
	PrefixSemP   = "_MSG_Q_SEM_P_"
	PrefixSemC   = "_MSG_Q_SEM_C_"
	PrefixMutex  = "_MSG_Q_MUTEX_"
	PrefixShmem  = "_MSG_Q_SHMEM_"
	MaxPrefixLen = 16
)

// Names holds the four derived OS object names for one user-provided
// queue name.
type Names struct {
	SemP  string
	SemC  string
	Mutex string
	Shmem string
}

// Mangle validates name and derives the four OS object names from it.
// Fails with api.ErrInvalidArgument when name is empty or too long for a
// sane OS object name (the prefix itself must fit within MaxPrefixLen).
func Mangle(name string) (Names, error) {
	if name == "" {
		return Names{}, api.NewError(api.ErrCodeInvalidArgument, "mangler.Mangle", "empty name")
	}
	if len(PrefixShmem) > MaxPrefixLen {
		return Names{}, api.NewError(api.ErrCodeInvalidArgument, "mangler.Mangle", "prefix exceeds bound")
	}
	const maxNameLen = 192
	if len(name) > maxNameLen {
		return Names{}, api.NewError(api.ErrCodeInvalidArgument, "mangler.Mangle", "name too long")
	}
	return Names{
		SemP:  PrefixSemP + name,
		SemC:  PrefixSemC + name,
		Mutex: PrefixMutex + name,
		Shmem: PrefixShmem + name,
	}, nil
}

// IPCKey derives a 32-bit System V IPC key from a mangled name. Two
// distinct queue names are vanishingly unlikely to collide; a collision
// would make both names resolve to the same region and semaphores, and
// the magic/version checks in Create and Open do not detect it, since
// every initialized queue region carries the same magic and version.
func IPCKey(mangledName string) int32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(mangledName))
	sum := h.Sum32()
	// Keep the key in the positive int32 range; key_t is a signed type
	// on Linux and negative keys are rejected by semget/shmget.
	return int32(sum &^ (1 << 31))
}
