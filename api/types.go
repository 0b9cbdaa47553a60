// Package api
// Author: momentics <momentics@gmail.com>
//
// Public types shared between the msgqueue root package and its internal
// components: queue options, message priority, wait semantics and the
// status snapshot returned by Stat.

package api

// WaitForever is the timeout sentinel meaning "block with no time limit".
const WaitForever = -1

// Sentinel is the "no such node/message" index used throughout the
// on-region free/used linked lists.
const Sentinel = -1

// Option selects how Send's priority argument affects delivery order.
type Option int

const (
	// FIFO is the only currently meaningful option value: equal-priority
	// messages are delivered in send order. Kept distinct from Priority
	// so a misuse of the wrong enum is a compile-time type error.
	FIFO Option = iota
	// PriorityOption is accepted for compatibility with callers that expect
	// a priority-queue option flag; it has no additional effect beyond
	// FIFO — the engine always applies the two-class NORMAL/URGENT
	// insertion policy regardless of this flag.
	PriorityOption
)

func (o Option) Valid() bool { return o == FIFO || o == PriorityOption }

// Priority selects where Send inserts a message relative to the rest of
// the queue.
type Priority int

const (
	// Normal appends at the tail of the insertion order (FIFO among
	// other Normal sends).
	Normal Priority = iota
	// Urgent jumps ahead of every currently pending Normal message.
	Urgent
)

func (p Priority) Valid() bool { return p == Normal || p == Urgent }

// VersionString is the exact 8-byte ASCII version tag stamped into every
// region header. Equality is required byte-for-byte on open/attach.
const VersionString = "msgq0001"

// MagicLen is the length of the fixed magic byte pattern identifying an
// initialized region.
const MagicLen = 12

// Magic is the fixed byte pattern written once by the first creator of a
// region and checked by every subsequent opener.
var Magic = [MagicLen]byte{1, 3, 5, 7, 7, 7, 5, 3, 1, 9, 9, 1}

// Stat is the user-visible snapshot of a queue's header fields, returned
// by Stat and rendered by Show.
type Stat struct {
	Version   string
	Capacity  int
	MaxLen    uint32
	Options   Option
	MsgNum    int
	SendTimes int
	RecvTimes int
}
