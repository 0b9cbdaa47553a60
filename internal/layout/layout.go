// File: internal/layout/layout.go
// Package layout defines and validates the on-region binary layout:
// header, node array, payload array. Offsets are computed arithmetically
// from a base address (the start of the mapped/allocated region byte
// slice) so that index-based links never depend on the process's chosen
// virtual address for the mapping.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package layout

import (
	"encoding/binary"

	"github.com/momentics/msgqueue/api"
)

// Byte offsets and sizes within Header. Field widths and ordering are
// part of the wire contract: every process mapping the same region must
// agree on them.
const (
	offVersion   = 0
	offMagic     = offVersion + 8
	offCapacity  = offMagic + api.MagicLen
	offMaxLen    = offCapacity + 4
	offOptions   = offMaxLen + 4
	offMsgNum    = offOptions + 4
	offSendTimes = offMsgNum + 4
	offRecvTimes = offSendTimes + 4
	offHead      = offRecvTimes + 4
	offTail      = offHead + 4
	offFree      = offTail + 4

	// HeaderSize is the fixed byte size of the header at the start of
	// every region.
	HeaderSize = offFree + 4
)

// NodeSize is the fixed byte size of one node descriptor.
const NodeSize = 4 /* length */ + 4 /* index */ + 4 /* free */ + 4 /* used */

const (
	nodeOffLength = 0
	nodeOffIndex  = nodeOffLength + 4
	nodeOffFree   = nodeOffIndex + 4
	nodeOffUsed   = nodeOffFree + 4
)

// RegionSize computes the total byte size of a region hosting capacity
// messages of at most maxLen bytes each.
func RegionSize(capacity int, maxLen uint32) int64 {
	return int64(HeaderSize) + int64(capacity)*int64(NodeSize) + int64(capacity)*int64(maxLen)
}

// Header is a view over the fixed-offset control block at the start of a
// region buffer. It never copies buf; all methods read/write in place.
type Header struct {
	buf []byte
}

// NewHeader wraps buf (which must be at least HeaderSize bytes) as a
// Header view.
func NewHeader(buf []byte) Header { return Header{buf: buf} }

func (h Header) Version() string {
	return string(h.buf[offVersion : offVersion+8])
}

func (h Header) SetVersion(v string) {
	var b [8]byte
	copy(b[:], v)
	copy(h.buf[offVersion:offVersion+8], b[:])
}

func (h Header) Magic() [api.MagicLen]byte {
	var m [api.MagicLen]byte
	copy(m[:], h.buf[offMagic:offMagic+api.MagicLen])
	return m
}

func (h Header) SetMagic(m [api.MagicLen]byte) {
	copy(h.buf[offMagic:offMagic+api.MagicLen], m[:])
}

func (h Header) MagicValid() bool {
	got := h.buf[offMagic : offMagic+api.MagicLen]
	for i := range api.Magic {
		if got[i] != api.Magic[i] {
			return false
		}
	}
	return true
}

func (h Header) Capacity() int  { return int(int32(binary.LittleEndian.Uint32(h.buf[offCapacity:]))) }
func (h Header) SetCapacity(v int) {
	binary.LittleEndian.PutUint32(h.buf[offCapacity:], uint32(int32(v)))
}

func (h Header) MaxLen() uint32     { return binary.LittleEndian.Uint32(h.buf[offMaxLen:]) }
func (h Header) SetMaxLen(v uint32) { binary.LittleEndian.PutUint32(h.buf[offMaxLen:], v) }

func (h Header) Options() int32     { return int32(binary.LittleEndian.Uint32(h.buf[offOptions:])) }
func (h Header) SetOptions(v int32) { binary.LittleEndian.PutUint32(h.buf[offOptions:], uint32(v)) }

func (h Header) MsgNum() int32 { return int32(binary.LittleEndian.Uint32(h.buf[offMsgNum:])) }
func (h Header) SetMsgNum(v int32) {
	binary.LittleEndian.PutUint32(h.buf[offMsgNum:], uint32(v))
}
func (h Header) AddMsgNum(delta int32) { h.SetMsgNum(h.MsgNum() + delta) }

func (h Header) SendTimes() int32 { return int32(binary.LittleEndian.Uint32(h.buf[offSendTimes:])) }
func (h Header) IncSendTimes()    { binary.LittleEndian.PutUint32(h.buf[offSendTimes:], uint32(h.SendTimes()+1)) }

func (h Header) RecvTimes() int32 { return int32(binary.LittleEndian.Uint32(h.buf[offRecvTimes:])) }
func (h Header) IncRecvTimes()    { binary.LittleEndian.PutUint32(h.buf[offRecvTimes:], uint32(h.RecvTimes()+1)) }

func (h Header) Head() int32     { return int32(binary.LittleEndian.Uint32(h.buf[offHead:])) }
func (h Header) SetHead(v int32) { binary.LittleEndian.PutUint32(h.buf[offHead:], uint32(v)) }

func (h Header) Tail() int32     { return int32(binary.LittleEndian.Uint32(h.buf[offTail:])) }
func (h Header) SetTail(v int32) { binary.LittleEndian.PutUint32(h.buf[offTail:], uint32(v)) }

func (h Header) Free() int32     { return int32(binary.LittleEndian.Uint32(h.buf[offFree:])) }
func (h Header) SetFree(v int32) { binary.LittleEndian.PutUint32(h.buf[offFree:], uint32(v)) }

// Node is a view over one fixed-size node descriptor within the node
// array immediately following the header.
type Node struct {
	buf []byte
}

// NodeAt returns a view over node index i in region. Callers are responsible for ensuring 0 <= i < capacity.
func NodeAt(region []byte, i int) Node {
	start := HeaderSize + i*NodeSize
	return Node{buf: region[start : start+NodeSize]}
}

func (n Node) Length() uint32     { return binary.LittleEndian.Uint32(n.buf[nodeOffLength:]) }
func (n Node) SetLength(v uint32) { binary.LittleEndian.PutUint32(n.buf[nodeOffLength:], v) }

func (n Node) Index() int32     { return int32(binary.LittleEndian.Uint32(n.buf[nodeOffIndex:])) }
func (n Node) SetIndex(v int32) { binary.LittleEndian.PutUint32(n.buf[nodeOffIndex:], uint32(v)) }

func (n Node) Free() int32     { return int32(binary.LittleEndian.Uint32(n.buf[nodeOffFree:])) }
func (n Node) SetFree(v int32) { binary.LittleEndian.PutUint32(n.buf[nodeOffFree:], uint32(v)) }

func (n Node) Used() int32     { return int32(binary.LittleEndian.Uint32(n.buf[nodeOffUsed:])) }
func (n Node) SetUsed(v int32) { binary.LittleEndian.PutUint32(n.buf[nodeOffUsed:], uint32(v)) }

// PayloadOffset returns the byte offset of node index i's payload slot
// within region, given capacity and maxLen.
func PayloadOffset(capacity int, maxLen uint32, i int) int64 {
	return int64(HeaderSize) + int64(capacity)*int64(NodeSize) + int64(i)*int64(maxLen)
}

// Payload returns a view over node index i's payload slot.
func Payload(region []byte, capacity int, maxLen uint32, i int) []byte {
	off := PayloadOffset(capacity, maxLen, i)
	return region[off : off+int64(maxLen)]
}

// Init writes the initial header and node-array state for a freshly
// created region: free list 0 -> 1 -> ... -> capacity-1 -> SENTINEL,
// empty used list, zeroed counters.
func Init(region []byte, capacity int, maxLen uint32, options int32) {
	h := NewHeader(region)
	h.SetVersion(api.VersionString)
	h.SetMagic(api.Magic)
	h.SetCapacity(capacity)
	h.SetMaxLen(maxLen)
	h.SetOptions(options)
	h.SetMsgNum(0)
	binary.LittleEndian.PutUint32(region[offSendTimes:], 0)
	binary.LittleEndian.PutUint32(region[offRecvTimes:], 0)
	h.SetHead(api.Sentinel)
	h.SetTail(api.Sentinel)
	h.SetFree(0)

	for i := 0; i < capacity; i++ {
		n := NodeAt(region, i)
		n.SetLength(0)
		n.SetIndex(int32(i))
		if i == capacity-1 {
			n.SetFree(api.Sentinel)
		} else {
			n.SetFree(int32(i + 1))
		}
		n.SetUsed(api.Sentinel)
	}
}

// Validate checks that region is at least RegionSize(capacity, maxLen)
// bytes long. It does not read the header, so it does not compare any
// stamped capacity/maxLen against the caller's values.
func Validate(region []byte, capacity int, maxLen uint32) error {
	if int64(len(region)) < RegionSize(capacity, maxLen) {
		return api.NewError(api.ErrCodeCorruptHandle, "layout.Validate", "region too small")
	}
	return nil
}
