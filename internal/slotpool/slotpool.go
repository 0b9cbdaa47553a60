// File: internal/slotpool/slotpool.go
// Package slotpool implements the intrusive free/used singly-linked index
// lists over a fixed-size array of node descriptors. All mutations here
// must run under the queue's mutex — this package performs no locking of
// its own.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package slotpool

import (
	"github.com/momentics/msgqueue/api"
	"github.com/momentics/msgqueue/internal/layout"
)

// Pool operates on a region's header and node array. It holds no state
// of its own beyond the region view — the free/used list anchors live in
// the header.
type Pool struct {
	Region []byte
}

// Allocate pops the head of the free list. Precondition: header.Free !=
// SENTINEL, guaranteed by the caller having already taken an emptyCount
// permit before calling this.
func (p Pool) Allocate() (int32, error) {
	h := layout.NewHeader(p.Region)
	idx := h.Free()
	if idx == api.Sentinel {
		return api.Sentinel, api.NewError(api.ErrCodeGeneric, "slotpool.Allocate", "free list exhausted")
	}
	n := layout.NodeAt(p.Region, int(idx))
	h.SetFree(n.Free())
	n.SetFree(api.Sentinel)
	n.SetUsed(api.Sentinel)
	return idx, nil
}

// LinkNormal appends nodeIndex at the "head" end of the used list — the
// side normal sends push onto, giving FIFO order among normal messages.
func (p Pool) LinkNormal(nodeIndex int32) {
	h := layout.NewHeader(p.Region)
	if h.Head() == api.Sentinel {
		h.SetHead(nodeIndex)
		h.SetTail(nodeIndex)
		return
	}
	cur := layout.NodeAt(p.Region, int(h.Head()))
	cur.SetUsed(nodeIndex)
	h.SetHead(nodeIndex)
}

// LinkUrgent inserts nodeIndex at the "tail" end of the used list — the
// side receivers consume from next, jumping ahead of every message
// currently pending.
func (p Pool) LinkUrgent(nodeIndex int32) {
	h := layout.NewHeader(p.Region)
	if h.Head() == api.Sentinel {
		h.SetHead(nodeIndex)
		h.SetTail(nodeIndex)
		return
	}
	n := layout.NodeAt(p.Region, int(nodeIndex))
	n.SetUsed(h.Tail())
	h.SetTail(nodeIndex)
}

// UnlinkForReceive pops the tail of the used list and pushes it back onto
// the free list, returning the popped node index.
func (p Pool) UnlinkForReceive() (int32, error) {
	h := layout.NewHeader(p.Region)
	idx := h.Tail()
	if idx == api.Sentinel {
		return api.Sentinel, api.NewError(api.ErrCodeGeneric, "slotpool.UnlinkForReceive", "used list empty")
	}
	n := layout.NodeAt(p.Region, int(idx))
	h.SetTail(n.Used())
	n.SetUsed(api.Sentinel)
	n.SetFree(h.Free())
	h.SetFree(idx)
	if h.Tail() == api.Sentinel {
		h.SetHead(api.Sentinel)
	}
	return idx, nil
}
