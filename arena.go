// Copyright 2026 The lfq Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// nilIndex marks the absence of a successor (or an empty freelist), the
// index-based equivalent of a nil *node[T]. alloc never hands out this
// index: length is a monotonically increasing counter starting at 0 that
// would need 2^64-1 allocations before colliding with it.
const nilIndex = ^uint64(0)

// arenaSegmentSize is the number of node[T] cells per arena segment.
const arenaSegmentSize = 1024

type arenaSegment[T any] [arenaSegmentSize]node[T]

// arena is an append-only, growable store of node[T] cells addressed by a
// monotonically increasing index, per the node-lifetime design this package
// follows: a node is an arena-owned cell reached through an atomic successor
// index rather than an atomic pointer (see node's doc comment). Segments,
// once created, are never moved or freed while the owning ULQ is live, so a
// *node[T] obtained from at is valid for the ULQ's remaining lifetime.
//
// Segment creation is a cold path (one per arenaSegmentSize allocations) and
// is guarded by a plain sync.RWMutex; every hot-path operation on a node
// once resolved (the head/tail/freeHead/freeTail swaps and the next-index
// CAS) still goes through code.hybscloud.com/atomix exclusively.
type arena[T any] struct {
	mu       sync.RWMutex
	segments []*arenaSegment[T]
	length   atomix.Uint64
}

// segment returns the segment at segIdx, creating it (and any intervening
// directory slots) if this is the first reference to it.
func (a *arena[T]) segment(segIdx int) *arenaSegment[T] {
	a.mu.RLock()
	if segIdx < len(a.segments) {
		if s := a.segments[segIdx]; s != nil {
			a.mu.RUnlock()
			return s
		}
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	for segIdx >= len(a.segments) {
		a.segments = append(a.segments, nil)
	}
	if a.segments[segIdx] == nil {
		a.segments[segIdx] = &arenaSegment[T]{}
	}
	return a.segments[segIdx]
}

// at resolves index to its cell. index must have come from a prior call to
// alloc on this arena.
func (a *arena[T]) at(index uint64) *node[T] {
	seg := a.segment(int(index / arenaSegmentSize))
	return &seg[index%arenaSegmentSize]
}

// alloc hands out a fresh, never-before-used index and its cell, with next
// reset to nilIndex.
func (a *arena[T]) alloc() (uint64, *node[T]) {
	idx := a.length.AddAcqRel(1) - 1
	n := a.at(idx)
	n.next.StoreRelaxed(nilIndex)
	return idx, n
}
