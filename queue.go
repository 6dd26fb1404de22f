// Copyright 2026 The lfq Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// node is a single link in both the main list and the freelist of a ULQ.
// A node is reachable from at most one of those two lists at any instant;
// it moves between them as the queue recycles it (see ULQ doc comment).
//
// A node is an arena-owned cell (see arena.go): its successor is recorded
// as an atomic index into that arena rather than an atomic pointer, so the
// whole structure runs on code.hybscloud.com/atomix's scalar atomic types
// (Uint64) in the same style as this package's other slot-indexed queues,
// instead of requiring a generic atomic pointer type.
type node[T any] struct {
	data T
	next atomix.Uint64 // index of successor, or nilIndex
}

// ULQ is an unbounded, lock-free, Michael & Scott-style singly-linked FIFO.
//
// ULQ supports both single- and multi-producer enqueues and both single-
// and multi-consumer dequeues; callers pick the pair of methods matching
// their own concurrency pattern (SPEnqueue/SCDequeue, MPEnqueue/MCDequeue,
// or any mix). Mixing, e.g., SPEnqueue with concurrent producers is
// undefined behavior — the SP methods assume the caller already serializes
// producers.
//
// Retired nodes are recycled through an internal freelist instead of being
// handed back to the garbage collector immediately, amortizing allocation
// under steady-state load (see freelist.go).
//
// The enqueue methods do not recover from allocation failure: running out
// of memory while growing the node arena is left to the Go runtime. A new
// node is fully prepared before it is linked, so no partial link is ever
// published.
//
// The zero value is not usable; construct with NewULQ.
type ULQ[T any] struct {
	_        noCopy
	arena    arena[T]
	_        pad
	head     atomix.Uint64 // index of most recently enqueued node
	_        padShort
	tail     atomix.Uint64 // index of sentinel; that node's next is the front
	_        padShort
	freeHead atomix.Uint64 // freelist push end
	_        padShort
	freeTail atomix.Uint64 // freelist pop end
	_        padShort
}

// NewULQ creates an empty ULQ with a fresh sentinel in the main list and a
// fresh sentinel in the freelist.
func NewULQ[T any]() *ULQ[T] {
	q := &ULQ[T]{}
	initULQ(q)
	return q
}

// initULQ installs fresh sentinels into an already-allocated ULQ. Split out
// from NewULQ so SAQ can initialize each of its shards in place without
// copying a constructed ULQ value (ULQ is non-copyable, see noCopy).
func initULQ[T any](q *ULQ[T]) {
	sentinelIdx, _ := q.arena.alloc()
	q.head.StoreRelaxed(sentinelIdx)
	q.tail.StoreRelaxed(sentinelIdx)

	// Construction is single-threaded: no operation can observe freeTail
	// before this constructor returns, so a relaxed store is enough to
	// publish freeHead == freeTail.
	freeSentinelIdx, _ := q.arena.alloc()
	q.freeHead.StoreRelaxed(freeSentinelIdx)
	q.freeTail.StoreRelaxed(freeSentinelIdx)
}

// acquireOrAllocate obtains a node to hold v, preferring a recycled node
// from the freelist and falling back to a fresh arena cell.
func (q *ULQ[T]) acquireOrAllocate(v T) uint64 {
	if idx := q.freelistPop(); idx != nilIndex {
		n := q.arena.at(idx)
		n.data = v
		n.next.StoreRelaxed(nilIndex)
		return idx
	}
	idx, n := q.arena.alloc()
	n.data = v
	return idx
}

// SPEnqueue appends v. The caller must guarantee no other producer runs
// concurrently on this ULQ.
func (q *ULQ[T]) SPEnqueue(v T) {
	idx := q.acquireOrAllocate(v)
	headIdx := q.head.LoadRelaxed()
	q.arena.at(headIdx).next.StoreRelease(idx)
	q.head.StoreRelaxed(idx)
}

// MPEnqueue appends v. Safe under arbitrary producer concurrency.
func (q *ULQ[T]) MPEnqueue(v T) {
	idx := q.acquireOrAllocate(v)
	prevIdx := q.head.SwapAcqRel(idx)
	q.arena.at(prevIdx).next.StoreRelease(idx)
}

// SCDequeue removes the front element, if any. The caller must guarantee
// no other consumer runs concurrently on this ULQ.
func (q *ULQ[T]) SCDequeue() (v T, ok bool) {
	tailIdx := q.tail.LoadRelaxed()
	nextIdx := q.arena.at(tailIdx).next.LoadAcquire()
	if nextIdx == nilIndex {
		return v, false
	}
	v = q.arena.at(nextIdx).data
	q.tail.StoreRelease(nextIdx)
	q.freelistPush(tailIdx)
	return v, true
}

// MCDequeue removes the front element, if any. Safe under arbitrary
// consumer concurrency; spins (yielding the scheduling quantum each
// iteration) while a competing consumer holds the tail.
func (q *ULQ[T]) MCDequeue() (v T, ok bool) {
	sw := spin.Wait{}
	for {
		tailIdx := q.tail.SwapAcqRel(nilIndex)
		if tailIdx == nilIndex {
			// Another consumer holds the tail; wait it out.
			sw.Once()
			continue
		}

		nextIdx := q.arena.at(tailIdx).next.LoadAcquire()
		if nextIdx == nilIndex {
			q.tail.StoreRelease(tailIdx)
			return v, false
		}

		v = q.arena.at(nextIdx).data
		q.tail.StoreRelease(nextIdx)
		q.freelistPush(tailIdx)
		return v, true
	}
}

// MCDequeueLight removes the front element, if any. Safe under arbitrary
// consumer concurrency; never spins — a single failed attempt to take the
// tail returns false immediately. Callers cannot distinguish "empty" from
// "another consumer holds the tail right now" from the return value alone.
func (q *ULQ[T]) MCDequeueLight() (v T, ok bool) {
	tailIdx := q.tail.SwapAcqRel(nilIndex)
	if tailIdx == nilIndex {
		return v, false
	}

	nextIdx := q.arena.at(tailIdx).next.LoadAcquire()
	if nextIdx == nilIndex {
		q.tail.StoreRelease(tailIdx)
		return v, false
	}

	v = q.arena.at(nextIdx).data
	q.tail.StoreRelease(nextIdx)
	q.freelistPush(tailIdx)
	return v, true
}
