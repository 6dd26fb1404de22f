// Copyright 2026 The lfq Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

// freelistPush recycles the node at idx, making it available to a future
// acquireOrAllocate call. Mirrors ULQ.MPEnqueue: it must tolerate
// concurrent callers because both SCDequeue and MCDequeue recycle their
// retired node through it, and MCDequeue may run on several consumer
// goroutines at once.
func (q *ULQ[T]) freelistPush(idx uint64) {
	n := q.arena.at(idx)
	n.next.StoreRelaxed(nilIndex)
	prevIdx := q.freeHead.SwapAcqRel(idx)
	q.arena.at(prevIdx).next.StoreRelease(idx)
}

// freelistPop removes and returns the index of a recycled node, or
// nilIndex if the freelist is empty. Structured as the same dummy-node
// CAS-retry shape as a main-list dequeue, which happens to stay correct
// under concurrent callers (multiple producers popping under MPEnqueue)
// without needing MCDequeue's exclusive tail-ownership dance: a lost CAS
// here just means another popper won this node, so the loop re-reads
// freeTail and tries the next one.
func (q *ULQ[T]) freelistPop() uint64 {
	for {
		tailIdx := q.freeTail.LoadRelaxed()
		nextIdx := q.arena.at(tailIdx).next.LoadAcquire()
		if nextIdx == nilIndex {
			return nilIndex
		}
		if q.freeTail.CompareAndSwapAcqRel(tailIdx, nextIdx) {
			return tailIdx
		}
	}
}
