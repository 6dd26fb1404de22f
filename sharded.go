// Copyright 2026 The lfq Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import "code.hybscloud.com/atomix"

// shard wraps one subqueue of a SAQ, padded to its own cache line so that
// producers hammering one subqueue don't false-share with neighbors.
type shard[T any] struct {
	q ULQ[T]
	_ pad
}

// SAQ is a Sharded Adaptive Queue: a fixed-size vector of independent ULQ
// subqueues. Producers route deterministically to one subqueue per
// goroutine (see ProducerHandle); consumers probe subqueues in a per-
// goroutine-learned order that adapts toward whichever subqueues are
// actually productive (see ConsumerHandle).
//
// Go has no portable thread-local storage, so the producer-affinity index
// and the consumer hitlist live in explicit handles obtained from Producer
// and Consumer rather than being implicit per-OS-thread state.
//
// The zero value is not usable; construct with NewSAQ.
type SAQ[T any] struct {
	_         noCopy
	shards    []shard[T]
	n         uint64
	nextShard atomix.Uint64
	_         padShort
}

// NewSAQ creates a SAQ with shardCount independent, empty subqueues.
// Panics if shardCount is 0.
func NewSAQ[T any](shardCount uint) *SAQ[T] {
	if shardCount < 1 {
		panic("lfq: shard count must be >= 1")
	}
	s := &SAQ[T]{
		shards: make([]shard[T], shardCount),
		n:      uint64(shardCount),
	}
	for i := range s.shards {
		initULQ(&s.shards[i].q)
	}
	return s
}

// Producer returns a handle a single producer goroutine should hold for its
// lifetime. The handle must not be shared between concurrently running
// goroutines.
func (s *SAQ[T]) Producer() *ProducerHandle[T] {
	return &ProducerHandle[T]{saq: s}
}

// Consumer returns a handle a single consumer goroutine should hold for its
// lifetime. The handle owns a hitlist that adapts to which subqueues this
// goroutine finds productive. The handle must not be shared between
// concurrently running goroutines: its hitlist is reordered on every hit
// without synchronization.
func (s *SAQ[T]) Consumer() *ConsumerHandle[T] {
	hitlist := make([]int, s.n)
	for i := range hitlist {
		hitlist[i] = i
	}
	return &ConsumerHandle[T]{saq: s, hitlist: hitlist}
}

// ProducerHandle pins its holder goroutine to one subqueue, assigned on
// first use from a shared round-robin counter.
type ProducerHandle[T any] struct {
	saq     *SAQ[T]
	idx     int
	claimed bool
}

// Enqueue appends v to this handle's subqueue, auto-assigning the subqueue
// on first call.
func (h *ProducerHandle[T]) Enqueue(v T) {
	if !h.claimed {
		prev := h.saq.nextShard.AddAcqRel(1) - 1
		h.idx = int(prev % h.saq.n)
		h.claimed = true
	}
	h.saq.shards[h.idx].q.MPEnqueue(v)
}

// EnqueueAt appends v to the subqueue at index, bypassing auto-assignment.
// index must be in [0, shardCount).
func (h *ProducerHandle[T]) EnqueueAt(v T, index int) {
	h.saq.shards[index].q.MPEnqueue(v)
}

// ConsumerHandle probes subqueues in a per-goroutine order that adapts
// toward recently productive subqueues.
type ConsumerHandle[T any] struct {
	saq     *SAQ[T]
	hitlist []int
}

// SCDequeue makes one pass over the hitlist using the single-consumer
// dequeue on each subqueue, returning on the first hit. The caller must
// guarantee no other consumer runs concurrently on this SAQ.
func (h *ConsumerHandle[T]) SCDequeue() (v T, ok bool) {
	for i, idx := range h.hitlist {
		if v, ok := h.saq.shards[idx].q.SCDequeue(); ok {
			h.promote(i)
			return v, true
		}
	}
	return v, false
}

// MCDequeue makes two passes over the hitlist: a light (non-spinning) pass
// first to skim easy wins, then a spinning pass to wait out contention.
// The hitlist is updated on a hit within either pass.
func (h *ConsumerHandle[T]) MCDequeue() (v T, ok bool) {
	for i, idx := range h.hitlist {
		if v, ok := h.saq.shards[idx].q.MCDequeueLight(); ok {
			h.promote(i)
			return v, true
		}
	}
	for i, idx := range h.hitlist {
		if v, ok := h.saq.shards[idx].q.MCDequeue(); ok {
			h.promote(i)
			return v, true
		}
	}
	return v, false
}

// promote moves the subqueue that just produced a hit at position hitPos to
// the front of the hitlist, shifting the subqueues ahead of it back by one
// slot each (and leaving their relative order unchanged).
func (h *ConsumerHandle[T]) promote(hitPos int) {
	for j := 0; j < hitPos; j++ {
		h.hitlist[j], h.hitlist[hitPos] = h.hitlist[hitPos], h.hitlist[j]
	}
}
