// Copyright 2026 The lfq Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq_test

import (
	"testing"

	"github.com/kaidoru/lfq"
	"pgregory.net/rapid"
)

// op is a single scripted action against a ULQ[int]: true means enqueue v,
// false means attempt a dequeue.
type op struct {
	enqueue bool
	v       int
}

func opGen() *rapid.Generator[op] {
	return rapid.Custom(func(t *rapid.T) op {
		enqueue := rapid.Bool().Draw(t, "enqueue")
		v := rapid.IntRange(0, 1<<20).Draw(t, "v")
		return op{enqueue: enqueue, v: v}
	})
}

// TestPropertyConservation checks the Conservation invariant: for
// any interleaving of enqueues and dequeues, the multiset of successfully
// dequeued values is a prefix-subset of the multiset enqueued, and at
// quiescence (every enqueued value drained) the two multisets are equal.
func TestPropertyConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ops := rapid.SliceOfN(opGen(), 1, 200).Draw(t, "ops")

		q := lfq.NewULQ[int]()
		var enqueued []int
		var dequeued []int
		for _, o := range ops {
			if o.enqueue {
				q.SPEnqueue(o.v)
				enqueued = append(enqueued, o.v)
				continue
			}
			if v, ok := q.SCDequeue(); ok {
				dequeued = append(dequeued, v)
			}
		}
		for {
			v, ok := q.SCDequeue()
			if !ok {
				break
			}
			dequeued = append(dequeued, v)
		}

		if len(dequeued) != len(enqueued) {
			t.Fatalf("dequeued %d values, enqueued %d", len(dequeued), len(enqueued))
		}
		for i, v := range dequeued {
			if v != enqueued[i] {
				t.Fatalf("dequeued[%d] = %d, want %d (single producer global FIFO)", i, v, enqueued[i])
			}
		}
	})
}

// TestPropertyNoDuplication checks the No duplication invariant: no value
// handed to Enqueue is ever returned from Dequeue more than once, for a
// random count of distinct values enqueued up front and then fully drained.
func TestPropertyNoDuplication(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 300).Draw(t, "n")

		q := lfq.NewULQ[int]()
		for i := 0; i < n; i++ {
			q.SPEnqueue(i) // distinct per index, so a duplicate dequeue is unambiguous
		}

		seen := make(map[int]bool, n)
		for {
			v, ok := q.SCDequeue()
			if !ok {
				break
			}
			if seen[v] {
				t.Fatalf("value %d dequeued twice", v)
			}
			seen[v] = true
		}
		if len(seen) != n {
			t.Fatalf("dequeued %d distinct values, want %d", len(seen), n)
		}
	})
}

// TestPropertyNoSpuriousElements checks that every dequeued value was
// actually enqueued at some point — no value appears out of thin air.
func TestPropertyNoSpuriousElements(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfN(rapid.IntRange(0, 1000), 0, 200).Draw(t, "values")

		q := lfq.NewULQ[int]()
		enqueuedSet := make(map[int]bool, len(values))
		for _, v := range values {
			q.SPEnqueue(v)
			enqueuedSet[v] = true
		}

		for {
			v, ok := q.SCDequeue()
			if !ok {
				break
			}
			if !enqueuedSet[v] {
				t.Fatalf("dequeued value %d that was never enqueued", v)
			}
		}
	})
}

// TestPropertySAQPerProducerFIFO checks the SAQ per-producer FIFO invariant
// under randomized producer value sequences: a single producer handle's
// enqueue order is preserved through the SAQ, regardless of shard count.
func TestPropertySAQPerProducerFIFO(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		shardCount := rapid.IntRange(1, 8).Draw(t, "shardCount")
		values := rapid.SliceOfN(rapid.IntRange(0, 1000), 1, 200).Draw(t, "values")

		saq := lfq.NewSAQ[int](uint(shardCount))
		producer := saq.Producer()
		consumer := saq.Consumer()

		for _, v := range values {
			producer.Enqueue(v)
		}
		for i, want := range values {
			v, ok := consumer.SCDequeue()
			if !ok {
				t.Fatalf("SCDequeue() returned false at index %d, want value %d", i, want)
			}
			if v != want {
				t.Fatalf("SCDequeue()[%d] = %d, want %d", i, v, want)
			}
		}
	})
}

// TestPropertyFreelistReuseBound checks the Freelist reuse invariant: after
// K enqueues followed by K dequeues followed by K more enqueues, no node
// from the second round is a fresh allocation — every one of them comes
// back out of the freelist the first K dequeues populated.
func TestPropertyFreelistReuseBound(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k := rapid.IntRange(1, 300).Draw(t, "k")

		q := lfq.NewULQ[int]()
		for i := 0; i < k; i++ {
			q.SPEnqueue(i)
		}
		for i := 0; i < k; i++ {
			if _, ok := q.SCDequeue(); !ok {
				t.Fatalf("SCDequeue() failed at i=%d", i)
			}
		}

		next := k
		allocs := testing.AllocsPerRun(1, func() {
			for i := 0; i < next; i++ {
				q.SPEnqueue(i)
			}
			for i := 0; i < next; i++ {
				q.SCDequeue()
			}
		})
		if allocs > 0 {
			t.Fatalf("round-trip of %d enqueue/dequeue pairs performed %.0f heap allocations, want 0 (freelist should fully cover it)", k, allocs)
		}
	})
}
