// Copyright 2026 The lfq Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfq provides a lock-free unbounded queue and a sharded adaptive
// queue built on top of it, for high-throughput producer/consumer
// coordination between goroutines.
//
// # Quick Start
//
//	q := lfq.NewULQ[int]()
//	q.SPEnqueue(1)
//	v, ok := q.SCDequeue() // v == 1, ok == true
//
//	saq := lfq.NewSAQ[Job](4)
//	producer := saq.Producer()
//	consumer := saq.Consumer()
//	producer.Enqueue(job)
//	job, ok := consumer.MCDequeue()
//
// # ULQ: Unbounded Linked Queue
//
// ULQ is a Michael & Scott-style singly-linked lock-free FIFO. It never
// rejects an enqueue for being full — the only false result comes from
// Dequeue on an empty queue (or, for MCDequeueLight, from losing a race for
// the tail). Retired nodes are recycled through an internal freelist rather
// than immediately abandoned to the garbage collector.
//
// Pick the method pair matching your concurrency pattern:
//
//	SPEnqueue + SCDequeue      - one producer goroutine, one consumer goroutine
//	MPEnqueue + MCDequeue      - any number of producers and consumers
//	MPEnqueue + MCDequeueLight - like MCDequeue, but never spins
//
// Mixing SP/SC methods with concurrent callers is undefined behavior; those
// methods assume the caller already serializes access.
//
// # SAQ: Sharded Adaptive Queue
//
// SAQ wraps N independent ULQ subqueues. Producers obtain a ProducerHandle
// that pins them to one subqueue (assigned round-robin on first use, or
// chosen explicitly via EnqueueAt); consumers obtain a ConsumerHandle that
// keeps a "hitlist" — a permutation of subqueue indices reordered toward
// whichever subqueue most recently produced an element. This lets a
// consumer's steady-state dequeue cost amortize toward a single underlying
// ULQ call while still covering every subqueue when load shifts.
//
// Go has no portable thread-local storage, so the producer index and
// consumer hitlist are explicit handles rather than implicit per-thread
// state; a handle must not be shared between concurrently running
// goroutines.
//
// # Error Handling
//
// Neither component has an error type. Enqueue never fails (beyond the host
// runtime's own out-of-memory behavior, which is not caught or wrapped —
// see queue.go). Dequeue methods return (zero-value, false) for "empty", and
// MCDequeueLight also returns (zero-value, false) for "another consumer
// currently holds the tail" — the two are indistinguishable from the return
// value alone, matching the Michael & Scott algorithm's own contention
// signal.
//
// # Memory Ordering
//
// All atomic fields use code.hybscloud.com/atomix's explicit-ordering types
// rather than sync/atomic's implicitly sequentially-consistent ones. A node's
// successor is an atomic index into an arena (see arena.go) rather than an
// atomic pointer; index publications that transfer node ownership use
// release, the matching reads use acquire. Read-modify-write operations that
// both hand off ownership and observe the prior value (the head swap in
// MPEnqueue, the tail swap in MCDequeue) use acquire-release. Loads that
// merely sample an index meant to be re-validated use relaxed. Contention
// backoff uses code.hybscloud.com/spin's spin.Wait, which yields the scheduling quantum
// each failed iteration instead of busy-spinning indefinitely.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives (mutexes,
// channels, WaitGroup) but not happens-before relationships established
// purely through acquire/release orderings on separate atomic words. The
// heaviest concurrent stress tests for the generic ULQ/SAQ are therefore
// excluded under -race (see race.go / race_off.go); the algorithms are
// still correct, the detector's model of synchronization just can't see it.
//
// # Dependencies
//
// This package uses code.hybscloud.com/atomix for atomic primitives with
// explicit memory ordering and code.hybscloud.com/spin for CPU-yielding
// spin-wait.
package lfq
