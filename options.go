// Copyright 2026 The lfq Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

// pad is cache line padding to prevent false sharing between neighboring
// atomic fields.
type pad [64]byte

// padShort is padding to fill a cache line after an 8-byte field.
type padShort [64 - 8]byte

// noCopy marks a struct as non-copyable for go vet's -copylocks check.
// ULQ and SAQ embed it to disable copy construction and assignment, since
// copying either would duplicate atomic state (and, for ULQ, the arena's
// segment directory) that must have exactly one owner.
type noCopy struct{}

// Lock is a no-op satisfying sync.Locker so go vet's -copylocks analysis
// flags accidental copies of types embedding noCopy.
func (*noCopy) Lock() {}

// Unlock is a no-op; see Lock.
func (*noCopy) Unlock() {}
