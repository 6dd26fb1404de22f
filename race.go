// Copyright 2026 The lfq Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package lfq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip the heaviest concurrent stress tests, which trigger
// false positives because the race detector cannot observe happens-before
// relationships established purely through acquire/release orderings on
// separate atomic words.
const RaceEnabled = true
