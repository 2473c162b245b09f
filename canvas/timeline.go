// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import "sync"

// timeline is the canvas's exportable timeline semaphore (spec.md §3
// "Owns an external-exportable timeline semaphore with a monotonically
// increasing 64-bit value"). The wgpu binding exposes no native
// Vulkan-style timeline semaphore, so this is a mutex-guarded
// monotonic counter incremented after each successful Present, with
// waiters parked on a sync.Cond and released in submission order.
type timeline struct {
	mu    sync.Mutex
	cond  *sync.Cond
	value uint64
}

func newTimeline() *timeline {
	t := &timeline{}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// Value returns the current published value.
func (t *timeline) Value() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

// Signal advances the timeline by one (called after a successful
// Present, spec.md §4.6 "Each successful submit increments the value
// by 1. The external value is published after the submit API call
// returns").
func (t *timeline) Signal() uint64 {
	t.mu.Lock()
	t.value++
	v := t.value
	t.mu.Unlock()
	t.cond.Broadcast()
	return v
}

// Wait blocks the calling goroutine until the timeline's value is at
// least target, releasing waiters in submission order as each Signal
// broadcasts.
func (t *timeline) Wait(target uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for t.value < target {
		t.cond.Wait()
	}
}
