// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPool builds a bufferPool with bookkeeping fields only, no
// backing wgpu.Buffer — enough to exercise alloc/release as long as a
// test stays within cap and never triggers grow (which needs a real
// Device to create a replacement wgpu.Buffer).
func newTestPool(cap uint64) *bufferPool {
	return &bufferPool{cap: cap}
}

func TestBufferPoolAllocIsBumpedWhenNoFreeSpanFits(t *testing.T) {
	p := newTestPool(1024)

	off1, err := p.alloc(64)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), off1)

	off2, err := p.alloc(128)
	require.NoError(t, err)
	assert.Equal(t, uint64(64), off2)
}

func TestBufferPoolReleaseThenAllocReusesBestFit(t *testing.T) {
	p := newTestPool(1024)

	a, _ := p.alloc(64)
	b, _ := p.alloc(32)
	c, _ := p.alloc(16)

	p.release(a, 64)
	p.release(b, 32)

	// A 32-byte request should reuse the exact 32-byte span (b) rather
	// than the larger 64-byte span (a): best-fit, not first-fit.
	reused, err := p.alloc(32)
	require.NoError(t, err)
	assert.Equal(t, b, reused)

	// The 64-byte span remains free for a later, larger request.
	reused2, err := p.alloc(64)
	require.NoError(t, err)
	assert.Equal(t, a, reused2)

	_ = c
}

func TestBufferPoolReleaseWithLeftoverSplitsSpan(t *testing.T) {
	p := newTestPool(1024)

	a, _ := p.alloc(64)
	p.release(a, 64)

	// Allocating less than the free span's size must leave the
	// remainder on the free list for reuse, not discard it.
	smaller, err := p.alloc(48)
	require.NoError(t, err)
	assert.Equal(t, a, smaller)
	require.Len(t, p.freeList, 1)
	assert.Equal(t, uint64(16), p.freeList[0].size)
}

func TestBufferPoolZeroSizeAllocIsNoop(t *testing.T) {
	p := newTestPool(1024)
	off, err := p.alloc(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), off)
	assert.Empty(t, p.freeList)
	assert.Equal(t, uint64(0), p.cursor)
}
