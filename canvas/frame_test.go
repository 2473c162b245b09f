// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameResultString(t *testing.T) {
	assert.Equal(t, "ready", FrameReady.String())
	assert.Equal(t, "wait-surface", FrameWaitSurface.String())
	assert.Equal(t, "error", FrameError.String())
	assert.Equal(t, "unknown", FrameResult(99).String())
}

func TestTimingRingSnapshotBeforeFull(t *testing.T) {
	r := newTimingRing(3)
	r.Push(FrameTiming{FrameID: 1})
	r.Push(FrameTiming{FrameID: 2})

	got := r.Snapshot()
	assert.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].FrameID)
	assert.Equal(t, uint64(2), got[1].FrameID)
}

func TestTimingRingEvictsOldestWhenFull(t *testing.T) {
	r := newTimingRing(3)
	for i := uint64(1); i <= 5; i++ {
		r.Push(FrameTiming{FrameID: i})
	}

	got := r.Snapshot()
	assert.Len(t, got, 3)
	assert.Equal(t, []uint64{3, 4, 5}, []uint64{got[0].FrameID, got[1].FrameID, got[2].FrameID})
}

func TestTimingRingCapacityFloorsAtOne(t *testing.T) {
	r := newTimingRing(0)
	r.Push(FrameTiming{FrameID: 1})
	r.Push(FrameTiming{FrameID: 2})
	assert.Equal(t, []uint64{2}, []uint64{r.Snapshot()[0].FrameID})
}

func TestTimingRingCPUSubmitStats(t *testing.T) {
	r := newTimingRing(4)
	r.Push(FrameTiming{CPUSubmitUs: 10})
	r.Push(FrameTiming{CPUSubmitUs: 20})

	mean, stddev := r.CPUSubmitStats()
	assert.Equal(t, 15.0, mean)
	assert.Greater(t, stddev, 0.0)
}

func TestTimingRingCPUSubmitStatsEmpty(t *testing.T) {
	r := newTimingRing(4)
	mean, stddev := r.CPUSubmitStats()
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, stddev)
}
