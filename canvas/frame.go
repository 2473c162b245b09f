// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"github.com/rajveermalviya/go-webgpu/wgpu"
	"gonum.org/v1/gonum/stat"
)

// FrameResult is Canvas.Frame's outcome (spec.md §4.6 "return READY,
// WAIT-SURFACE ..., or ERROR").
type FrameResult int

const (
	FrameReady FrameResult = iota
	FrameWaitSurface
	FrameError
)

func (r FrameResult) String() string {
	switch r {
	case FrameReady:
		return "ready"
	case FrameWaitSurface:
		return "wait-surface"
	case FrameError:
		return "error"
	default:
		return "unknown"
	}
}

// Frame is the rotating per-swapchain-image record (spec.md §3
// "{command buffer, image index, image view, extent, handles-dirty
// flag, recorded wait/signal values}").
type Frame struct {
	ID           uint64
	ImageIndex   int
	View         *wgpu.TextureView
	Width        int
	Height       int
	HandlesDirty bool
	WaitValue    uint64
	SignalValue  uint64
	Buffer       *wgpu.CommandBuffer
}

// FrameTiming is one sample appended by Canvas.Submit (spec.md §4.6
// "(frame_id, cpu_submit_us, gpu_complete_us, present_*)").
type FrameTiming struct {
	FrameID      uint64
	CPUSubmitUs  float64
	GPUCompleteUs float64
	PresentUs    float64
}

// timingRing is a fixed-capacity ring buffer of the most recent
// FrameTiming samples (spec.md §4.6 "timings(Canvas) -> ring-buffer of
// ... the most recent N samples"), plus rolling mean/stddev of the CPU
// submit time using gonum/stat (a teacher dependency with no other
// home in this implementation; see DESIGN.md).
type timingRing struct {
	samples []FrameTiming
	cap     int
	next    int
	full    bool
}

func newTimingRing(capacity int) *timingRing {
	if capacity <= 0 {
		capacity = 1
	}
	return &timingRing{samples: make([]FrameTiming, capacity), cap: capacity}
}

// Push appends a new sample, evicting the oldest if full.
func (r *timingRing) Push(t FrameTiming) {
	r.samples[r.next] = t
	r.next = (r.next + 1) % r.cap
	if r.next == 0 {
		r.full = true
	}
}

// Snapshot returns the samples currently held, oldest first.
func (r *timingRing) Snapshot() []FrameTiming {
	if !r.full {
		out := make([]FrameTiming, r.next)
		copy(out, r.samples[:r.next])
		return out
	}
	out := make([]FrameTiming, r.cap)
	copy(out, r.samples[r.next:])
	copy(out[r.cap-r.next:], r.samples[:r.next])
	return out
}

// CPUSubmitStats returns the mean and standard deviation of the CPU
// submit time (microseconds) across the held samples.
func (r *timingRing) CPUSubmitStats() (mean, stddev float64) {
	snap := r.Snapshot()
	if len(snap) == 0 {
		return 0, 0
	}
	xs := make([]float64, len(snap))
	for i, s := range snap {
		xs[i] = s.CPUSubmitUs
	}
	mean, stddev = stat.MeanStdDev(xs, nil)
	return
}
