// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"context"
	"fmt"
	"sync"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"datoviz.org/dvz/gpu"
	"datoviz.org/dvz/input"
	"datoviz.org/dvz/protocol"
	"datoviz.org/dvz/record"
)

// Config configures a new Canvas (spec.md §4.6
// "create(cfg{window, device, color_format, present_mode,
// enable_video_sink, timing_history})").
type Config struct {
	Backend         Backend
	GPU             *gpu.GPU
	Device          *gpu.Device
	Pipelines       *gpu.PipelineCache
	Dats            record.DatLookup
	Width, Height   int
	Title           string
	ColorFormat     wgpu.TextureFormat
	PresentMode     wgpu.PresentMode
	ClearColor      wgpu.Color
	EnableVideoSink bool
	TimingHistory   int
}

// DrawFunc is the per-frame callback a Canvas invokes to record
// draw-phase requests (spec.md §4.6 "cb receives (Canvas, Frame,
// user_data)"). U is fixed per Canvas instance, favoring
// monomorphization over a boxed any on this hot path.
type DrawFunc[U any] func(c *Canvas[U], f *Frame, userData U)

// Canvas drives the per-frame loop: acquire swapchain image, invoke
// the draw callback, submit with the timeline semaphore, present
// (spec.md §4.6, §2 "acquires swapchain image, rotates a frame pool,
// submits with a timeline semaphore, presents").
type Canvas[U any] struct {
	mu sync.Mutex

	backend  Backend
	gp       *gpu.GPU
	dev      *gpu.Device
	chain    *swapchain
	tl       *timeline
	recorder *record.Recorder

	format     wgpu.TextureFormat
	clearColor wgpu.Color

	drawCallback DrawFunc[U]
	userData     U

	frameID   uint64
	started   bool
	pending   *Frame
	recording *record.Image

	videoSinkEnabled bool
	timings          *timingRing
	sink             VideoSink
}

// New opens cfg.Backend's window/offscreen target and returns a Canvas
// ready to accept a draw callback.
func New[U any](cfg Config) (*Canvas[U], error) {
	if err := cfg.Backend.Create(cfg.Width, cfg.Height, cfg.Title); err != nil {
		return nil, fmt.Errorf("canvas: backend create: %w", err)
	}

	format := cfg.ColorFormat
	if format == wgpu.TextureFormatUndefined {
		format = wgpu.TextureFormatBGRA8UnormSrgb
	}
	present := cfg.PresentMode
	if present == 0 {
		present = wgpu.PresentModeFifo
	}

	c := &Canvas[U]{
		backend:          cfg.Backend,
		gp:               cfg.GPU,
		dev:              cfg.Device,
		tl:               newTimeline(),
		format:           format,
		clearColor:       cfg.ClearColor,
		timings:          newTimingRing(cfg.TimingHistory),
		videoSinkEnabled: cfg.EnableVideoSink,
	}

	surf, err := cfg.Backend.Surface(cfg.GPU.Instance)
	width, height := cfg.Backend.Size()
	switch {
	case err == nil:
		c.chain = newSwapchain(cfg.Device, surf, width, height, format, present)
	case err == ErrBackendUnavailable:
		// Offscreen/qt-stub backends have no presentable surface; the
		// canvas still owns a swapchain value so Frame/Submit share
		// one code path, but Acquire always reports WAIT-SURFACE.
		c.chain = newSwapchain(cfg.Device, nil, 0, 0, format, present)
	default:
		return nil, fmt.Errorf("canvas: backend surface: %w", err)
	}

	c.recorder = record.NewRecorder(cfg.Device, cfg.Pipelines, record.NewBindingTable(), cfg.Dats, 1)

	if r := cfg.Backend.Router(); r != nil {
		r.Subscribe(input.KindResize, func(ev input.Event, _ any) {
			c.chain.MarkOutOfDate(ev.Resize.Width, ev.Resize.Height)
		}, nil)
	}

	return c, nil
}

// SetDrawCallback installs cb as the per-frame draw callback, called
// with userData on every subsequent Frame.
func (c *Canvas[U]) SetDrawCallback(cb DrawFunc[U], userData U) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drawCallback = cb
	c.userData = userData
}

// Input returns the router attached to the underlying window (spec.md
// §4.6 "input(Canvas) -> InputRouter").
func (c *Canvas[U]) Input() *input.Router { return c.backend.Router() }

// ColorFormat returns the swapchain color format this canvas was
// created with, for callers (the renderer's pipeline dispatch) that
// must build a graphics pipeline targeting this canvas.
func (c *Canvas[U]) ColorFormat() wgpu.TextureFormat { return c.format }

// Backend returns the windowing backend driving this canvas, for a
// host's own event-pump/close-detection loop (spec.md §6 "windowing
// backend interface").
func (c *Canvas[U]) Backend() Backend { return c.backend }

// Frame acquires the next swapchain image and invokes the draw
// callback, returning FrameReady, FrameWaitSurface, or FrameError
// (spec.md §4.6 "frame(Canvas)").
func (c *Canvas[U]) Frame(ctx context.Context) (FrameResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	view, rebuilt, err := c.chain.Acquire(ctx)
	if err == ErrWaitSurface {
		return FrameWaitSurface, nil
	}
	if err != nil {
		return FrameError, err
	}
	if rebuilt {
		c.recorder.MarkDirty()
	}

	f := &Frame{
		ID:           c.frameID,
		View:         view,
		Width:        c.chain.width,
		Height:       c.chain.height,
		HandlesDirty: rebuilt,
		WaitValue:    c.tl.Value(),
	}

	img, _, err := c.recorder.Begin(0, view, c.format, c.clearColor)
	if err != nil {
		return FrameError, fmt.Errorf("canvas: begin recording: %w", err)
	}
	c.recording = img

	if c.drawCallback != nil {
		c.drawCallback(c, f, c.userData)
	}

	f.Buffer = img.Built()
	c.pending = f
	return FrameReady, nil
}

// Record replays one record-phase request's content against the
// frame currently open for recording (spec.md §4.5's viewport/draw/
// push/record-end content types). Call this from the draw callback
// passed to SetDrawCallback.
func (c *Canvas[U]) Record(content protocol.Content) error {
	if c.recording == nil {
		return fmt.Errorf("canvas: record called outside a draw callback")
	}
	return c.recorder.Apply(c.recording, content)
}

// Submit submits the current frame's command buffer with a timeline
// wait-value v and signal-value v+1, presents, and appends a timing
// sample (spec.md §4.6 "submit(Canvas)").
func (c *Canvas[U]) Submit(timing FrameTiming) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := c.pending
	if f == nil {
		return fmt.Errorf("canvas: submit called without a pending frame")
	}
	c.pending = nil
	c.recording = nil

	if f.Buffer != nil {
		c.dev.Queue.Submit(f.Buffer)
	}
	c.chain.Present()

	f.SignalValue = c.tl.Signal()
	timing.FrameID = f.ID
	c.timings.Push(timing)

	c.started = true
	c.frameID++
	return nil
}

// Timings returns the most recent timing samples, oldest first
// (spec.md §4.6 "timings(Canvas) -> ring-buffer of ... the most recent
// N samples").
func (c *Canvas[U]) Timings() []FrameTiming {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timings.Snapshot()
}

// Destroy quiesces the device and tears down the timeline, swapchain,
// and recorder state (spec.md §4.6 "destroy(Canvas)"). The device wait
// is unbounded but sequenced after all outstanding submissions.
func (c *Canvas[U]) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dev.WaitDone()
	c.chain.Release()
	c.backend.Destroy()
}
