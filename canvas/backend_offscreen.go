// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"github.com/rajveermalviya/go-webgpu/wgpu"

	"datoviz.org/dvz/input"
)

// OffscreenBackend is a headless backend with no window and no
// presentable surface. A canvas created on it has no image to render
// into: Canvas.Frame reports FrameWaitSurface on every call, so the draw
// callback never runs. It lets tests drive size tracking and resize
// events without a display.
type OffscreenBackend struct {
	router       *input.Router
	width, height int
	closed       bool
}

// NewOffscreenBackend returns an unopened offscreen backend.
func NewOffscreenBackend() *OffscreenBackend {
	return &OffscreenBackend{router: input.NewRouter()}
}

func (b *OffscreenBackend) Kind() BackendKind { return BackendOffscreen }

func (b *OffscreenBackend) Create(width, height int, _ string) error {
	b.width, b.height = width, height
	return nil
}

func (b *OffscreenBackend) Destroy() { b.closed = true }

func (b *OffscreenBackend) Poll() {}

func (b *OffscreenBackend) RequestFrame() {}

// Surface always fails: an offscreen backend has no window to attach
// a WebGPU surface to. Canvas treats this error as "no presentable
// surface" and reports FrameWaitSurface from every Frame.
func (b *OffscreenBackend) Surface(_ *wgpu.Instance) (*wgpu.Surface, error) {
	return nil, ErrBackendUnavailable
}

func (b *OffscreenBackend) Size() (int, int) { return b.width, b.height }

func (b *OffscreenBackend) ShouldClose() bool { return b.closed }

func (b *OffscreenBackend) Router() *input.Router { return b.router }

// Resize lets a test simulate a backend resize event without a real
// window, exercising the canvas's ready->out-of-date transition.
func (b *OffscreenBackend) Resize(width, height int) {
	b.width, b.height = width, height
	b.router.Emit(input.ResizeEv(input.ResizeEvent{Width: width, Height: height}))
}
