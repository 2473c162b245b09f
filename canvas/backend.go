// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package canvas implements the canvas and frame loop (spec C6):
// swapchain acquisition, per-frame command-buffer submission against a
// timeline counter, presentation, and the windowing backend
// abstraction that the desktop/offscreen/stub backends implement.
package canvas

import (
	"errors"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"datoviz.org/dvz/input"
)

// BackendKind names a Backend implementation (§6 "named backends:
// glfw, offscreen, qt (stub)").
type BackendKind int

const (
	BackendGLFW BackendKind = iota
	BackendOffscreen
	BackendQt
)

func (k BackendKind) String() string {
	switch k {
	case BackendGLFW:
		return "glfw"
	case BackendOffscreen:
		return "offscreen"
	case BackendQt:
		return "qt"
	default:
		return "unknown"
	}
}

// ErrBackendUnavailable is returned by a named backend that has no
// implementation in this build (the "qt" stub).
var ErrBackendUnavailable = errors.New("canvas: backend unavailable")

// Backend is the windowing contract a Canvas drives: probe/create,
// destroy, poll, request_frame, and surface, per spec.md §6's
// "windowing backend interface".
type Backend interface {
	Kind() BackendKind

	// Create opens (or allocates, for headless backends) a
	// width x height drawing surface titled title.
	Create(width, height int, title string) error

	// Destroy tears down the backend's window/surface resources.
	Destroy()

	// Poll services the backend's event queue once, delivering any
	// pending events to Router().
	Poll()

	// RequestFrame signals that the backend should schedule another
	// call into the canvas's draw loop. Every backend in this package
	// implements it as a no-op; frames are driven by the host calling
	// Canvas.Frame and Canvas.Submit.
	RequestFrame()

	// Surface creates (or returns the cached) WebGPU surface for this
	// backend's window, or returns ErrBackendUnavailable if this
	// backend has no presentable surface (offscreen, qt stub).
	Surface(instance *wgpu.Instance) (*wgpu.Surface, error)

	// Size returns the current drawable size in pixels.
	Size() (int, int)

	// ShouldClose reports whether the backend's window has received a
	// close request.
	ShouldClose() bool

	// Router returns the input.Router fed by this backend's events.
	Router() *input.Router
}
