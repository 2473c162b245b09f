// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"datoviz.org/dvz/gpu"
)

// swapchainState is the canvas's swapchain state machine (spec.md
// §4.6 "States = {uninitialized, ready, out-of-date, lost}").
type swapchainState int

const (
	stateUninitialized swapchainState = iota
	stateReady
	stateOutOfDate
	stateLost
)

// ErrWaitSurface is returned by acquire when the surface is
// transiently unusable (e.g. a minimized or zero-extent window); the
// caller should retry on the next frame without advancing the frame id
// (spec.md §4.6 "An acquire result of 'surface not ready' ... yields
// WAIT-SURFACE and does not advance the frame id").
var ErrWaitSurface = errors.New("canvas: surface not ready")

// ErrFenceTimeout is returned by Acquire when no current texture view
// becomes available within the 100ms fence-wait timeout (spec.md §4.6
// "Fence waits have a 100ms timeout").
var ErrFenceTimeout = errors.New("canvas: fence wait timeout")

const fenceTimeout = 100 * time.Millisecond

// swapchain owns the WebGPU surface and swap chain for a presentable
// canvas, and the state machine around resize/acquire, grounded on the
// teacher's gpu/surface.go Get CurrentTexture/Present/ReConfigSwapChain
// lifecycle (adapted from the cogentcore/webgpu binding's API shape to
// this module's rajveermalviya/go-webgpu/wgpu binding).
type swapchain struct {
	dev    *gpu.Device
	iface  *wgpu.Surface
	config *wgpu.SwapChainDescriptor
	chain  *wgpu.SwapChain

	state  swapchainState
	width  int
	height int

	cur *wgpu.TextureView
}

func newSwapchain(dev *gpu.Device, surf *wgpu.Surface, width, height int, format wgpu.TextureFormat, present wgpu.PresentMode) *swapchain {
	return &swapchain{
		dev:   dev,
		iface: surf,
		width: width, height: height,
		config: &wgpu.SwapChainDescriptor{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      format,
			Width:       uint32(width),
			Height:      uint32(height),
			PresentMode: present,
		},
		state: stateUninitialized,
	}
}

func (s *swapchain) create() error {
	chain, err := s.dev.Device.CreateSwapChain(s.iface, s.config)
	if err != nil {
		return fmt.Errorf("canvas: create swap chain: %w", err)
	}
	s.chain = chain
	s.state = stateReady
	return nil
}

// MarkOutOfDate transitions ready -> out-of-date on a backend resize
// (spec.md §4.6 "a backend resize moves ready -> out-of-date").
func (s *swapchain) MarkOutOfDate(width, height int) {
	s.width, s.height = width, height
	s.config.Width, s.config.Height = uint32(width), uint32(height)
	if s.state == stateReady {
		s.state = stateOutOfDate
	}
}

// Acquire returns the current frame's texture view, rebuilding the
// swap chain first if it is out-of-date or not yet created (spec.md
// §4.6 "the next acquire rebuilds (out-of-date -> ready) and marks all
// frames' handles_dirty"). rebuilt reports whether a rebuild happened,
// so the caller can mark every Frame's HandlesDirty bit. The acquire
// itself is bounded by the 100ms fence-wait timeout, standing in for
// vk.WaitForFences via repeated Device.Poll calls (the wgpu binding has
// no native fence-wait-with-timeout primitive). A swapchain without a
// surface (offscreen/qt-stub backends) always reports ErrWaitSurface.
func (s *swapchain) Acquire(ctx context.Context) (view *wgpu.TextureView, rebuilt bool, err error) {
	if s.iface == nil || s.width == 0 || s.height == 0 {
		return nil, false, ErrWaitSurface
	}
	if s.state == stateUninitialized || s.state == stateOutOfDate {
		if s.chain != nil {
			s.dev.WaitDone()
			s.chain.Release()
			s.chain = nil
		}
		if err := s.create(); err != nil {
			s.state = stateLost
			return nil, false, err
		}
		rebuilt = true
	}

	deadline := time.Now().Add(fenceTimeout)
	for {
		v, acquireErr := s.chain.GetCurrentTextureView()
		if acquireErr == nil {
			s.cur = v
			return v, rebuilt, nil
		}
		if time.Now().After(deadline) {
			return nil, rebuilt, ErrFenceTimeout
		}
		if ctx.Err() != nil {
			return nil, rebuilt, ctx.Err()
		}
		s.dev.Device.Poll(false, nil)
		time.Sleep(time.Millisecond)
	}
}

// Present presents the current frame's texture view.
func (s *swapchain) Present() {
	s.chain.Present()
	if s.cur != nil {
		s.cur.Release()
		s.cur = nil
	}
}

// Release tears down the swap chain and surface.
func (s *swapchain) Release() {
	if s.chain != nil {
		s.dev.WaitDone()
		s.chain.Release()
		s.chain = nil
	}
	if s.iface != nil {
		s.iface.Release()
		s.iface = nil
	}
}
