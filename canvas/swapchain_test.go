// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rajveermalviya/go-webgpu/wgpu"
)

func TestNewSwapchainStartsUninitialized(t *testing.T) {
	s := newSwapchain(nil, nil, 640, 480, wgpu.TextureFormatBGRA8UnormSrgb, wgpu.PresentModeFifo)
	assert.Equal(t, stateUninitialized, s.state)
	assert.Equal(t, 640, s.width)
	assert.Equal(t, 480, s.height)
}

func TestMarkOutOfDateTransitionsReadyToOutOfDate(t *testing.T) {
	s := newSwapchain(nil, nil, 640, 480, wgpu.TextureFormatBGRA8UnormSrgb, wgpu.PresentModeFifo)
	s.state = stateReady

	s.MarkOutOfDate(1280, 720)

	assert.Equal(t, stateOutOfDate, s.state)
	assert.Equal(t, 1280, s.width)
	assert.Equal(t, 720, s.height)
	assert.Equal(t, uint32(1280), s.config.Width)
	assert.Equal(t, uint32(720), s.config.Height)
}

func TestMarkOutOfDateIsNoopOutsideReady(t *testing.T) {
	s := newSwapchain(nil, nil, 640, 480, wgpu.TextureFormatBGRA8UnormSrgb, wgpu.PresentModeFifo)
	assert.Equal(t, stateUninitialized, s.state)

	s.MarkOutOfDate(1280, 720)

	// Width/height still track the resize even though the state machine
	// stays uninitialized (no "ready" state to fall out of).
	assert.Equal(t, stateUninitialized, s.state)
	assert.Equal(t, 1280, s.width)
}

func TestAcquireReportsWaitSurfaceOnZeroExtent(t *testing.T) {
	s := newSwapchain(nil, nil, 0, 0, wgpu.TextureFormatBGRA8UnormSrgb, wgpu.PresentModeFifo)
	view, rebuilt, err := s.Acquire(context.Background())
	assert.Nil(t, view)
	assert.False(t, rebuilt)
	assert.ErrorIs(t, err, ErrWaitSurface)
}
