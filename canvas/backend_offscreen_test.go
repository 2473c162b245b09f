// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"datoviz.org/dvz/input"
)

func TestOffscreenBackendCreateSetsSize(t *testing.T) {
	b := NewOffscreenBackend()
	require := assert.New(t)
	require.NoError(b.Create(320, 200, "test"))

	w, h := b.Size()
	require.Equal(320, w)
	require.Equal(200, h)
	require.False(b.ShouldClose())
}

func TestOffscreenBackendSurfaceUnavailable(t *testing.T) {
	b := NewOffscreenBackend()
	_, err := b.Surface(nil)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestOffscreenBackendDestroySetsShouldClose(t *testing.T) {
	b := NewOffscreenBackend()
	require := assert.New(t)
	require.NoError(b.Create(10, 10, "test"))
	b.Destroy()
	require.True(b.ShouldClose())
}

func TestOffscreenBackendResizeEmitsEvent(t *testing.T) {
	b := NewOffscreenBackend()
	require := assert.New(t)
	require.NoError(b.Create(100, 100, "test"))

	var got input.ResizeEvent
	b.Router().Subscribe(input.KindResize, func(ev input.Event, _ any) {
		got = *ev.Resize
	}, nil)

	b.Resize(640, 480)

	w, h := b.Size()
	require.Equal(640, w)
	require.Equal(480, h)
	require.Equal(640, got.Width)
	require.Equal(480, got.Height)
}

func TestOffscreenBackendKind(t *testing.T) {
	assert.Equal(t, BackendOffscreen, NewOffscreenBackend().Kind())
}
