// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"datoviz.org/dvz/gesture"
	"datoviz.org/dvz/input"
	"datoviz.org/dvz/math32"
)

func TestPanzoomLeftDragPans(t *testing.T) {
	var got math32.MVP
	p := NewPanzoom(func(m math32.MVP) { got = m })

	p.HandleGesture(gesture.Gesture{Kind: gesture.KindDrag, Button: input.MouseButtonLeft, Shift: [2]float64{10, -4}})

	assert.Equal(t, float32(10), p.pan.X)
	assert.Equal(t, float32(-4), p.pan.Y)
	assert.NotEqual(t, math32.MVP{}, got)
}

func TestPanzoomRightDragIsIgnored(t *testing.T) {
	p := NewPanzoom(nil)
	p.HandleGesture(gesture.Gesture{Kind: gesture.KindDrag, Button: input.MouseButtonRight, Shift: [2]float64{10, -4}})
	assert.Equal(t, math32.Vector2{}, p.pan)
}

func TestPanzoomAxisLockZeroesSmallerAxis(t *testing.T) {
	p := NewPanzoom(nil)
	p.SetAxisLock(true)

	p.HandleGesture(gesture.Gesture{Kind: gesture.KindDrag, Button: input.MouseButtonLeft, Shift: [2]float64{10, 2}})
	assert.Equal(t, float32(10), p.pan.X)
	assert.Equal(t, float32(0), p.pan.Y)
}

func TestPanzoomDoubleClickResets(t *testing.T) {
	p := NewPanzoom(nil)
	p.HandleGesture(gesture.Gesture{Kind: gesture.KindDrag, Button: input.MouseButtonLeft, Shift: [2]float64{10, 2}})
	p.Wheel(5, math32.Vector2{})

	p.HandleGesture(gesture.Gesture{Kind: gesture.KindDoubleClick})

	assert.Equal(t, math32.Vector2{}, p.pan)
	assert.Equal(t, float32(1), p.zoom)
}

func TestPanzoomWheelZoomsIn(t *testing.T) {
	p := NewPanzoom(nil)
	p.Wheel(1, math32.Vector2{})
	assert.Greater(t, p.zoom, float32(1))
}

func TestPanzoomWheelNeverGoesNonPositive(t *testing.T) {
	p := NewPanzoom(nil)
	for i := 0; i < 50; i++ {
		p.Wheel(-10, math32.Vector2{})
	}
	assert.Greater(t, p.zoom, float32(0))
}
