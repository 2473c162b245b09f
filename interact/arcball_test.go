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

func TestArcballLeftDragRotates(t *testing.T) {
	changes := 0
	a := NewArcball(math32.Vector3{}, 5, func(math32.MVP) { changes++ })
	a.SetViewport(200, 200)

	a.HandleGesture(gesture.Gesture{Kind: gesture.KindDragStart, Button: input.MouseButtonLeft, PressPos: [2]float64{100, 100}})
	a.HandleGesture(gesture.Gesture{Kind: gesture.KindDrag, Button: input.MouseButtonLeft, PressPos: [2]float64{100, 100}, LastPos: [2]float64{150, 100}})

	assert.Equal(t, 1, changes)
	assert.NotEqual(t, math32.IdentityQuat(), a.rotation)
}

func TestArcballDragToSameSpotIsIdentity(t *testing.T) {
	a := NewArcball(math32.Vector3{}, 5, nil)
	a.SetViewport(200, 200)

	a.HandleGesture(gesture.Gesture{Kind: gesture.KindDragStart, Button: input.MouseButtonLeft, PressPos: [2]float64{100, 100}})
	a.HandleGesture(gesture.Gesture{Kind: gesture.KindDrag, Button: input.MouseButtonLeft, PressPos: [2]float64{100, 100}, LastPos: [2]float64{100, 100}})

	assert.Equal(t, math32.IdentityQuat(), a.rotation)
}

func TestArcballRightDragPansCenter(t *testing.T) {
	a := NewArcball(math32.Vector3{}, 5, nil)
	a.SetViewport(200, 200)

	a.HandleGesture(gesture.Gesture{Kind: gesture.KindDragStart, Button: input.MouseButtonRight, PressPos: [2]float64{100, 100}})
	a.HandleGesture(gesture.Gesture{Kind: gesture.KindDrag, Button: input.MouseButtonRight, Shift: [2]float64{20, 0}})

	assert.NotEqual(t, float32(0), a.center.X)
}

func TestArcballDoubleClickResetsRotation(t *testing.T) {
	a := NewArcball(math32.Vector3{}, 5, nil)
	a.SetViewport(200, 200)
	a.HandleGesture(gesture.Gesture{Kind: gesture.KindDragStart, Button: input.MouseButtonLeft, PressPos: [2]float64{100, 100}})
	a.HandleGesture(gesture.Gesture{Kind: gesture.KindDrag, Button: input.MouseButtonLeft, PressPos: [2]float64{100, 100}, LastPos: [2]float64{150, 100}})

	a.HandleGesture(gesture.Gesture{Kind: gesture.KindDoubleClick})

	assert.Equal(t, math32.IdentityQuat(), a.rotation)
}

func TestArcballWheelShrinksDistance(t *testing.T) {
	a := NewArcball(math32.Vector3{}, 10, nil)
	a.Wheel(-1)
	assert.Less(t, a.distance, float32(10))
}

func TestArcballWheelNeverGoesNonPositive(t *testing.T) {
	a := NewArcball(math32.Vector3{}, 10, nil)
	for i := 0; i < 50; i++ {
		a.Wheel(-10)
	}
	assert.Greater(t, a.distance, float32(0))
}
