// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interact implements the interactors (spec C9): Panzoom,
// Arcball, and Fly, each consuming gesture.Gesture values and
// producing a new math32.MVP, signaling the enclosing scene to mark
// its command buffers dirty on change.
package interact

import (
	"datoviz.org/dvz/gesture"
	"datoviz.org/dvz/input"
	"datoviz.org/dvz/math32"
)

// OnChange is called whenever an interactor updates its MVP (spec.md
// §4.9 "signals the enclosing scene to mark its command buffers
// dirty").
type OnChange func(math32.MVP)

// Panzoom pans on a left-drag and zooms around the cursor on wheel
// (spec.md §4.9 "Panzoom").
type Panzoom struct {
	base     math32.MVP
	pan      math32.Vector2
	zoom     float32
	axisLock bool

	onChange OnChange
}

// NewPanzoom returns a Panzoom with an identity MVP and unit zoom.
func NewPanzoom(onChange OnChange) *Panzoom {
	return &Panzoom{base: math32.DefaultMVP(), zoom: 1, onChange: onChange}
}

func (p *Panzoom) mvp() math32.MVP {
	m := p.base
	m.Model = math32.Translation(math32.Vector3{X: p.pan.X, Y: p.pan.Y}).
		Mul(math32.Scaling(math32.Vector3{X: p.zoom, Y: p.zoom, Z: 1}))
	return m
}

func (p *Panzoom) notify() {
	if p.onChange != nil {
		p.onChange(p.mvp())
	}
}

// HandleGesture applies g to the pan/zoom state (drag pans, wheel
// zooms, double-click resets). Panzoom does not consume wheel events
// itself — call Wheel directly, since gesture.Gesture carries no wheel
// payload (spec.md §4.8 covers pointer press/move/release only).
func (p *Panzoom) HandleGesture(g gesture.Gesture) {
	switch g.Kind {
	case gesture.KindDrag:
		if g.Button != input.MouseButtonLeft {
			return
		}
		shift := g.Shift
		if p.axisLock {
			if abs32(float32(shift[0])) > abs32(float32(shift[1])) {
				shift[1] = 0
			} else {
				shift[0] = 0
			}
		}
		p.pan = math32.Vector2{X: float32(shift[0]), Y: float32(shift[1])}
		p.notify()
	case gesture.KindDoubleClick:
		p.pan = math32.Vector2{}
		p.zoom = 1
		p.notify()
	}
}

// Wheel zooms by a factor of 1 + deltaY/10 around cursor, given in the
// same units as the pan offset, so the point under the cursor stays put
// (spec.md §4.9 "wheel zooms around the cursor").
func (p *Panzoom) Wheel(deltaY float32, cursor math32.Vector2) {
	factor := float32(1) + deltaY*0.1
	if factor <= 0 {
		factor = 0.01
	}
	p.zoom *= factor
	p.pan = cursor.Sub(cursor.Sub(p.pan).MulScalar(factor))
	p.notify()
}

// SetAxisLock toggles axis-locked panning, held while a modifier key
// is down (spec.md §4.9 "axis locks when a modifier key is held").
func (p *Panzoom) SetAxisLock(locked bool) { p.axisLock = locked }

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
