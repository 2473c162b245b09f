// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import (
	cmath "github.com/chewxy/math32"

	"datoviz.org/dvz/gesture"
	"datoviz.org/dvz/input"
	"datoviz.org/dvz/math32"
)

// Arcball maps a left-drag to a rotation via the classic "cursor on a
// unit sphere" construction, pans the focus point on right-drag, and
// dollies the camera distance on wheel (spec.md §4.9 "Arcball").
type Arcball struct {
	center   math32.Vector3 // focus point
	distance float32
	rotation math32.Quat

	viewportW, viewportH float32

	dragStartRotation math32.Quat
	dragStartVec      math32.Vector3
	dragStartCenter   math32.Vector3

	onChange OnChange
}

// NewArcball returns an Arcball looking at center from distance, with
// no initial rotation.
func NewArcball(center math32.Vector3, distance float32, onChange OnChange) *Arcball {
	return &Arcball{
		center:   center,
		distance: distance,
		rotation: math32.IdentityQuat(),
		onChange: onChange,
	}
}

// SetViewport records the canvas size used to map cursor coordinates
// onto the unit sphere.
func (a *Arcball) SetViewport(w, h float32) { a.viewportW, a.viewportH = w, h }

func (a *Arcball) mvp() math32.MVP {
	m := math32.DefaultMVP()
	m.View = math32.FromQuat(a.rotation, math32.Vector3{}).
		Mul(math32.Translation(math32.Vector3{Z: -a.distance}))
	m.Model = math32.Translation(a.center)
	return m
}

func (a *Arcball) notify() {
	if a.onChange != nil {
		a.onChange(a.mvp())
	}
}

// spherePoint projects a pixel position onto the unit arcball sphere,
// clamping to the sphere's silhouette for points outside its radius.
func (a *Arcball) spherePoint(pos [2]float64) math32.Vector3 {
	w, h := a.viewportW, a.viewportH
	if w == 0 || h == 0 {
		w, h = 1, 1
	}
	r := cmath.Min(w, h) / 2
	x := (float32(pos[0]) - w/2) / r
	y := -(float32(pos[1]) - h/2) / r
	d2 := x*x + y*y
	var z float32
	if d2 <= 1 {
		z = cmath.Sqrt(1 - d2)
	} else {
		n := cmath.Sqrt(d2)
		x, y = x/n, y/n
	}
	return math32.Vector3{X: x, Y: y, Z: z}
}

// HandleGesture applies g to the arcball's rotation, focus pan, or
// reset state, depending on which button the drag started with
// (spec.md §4.9 "Left-drag maps cursor to a unit sphere ...; right-
// drag pans the focus point; double-click resets").
func (a *Arcball) HandleGesture(g gesture.Gesture) {
	switch g.Kind {
	case gesture.KindDragStart:
		a.dragStartRotation = a.rotation
		a.dragStartVec = a.spherePoint(g.PressPos)
		a.dragStartCenter = a.center

	case gesture.KindDrag:
		switch g.Button {
		case input.MouseButtonLeft:
			from := a.dragStartVec
			to := a.spherePoint(g.LastPos)
			axis := from.Cross(to)
			dot := from.Dot(to)
			if axis.Len() < 1e-6 {
				a.rotation = a.dragStartRotation
			} else {
				axis = axis.Normal()
				angle := cmath.Acos(clamp(dot, -1, 1))
				var delta math32.Quat
				delta.SetFromAxisAngle(axis, angle)
				a.rotation = delta.Mul(a.dragStartRotation).Normal()
			}
			a.notify()
		case input.MouseButtonRight:
			shift := g.Shift
			a.center = a.dragStartCenter.Add(math32.Vector3{X: float32(-shift[0]) * 0.01, Y: float32(shift[1]) * 0.01})
			a.notify()
		}

	case gesture.KindDoubleClick:
		a.rotation = math32.IdentityQuat()
		a.notify()
	}
}

// Wheel dollies the camera distance (spec.md §4.9 "wheel changes the
// camera distance").
func (a *Arcball) Wheel(deltaY float32) {
	a.distance *= 1 + deltaY*0.1
	if a.distance < 0.01 {
		a.distance = 0.01
	}
	a.notify()
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
