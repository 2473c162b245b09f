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

// pitchLimit keeps the camera from flipping over the pole (spec.md
// §4.9 "Pitch is clamped to ±π/2 − ε to avoid gimbal lock").
const pitchLimit = cmath.Pi/2 - 0.01

// Fly is a first-person camera: left-drag looks around, right-drag
// strafes, wheel and the arrow keys move along the view axes, and
// double-click resets to the pose captured at construction (spec.md
// §4.9 "Fly").
type Fly struct {
	position           math32.Vector3
	yaw, pitch, roll   float32
	initialPosition    math32.Vector3
	initialYaw         float32
	initialPitch       float32
	initialRoll        float32
	invertX, invertY   bool
	dragStartYaw       float32
	dragStartPitch     float32
	dragStartRight     math32.Vector3
	dragStartForward   math32.Vector3
	dragStartPosition  math32.Vector3
	moveSpeed, lookGain float32

	onChange OnChange
}

// NewFly returns a Fly camera at position looking along the given yaw
// (radians about +Y) and pitch (radians above the horizon); that pose
// is captured as the double-click reset target.
func NewFly(position math32.Vector3, yaw, pitch float32, onChange OnChange) *Fly {
	return &Fly{
		position:        position,
		yaw:             yaw,
		pitch:           pitch,
		initialPosition: position,
		initialYaw:      yaw,
		initialPitch:    pitch,
		moveSpeed:       1,
		lookGain:        0.005,
		onChange:        onChange,
	}
}

// SetInvert sets per-axis mouse-look inversion (spec.md §4.9 "Mouse
// axis inversion is a boolean flag per instance").
func (f *Fly) SetInvert(invertX, invertY bool) { f.invertX, f.invertY = invertX, invertY }

// basis returns the camera's forward, right, and up axes for the
// current yaw/pitch/roll.
func (f *Fly) basis() (forward, right, up math32.Vector3) {
	forward = math32.Vector3{
		X: cmath.Cos(f.pitch) * cmath.Sin(f.yaw),
		Y: cmath.Sin(f.pitch),
		Z: cmath.Cos(f.pitch) * cmath.Cos(f.yaw),
	}
	worldUp := math32.Vector3{Y: 1}
	right = worldUp.Cross(forward).Normal()
	up = forward.Cross(right).Normal()
	if f.roll != 0 {
		var q math32.Quat
		q.SetFromAxisAngle(forward, f.roll)
		up = rotateVector(q, up)
		right = forward.Cross(up).Normal()
	}
	return
}

// rotateVector rotates v by unit quaternion q.
func rotateVector(q math32.Quat, v math32.Vector3) math32.Vector3 {
	qv := math32.Quat{X: v.X, Y: v.Y, Z: v.Z, W: 0}
	conj := math32.Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
	r := q.Mul(qv).Mul(conj)
	return math32.Vector3{X: r.X, Y: r.Y, Z: r.Z}
}

func (f *Fly) mvp() math32.MVP {
	m := math32.DefaultMVP()
	forward, _, up := f.basis()
	m.View = math32.LookAt(f.position, f.position.Add(forward), up)
	return m
}

func (f *Fly) notify() {
	if f.onChange != nil {
		f.onChange(f.mvp())
	}
}

// wrapRoll wraps r into (-π, +π] (spec.md §4.9 "roll is wrapped to
// (−π, +π]").
func wrapRoll(r float32) float32 {
	for r > cmath.Pi {
		r -= 2 * cmath.Pi
	}
	for r <= -cmath.Pi {
		r += 2 * cmath.Pi
	}
	return r
}

func clampPitch(p float32) float32 {
	if p > pitchLimit {
		return pitchLimit
	}
	if p < -pitchLimit {
		return -pitchLimit
	}
	return p
}

// HandleGesture applies g to the look direction (left-drag) or strafe
// position (right-drag), or resets to the captured initial pose on a
// double-click.
func (f *Fly) HandleGesture(g gesture.Gesture) {
	switch g.Kind {
	case gesture.KindDragStart:
		f.dragStartYaw, f.dragStartPitch = f.yaw, f.pitch
		f.dragStartForward, f.dragStartRight, _ = f.basis()
		f.dragStartPosition = f.position

	case gesture.KindDrag:
		switch g.Button {
		case input.MouseButtonLeft:
			dx, dy := float32(g.Shift[0]), float32(g.Shift[1])
			if f.invertX {
				dx = -dx
			}
			if f.invertY {
				dy = -dy
			}
			f.yaw = f.dragStartYaw - dx*f.lookGain
			f.pitch = clampPitch(f.dragStartPitch - dy*f.lookGain)
			f.notify()
		case input.MouseButtonRight:
			dx, dy := float32(g.Shift[0]), float32(g.Shift[1])
			f.position = f.dragStartPosition.
				Add(f.dragStartRight.MulScalar(-dx * 0.01)).
				Add(math32.Vector3{Y: dy * 0.01})
			f.notify()
		}

	case gesture.KindDoubleClick:
		f.position = f.initialPosition
		f.yaw, f.pitch, f.roll = f.initialYaw, f.initialPitch, f.initialRoll
		f.notify()
	}
}

// Wheel translates the camera forward (negative deltaY) or backward
// (positive deltaY) along its view axis.
func (f *Fly) Wheel(deltaY float32) {
	forward, _, _ := f.basis()
	f.position = f.position.Add(forward.MulScalar(-deltaY * f.moveSpeed * 0.1))
	f.notify()
}

// HandleKey moves the camera along its view axes on arrow-key press
// or repeat (spec.md §4.9 "arrow keys add translation").
func (f *Fly) HandleKey(e input.KeyboardEvent) {
	if e.Action != input.KeyPress && e.Action != input.KeyRepeat {
		return
	}
	forward, right, _ := f.basis()
	switch e.Key {
	case input.KeyUp:
		f.position = f.position.Add(forward.MulScalar(f.moveSpeed))
	case input.KeyDown:
		f.position = f.position.Add(forward.MulScalar(-f.moveSpeed))
	case input.KeyRight:
		f.position = f.position.Add(right.MulScalar(f.moveSpeed))
	case input.KeyLeft:
		f.position = f.position.Add(right.MulScalar(-f.moveSpeed))
	default:
		return
	}
	f.notify()
}

// Roll applies a relative roll of delta radians, wrapped to (−π, +π].
func (f *Fly) Roll(delta float32) {
	f.roll = wrapRoll(f.roll + delta)
	f.notify()
}
