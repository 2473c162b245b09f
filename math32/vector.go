// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 provides the float32 vector, matrix, and quaternion
// types shared between the resource manager, the interactors, and the
// MVP that visuals consume. Trigonometric and root functions are taken
// from github.com/chewxy/math32 rather than converting through the
// stdlib float64 math package on every call.
package math32

import "github.com/chewxy/math32"

// Vector2 is a 2D single-precision vector.
type Vector2 struct {
	X, Y float32
}

// Add returns a+b.
func (a Vector2) Add(b Vector2) Vector2 { return Vector2{a.X + b.X, a.Y + b.Y} }

// Sub returns a-b.
func (a Vector2) Sub(b Vector2) Vector2 { return Vector2{a.X - b.X, a.Y - b.Y} }

// MulScalar returns a*s.
func (a Vector2) MulScalar(s float32) Vector2 { return Vector2{a.X * s, a.Y * s} }

// Len returns the Euclidean length of a.
func (a Vector2) Len() float32 { return math32.Sqrt(a.X*a.X + a.Y*a.Y) }

// Vector3 is a 3D single-precision vector.
type Vector3 struct {
	X, Y, Z float32
}

// Add returns a+b.
func (a Vector3) Add(b Vector3) Vector3 { return Vector3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a-b.
func (a Vector3) Sub(b Vector3) Vector3 { return Vector3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// MulScalar returns a*s.
func (a Vector3) MulScalar(s float32) Vector3 { return Vector3{a.X * s, a.Y * s, a.Z * s} }

// Dot returns the dot product of a and b.
func (a Vector3) Dot(b Vector3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross returns the cross product a×b.
func (a Vector3) Cross(b Vector3) Vector3 {
	return Vector3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the Euclidean length of a.
func (a Vector3) Len() float32 { return math32.Sqrt(a.Dot(a)) }

// Normal returns a normalized to unit length; the zero vector is
// returned unchanged.
func (a Vector3) Normal() Vector3 {
	l := a.Len()
	if l == 0 {
		return a
	}
	return a.MulScalar(1 / l)
}

// Vector4 is a homogeneous 4D single-precision vector.
type Vector4 struct {
	X, Y, Z, W float32
}
