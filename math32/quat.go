// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "github.com/chewxy/math32"

// Quat is a single-precision quaternion, field shape and method set
// grounded on cogentcore-core/math32's quaternion_test.go
// (SetFromAxisAngle, SetFromEuler).
type Quat struct {
	X, Y, Z, W float32
}

// NewQuat returns a quaternion with the given components.
func NewQuat(x, y, z, w float32) Quat { return Quat{x, y, z, w} }

// IdentityQuat returns the identity rotation.
func IdentityQuat() Quat { return Quat{0, 0, 0, 1} }

// SetFromAxisAngle sets q to the rotation of angle radians about axis
// (which must be normalized) and returns q.
func (q *Quat) SetFromAxisAngle(axis Vector3, angle float32) *Quat {
	half := angle / 2
	s := math32.Sin(half)
	q.X = axis.X * s
	q.Y = axis.Y * s
	q.Z = axis.Z * s
	q.W = math32.Cos(half)
	return q
}

// SetFromEuler sets q from intrinsic XYZ Euler angles in radians.
func (q *Quat) SetFromEuler(e Vector3) *Quat {
	cx, sx := math32.Cos(e.X/2), math32.Sin(e.X/2)
	cy, sy := math32.Cos(e.Y/2), math32.Sin(e.Y/2)
	cz, sz := math32.Cos(e.Z/2), math32.Sin(e.Z/2)

	q.X = sx*cy*cz + cx*sy*sz
	q.Y = cx*sy*cz - sx*cy*sz
	q.Z = cx*cy*sz + sx*sy*cz
	q.W = cx*cy*cz - sx*sy*sz
	return q
}

// Mul returns q*o (apply o first, then q).
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Normal returns q normalized to unit length; the zero quaternion is
// returned as the identity.
func (q Quat) Normal() Quat {
	n := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if n == 0 {
		return IdentityQuat()
	}
	inv := 1 / n
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// MVP is the model/view/projection matrix triple shared between
// interactors and graphics pipelines (spec.md §3).
type MVP struct {
	Model, View, Proj Matrix4
}

// DefaultMVP returns the identity x identity x identity triple.
func DefaultMVP() MVP {
	id := Identity4()
	return MVP{Model: id, View: id, Proj: id}
}
