// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "github.com/chewxy/math32"

// Matrix4 is a column-major 4x4 single-precision matrix, matching the
// OpenGL/Vulkan clip-space convention used throughout the pack
// (Carmen-Shannon-oxy-go/common.Identity/Mul4).
type Matrix4 [16]float32

// Identity4 returns the 4x4 identity matrix.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns a*b (column-major composition: applying the result to a
// vector first applies b, then a).
func (a Matrix4) Mul(b Matrix4) Matrix4 {
	var out Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// Translation returns a translation matrix by v.
func Translation(v Vector3) Matrix4 {
	m := Identity4()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scaling returns a non-uniform scale matrix.
func Scaling(v Vector3) Matrix4 {
	m := Identity4()
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

// Perspective returns a perspective projection matrix with the given
// vertical field of view (radians), aspect ratio, and near/far planes,
// mapping view-space depth -near..-far onto a [0,1] clip-space depth
// range (grounded on Carmen-Shannon-oxy-go/common.Perspective).
func Perspective(fovY, aspect, near, far float32) Matrix4 {
	f := 1 / math32.Tan(fovY/2)
	m := Matrix4{}
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1
	m[14] = (far * near) / (near - far)
	return m
}

// LookAt returns a right-handed view matrix for a camera at eye looking
// toward center with the given up vector.
func LookAt(eye, center, up Vector3) Matrix4 {
	f := center.Sub(eye).Normal()
	s := f.Cross(up).Normal()
	u := s.Cross(f)
	return Matrix4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// FromQuat returns the rotation matrix equivalent to q, composed with a
// translation to center.
func FromQuat(q Quat, center Vector3) Matrix4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	m := Matrix4{
		1 - (yy + zz), xy + wz, xz - wy, 0,
		xy - wz, 1 - (xx + zz), yz + wx, 0,
		xz + wy, yz - wx, 1 - (xx + yy), 0,
		center.X, center.Y, center.Z, 1,
	}
	return m
}
