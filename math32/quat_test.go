// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityMul(t *testing.T) {
	id := Identity4()
	got := id.Mul(id)
	assert.Equal(t, id, got)
}

func TestQuatIdentityRotation(t *testing.T) {
	q := IdentityQuat()
	m := FromQuat(q, Vector3{})
	assert.InDeltaSlice(t, []float32(Identity4()[:]), []float32(m[:]), 1e-6)
}

func TestSetFromAxisAngleUnitQuat(t *testing.T) {
	q := Quat{}
	q.SetFromAxisAngle(Vector3{X: 1}, 3.14159265/2)
	n := q.Normal()
	assert.InDelta(t, 1.0, float64(n.X*n.X+n.Y*n.Y+n.Z*n.Z+n.W*n.W), 1e-5)
}

func TestVector3CrossOrthogonal(t *testing.T) {
	x := Vector3{X: 1}
	y := Vector3{Y: 1}
	z := x.Cross(y)
	assert.InDelta(t, 0, z.Dot(x), 1e-6)
	assert.InDelta(t, 0, z.Dot(y), 1e-6)
}
