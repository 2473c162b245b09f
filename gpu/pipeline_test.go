// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"datoviz.org/dvz/protocol"
)

func sampleGraphics() protocol.CreateGraphics {
	return protocol.CreateGraphics{
		Topology:   protocol.TopologyTriangleList,
		Blend:      true,
		DepthTest:  true,
		PolygonFil: true,
		VertShader: protocol.ShaderID(1),
		FragShader: protocol.ShaderID(2),
		Bindings: []protocol.VertexBinding{
			{Index: 1, Stride: 16},
			{Index: 0, Stride: 8},
		},
		Attributes: []protocol.VertexAttribute{
			{Binding: 1, Location: 0, Format: protocol.FormatR32Sfloat, Offset: 0},
			{Binding: 0, Location: 1, Format: protocol.FormatR32Sfloat, Offset: 4},
			{Binding: 0, Location: 0, Format: protocol.FormatR32Sfloat, Offset: 0},
		},
	}
}

// Fingerprint must be stable across repeated calls on the same
// descriptor (required for the pipeline cache's map lookup).
func TestFingerprintIsDeterministic(t *testing.T) {
	req := sampleGraphics()
	a := Fingerprint(req)
	b := Fingerprint(req)
	assert.Equal(t, a, b)
}

// Two descriptors differing only in the order their bindings and
// attributes were appended in must hash identically: equivalence is
// defined modulo canonical ordering, not append order.
func TestFingerprintIgnoresBindingAttributeOrder(t *testing.T) {
	req1 := sampleGraphics()

	req2 := sampleGraphics()
	req2.Bindings = []protocol.VertexBinding{
		{Index: 0, Stride: 8},
		{Index: 1, Stride: 16},
	}
	req2.Attributes = []protocol.VertexAttribute{
		{Binding: 0, Location: 0, Format: protocol.FormatR32Sfloat, Offset: 0},
		{Binding: 1, Location: 0, Format: protocol.FormatR32Sfloat, Offset: 0},
		{Binding: 0, Location: 1, Format: protocol.FormatR32Sfloat, Offset: 4},
	}

	assert.Equal(t, Fingerprint(req1), Fingerprint(req2))
}

// sortBindings/sortAttributes must not mutate the caller's slices in
// a way that would make the first Fingerprint call change the result
// of a later one on the same *original* (unsorted) descriptor value.
func TestFingerprintDoesNotMutateCallerSlices(t *testing.T) {
	req := sampleGraphics()
	before := append([]protocol.VertexBinding(nil), req.Bindings...)

	_ = Fingerprint(req)

	assert.Equal(t, before, req.Bindings)
}

// A scalar field difference (here: CullBack) must change the
// fingerprint, guarding against the byte-overlap class of bug where
// adjacent scalar fields silently clobber each other in the hash
// input buffer.
func TestFingerprintDistinguishesScalarFields(t *testing.T) {
	req1 := sampleGraphics()
	req2 := sampleGraphics()
	req2.CullBack = true

	assert.NotEqual(t, Fingerprint(req1), Fingerprint(req2))
}

func TestFingerprintDistinguishesShaders(t *testing.T) {
	req1 := sampleGraphics()
	req2 := sampleGraphics()
	req2.FragShader = protocol.ShaderID(99)

	assert.NotEqual(t, Fingerprint(req1), Fingerprint(req2))
}
