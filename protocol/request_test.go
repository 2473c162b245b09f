// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCanvasEncodeDecode(t *testing.T) {
	in := CreateCanvas{Width: 800, Height: 600, ClearColor: [4]float32{0.1, 0.2, 0.3, 1}, CanvasFlags: CanvasFlagsVSync}
	buf := in.Encode(nil)
	var out CreateCanvas
	n, err := out.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, in, out)
}

func TestUploadDatEncodeDecode(t *testing.T) {
	in := UploadDat{Offset: 16, Data: []byte{1, 2, 3, 4, 5}}
	buf := in.Encode(nil)
	var out UploadDat
	n, err := out.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, in.Offset, out.Offset)
	assert.Equal(t, in.Data, out.Data)
	assert.True(t, out.Owning)
}

func TestCreateGraphicsEncodeDecode(t *testing.T) {
	in := CreateGraphics{
		Topology: TopologyTriangleList, Blend: true, DepthTest: true, PolygonFil: true, CullBack: false, FrontCCW: true,
		VertShader: ShaderID(1), FragShader: ShaderID(2),
		Bindings:   []VertexBinding{{Index: 0, Stride: 12}},
		Attributes: []VertexAttribute{{Binding: 0, Location: 0, Format: FormatR32G32B32Sfloat, Offset: 0}},
	}
	buf := in.Encode(nil)
	var out CreateGraphics
	n, err := out.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, in.Topology, out.Topology)
	assert.Equal(t, in.Bindings, out.Bindings)
	assert.Equal(t, in.Attributes, out.Attributes)
}

func TestRecordDrawEncodeDecode(t *testing.T) {
	in := RecordDraw{CanvasID: CanvasID(1), GraphicsID: GraphicsID(2), VertexCount: 100, InstanceCount: 1}
	buf := in.Encode(nil)
	var out RecordDraw
	n, err := out.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, in, out)
}

func TestRecordDrawIndexedEncodeDecode(t *testing.T) {
	in := RecordDrawIndexed{
		CanvasID: CanvasID(1), GraphicsID: GraphicsID(2),
		FirstIndex: 3, VertexOffset: -5, IndexCount: 36, FirstInstance: 0, InstanceCount: 2,
	}
	buf := in.Encode(nil)
	var out RecordDrawIndexed
	n, err := out.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, in, out)
}

func TestRecordDrawIndirectEncodeDecode(t *testing.T) {
	in := RecordDrawIndirect{
		CanvasID: CanvasID(1), GraphicsID: GraphicsID(2),
		IndirectDat: DatID(9), IndirectOffset: 64, DrawCount: 3,
	}
	buf := in.Encode(nil)
	var out RecordDrawIndirect
	n, err := out.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, in, out)
}

func TestRecordDrawIndexedIndirectEncodeDecode(t *testing.T) {
	in := RecordDrawIndexedIndirect{
		CanvasID: CanvasID(1), GraphicsID: GraphicsID(2),
		IndirectDat: DatID(9), IndirectOffset: 64, DrawCount: 1,
	}
	buf := in.Encode(nil)
	var out RecordDrawIndexedIndirect
	n, err := out.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, in, out)
}

func TestBindVertexEncodeDecode(t *testing.T) {
	in := BindVertex{GraphicsID: GraphicsID(1), BindingIdx: 0, DatID: DatID(9), Offset: 32}
	buf := in.Encode(nil)
	var out BindVertex
	n, err := out.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, in, out)
}
