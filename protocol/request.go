// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"encoding/binary"
	"fmt"
	"math"

	"datoviz.org/dvz/id"
)

// Content is the payload of a Request. Each request kind is a distinct
// Go type implementing Content (Design Notes §9: replace the C tagged-
// union "content" field, sized to the largest payload, with a sum type —
// here, an interface with one concrete struct per kind, rather than a
// single struct big enough to hold the largest variant).
//
// Requests hold content by value, so Content lists only value-receiver
// methods. Each concrete type also has a pointer-receiver Decode that
// parses its wire encoding from src and returns the number of bytes
// consumed.
type Content interface {
	// ObjectType reports which kind of object this content applies to.
	ObjectType() ObjectType
	// Encode appends the wire encoding of the content to dst and
	// returns the result.
	Encode(dst []byte) []byte
}

// Request is a single declarative protocol record directed at the
// renderer (spec.md §3).
type Request struct {
	Version     uint32
	Action      Action
	ObjType     ObjectType
	TargetID    id.ID
	Flags       uint32
	Content     Content
	Description string
}

//////////////////////////////////////////////////////////////////////
// Canvas

// CreateCanvas is the content of a create/canvas request.
type CreateCanvas struct {
	Width, Height uint32
	ClearColor    [4]float32
	CanvasFlags   CanvasFlags
}

func (CreateCanvas) ObjectType() ObjectType { return ObjectCanvas }

func (c CreateCanvas) Encode(dst []byte) []byte {
	dst = appendU32(dst, c.Width)
	dst = appendU32(dst, c.Height)
	for _, f := range c.ClearColor {
		dst = appendF32(dst, f)
	}
	dst = appendU32(dst, uint32(c.CanvasFlags))
	return dst
}

func (c *CreateCanvas) Decode(src []byte) (int, error) {
	if len(src) < 4*4+4 {
		return 0, fmt.Errorf("protocol: CreateCanvas: short buffer")
	}
	n := 0
	c.Width, n = readU32(src, n)
	c.Height, n = readU32(src, n)
	for i := range c.ClearColor {
		c.ClearColor[i], n = readF32(src, n)
	}
	var flags uint32
	flags, n = readU32(src, n)
	c.CanvasFlags = CanvasFlags(flags)
	return n, nil
}

//////////////////////////////////////////////////////////////////////
// Dat

// CreateDat is the content of a create/dat request.
type CreateDat struct {
	Buffer BuffType
	Size   uint64
	Flags  uint32
}

func (CreateDat) ObjectType() ObjectType { return ObjectDat }

func (c CreateDat) Encode(dst []byte) []byte {
	dst = appendU32(dst, uint32(c.Buffer))
	dst = appendU64(dst, c.Size)
	dst = appendU32(dst, c.Flags)
	return dst
}

func (c *CreateDat) Decode(src []byte) (int, error) {
	if len(src) < 4+8+4 {
		return 0, fmt.Errorf("protocol: CreateDat: short buffer")
	}
	n := 0
	var bt uint32
	bt, n = readU32(src, n)
	c.Buffer = BuffType(bt)
	c.Size, n = readU64(src, n)
	c.Flags, n = readU32(src, n)
	return n, nil
}

// UploadDat is the content of an update/dat request. Owning indicates
// the Batch took an internal copy of Data so the producer may free its
// own buffer immediately (spec.md §4.2 "owning copy" option).
type UploadDat struct {
	Offset uint64
	Data   []byte
	Owning bool
}

func (UploadDat) ObjectType() ObjectType { return ObjectDat }

func (c UploadDat) Encode(dst []byte) []byte {
	dst = appendU64(dst, c.Offset)
	dst = appendU64(dst, uint64(len(c.Data)))
	dst = append(dst, c.Data...)
	return dst
}

func (c *UploadDat) Decode(src []byte) (int, error) {
	if len(src) < 16 {
		return 0, fmt.Errorf("protocol: UploadDat: short buffer")
	}
	n := 0
	c.Offset, n = readU64(src, n)
	var size uint64
	size, n = readU64(src, n)
	if uint64(len(src)-n) < size {
		return 0, fmt.Errorf("protocol: UploadDat: truncated payload")
	}
	c.Data = append([]byte(nil), src[n:n+int(size)]...)
	c.Owning = true
	n += int(size)
	return n, nil
}

//////////////////////////////////////////////////////////////////////
// Tex

// CreateTex is the content of a create/tex request. Shape holds up to 3
// dimensions (spec.md §3 "N ∈ {1,2,3}"); unused trailing dims are 1.
type CreateTex struct {
	Format Format
	Shape  [3]uint32
	Flags  uint32
}

func (CreateTex) ObjectType() ObjectType { return ObjectTex }

func (c CreateTex) Encode(dst []byte) []byte {
	dst = appendU32(dst, uint32(c.Format))
	for _, s := range c.Shape {
		dst = appendU32(dst, s)
	}
	dst = appendU32(dst, c.Flags)
	return dst
}

func (c *CreateTex) Decode(src []byte) (int, error) {
	if len(src) < 4*5 {
		return 0, fmt.Errorf("protocol: CreateTex: short buffer")
	}
	n := 0
	var f uint32
	f, n = readU32(src, n)
	c.Format = Format(f)
	for i := range c.Shape {
		c.Shape[i], n = readU32(src, n)
	}
	c.Flags, n = readU32(src, n)
	return n, nil
}

// UploadTex is the content of an update/tex request: a sub-region
// upload of raw texel bytes.
type UploadTex struct {
	Offset [3]uint32
	Shape  [3]uint32
	Data   []byte
}

func (UploadTex) ObjectType() ObjectType { return ObjectTex }

func (c UploadTex) Encode(dst []byte) []byte {
	for _, o := range c.Offset {
		dst = appendU32(dst, o)
	}
	for _, s := range c.Shape {
		dst = appendU32(dst, s)
	}
	dst = appendU64(dst, uint64(len(c.Data)))
	dst = append(dst, c.Data...)
	return dst
}

func (c *UploadTex) Decode(src []byte) (int, error) {
	if len(src) < 4*6+8 {
		return 0, fmt.Errorf("protocol: UploadTex: short buffer")
	}
	n := 0
	for i := range c.Offset {
		c.Offset[i], n = readU32(src, n)
	}
	for i := range c.Shape {
		c.Shape[i], n = readU32(src, n)
	}
	var size uint64
	size, n = readU64(src, n)
	if uint64(len(src)-n) < size {
		return 0, fmt.Errorf("protocol: UploadTex: truncated payload")
	}
	c.Data = append([]byte(nil), src[n:n+int(size)]...)
	n += int(size)
	return n, nil
}

//////////////////////////////////////////////////////////////////////
// Sampler / Shader

// CreateSampler is the content of a create/sampler request.
type CreateSampler struct {
	UMode, VMode, WMode uint32
	Flags               uint32
}

func (CreateSampler) ObjectType() ObjectType { return ObjectSampler }

func (c CreateSampler) Encode(dst []byte) []byte {
	dst = appendU32(dst, c.UMode)
	dst = appendU32(dst, c.VMode)
	dst = appendU32(dst, c.WMode)
	dst = appendU32(dst, c.Flags)
	return dst
}

func (c *CreateSampler) Decode(src []byte) (int, error) {
	if len(src) < 16 {
		return 0, fmt.Errorf("protocol: CreateSampler: short buffer")
	}
	n := 0
	c.UMode, n = readU32(src, n)
	c.VMode, n = readU32(src, n)
	c.WMode, n = readU32(src, n)
	c.Flags, n = readU32(src, n)
	return n, nil
}

// ShaderFormat mirrors DvzShaderFormat.
type ShaderFormat int32

const (
	ShaderSPIRV ShaderFormat = iota
	ShaderGLSL
	ShaderWGSL
)

// CreateShader is the content of a create/shader request: either
// precompiled SPIR-V bytecode or plain GLSL/WGSL source text for a GPU
// compiler (spec.md §1 Non-goals: "shaders are consumed ... not a new
// shader language").
type CreateShader struct {
	Stage  uint32
	Format ShaderFormat
	Code   []byte
}

func (CreateShader) ObjectType() ObjectType { return ObjectShader }

func (c CreateShader) Encode(dst []byte) []byte {
	dst = appendU32(dst, c.Stage)
	dst = appendU32(dst, uint32(c.Format))
	dst = appendU64(dst, uint64(len(c.Code)))
	dst = append(dst, c.Code...)
	return dst
}

func (c *CreateShader) Decode(src []byte) (int, error) {
	if len(src) < 16 {
		return 0, fmt.Errorf("protocol: CreateShader: short buffer")
	}
	n := 0
	c.Stage, n = readU32(src, n)
	var f uint32
	f, n = readU32(src, n)
	c.Format = ShaderFormat(f)
	var size uint64
	size, n = readU64(src, n)
	if uint64(len(src)-n) < size {
		return 0, fmt.Errorf("protocol: CreateShader: truncated payload")
	}
	c.Code = append([]byte(nil), src[n:n+int(size)]...)
	n += int(size)
	return n, nil
}

//////////////////////////////////////////////////////////////////////
// Graphics / compute pipelines

// VertexBinding describes one vertex buffer binding slot.
type VertexBinding struct {
	Index  uint32
	Stride uint32
}

// VertexAttribute describes one vertex attribute.
type VertexAttribute struct {
	Binding  uint32
	Location uint32
	Format   Format
	Offset   uint32
}

// CreateGraphics is the content of a create/graphics request: the
// graphics pipeline descriptor (spec.md §3).
type CreateGraphics struct {
	Topology   PrimitiveTopology
	Blend      bool
	DepthTest  bool
	PolygonFil bool // true = fill, false = line
	CullBack   bool
	FrontCCW   bool
	VertShader ShaderID
	FragShader ShaderID
	Bindings   []VertexBinding
	Attributes []VertexAttribute
	Flags      uint32
}

func (CreateGraphics) ObjectType() ObjectType { return ObjectGraphics }

func (c CreateGraphics) Encode(dst []byte) []byte {
	dst = appendU32(dst, uint32(c.Topology))
	dst = append(dst, boolByte(c.Blend), boolByte(c.DepthTest), boolByte(c.PolygonFil), boolByte(c.CullBack))
	dst = append(dst, boolByte(c.FrontCCW), 0, 0, 0)
	dst = appendU64(dst, uint64(c.VertShader))
	dst = appendU64(dst, uint64(c.FragShader))
	dst = appendU32(dst, uint32(len(c.Bindings)))
	for _, b := range c.Bindings {
		dst = appendU32(dst, b.Index)
		dst = appendU32(dst, b.Stride)
	}
	dst = appendU32(dst, uint32(len(c.Attributes)))
	for _, a := range c.Attributes {
		dst = appendU32(dst, a.Binding)
		dst = appendU32(dst, a.Location)
		dst = appendU32(dst, uint32(a.Format))
		dst = appendU32(dst, a.Offset)
	}
	dst = appendU32(dst, c.Flags)
	return dst
}

func (c *CreateGraphics) Decode(src []byte) (int, error) {
	n := 0
	var topo uint32
	topo, n = readU32(src, n)
	c.Topology = PrimitiveTopology(topo)
	if len(src) < n+8 {
		return 0, fmt.Errorf("protocol: CreateGraphics: short buffer")
	}
	c.Blend = src[n] != 0
	c.DepthTest = src[n+1] != 0
	c.PolygonFil = src[n+2] != 0
	c.CullBack = src[n+3] != 0
	c.FrontCCW = src[n+4] != 0
	n += 8
	var v, f uint64
	v, n = readU64(src, n)
	f, n = readU64(src, n)
	c.VertShader, c.FragShader = ShaderID(v), ShaderID(f)
	var nb uint32
	nb, n = readU32(src, n)
	c.Bindings = make([]VertexBinding, nb)
	for i := range c.Bindings {
		c.Bindings[i].Index, n = readU32(src, n)
		c.Bindings[i].Stride, n = readU32(src, n)
	}
	var na uint32
	na, n = readU32(src, n)
	c.Attributes = make([]VertexAttribute, na)
	for i := range c.Attributes {
		c.Attributes[i].Binding, n = readU32(src, n)
		c.Attributes[i].Location, n = readU32(src, n)
		var fmtVal uint32
		fmtVal, n = readU32(src, n)
		c.Attributes[i].Format = Format(fmtVal)
		c.Attributes[i].Offset, n = readU32(src, n)
	}
	c.Flags, n = readU32(src, n)
	return n, nil
}

// CreateCompute is the content of a create/compute request.
type CreateCompute struct {
	Shader ShaderID
	Flags  uint32
}

func (CreateCompute) ObjectType() ObjectType { return ObjectCompute }

func (c CreateCompute) Encode(dst []byte) []byte {
	dst = appendU64(dst, uint64(c.Shader))
	dst = appendU32(dst, c.Flags)
	return dst
}

func (c *CreateCompute) Decode(src []byte) (int, error) {
	if len(src) < 12 {
		return 0, fmt.Errorf("protocol: CreateCompute: short buffer")
	}
	n := 0
	var s uint64
	s, n = readU64(src, n)
	c.Shader = ShaderID(s)
	c.Flags, n = readU32(src, n)
	return n, nil
}

//////////////////////////////////////////////////////////////////////
// Bind requests

// BindVertex is the content of a bind/graphics request that attaches a
// vertex buffer to a binding slot.
type BindVertex struct {
	GraphicsID GraphicsID
	BindingIdx uint32
	DatID      DatID
	Offset     uint64
}

func (BindVertex) ObjectType() ObjectType { return ObjectGraphics }

func (c BindVertex) Encode(dst []byte) []byte {
	dst = appendU64(dst, uint64(c.GraphicsID))
	dst = appendU32(dst, c.BindingIdx)
	dst = appendU64(dst, uint64(c.DatID))
	dst = appendU64(dst, c.Offset)
	return dst
}

func (c *BindVertex) Decode(src []byte) (int, error) {
	if len(src) < 28 {
		return 0, fmt.Errorf("protocol: BindVertex: short buffer")
	}
	n := 0
	var g, d uint64
	g, n = readU64(src, n)
	c.GraphicsID = GraphicsID(g)
	c.BindingIdx, n = readU32(src, n)
	d, n = readU64(src, n)
	c.DatID = DatID(d)
	c.Offset, n = readU64(src, n)
	return n, nil
}

// BindIndex is the content of a bind/graphics request that attaches an
// index buffer.
type BindIndex struct {
	GraphicsID GraphicsID
	DatID      DatID
	Offset     uint64
}

func (BindIndex) ObjectType() ObjectType { return ObjectGraphics }

func (c BindIndex) Encode(dst []byte) []byte {
	dst = appendU64(dst, uint64(c.GraphicsID))
	dst = appendU64(dst, uint64(c.DatID))
	dst = appendU64(dst, c.Offset)
	return dst
}

func (c *BindIndex) Decode(src []byte) (int, error) {
	if len(src) < 24 {
		return 0, fmt.Errorf("protocol: BindIndex: short buffer")
	}
	n := 0
	var g, d uint64
	g, n = readU64(src, n)
	c.GraphicsID = GraphicsID(g)
	d, n = readU64(src, n)
	c.DatID = DatID(d)
	c.Offset, n = readU64(src, n)
	return n, nil
}

// BindTex is the content of a bind/graphics (or compute) request that
// attaches a texture + sampler to a descriptor slot.
type BindTex struct {
	PipelineID id.ID
	SlotIdx    uint32
	TexID      TexID
	SamplerID  SamplerID
}

func (BindTex) ObjectType() ObjectType { return ObjectGraphics }

func (c BindTex) Encode(dst []byte) []byte {
	dst = appendU64(dst, uint64(c.PipelineID))
	dst = appendU32(dst, c.SlotIdx)
	dst = appendU64(dst, uint64(c.TexID))
	dst = appendU64(dst, uint64(c.SamplerID))
	return dst
}

func (c *BindTex) Decode(src []byte) (int, error) {
	if len(src) < 28 {
		return 0, fmt.Errorf("protocol: BindTex: short buffer")
	}
	n := 0
	var p, t, s uint64
	p, n = readU64(src, n)
	c.PipelineID = id.ID(p)
	c.SlotIdx, n = readU32(src, n)
	t, n = readU64(src, n)
	c.TexID = TexID(t)
	s, n = readU64(src, n)
	c.SamplerID = SamplerID(s)
	return n, nil
}

//////////////////////////////////////////////////////////////////////
// Record-phase requests

// RecordBegin opens the record sub-sequence for a canvas frame.
type RecordBegin struct {
	CanvasID CanvasID
}

func (RecordBegin) ObjectType() ObjectType { return ObjectCanvas }

func (c RecordBegin) Encode(dst []byte) []byte { return appendU64(dst, uint64(c.CanvasID)) }

func (c *RecordBegin) Decode(src []byte) (int, error) {
	if len(src) < 8 {
		return 0, fmt.Errorf("protocol: RecordBegin: short buffer")
	}
	v, n := readU64(src, 0)
	c.CanvasID = CanvasID(v)
	return n, nil
}

// RecordViewport sets the active viewport for subsequent draws.
type RecordViewport struct {
	CanvasID              CanvasID
	X, Y, Width, Height   float32
}

func (RecordViewport) ObjectType() ObjectType { return ObjectCanvas }

func (c RecordViewport) Encode(dst []byte) []byte {
	dst = appendU64(dst, uint64(c.CanvasID))
	dst = appendF32(dst, c.X)
	dst = appendF32(dst, c.Y)
	dst = appendF32(dst, c.Width)
	dst = appendF32(dst, c.Height)
	return dst
}

func (c *RecordViewport) Decode(src []byte) (int, error) {
	if len(src) < 24 {
		return 0, fmt.Errorf("protocol: RecordViewport: short buffer")
	}
	n := 0
	var cv uint64
	cv, n = readU64(src, n)
	c.CanvasID = CanvasID(cv)
	c.X, n = readF32(src, n)
	c.Y, n = readF32(src, n)
	c.Width, n = readF32(src, n)
	c.Height, n = readF32(src, n)
	return n, nil
}

// RecordDraw is the content of a direct, non-indexed record/graphics
// draw request (spec.md §4.5 "draw").
type RecordDraw struct {
	CanvasID      CanvasID
	GraphicsID    GraphicsID
	FirstVertex   uint32
	VertexCount   uint32
	FirstInstance uint32
	InstanceCount uint32
}

func (RecordDraw) ObjectType() ObjectType { return ObjectCanvas }

func (c RecordDraw) Encode(dst []byte) []byte {
	dst = appendU64(dst, uint64(c.CanvasID))
	dst = appendU64(dst, uint64(c.GraphicsID))
	dst = appendU32(dst, c.FirstVertex)
	dst = appendU32(dst, c.VertexCount)
	dst = appendU32(dst, c.FirstInstance)
	dst = appendU32(dst, c.InstanceCount)
	return dst
}

func (c *RecordDraw) Decode(src []byte) (int, error) {
	if len(src) < 32 {
		return 0, fmt.Errorf("protocol: RecordDraw: short buffer")
	}
	n := 0
	var cv, g uint64
	cv, n = readU64(src, n)
	c.CanvasID = CanvasID(cv)
	g, n = readU64(src, n)
	c.GraphicsID = GraphicsID(g)
	c.FirstVertex, n = readU32(src, n)
	c.VertexCount, n = readU32(src, n)
	c.FirstInstance, n = readU32(src, n)
	c.InstanceCount, n = readU32(src, n)
	return n, nil
}

// RecordDrawIndexed is the content of an indexed record/graphics draw
// request (spec.md §4.5 "draw_indexed"): vertices are fetched through
// the bound index buffer rather than sequentially.
type RecordDrawIndexed struct {
	CanvasID      CanvasID
	GraphicsID    GraphicsID
	FirstIndex    uint32
	VertexOffset  int32
	IndexCount    uint32
	FirstInstance uint32
	InstanceCount uint32
}

func (RecordDrawIndexed) ObjectType() ObjectType { return ObjectCanvas }

func (c RecordDrawIndexed) Encode(dst []byte) []byte {
	dst = appendU64(dst, uint64(c.CanvasID))
	dst = appendU64(dst, uint64(c.GraphicsID))
	dst = appendU32(dst, c.FirstIndex)
	dst = appendU32(dst, uint32(c.VertexOffset))
	dst = appendU32(dst, c.IndexCount)
	dst = appendU32(dst, c.FirstInstance)
	dst = appendU32(dst, c.InstanceCount)
	return dst
}

func (c *RecordDrawIndexed) Decode(src []byte) (int, error) {
	if len(src) < 36 {
		return 0, fmt.Errorf("protocol: RecordDrawIndexed: short buffer")
	}
	n := 0
	var cv, g uint64
	cv, n = readU64(src, n)
	c.CanvasID = CanvasID(cv)
	g, n = readU64(src, n)
	c.GraphicsID = GraphicsID(g)
	c.FirstIndex, n = readU32(src, n)
	var off uint32
	off, n = readU32(src, n)
	c.VertexOffset = int32(off)
	c.IndexCount, n = readU32(src, n)
	c.FirstInstance, n = readU32(src, n)
	c.InstanceCount, n = readU32(src, n)
	return n, nil
}

// RecordDrawIndirect is the content of a non-indexed indirect
// record/graphics draw request (spec.md §4.5 "draw_indirect"): draw
// arguments are read from IndirectDat at IndirectOffset instead of
// being embedded in the request.
type RecordDrawIndirect struct {
	CanvasID       CanvasID
	GraphicsID     GraphicsID
	IndirectDat    DatID
	IndirectOffset uint64
	DrawCount      uint32
}

func (RecordDrawIndirect) ObjectType() ObjectType { return ObjectCanvas }

func (c RecordDrawIndirect) Encode(dst []byte) []byte {
	dst = appendU64(dst, uint64(c.CanvasID))
	dst = appendU64(dst, uint64(c.GraphicsID))
	dst = appendU64(dst, uint64(c.IndirectDat))
	dst = appendU64(dst, c.IndirectOffset)
	dst = appendU32(dst, c.DrawCount)
	return dst
}

func (c *RecordDrawIndirect) Decode(src []byte) (int, error) {
	if len(src) < 36 {
		return 0, fmt.Errorf("protocol: RecordDrawIndirect: short buffer")
	}
	n := 0
	var cv, g, d uint64
	cv, n = readU64(src, n)
	c.CanvasID = CanvasID(cv)
	g, n = readU64(src, n)
	c.GraphicsID = GraphicsID(g)
	d, n = readU64(src, n)
	c.IndirectDat = DatID(d)
	c.IndirectOffset, n = readU64(src, n)
	c.DrawCount, n = readU32(src, n)
	return n, nil
}

// RecordDrawIndexedIndirect is the content of an indexed indirect
// record/graphics draw request (spec.md §4.5 "draw_indexed_indirect"):
// combines RecordDrawIndexed's index-buffer fetch with
// RecordDrawIndirect's dat-sourced draw arguments.
type RecordDrawIndexedIndirect struct {
	CanvasID       CanvasID
	GraphicsID     GraphicsID
	IndirectDat    DatID
	IndirectOffset uint64
	DrawCount      uint32
}

func (RecordDrawIndexedIndirect) ObjectType() ObjectType { return ObjectCanvas }

func (c RecordDrawIndexedIndirect) Encode(dst []byte) []byte {
	dst = appendU64(dst, uint64(c.CanvasID))
	dst = appendU64(dst, uint64(c.GraphicsID))
	dst = appendU64(dst, uint64(c.IndirectDat))
	dst = appendU64(dst, c.IndirectOffset)
	dst = appendU32(dst, c.DrawCount)
	return dst
}

func (c *RecordDrawIndexedIndirect) Decode(src []byte) (int, error) {
	if len(src) < 36 {
		return 0, fmt.Errorf("protocol: RecordDrawIndexedIndirect: short buffer")
	}
	n := 0
	var cv, g, d uint64
	cv, n = readU64(src, n)
	c.CanvasID = CanvasID(cv)
	g, n = readU64(src, n)
	c.GraphicsID = GraphicsID(g)
	d, n = readU64(src, n)
	c.IndirectDat = DatID(d)
	c.IndirectOffset, n = readU64(src, n)
	c.DrawCount, n = readU32(src, n)
	return n, nil
}

// RecordPush is the content of a record/graphics push-constant upload.
type RecordPush struct {
	CanvasID   CanvasID
	GraphicsID GraphicsID
	Offset     uint32
	Data       []byte
}

func (RecordPush) ObjectType() ObjectType { return ObjectCanvas }

func (c RecordPush) Encode(dst []byte) []byte {
	dst = appendU64(dst, uint64(c.CanvasID))
	dst = appendU64(dst, uint64(c.GraphicsID))
	dst = appendU32(dst, c.Offset)
	dst = appendU32(dst, uint32(len(c.Data)))
	dst = append(dst, c.Data...)
	return dst
}

func (c *RecordPush) Decode(src []byte) (int, error) {
	if len(src) < 20 {
		return 0, fmt.Errorf("protocol: RecordPush: short buffer")
	}
	n := 0
	var cv, g uint64
	cv, n = readU64(src, n)
	c.CanvasID = CanvasID(cv)
	g, n = readU64(src, n)
	c.GraphicsID = GraphicsID(g)
	c.Offset, n = readU32(src, n)
	var size uint32
	size, n = readU32(src, n)
	if uint32(len(src)-n) < size {
		return 0, fmt.Errorf("protocol: RecordPush: truncated payload")
	}
	c.Data = append([]byte(nil), src[n:n+int(size)]...)
	n += int(size)
	return n, nil
}

// RecordEnd closes the record sub-sequence opened by RecordBegin.
type RecordEnd struct {
	CanvasID CanvasID
}

func (RecordEnd) ObjectType() ObjectType { return ObjectCanvas }

func (c RecordEnd) Encode(dst []byte) []byte { return appendU64(dst, uint64(c.CanvasID)) }

func (c *RecordEnd) Decode(src []byte) (int, error) {
	if len(src) < 8 {
		return 0, fmt.Errorf("protocol: RecordEnd: short buffer")
	}
	v, n := readU64(src, 0)
	c.CanvasID = CanvasID(v)
	return n, nil
}

//////////////////////////////////////////////////////////////////////
// Delete

// DeleteObject is the (empty) content of any delete request: the
// Request's ObjType/TargetID fully identify what to delete.
type DeleteObject struct {
	Kind ObjectType
}

func (d DeleteObject) ObjectType() ObjectType { return d.Kind }

func (d DeleteObject) Encode(dst []byte) []byte { return dst }

func (d *DeleteObject) Decode(src []byte) (int, error) { return 0, nil }

//////////////////////////////////////////////////////////////////////
// little helpers

func appendU32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

func appendU64(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

func appendF32(dst []byte, v float32) []byte {
	return appendU32(dst, math.Float32bits(v))
}

func readU32(src []byte, off int) (uint32, int) {
	return binary.LittleEndian.Uint32(src[off : off+4]), off + 4
}

func readU64(src []byte, off int) (uint64, int) {
	return binary.LittleEndian.Uint64(src[off : off+8]), off + 8
}

func readF32(src []byte, off int) (float32, int) {
	v, n := readU32(src, off)
	return math.Float32frombits(v), n
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
