// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protocol implements the request protocol and batch (spec C2):
// a language-neutral, serializable, ordered sequence of declarative
// create/update/bind/record/delete requests that drive the renderer.
// Naming follows original_source/include/datoviz_protocol.h and
// datoviz_enums.h (DvzBatch, DvzRequest, DvzBufferType, ...).
package protocol

import "datoviz.org/dvz/id"

// Version is the request protocol version. Bump on any record layout
// change (spec.md §9); none has occurred in this implementation.
const Version uint32 = 1

// ObjectType identifies the kind of object a Request's TargetID refers
// to (spec.md §3).
type ObjectType int32

const (
	ObjectNone ObjectType = iota
	ObjectCanvas
	ObjectDat
	ObjectTex
	ObjectSampler
	ObjectShader
	ObjectGraphics
	ObjectCompute
	ObjectPrimitive
)

func (t ObjectType) String() string {
	switch t {
	case ObjectCanvas:
		return "canvas"
	case ObjectDat:
		return "dat"
	case ObjectTex:
		return "tex"
	case ObjectSampler:
		return "sampler"
	case ObjectShader:
		return "shader"
	case ObjectGraphics:
		return "graphics"
	case ObjectCompute:
		return "compute"
	case ObjectPrimitive:
		return "primitive"
	default:
		return "none"
	}
}

// Action is the verb a Request performs on its target object.
type Action int32

const (
	ActionCreate Action = iota
	ActionUpdate
	ActionBind
	ActionRecord
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionBind:
		return "bind"
	case ActionRecord:
		return "record"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Typed handles (Design Notes §9: replace untyped u64 IDs with per-type
// handle types that still wrap the same u64 so the wire protocol is
// unchanged, but the Go compiler rejects mixing a DatID where a
// GraphicsID is expected).

// DatID identifies a Dat (buffer region).
type DatID id.ID

// TexID identifies a Tex (N-D image).
type TexID id.ID

// SamplerID identifies a Sampler.
type SamplerID id.ID

// ShaderID identifies a shader module.
type ShaderID id.ID

// GraphicsID identifies a graphics pipeline.
type GraphicsID id.ID

// ComputeID identifies a compute pipeline.
type ComputeID id.ID

// CanvasID identifies a Canvas.
type CanvasID id.ID

// PrimitiveID identifies a visual primitive (external collaborator
// object type, spec.md §1; tracked here only so the registry can carry
// it alongside the other object types).
type PrimitiveID id.ID

// BuffType is the GPU buffer-region flavor backing a Dat (spec.md §3;
// original_source DvzBufferType).
type BuffType int32

const (
	BuffUndefined BuffType = iota
	BuffStaging
	BuffVertex
	BuffIndex
	BuffStorage
	BuffUniform
	BuffIndirect
)

func (t BuffType) String() string {
	switch t {
	case BuffStaging:
		return "staging"
	case BuffVertex:
		return "vertex"
	case BuffIndex:
		return "index"
	case BuffStorage:
		return "storage"
	case BuffUniform:
		return "uniform"
	case BuffIndirect:
		return "indirect"
	default:
		return "undefined"
	}
}

// Format is the pixel/vertex-attribute format enum, one-to-one with the
// underlying GPU format (spec.md §4.3 "Format policy"; subset of
// original_source DvzFormat, values chosen to match the corresponding
// VkFormat numbers; package gpu maps them onto wgpu formats).
type Format int32

const (
	FormatNone            Format = 0
	FormatR8Unorm         Format = 9
	FormatR8Snorm         Format = 10
	FormatR8Uint          Format = 13
	FormatR8G8B8Unorm     Format = 23
	FormatR8G8B8A8Unorm   Format = 37
	FormatR8G8B8A8Uint    Format = 41
	FormatB8G8R8A8Unorm   Format = 44
	FormatR16Unorm        Format = 70
	FormatR16Snorm        Format = 71
	FormatR32Uint         Format = 98
	FormatR32Sint         Format = 99
	FormatR32Sfloat       Format = 100
	FormatR32G32Sfloat    Format = 103
	FormatR32G32B32Sfloat Format = 106
	FormatR32G32B32A32Sfloat Format = 109
)

// PrimitiveTopology mirrors VkPrimitiveTopology (original_source
// DvzPrimitiveTopology).
type PrimitiveTopology int32

const (
	TopologyPointList PrimitiveTopology = iota
	TopologyLineList
	TopologyLineStrip
	TopologyTriangleList
	TopologyTriangleStrip
	TopologyTriangleFan
)

// CanvasFlags mirrors the canvas creation bit flags (original_source
// DvzCanvasFlags). Flags are otherwise treated as an opaque passthrough
// per spec.md §9 Open Questions; these named bits are the ones the
// spec's test scenarios and the source call out specifically.
type CanvasFlags uint32

const (
	CanvasFlagsNone    CanvasFlags = 0x0000
	CanvasFlagsImgui   CanvasFlags = 0x0001
	CanvasFlagsFPS     CanvasFlags = 0x0003
	CanvasFlagsMonitor CanvasFlags = 0x0005
	CanvasFlagsVSync   CanvasFlags = 0x0010
	CanvasFlagsPick    CanvasFlags = 0x0020
)

// FlagInlinePayload marks a request whose upload bytes travel inline,
// immediately after the fixed record header (spec.md §6). Dump writes
// every request's content inline whether or not this flag is set.
const FlagInlinePayload uint32 = 0x1
