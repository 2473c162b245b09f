// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"encoding/binary"
	"fmt"
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/singleflight"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"datoviz.org/dvz/protocol"
)

// Pipeline wraps a compiled render pipeline plus the shader modules it
// was built from (spec.md §3 "Graphics Pipeline Descriptor").
type Pipeline struct {
	ID           protocol.GraphicsID
	Fingerprint  [blake2b.Size256]byte
	RenderPipe   *wgpu.RenderPipeline
}

// ComputePipelineObj wraps a compiled compute pipeline.
type ComputePipelineObj struct {
	ID         protocol.ComputeID
	Fingerprint [blake2b.Size256]byte
	ComputePipe *wgpu.ComputePipeline
}

// Shader wraps a compiled shader module, keyed by its ShaderID.
type Shader struct {
	ID     protocol.ShaderID
	Module *wgpu.ShaderModule
}

// PipelineCache builds and memoizes graphics/compute pipelines by a
// canonical fingerprint of their descriptor, so two Graphics creation
// requests with bitwise-equal descriptors (spec.md §3 "Two descriptors
// are equivalent iff...") share a single compiled pipeline object. At
// most one build per fingerprint runs concurrently, via
// golang.org/x/sync/singleflight; concurrent callers for the same
// fingerprint block on the one build in flight rather than duplicating
// compile work.
type PipelineCache struct {
	dev *Device

	mu    sync.Mutex
	byFP  map[[blake2b.Size256]byte]*Pipeline
	byID  map[protocol.GraphicsID]*Pipeline
	group singleflight.Group

	computeByFP map[[blake2b.Size256]byte]*ComputePipelineObj
	computeByID map[protocol.ComputeID]*ComputePipelineObj

	shaders map[protocol.ShaderID]*Shader
}

// NewPipelineCache returns an empty cache bound to dev.
func NewPipelineCache(dev *Device) *PipelineCache {
	return &PipelineCache{
		dev:         dev,
		byFP:        make(map[[blake2b.Size256]byte]*Pipeline),
		byID:        make(map[protocol.GraphicsID]*Pipeline),
		computeByFP: make(map[[blake2b.Size256]byte]*ComputePipelineObj),
		computeByID: make(map[protocol.ComputeID]*ComputePipelineObj),
		shaders:     make(map[protocol.ShaderID]*Shader),
	}
}

// Lookup returns the Pipeline previously built for a create/graphics
// request targeting id, for use by the command recorder when replaying
// a "draw" record (spec.md §4.5 "binds the referenced graphics
// pipeline").
func (c *PipelineCache) Lookup(id protocol.GraphicsID) (*Pipeline, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.byID[id]
	return p, ok
}

// RegisterShader compiles c into a shader module and indexes it by id
// for later reference from a CreateGraphics/CreateCompute descriptor.
func (c *PipelineCache) RegisterShader(id protocol.ShaderID, req protocol.CreateShader) (*Shader, error) {
	var module *wgpu.ShaderModule
	switch req.Format {
	case protocol.ShaderGLSL:
		return nil, fmt.Errorf("gpu: GLSL shader source requires an external compiler to SPIR-V/WGSL; none configured")
	case protocol.ShaderWGSL:
		module = c.dev.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
			Label:          fmt.Sprintf("shader-%d", id),
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: string(req.Code)},
		})
	case protocol.ShaderSPIRV:
		module = c.dev.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
			Label:          fmt.Sprintf("shader-%d", id),
			SPIRVDescriptor: &wgpu.ShaderModuleSPIRVDescriptor{Code: req.Code},
		})
	default:
		return nil, fmt.Errorf("gpu: unknown shader format %d", req.Format)
	}
	sh := &Shader{ID: id, Module: module}
	c.mu.Lock()
	c.shaders[id] = sh
	c.mu.Unlock()
	return sh, nil
}

// GetOrBuild returns the cached Pipeline for req's canonical fingerprint,
// building it if this is the first request for that exact descriptor.
func (c *PipelineCache) GetOrBuild(id protocol.GraphicsID, req protocol.CreateGraphics, target wgpu.TextureFormat) (*Pipeline, error) {
	fp := Fingerprint(req)

	c.mu.Lock()
	if p, ok := c.byFP[fp]; ok {
		c.byID[id] = p
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()

	key := fmt.Sprintf("%x", fp)
	v, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.Lock()
		if p, ok := c.byFP[fp]; ok {
			c.mu.Unlock()
			return p, nil
		}
		c.mu.Unlock()

		p, err := c.build(id, req, fp, target)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.byFP[fp] = p
		c.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	p := v.(*Pipeline)
	c.mu.Lock()
	c.byID[id] = p
	c.mu.Unlock()
	return p, nil
}

func (c *PipelineCache) build(id protocol.GraphicsID, req protocol.CreateGraphics, fp [blake2b.Size256]byte, target wgpu.TextureFormat) (*Pipeline, error) {
	c.mu.Lock()
	vert, ok := c.shaders[req.VertShader]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("gpu: unknown vertex shader %d", req.VertShader)
	}
	c.mu.Lock()
	frag, ok := c.shaders[req.FragShader]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("gpu: unknown fragment shader %d", req.FragShader)
	}

	layout := c.dev.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{})

	blendState := (*wgpu.BlendState)(nil)
	if req.Blend {
		blendState = &wgpu.BlendState{
			Color: wgpu.BlendComponent{Operation: wgpu.BlendOperationAdd, SrcFactor: wgpu.BlendFactorSrcAlpha, DstFactor: wgpu.BlendFactorOneMinusSrcAlpha},
			Alpha: wgpu.BlendComponent{Operation: wgpu.BlendOperationAdd, SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorOneMinusSrcAlpha},
		}
	}

	cullMode := wgpu.CullModeNone
	if req.CullBack {
		cullMode = wgpu.CullModeBack
	}
	frontFace := wgpu.FrontFaceCW
	if req.FrontCCW {
		frontFace = wgpu.FrontFaceCCW
	}
	polyMode := wgpu.PolygonModeLine
	if req.PolygonFil {
		polyMode = wgpu.PolygonModeFill
	}

	pipe := c.dev.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("graphics-%d", id),
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     vert.Module,
			EntryPoint: "vs_main",
			Buffers:    vertexBufferLayouts(req),
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  primitiveTopology(req.Topology),
			CullMode:  cullMode,
			FrontFace: frontFace,
			PolygonMode: polyMode,
		},
		DepthStencil: depthStencilState(req.DepthTest),
		Multisample: wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		Fragment: &wgpu.FragmentState{
			Module:     frag.Module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    target,
				Blend:     blendState,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
	})
	return &Pipeline{ID: id, Fingerprint: fp, RenderPipe: pipe}, nil
}

func vertexBufferLayouts(req protocol.CreateGraphics) []wgpu.VertexBufferLayout {
	strideByBinding := make(map[uint32]uint64, len(req.Bindings))
	for _, b := range req.Bindings {
		strideByBinding[b.Index] = uint64(b.Stride)
	}
	layouts := make([]wgpu.VertexBufferLayout, 0, len(req.Bindings))
	for _, b := range req.Bindings {
		var attrs []wgpu.VertexAttribute
		for _, a := range req.Attributes {
			if a.Binding != b.Index {
				continue
			}
			attrs = append(attrs, wgpu.VertexAttribute{
				Format:         vertexFormat(a.Format),
				Offset:         uint64(a.Offset),
				ShaderLocation: a.Location,
			})
		}
		layouts = append(layouts, wgpu.VertexBufferLayout{
			ArrayStride: strideByBinding[b.Index],
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes:  attrs,
		})
	}
	return layouts
}

func vertexFormat(f protocol.Format) wgpu.VertexFormat {
	switch f {
	case protocol.FormatR32Sfloat:
		return wgpu.VertexFormatFloat32
	case protocol.FormatR32G32Sfloat:
		return wgpu.VertexFormatFloat32x2
	case protocol.FormatR32G32B32Sfloat:
		return wgpu.VertexFormatFloat32x3
	case protocol.FormatR32G32B32A32Sfloat:
		return wgpu.VertexFormatFloat32x4
	case protocol.FormatR32Uint:
		return wgpu.VertexFormatUint32
	default:
		return wgpu.VertexFormatFloat32x3
	}
}

func primitiveTopology(t protocol.PrimitiveTopology) wgpu.PrimitiveTopology {
	switch t {
	case protocol.TopologyPointList:
		return wgpu.PrimitiveTopologyPointList
	case protocol.TopologyLineList:
		return wgpu.PrimitiveTopologyLineList
	case protocol.TopologyLineStrip:
		return wgpu.PrimitiveTopologyLineStrip
	case protocol.TopologyTriangleStrip:
		return wgpu.PrimitiveTopologyTriangleStrip
	default:
		return wgpu.PrimitiveTopologyTriangleList
	}
}

func depthStencilState(depthTest bool) *wgpu.DepthStencilState {
	if !depthTest {
		return nil
	}
	return &wgpu.DepthStencilState{
		Format:            wgpu.TextureFormatDepth32Float,
		DepthWriteEnabled: true,
		DepthCompare:      wgpu.CompareFunctionLess,
	}
}

// Fingerprint computes the canonical blake2b-256 hash of a graphics
// pipeline descriptor (spec.md §3: "equivalent iff all these fields are
// bitwise equal modulo canonical ordering of bindings/attributes").
// Bindings and attributes are sorted by index/location before hashing
// so that two descriptors differing only in declaration order collapse
// to the same fingerprint.
func Fingerprint(req protocol.CreateGraphics) [blake2b.Size256]byte {
	h, _ := blake2b.New256(nil)

	var scalar [29]byte
	binary.LittleEndian.PutUint32(scalar[0:4], uint32(req.Topology))
	scalar[4] = boolByte(req.Blend)
	scalar[5] = boolByte(req.DepthTest)
	scalar[6] = boolByte(req.PolygonFil)
	scalar[7] = boolByte(req.CullBack)
	scalar[8] = boolByte(req.FrontCCW)
	binary.LittleEndian.PutUint64(scalar[9:17], uint64(req.VertShader))
	binary.LittleEndian.PutUint64(scalar[17:25], uint64(req.FragShader))
	binary.LittleEndian.PutUint32(scalar[25:29], req.Flags)
	h.Write(scalar[:])

	bindings := append([]protocol.VertexBinding(nil), req.Bindings...)
	sortBindings(bindings)
	for _, b := range bindings {
		var buf [8]byte
		binary.LittleEndian.PutUint32(buf[0:4], b.Index)
		binary.LittleEndian.PutUint32(buf[4:8], b.Stride)
		h.Write(buf[:])
	}

	attrs := append([]protocol.VertexAttribute(nil), req.Attributes...)
	sortAttributes(attrs)
	for _, a := range attrs {
		var buf [16]byte
		binary.LittleEndian.PutUint32(buf[0:4], a.Binding)
		binary.LittleEndian.PutUint32(buf[4:8], a.Location)
		binary.LittleEndian.PutUint32(buf[8:12], uint32(a.Format))
		binary.LittleEndian.PutUint32(buf[12:16], a.Offset)
		h.Write(buf[:])
	}

	var out [blake2b.Size256]byte
	copy(out[:], h.Sum(nil))
	return out
}

func sortBindings(b []protocol.VertexBinding) {
	for i := 1; i < len(b); i++ {
		for j := i; j > 0 && b[j-1].Index > b[j].Index; j-- {
			b[j-1], b[j] = b[j], b[j-1]
		}
	}
}

func sortAttributes(a []protocol.VertexAttribute) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && attrLess(a[j], a[j-1]); j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}

func attrLess(a, b protocol.VertexAttribute) bool {
	if a.Binding != b.Binding {
		return a.Binding < b.Binding
	}
	return a.Location < b.Location
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
