// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package record implements the command recorder (spec C5): it
// replays the "record" sub-sequence of a committed batch —
// record-begin, viewport, draw, push, record-end — into one command
// buffer per swapchain image, re-recording only the images marked dirty
// by MarkDirty. The canvas calls MarkDirty after a swapchain rebuild;
// a bind change or a resource update does not mark any image dirty.
//
// Grounded on the teacher's gpu/examples/drawtri/drawtri.go per-frame
// sequence (NewCommandEncoder → BeginRenderPass → BindPipeline → Draw
// → End → SubmitRender) generalized from "one fixed triangle draw" to
// replay of an arbitrary recorded sub-sequence against bound pipeline
// and vertex/index state.
package record

import (
	"fmt"
	"sync"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"datoviz.org/dvz/gpu"
	"datoviz.org/dvz/protocol"
)

// State is a per-image command buffer's lifecycle stage (spec.md §4.5
// "idle/recording states").
type State int

const (
	StateIdle State = iota
	StateRecording
)

// Image holds the command buffer state for one swapchain image slot.
type Image struct {
	state State
	dirty bool

	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder
	built   *wgpu.CommandBuffer
}

// Built returns the most recently finished command buffer for this
// image, or nil if it has never successfully recorded one.
func (img *Image) Built() *wgpu.CommandBuffer { return img.built }

// DatLookup resolves a DatID to its live gpu.Dat, used to find the
// backing buffer for an indirect draw's argument Dat.
type DatLookup func(protocol.DatID) (*gpu.Dat, bool)

// Recorder owns one Image per swapchain image and the bound
// pipeline/vertex/index state draws reference (spec.md §4.5 "one
// command buffer per swapchain image").
type Recorder struct {
	dev       *gpu.Device
	pipelines *gpu.PipelineCache
	bindings  *BindingTable
	dats      DatLookup

	mu     sync.Mutex
	images []*Image
}

// NewRecorder returns a Recorder with imageCount Images, all initially
// dirty so the first Begin for each always records fresh. dats may be
// nil if the caller never records an indirect draw.
func NewRecorder(dev *gpu.Device, pipelines *gpu.PipelineCache, bindings *BindingTable, dats DatLookup, imageCount int) *Recorder {
	images := make([]*Image, imageCount)
	for i := range images {
		images[i] = &Image{dirty: true}
	}
	return &Recorder{dev: dev, pipelines: pipelines, bindings: bindings, dats: dats, images: images}
}

// MarkDirty flags every image for re-recording, used after a swapchain
// rebuild (spec.md §4.6 "marks all frames' handles_dirty").
func (r *Recorder) MarkDirty() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, img := range r.images {
		img.dirty = true
	}
}

// Begin starts recording into image idx's command buffer against
// view/target if the image is dirty or has never recorded, and
// returns (image, true). If the image is clean it returns the
// previously-built command buffer unchanged and (image, false)
// (spec.md §4.5 "dirty-triggered re-recording").
func (r *Recorder) Begin(idx int, view *wgpu.TextureView, target wgpu.TextureFormat, clear wgpu.Color) (*Image, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx < 0 || idx >= len(r.images) {
		return nil, false, fmt.Errorf("record: image index %d out of range [0,%d)", idx, len(r.images))
	}
	img := r.images[idx]
	if !img.dirty && img.built != nil {
		return img, false, nil
	}
	img.encoder = r.dev.Device.CreateCommandEncoder(nil)
	img.pass = img.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: clear,
		}},
	})
	img.state = StateRecording
	img.dirty = false
	return img, true, nil
}

// Apply replays one record-phase request's content against img, which
// must be between Begin and End (i.e. img.state == StateRecording for
// everything except RecordEnd itself).
func (r *Recorder) Apply(img *Image, content protocol.Content) error {
	switch c := content.(type) {
	case protocol.RecordViewport:
		img.pass.SetViewport(c.X, c.Y, c.Width, c.Height, 0, 1)
		return nil
	case protocol.RecordDraw:
		return r.applyDraw(img, c)
	case protocol.RecordDrawIndexed:
		return r.applyDrawIndexed(img, c)
	case protocol.RecordDrawIndirect:
		return r.applyDrawIndirect(img, c)
	case protocol.RecordDrawIndexedIndirect:
		return r.applyDrawIndexedIndirect(img, c)
	case protocol.RecordPush:
		img.pass.SetPushConstants(wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, c.Offset, c.Data)
		return nil
	case protocol.RecordEnd:
		img.pass.End()
		img.built = img.encoder.Finish(nil)
		img.state = StateIdle
		return nil
	default:
		return fmt.Errorf("record: unsupported record-phase content %T", content)
	}
}

// bindPipeline looks up graphics's built pipeline, binds it, and sets
// any bound vertex/index buffers — the state every draw variant shares
// before issuing its specific Draw*/DrawIndexed*/DrawIndirect* call.
func (r *Recorder) bindPipeline(img *Image, graphicsID protocol.GraphicsID) error {
	p, ok := r.pipelines.Lookup(graphicsID)
	if !ok {
		return fmt.Errorf("record: draw references unbuilt graphics pipeline %d", graphicsID)
	}
	img.pass.SetPipeline(p.RenderPipe)

	if g := r.bindings.lookup(graphicsID); g != nil {
		for slot, vb := range g.vertex {
			img.pass.SetVertexBuffer(slot, vb.dat.Buffer(), vb.dat.Offset+vb.offset, vb.dat.Size-vb.offset)
		}
		if g.index != nil {
			img.pass.SetIndexBuffer(g.index.dat.Buffer(), wgpu.IndexFormatUint32, g.index.dat.Offset+g.index.offset, g.index.dat.Size-g.index.offset)
		}
	}
	return nil
}

// indirectArgs resolves c's DatID/offset to the backing buffer and
// absolute byte offset a DrawIndirect/DrawIndexedIndirect call needs.
func (r *Recorder) indirectArgs(datID protocol.DatID, offset uint64) (*wgpu.Buffer, uint64, error) {
	if r.dats == nil {
		return nil, 0, fmt.Errorf("record: indirect draw: no dat lookup configured")
	}
	d, ok := r.dats(datID)
	if !ok {
		return nil, 0, fmt.Errorf("record: indirect draw references unknown dat %d", datID)
	}
	return d.Buffer(), d.Offset + offset, nil
}

func (r *Recorder) applyDraw(img *Image, c protocol.RecordDraw) error {
	if err := r.bindPipeline(img, c.GraphicsID); err != nil {
		return err
	}
	img.pass.Draw(c.VertexCount, c.InstanceCount, c.FirstVertex, c.FirstInstance)
	return nil
}

func (r *Recorder) applyDrawIndexed(img *Image, c protocol.RecordDrawIndexed) error {
	if err := r.bindPipeline(img, c.GraphicsID); err != nil {
		return err
	}
	img.pass.DrawIndexed(c.IndexCount, c.InstanceCount, c.FirstIndex, c.VertexOffset, c.FirstInstance)
	return nil
}

// drawIndirectArgsStride is sizeof(vertex_count, instance_count,
// first_vertex, first_instance), the wgpu DrawIndirectArgs layout.
const drawIndirectArgsStride = 16

// drawIndexedIndirectArgsStride is sizeof(index_count, instance_count,
// first_index, base_vertex, first_instance), the wgpu
// DrawIndexedIndirectArgs layout.
const drawIndexedIndirectArgsStride = 20

func (r *Recorder) applyDrawIndirect(img *Image, c protocol.RecordDrawIndirect) error {
	if err := r.bindPipeline(img, c.GraphicsID); err != nil {
		return err
	}
	buf, offset, err := r.indirectArgs(c.IndirectDat, c.IndirectOffset)
	if err != nil {
		return err
	}
	n := c.DrawCount
	if n == 0 {
		n = 1
	}
	for i := uint32(0); i < n; i++ {
		img.pass.DrawIndirect(buf, offset+uint64(i)*drawIndirectArgsStride)
	}
	return nil
}

func (r *Recorder) applyDrawIndexedIndirect(img *Image, c protocol.RecordDrawIndexedIndirect) error {
	if err := r.bindPipeline(img, c.GraphicsID); err != nil {
		return err
	}
	buf, offset, err := r.indirectArgs(c.IndirectDat, c.IndirectOffset)
	if err != nil {
		return err
	}
	n := c.DrawCount
	if n == 0 {
		n = 1
	}
	for i := uint32(0); i < n; i++ {
		img.pass.DrawIndexedIndirect(buf, offset+uint64(i)*drawIndexedIndirectArgsStride)
	}
	return nil
}
