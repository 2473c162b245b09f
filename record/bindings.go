// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"sync"

	"datoviz.org/dvz/gpu"
	"datoviz.org/dvz/protocol"
)

// vertexBinding is one bound vertex or index buffer slot, established
// by a prior bind-phase request (spec.md §3 "bind-vertex"/"bind-
// index").
type vertexBinding struct {
	dat    *gpu.Dat
	offset uint64
}

// texBinding is one bound texture+sampler descriptor slot.
type texBinding struct {
	tex     *gpu.Tex
	sampler *gpu.Sampler
}

// graphicsBindings accumulates the vertex/index/texture resources
// bound to one GraphicsID ahead of any draw that references it
// (spec.md §4.5 "previously-associated vertex/index/descriptor
// resources").
type graphicsBindings struct {
	vertex map[uint32]vertexBinding
	index  *vertexBinding
	tex    map[uint32]texBinding
}

// BindingTable tracks bind-phase associations, keyed by the GraphicsID
// they apply to. The Recorder consults it while replaying a "draw"
// record so a draw can reference resources bound in an earlier,
// separate request (spec.md §3 "Bind" requests).
type BindingTable struct {
	mu   sync.Mutex
	byID map[protocol.GraphicsID]*graphicsBindings
}

// NewBindingTable returns an empty BindingTable.
func NewBindingTable() *BindingTable {
	return &BindingTable{byID: make(map[protocol.GraphicsID]*graphicsBindings)}
}

func (t *BindingTable) entry(id protocol.GraphicsID) *graphicsBindings {
	g, ok := t.byID[id]
	if !ok {
		g = &graphicsBindings{vertex: make(map[uint32]vertexBinding)}
		t.byID[id] = g
	}
	return g
}

// BindVertex records that dat (at req.Offset) is now bound to req's
// GraphicsID/BindingIdx slot.
func (t *BindingTable) BindVertex(req protocol.BindVertex, dat *gpu.Dat) {
	t.mu.Lock()
	defer t.mu.Unlock()
	g := t.entry(req.GraphicsID)
	g.vertex[req.BindingIdx] = vertexBinding{dat: dat, offset: req.Offset}
}

// BindIndex records that dat (at req.Offset) is now the index buffer
// for req's GraphicsID.
func (t *BindingTable) BindIndex(req protocol.BindIndex, dat *gpu.Dat) {
	t.mu.Lock()
	defer t.mu.Unlock()
	g := t.entry(req.GraphicsID)
	g.index = &vertexBinding{dat: dat, offset: req.Offset}
}

// BindTex records that tex+sampler are now bound to req's PipelineID/
// SlotIdx descriptor slot. Nothing reads texture bindings back out of
// the table: bindPipeline sets only vertex and index buffers, and no
// wgpu.BindGroup is built from this association.
func (t *BindingTable) BindTex(req protocol.BindTex, tex *gpu.Tex, sampler *gpu.Sampler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	g := t.entry(protocol.GraphicsID(req.PipelineID))
	if g.tex == nil {
		g.tex = make(map[uint32]texBinding)
	}
	g.tex[req.SlotIdx] = texBinding{tex: tex, sampler: sampler}
}

func (t *BindingTable) lookup(id protocol.GraphicsID) *graphicsBindings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.byID[id]
}
