// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package renderer implements the request-dispatch orchestration
// sitting above the id/protocol/gpu/record/canvas packages: it commits
// a protocol.Batch's requests against the object registry, resource
// manager, pipeline cache, command recorder, and canvas frame loop.
//
// Grounded on the teacher's vgpu/system.go Config/dispatch-by-role
// pattern (SetVals switching on vl.Var.Role), generalized here to a
// switch on protocol.Request.Action/ObjType.
package renderer

import (
	"fmt"
	"sync"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"datoviz.org/dvz/canvas"
	"datoviz.org/dvz/gpu"
	"datoviz.org/dvz/id"
	"datoviz.org/dvz/protocol"
	"datoviz.org/dvz/record"
)

// BackendFactory builds a fresh canvas.Backend for a create/canvas
// request. The renderer is backend-agnostic (spec.md §6 "named
// backends: glfw, offscreen, qt"); callers supply the factory matching
// their run mode (interactive window vs. headless render-to-PNG).
type BackendFactory func() canvas.Backend

// ErrorCallback receives the error of the request that stopped a batch
// in Dispatch, tagged with that request's index, and any error from
// replaying a canvas's record-phase script, tagged with index -1.
type ErrorCallback func(requestIndex int, req protocol.Request, err error)

// Renderer dispatches committed batches against a single GPU device.
// One Renderer owns one id.Registry, one gpu.Manager/PipelineCache,
// and every live canvas created through it (spec.md §4.1, §5).
type Renderer struct {
	backendFactory BackendFactory

	ids       *id.Registry
	gp        *gpu.GPU
	dev       *gpu.Device
	resources *gpu.Manager
	pipelines *gpu.PipelineCache
	bindings  *record.BindingTable

	mu       sync.Mutex
	dats     map[protocol.DatID]*gpu.Dat
	texs     map[protocol.TexID]*gpu.Tex
	samplers map[protocol.SamplerID]*gpu.Sampler
	canvases map[protocol.CanvasID]*canvasEntry

	onError ErrorCallback
}

// canvasEntry pairs a live canvas with the record-phase script
// accumulated for it by Dispatch, replayed by the draw callback every
// frame (spec.md §4.5 "dirty-triggered re-recording" replays the same
// script against whichever images are dirty).
type canvasEntry struct {
	c      *canvas.Canvas[*Renderer]
	script []protocol.Content
}

// New returns a Renderer bound to gp/dev, using factory to build a
// canvas.Backend for each create/canvas request.
func New(gp *gpu.GPU, dev *gpu.Device, factory BackendFactory) *Renderer {
	return &Renderer{
		backendFactory: factory,
		ids:            id.New(),
		gp:             gp,
		dev:            dev,
		resources:      gpu.NewManager(dev),
		pipelines:      gpu.NewPipelineCache(dev),
		bindings:       record.NewBindingTable(),
		dats:           make(map[protocol.DatID]*gpu.Dat),
		texs:           make(map[protocol.TexID]*gpu.Tex),
		samplers:       make(map[protocol.SamplerID]*gpu.Sampler),
		canvases:       make(map[protocol.CanvasID]*canvasEntry),
	}
}

// SetErrorCallback installs cb to observe per-request dispatch errors.
// A nil cb silences error reporting (errors are still returned from the
// triggering Dispatch call that fails mid-batch, per Validate's
// pre-check and Dispatch's fail-fast policy below).
func (r *Renderer) SetErrorCallback(cb ErrorCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = cb
}

// Registry returns the renderer's object registry, for callers that
// need to resolve a TargetID to a live kind/status (spec.md §4.1).
func (r *Renderer) Registry() *id.Registry { return r.ids }

// Canvas returns the live canvas created for canvasID, for a host's
// own frame-pump loop (cmd/datoviz's "demo" subcommand drives one this
// way rather than the renderer owning a blocking run loop itself).
func (r *Renderer) Canvas(canvasID protocol.CanvasID) (*canvas.Canvas[*Renderer], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.canvases[canvasID]
	if !ok {
		return nil, false
	}
	return entry.c, true
}

// Dispatch validates batch and applies its requests to the renderer's
// live state in order. Dispatch returns the first validation error
// without applying anything. Once validation passes, the first request
// that fails is reported to the error callback, the rest of the batch is
// not applied, and Dispatch returns that error; requests applied before
// it stay applied, and the Renderer remains usable for later batches.
func (r *Renderer) Dispatch(batch *protocol.Batch) error {
	if err := batch.Validate(); err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	for i, req := range batch.Requests() {
		if err := r.apply(req); err != nil {
			r.reportError(i, req, err)
			return fmt.Errorf("renderer: request %d: %w", i, err)
		}
	}
	return nil
}

func (r *Renderer) reportError(i int, req protocol.Request, err error) {
	r.mu.Lock()
	cb := r.onError
	r.mu.Unlock()
	if cb != nil {
		cb(i, req, err)
	}
}

func (r *Renderer) apply(req protocol.Request) error {
	switch req.Action {
	case protocol.ActionCreate:
		return r.applyCreate(req)
	case protocol.ActionUpdate:
		return r.applyUpdate(req)
	case protocol.ActionBind:
		return r.applyBind(req)
	case protocol.ActionRecord:
		return r.applyRecord(req)
	case protocol.ActionDelete:
		return r.applyDelete(req)
	default:
		return fmt.Errorf("renderer: unknown action %s", req.Action)
	}
}

func (r *Renderer) applyCreate(req protocol.Request) error {
	switch c := req.Content.(type) {
	case protocol.CreateCanvas:
		return r.createCanvas(protocol.CanvasID(req.TargetID), c)
	case protocol.CreateDat:
		d, err := r.resources.CreateDat(protocol.DatID(req.TargetID), c)
		if err != nil {
			return err
		}
		r.mu.Lock()
		r.dats[protocol.DatID(req.TargetID)] = d
		r.mu.Unlock()
		r.ids.Register(req.TargetID, id.Kind(protocol.ObjectDat), d)
		return nil
	case protocol.CreateTex:
		t, err := gpu.CreateTex(r.dev, protocol.TexID(req.TargetID), c)
		if err != nil {
			return err
		}
		r.mu.Lock()
		r.texs[protocol.TexID(req.TargetID)] = t
		r.mu.Unlock()
		r.ids.Register(req.TargetID, id.Kind(protocol.ObjectTex), t)
		return nil
	case protocol.CreateSampler:
		s := gpu.CreateSampler(r.dev, protocol.SamplerID(req.TargetID), c)
		r.mu.Lock()
		r.samplers[protocol.SamplerID(req.TargetID)] = s
		r.mu.Unlock()
		r.ids.Register(req.TargetID, id.Kind(protocol.ObjectSampler), s)
		return nil
	case protocol.CreateShader:
		sh, err := r.pipelines.RegisterShader(protocol.ShaderID(req.TargetID), c)
		if err != nil {
			return err
		}
		r.ids.Register(req.TargetID, id.Kind(protocol.ObjectShader), sh)
		return nil
	case protocol.CreateGraphics:
		target, err := r.canvasColorFormat()
		if err != nil {
			return err
		}
		p, err := r.pipelines.GetOrBuild(protocol.GraphicsID(req.TargetID), c, target)
		if err != nil {
			return err
		}
		r.ids.Register(req.TargetID, id.Kind(protocol.ObjectGraphics), p)
		return nil
	case protocol.CreateCompute:
		p, err := r.pipelines.GetOrBuildCompute(protocol.ComputeID(req.TargetID), c)
		if err != nil {
			return err
		}
		r.ids.Register(req.TargetID, id.Kind(protocol.ObjectCompute), p)
		return nil
	default:
		return fmt.Errorf("renderer: create: unsupported content %T", req.Content)
	}
}

func (r *Renderer) applyUpdate(req protocol.Request) error {
	switch c := req.Content.(type) {
	case protocol.UploadDat:
		d, ok := r.lookupDat(protocol.DatID(req.TargetID))
		if !ok {
			return fmt.Errorf("renderer: update/dat: unknown dat %d", req.TargetID)
		}
		return d.Upload(r.dev, c.Offset, c.Data)
	case protocol.UploadTex:
		t, ok := r.lookupTex(protocol.TexID(req.TargetID))
		if !ok {
			return fmt.Errorf("renderer: update/tex: unknown tex %d", req.TargetID)
		}
		return t.Upload(r.dev, c)
	default:
		return fmt.Errorf("renderer: update: unsupported content %T", req.Content)
	}
}

func (r *Renderer) applyBind(req protocol.Request) error {
	switch c := req.Content.(type) {
	case protocol.BindVertex:
		d, ok := r.lookupDat(c.DatID)
		if !ok {
			return fmt.Errorf("renderer: bind-vertex: unknown dat %d", c.DatID)
		}
		r.bindings.BindVertex(c, d)
		return nil
	case protocol.BindIndex:
		d, ok := r.lookupDat(c.DatID)
		if !ok {
			return fmt.Errorf("renderer: bind-index: unknown dat %d", c.DatID)
		}
		r.bindings.BindIndex(c, d)
		return nil
	case protocol.BindTex:
		t, ok := r.lookupTex(c.TexID)
		if !ok {
			return fmt.Errorf("renderer: bind-tex: unknown tex %d", c.TexID)
		}
		s, ok := r.lookupSampler(c.SamplerID)
		if !ok {
			return fmt.Errorf("renderer: bind-tex: unknown sampler %d", c.SamplerID)
		}
		r.bindings.BindTex(c, t, s)
		return nil
	default:
		return fmt.Errorf("renderer: bind: unsupported content %T", req.Content)
	}
}

// applyRecord appends a record-phase request's content to its canvas's
// replay script. RecordBegin itself is dropped: a Canvas opens the
// matching record.Image implicitly inside Frame, so the script only
// needs the viewport/draw/push/end steps that come after it.
func (r *Renderer) applyRecord(req protocol.Request) error {
	canvasID, content, ok := recordCanvasAndContent(req.Content)
	if !ok {
		return fmt.Errorf("renderer: record: unsupported content %T", req.Content)
	}
	if content == nil {
		return nil
	}
	r.mu.Lock()
	entry, ok := r.canvases[canvasID]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("renderer: record: unknown canvas %d", canvasID)
	}
	entry.script = append(entry.script, content)
	return nil
}

func recordCanvasAndContent(c protocol.Content) (protocol.CanvasID, protocol.Content, bool) {
	switch v := c.(type) {
	case protocol.RecordBegin:
		return v.CanvasID, nil, true
	case protocol.RecordViewport:
		return v.CanvasID, v, true
	case protocol.RecordDraw:
		return v.CanvasID, v, true
	case protocol.RecordDrawIndexed:
		return v.CanvasID, v, true
	case protocol.RecordDrawIndirect:
		return v.CanvasID, v, true
	case protocol.RecordDrawIndexedIndirect:
		return v.CanvasID, v, true
	case protocol.RecordPush:
		return v.CanvasID, v, true
	case protocol.RecordEnd:
		return v.CanvasID, v, true
	default:
		return 0, nil, false
	}
}

func (r *Renderer) applyDelete(req protocol.Request) error {
	switch req.ObjType {
	case protocol.ObjectDat:
		d, ok := r.lookupDat(protocol.DatID(req.TargetID))
		if !ok {
			return fmt.Errorf("renderer: delete/dat: unknown dat %d", req.TargetID)
		}
		r.resources.DeleteDat(d)
		r.mu.Lock()
		delete(r.dats, protocol.DatID(req.TargetID))
		r.mu.Unlock()
	case protocol.ObjectTex:
		t, ok := r.lookupTex(protocol.TexID(req.TargetID))
		if !ok {
			return fmt.Errorf("renderer: delete/tex: unknown tex %d", req.TargetID)
		}
		t.Release()
		r.mu.Lock()
		delete(r.texs, protocol.TexID(req.TargetID))
		r.mu.Unlock()
	case protocol.ObjectSampler:
		s, ok := r.lookupSampler(protocol.SamplerID(req.TargetID))
		if !ok {
			return fmt.Errorf("renderer: delete/sampler: unknown sampler %d", req.TargetID)
		}
		s.Release()
		r.mu.Lock()
		delete(r.samplers, protocol.SamplerID(req.TargetID))
		r.mu.Unlock()
	case protocol.ObjectCanvas:
		r.mu.Lock()
		entry, ok := r.canvases[protocol.CanvasID(req.TargetID)]
		if ok {
			delete(r.canvases, protocol.CanvasID(req.TargetID))
		}
		r.mu.Unlock()
		if !ok {
			return fmt.Errorf("renderer: delete/canvas: unknown canvas %d", req.TargetID)
		}
		entry.c.Destroy()
	default:
		// Shaders/graphics/compute pipelines live for the process
		// lifetime once built (spec.md §4.4 "a built pipeline is never
		// individually torn down, only released with the device");
		// deleting them is a no-op beyond releasing the registry entry.
	}
	r.ids.Release(req.TargetID)
	return nil
}

func (r *Renderer) createCanvas(canvasID protocol.CanvasID, c protocol.CreateCanvas) error {
	cfg := canvas.Config{
		Backend:       r.backendFactory(),
		GPU:           r.gp,
		Device:        r.dev,
		Pipelines:     r.pipelines,
		Dats:          r.lookupDat,
		Width:         int(c.Width),
		Height:        int(c.Height),
		Title:         fmt.Sprintf("canvas-%d", canvasID),
		ClearColor:    clearColorOf(c.ClearColor),
		TimingHistory: defaultTimingHistory,
	}
	cv, err := canvas.New[*Renderer](cfg)
	if err != nil {
		return fmt.Errorf("renderer: create/canvas: %w", err)
	}
	entry := &canvasEntry{c: cv}
	cv.SetDrawCallback(replayScript, r)

	r.mu.Lock()
	r.canvases[canvasID] = entry
	r.mu.Unlock()
	r.ids.Register(id.ID(canvasID), id.Kind(protocol.ObjectCanvas), cv)
	return nil
}

const defaultTimingHistory = 120

func clearColorOf(c [4]float32) wgpu.Color {
	return wgpu.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}

// replayScript is the DrawFunc every renderer-created canvas installs:
// it replays the canvas's accumulated record-phase script against the
// frame currently open for recording.
func replayScript(c *canvas.Canvas[*Renderer], f *canvas.Frame, r *Renderer) {
	var script []protocol.Content
	r.mu.Lock()
	for _, entry := range r.canvases {
		if entry.c == c {
			script = entry.script
			break
		}
	}
	r.mu.Unlock()
	for _, content := range script {
		if err := c.Record(content); err != nil {
			r.reportError(-1, protocol.Request{}, fmt.Errorf("renderer: replay: %w", err))
			return
		}
	}
}

// canvasColorFormat returns the color format a create/graphics request
// should target. A graphics pipeline's target format is the canvas it
// will eventually draw into; since spec.md §3 does not carry a
// CanvasID on CreateGraphics itself, this implementation targets
// whichever canvas already exists (the common single-canvas case) and
// falls back to the default swapchain format otherwise, matching
// canvas.New's own fallback (spec.md §9 Open Questions).
func (r *Renderer) canvasColorFormat() (wgpu.TextureFormat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.canvases {
		return entry.c.ColorFormat(), nil
	}
	return wgpu.TextureFormatBGRA8UnormSrgb, nil
}

func (r *Renderer) lookupDat(id protocol.DatID) (*gpu.Dat, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.dats[id]
	return d, ok
}

func (r *Renderer) lookupTex(id protocol.TexID) (*gpu.Tex, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.texs[id]
	return t, ok
}

func (r *Renderer) lookupSampler(id protocol.SamplerID) (*gpu.Sampler, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.samplers[id]
	return s, ok
}
