// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"datoviz.org/dvz/protocol"
)

// ComputeFingerprint computes the canonical blake2b-256 hash of a
// compute pipeline descriptor, the same equivalence rule Fingerprint
// applies to graphics descriptors (spec.md §3/§4.4): two create/compute
// requests referencing the same shader and flags share one compiled
// pipeline.
func ComputeFingerprint(req protocol.CreateCompute) [blake2b.Size256]byte {
	h, _ := blake2b.New256(nil)
	var buf [12]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(req.Shader))
	binary.LittleEndian.PutUint32(buf[8:12], req.Flags)
	h.Write(buf[:])
	var out [blake2b.Size256]byte
	copy(out[:], h.Sum(nil))
	return out
}

// GetOrBuildCompute returns the cached ComputePipelineObj for req's
// canonical fingerprint, building it if this is the first request for
// that exact descriptor. It shares the graphics cache's single-flight
// build-dedup discipline but keeps its own fingerprint/ID maps since a
// ComputeID and a GraphicsID are distinct ID spaces.
func (c *PipelineCache) GetOrBuildCompute(id protocol.ComputeID, req protocol.CreateCompute) (*ComputePipelineObj, error) {
	fp := ComputeFingerprint(req)

	c.mu.Lock()
	if p, ok := c.computeByFP[fp]; ok {
		c.computeByID[id] = p
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()

	key := fmt.Sprintf("compute-%x", fp)
	v, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.Lock()
		if p, ok := c.computeByFP[fp]; ok {
			c.mu.Unlock()
			return p, nil
		}
		c.mu.Unlock()

		p, err := c.buildCompute(id, req, fp)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.computeByFP[fp] = p
		c.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	p := v.(*ComputePipelineObj)
	c.mu.Lock()
	c.computeByID[id] = p
	c.mu.Unlock()
	return p, nil
}

// LookupCompute returns the ComputePipelineObj previously built for a
// create/compute request's ID, or false if none has been built yet.
func (c *PipelineCache) LookupCompute(id protocol.ComputeID) (*ComputePipelineObj, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.computeByID[id]
	return p, ok
}

func (c *PipelineCache) buildCompute(id protocol.ComputeID, req protocol.CreateCompute, fp [blake2b.Size256]byte) (*ComputePipelineObj, error) {
	c.mu.Lock()
	sh, ok := c.shaders[req.Shader]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("gpu: unknown compute shader %d", req.Shader)
	}

	layout := c.dev.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{})
	pipe := c.dev.Device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:  fmt.Sprintf("compute-%d", id),
		Layout: layout,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     sh.Module,
			EntryPoint: "cs_main",
		},
	})
	return &ComputePipelineObj{ID: id, Fingerprint: fp, ComputePipe: pipe}, nil
}
