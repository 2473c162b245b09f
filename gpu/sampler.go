// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/rajveermalviya/go-webgpu/wgpu"

	"datoviz.org/dvz/protocol"
)

// Sampler wraps a wgpu.Sampler created from a protocol.CreateSampler
// request (spec.md §3 "Tex ... owning-sampler-optional").
type Sampler struct {
	ID      protocol.SamplerID
	sampler *wgpu.Sampler
}

// CreateSampler allocates a new Sampler on dev.
func CreateSampler(dev *Device, id protocol.SamplerID, c protocol.CreateSampler) *Sampler {
	s := dev.Device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU: addressMode(c.UMode),
		AddressModeV: addressMode(c.VMode),
		AddressModeW: addressMode(c.WMode),
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	return &Sampler{ID: id, sampler: s}
}

func addressMode(mode uint32) wgpu.AddressMode {
	switch mode {
	case 1:
		return wgpu.AddressModeMirrorRepeat
	case 2:
		return wgpu.AddressModeClampToEdge
	default:
		return wgpu.AddressModeRepeat
	}
}

func (s *Sampler) Release() {
	if s.sampler != nil {
		s.sampler.Release()
		s.sampler = nil
	}
}
