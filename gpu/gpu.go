// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu implements the GPU resource manager (spec C3) and
// pipeline cache (spec C4): object-backed allocation of Dat buffers,
// Tex images, Samplers, Shaders and pipelines on top of WebGPU, plus
// external-memory handle export for interop with a host process.
package gpu

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/rajveermalviya/go-webgpu/wgpu"
)

var (
	// Debug enables verbose diagnostic logging of GPU configuration
	// and resource churn, toggled by the DVZ_CAPTURE environment
	// variable (spec.md §6).
	Debug = false
)

// SetDebug sets Debug and adjusts the underlying WebGPU log level to
// match.
func SetDebug(debug bool) {
	Debug = debug
	if Debug {
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	} else {
		wgpu.SetLogLevel(wgpu.LogLevelError)
	}
}

func init() {
	SetDebug(os.Getenv("DVZ_CAPTURE") == "1")
}

// GPU represents the selected physical GPU adapter and owns the
// WebGPU instance used to create every Device in the process.
type GPU struct {
	Instance *wgpu.Instance

	// Adapter is the specific hardware adapter selected by Config.
	Adapter *wgpu.Adapter

	// DeviceName is the human-readable adapter name, reported by
	// the "info" CLI subcommand (spec.md §6).
	DeviceName string

	AppName string

	Properties wgpu.AdapterInfo
	Limits     wgpu.SupportedLimits
}

// NewGPU returns an unconfigured GPU; call Config to select hardware.
func NewGPU() *GPU { return &GPU{} }

// Config selects a physical adapter and queries its properties. name
// identifies the application for diagnostic/debug tooling only.
func (gp *GPU) Config(name string) error {
	gp.AppName = name
	gp.Instance = wgpu.CreateInstance(nil)

	adapters := gp.Instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("gpu: no WebGPU adapters available")
	}
	idx := gp.selectAdapter(adapters)
	gp.Adapter = adapters[idx]
	gp.Properties = gp.Adapter.GetInfo()
	gp.DeviceName = gp.Properties.Name
	gp.Limits = gp.Adapter.GetLimits()
	if Debug {
		log.Printf("gpu: selected adapter %q (%d of %d)", gp.DeviceName, idx, len(adapters))
	}
	return nil
}

// selectAdapter picks an adapter by DVZ_DEVICE_SELECT (index or
// substring match), falling back to the first adapter with the highest
// score: one point for a discrete GPU and one for a non-OpenGL backend.
func (gp *GPU) selectAdapter(adapters []*wgpu.Adapter) int {
	n := len(adapters)
	if n == 1 {
		return 0
	}
	if sel := os.Getenv("DVZ_DEVICE_SELECT"); sel != "" {
		if idx, err := strconv.Atoi(sel); err == nil && idx >= 0 && idx < n {
			return idx
		}
		for i, a := range adapters {
			if strings.Contains(a.GetInfo().Name, sel) {
				return i
			}
		}
	}
	best, bestScore := 0, -1
	for i, a := range adapters {
		info := a.GetInfo()
		score := 0
		if info.AdapterType == wgpu.AdapterTypeDiscreteGPU {
			score++
		}
		if info.BackendType != wgpu.BackendTypeOpenGL && info.BackendType != wgpu.BackendTypeOpenGLES {
			score++
		}
		if score > bestScore {
			bestScore, best = score, i
		}
	}
	return best
}

// Release releases the adapter and instance. Call after every Device
// created from this GPU has itself been released.
func (gp *GPU) Release() {
	if gp.Adapter != nil {
		gp.Adapter.Release()
		gp.Adapter = nil
	}
	if gp.Instance != nil {
		gp.Instance.Release()
		gp.Instance = nil
	}
}

// NewDevice creates a new logical Device and queue on this GPU.
func (gp *GPU) NewDevice() (*Device, error) {
	return newDevice(gp)
}

// PropertiesString renders a human-readable summary of the selected
// adapter, used by the "info" CLI subcommand.
func (gp *GPU) PropertiesString() string {
	return fmt.Sprintf("device: %s\nbackend: %s\nadapter type: %s\nlimits: %+v\n",
		gp.Properties.Name, gp.Properties.BackendType, gp.Properties.AdapterType, gp.Limits.Limits)
}

// NoDisplayGPU configures a GPU and an offscreen-capable Device without
// any window surface, used by headless renders and tests.
func NoDisplayGPU(name string) (*GPU, *Device, error) {
	gp := NewGPU()
	if err := gp.Config(name); err != nil {
		return nil, nil, err
	}
	dev, err := gp.NewDevice()
	if err != nil {
		return nil, nil, err
	}
	return gp, dev, nil
}
