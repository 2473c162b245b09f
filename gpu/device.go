// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/rajveermalviya/go-webgpu/wgpu"
)

// Device holds a logical WebGPU device and its default queue, plus the
// bookkeeping a Resource Manager needs to dispatch buffer/texture
// lifetimes against a single submission timeline.
type Device struct {
	GPU    *GPU
	Device *wgpu.Device
	Queue  *wgpu.Queue
}

func newDevice(gp *GPU) (*Device, error) {
	dev, err := gp.Adapter.RequestDevice(nil)
	if err != nil {
		return nil, fmt.Errorf("gpu: request device: %w", err)
	}
	d := &Device{GPU: gp, Device: dev, Queue: dev.GetQueue()}
	dev.SetUncapturedErrorCallback(func(et wgpu.ErrorType, msg string) {
		if Debug {
			fmt.Printf("gpu: device error (%s): %s\n", et, msg)
		}
	})
	return d, nil
}

// WaitDone blocks until all work submitted to the device's queue has
// completed. Used before destroying resources still referenced by an
// in-flight frame.
func (d *Device) WaitDone() {
	d.Device.Poll(true, nil)
}

// Release releases the device.
func (d *Device) Release() {
	if d.Device == nil {
		return
	}
	d.Device.Release()
	d.Device = nil
}
