// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rajveermalviya/go-webgpu/wgpu"
	wgpuext_glfw "github.com/rajveermalviya/go-webgpu/wgpuext/glfw"

	"datoviz.org/dvz/input"
)

// GLFWBackend is the desktop windowing backend, grounded on the
// teacher's gpu/examples/drawtri/drawtri.go glfw.CreateWindow /
// wgpuext_glfw.GetSurfaceDescriptor / PollEvents sequence.
type GLFWBackend struct {
	window  *glfw.Window
	router  *input.Router
	surface *wgpu.Surface
}

// NewGLFWBackend returns an unopened desktop backend; call Create to
// open the window.
func NewGLFWBackend() *GLFWBackend {
	return &GLFWBackend{router: input.NewRouter()}
}

func (b *GLFWBackend) Kind() BackendKind { return BackendGLFW }

func (b *GLFWBackend) Create(width, height int, title string) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("canvas: glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return fmt.Errorf("canvas: glfw create window: %w", err)
	}
	b.window = win
	b.window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		b.router.Emit(input.ResizeEv(input.ResizeEvent{Width: w, Height: h}))
	})
	b.window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		b.router.Emit(input.PointerEv(input.PointerEvent{Action: input.PointerMove, X: x, Y: y}))
	})
	b.window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		x, y := b.window.GetCursorPos()
		act := input.PointerPress
		if action == glfw.Release {
			act = input.PointerRelease
		}
		b.router.Emit(input.PointerEv(input.PointerEvent{Action: act, X: x, Y: y, Button: int(button), Mods: int(mods)}))
	})
	b.window.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		x, y := b.window.GetCursorPos()
		b.router.Emit(input.PointerEv(input.PointerEvent{Action: input.PointerWheel, X: x, Y: y, WheelDX: dx, WheelDY: dy}))
	})
	b.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		var act input.KeyAction
		switch action {
		case glfw.Press:
			act = input.KeyPress
		case glfw.Release:
			act = input.KeyRelease
		case glfw.Repeat:
			act = input.KeyRepeat
		}
		b.router.Emit(input.KeyboardEv(input.KeyboardEvent{Action: act, Key: int(key), Mods: int(mods)}))
	})
	return nil
}

func (b *GLFWBackend) Destroy() {
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.window != nil {
		b.window.Destroy()
		b.window = nil
	}
	glfw.Terminate()
}

func (b *GLFWBackend) Poll() { glfw.PollEvents() }

func (b *GLFWBackend) RequestFrame() {}

func (b *GLFWBackend) Surface(instance *wgpu.Instance) (*wgpu.Surface, error) {
	if b.surface != nil {
		return b.surface, nil
	}
	b.surface = instance.CreateSurface(wgpuext_glfw.GetSurfaceDescriptor(b.window))
	return b.surface, nil
}

func (b *GLFWBackend) Size() (int, int) { return b.window.GetFramebufferSize() }

func (b *GLFWBackend) ShouldClose() bool { return b.window.ShouldClose() }

func (b *GLFWBackend) Router() *input.Router { return b.router }
