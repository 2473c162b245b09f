// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"github.com/rajveermalviya/go-webgpu/wgpu"

	"datoviz.org/dvz/input"
)

// QtBackend is a named-but-unimplemented backend (spec.md §6 "named
// backends: glfw, offscreen, qt (stub)"): Create and Surface fail with
// ErrBackendUnavailable, Size reports 0x0, ShouldClose reports true,
// Router returns nil, and the other methods do nothing. It exists so
// callers can select "qt" by name
// and receive a clear error rather than an unknown-backend failure.
type QtBackend struct{}

// NewQtBackend returns the stub Qt backend.
func NewQtBackend() *QtBackend { return &QtBackend{} }

func (b *QtBackend) Kind() BackendKind { return BackendQt }

func (b *QtBackend) Create(int, int, string) error { return ErrBackendUnavailable }

func (b *QtBackend) Destroy() {}

func (b *QtBackend) Poll() {}

func (b *QtBackend) RequestFrame() {}

func (b *QtBackend) Surface(*wgpu.Instance) (*wgpu.Surface, error) {
	return nil, ErrBackendUnavailable
}

func (b *QtBackend) Size() (int, int) { return 0, 0 }

func (b *QtBackend) ShouldClose() bool { return true }

func (b *QtBackend) Router() *input.Router { return nil }
