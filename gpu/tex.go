// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"sync"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"datoviz.org/dvz/protocol"
)

// Tex is an N-D image (spec.md §3 "Tex"; N ∈ {1,2,3}). It owns its own
// GPU image; Upload writes texels through the queue's WriteTexture path,
// with no staging Dat. Once exported, a Tex also keeps an OS file that
// later Uploads are mirrored into.
type Tex struct {
	ID     protocol.TexID
	Format protocol.Format
	Shape  [3]uint32
	Flags  uint32

	texture *wgpu.Texture
	view    *wgpu.TextureView

	exportMu sync.Mutex
	export   *exportBacking
}

func (t *Tex) byteSize() uint64 {
	bpp, err := bytesPerTexel(t.Format)
	if err != nil {
		bpp = 4
	}
	w := maxu32(t.Shape[0], 1)
	h := maxu32(t.Shape[1], 1)
	d := maxu32(t.Shape[2], 1)
	return uint64(w) * uint64(h) * uint64(d) * uint64(bpp)
}

// ensureExportFile lazily backs t with an OS-visible memory region
// sized to hold its full texel data, mirroring bufferPool's export
// path for Dats (gpu/export.go).
func (t *Tex) ensureExportFile() (*exportBacking, error) {
	t.exportMu.Lock()
	defer t.exportMu.Unlock()
	if t.export == nil {
		size := t.byteSize()
		fd, err := newExportFD(size)
		if err != nil {
			return nil, err
		}
		t.export = &exportBacking{fd: fd, size: size}
	}
	return t.export, nil
}

func (t *Tex) writeExport(offset uint64, data []byte) error {
	t.exportMu.Lock()
	backing := t.export
	t.exportMu.Unlock()
	if backing == nil {
		return nil
	}
	return writeExportFD(backing.fd, offset, data)
}

// CreateTex allocates a new Tex on dev according to c.
func CreateTex(dev *Device, id protocol.TexID, c protocol.CreateTex) (*Tex, error) {
	wgpuFormat, dim, err := textureFormatAndDimension(c.Format, c.Shape)
	if err != nil {
		return nil, err
	}
	tex := dev.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         fmt.Sprintf("tex-%d", id),
		Size:          wgpu.Extent3D{Width: c.Shape[0], Height: maxu32(c.Shape[1], 1), DepthOrArrayLayers: maxu32(c.Shape[2], 1)},
		Dimension:     dim,
		Format:        wgpuFormat,
		Usage:         wgpu.TextureUsageCopyDst | wgpu.TextureUsageCopySrc | wgpu.TextureUsageTextureBinding,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	view := tex.CreateView(nil)
	return &Tex{ID: id, Format: c.Format, Shape: c.Shape, Flags: c.Flags, texture: tex, view: view}, nil
}

// Upload writes a sub-region of texel bytes into the Tex, staging
// through the queue's internal write-texture path (spec.md §4.3).
func (t *Tex) Upload(dev *Device, c protocol.UploadTex) error {
	bpp, err := bytesPerTexel(t.Format)
	if err != nil {
		return err
	}
	layout := wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  c.Shape[0] * uint32(bpp),
		RowsPerImage: c.Shape[1],
	}
	dst := wgpu.ImageCopyTexture{
		Texture: t.texture,
		Origin:  wgpu.Origin3D{X: c.Offset[0], Y: c.Offset[1], Z: c.Offset[2]},
	}
	size := wgpu.Extent3D{Width: c.Shape[0], Height: maxu32(c.Shape[1], 1), DepthOrArrayLayers: maxu32(c.Shape[2], 1)}
	dev.Queue.WriteTexture(&dst, c.Data, &layout, &size)

	rowBytes := maxu32(t.Shape[0], 1) * uint32(bpp)
	planeBytes := uint64(rowBytes) * uint64(maxu32(t.Shape[1], 1))
	linearOffset := uint64(c.Offset[2])*planeBytes +
		uint64(c.Offset[1])*uint64(rowBytes) +
		uint64(c.Offset[0])*uint64(bpp)
	return t.writeExport(linearOffset, c.Data)
}

func (t *Tex) Release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

func maxu32(v, min uint32) uint32 {
	if v < min {
		return min
	}
	return v
}

// textureFormatAndDimension maps a protocol.Format + shape to the
// WebGPU texture format and dimension enums.
func textureFormatAndDimension(f protocol.Format, shape [3]uint32) (wgpu.TextureFormat, wgpu.TextureDimension, error) {
	dim := wgpu.TextureDimension2D
	switch {
	case shape[2] > 1:
		dim = wgpu.TextureDimension3D
	case shape[1] <= 1:
		dim = wgpu.TextureDimension1D
	}
	switch f {
	case protocol.FormatR8Unorm:
		return wgpu.TextureFormatR8Unorm, dim, nil
	case protocol.FormatR8Uint:
		return wgpu.TextureFormatR8Uint, dim, nil
	case protocol.FormatR8G8B8A8Unorm:
		return wgpu.TextureFormatRGBA8Unorm, dim, nil
	case protocol.FormatR8G8B8A8Uint:
		return wgpu.TextureFormatRGBA8Uint, dim, nil
	case protocol.FormatB8G8R8A8Unorm:
		return wgpu.TextureFormatBGRA8Unorm, dim, nil
	case protocol.FormatR32Sfloat:
		return wgpu.TextureFormatR32Float, dim, nil
	default:
		return 0, dim, fmt.Errorf("gpu: unsupported texture format %d", f)
	}
}

func bytesPerTexel(f protocol.Format) (int, error) {
	switch f {
	case protocol.FormatR8Unorm, protocol.FormatR8Uint:
		return 1, nil
	case protocol.FormatR8G8B8A8Unorm, protocol.FormatR8G8B8A8Uint, protocol.FormatB8G8R8A8Unorm:
		return 4, nil
	case protocol.FormatR32Sfloat:
		return 4, nil
	default:
		return 0, fmt.Errorf("gpu: unsupported texture format %d", f)
	}
}
