// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// WritePNG encodes pixels (packed BGRA8, row-major, rowBytes stride)
// as a PNG to w, converting to RGBA as it copies (spec.md §6's PNG
// export contract). rowBytes may exceed width*4 when the source buffer
// was padded to a GPU row-alignment requirement.
func WritePNG(w io.Writer, pixels []byte, width, height, rowBytes int) error {
	if rowBytes < width*4 {
		return fmt.Errorf("canvas: png export: rowBytes %d too small for width %d", rowBytes, width)
	}
	src := &bgraImage{pix: pixels, rowBytes: rowBytes, w: width, h: height}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
	return png.Encode(w, dst)
}

// bgraImage adapts a packed BGRA8 buffer to image.Image so it can be
// fed through golang.org/x/image/draw's format conversion instead of a
// hand-rolled channel swap loop.
type bgraImage struct {
	pix      []byte
	rowBytes int
	w, h     int
}

func (b *bgraImage) ColorModel() color.Model { return color.RGBAModel }
func (b *bgraImage) Bounds() image.Rectangle { return image.Rect(0, 0, b.w, b.h) }

func (b *bgraImage) At(x, y int) color.Color {
	i := y*b.rowBytes + x*4
	if i+3 >= len(b.pix) {
		return color.RGBA{}
	}
	blue, green, red, alpha := b.pix[i], b.pix[i+1], b.pix[i+2], b.pix[i+3]
	return color.RGBA{R: red, G: green, B: blue, A: alpha}
}
