// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePNGRoundTrips(t *testing.T) {
	const w, h = 2, 1
	// BGRA8 pixels: opaque red, then opaque blue.
	pixels := []byte{
		0, 0, 255, 255, // blue, green, red, alpha -> red pixel
		255, 0, 0, 255, // blue, green, red, alpha -> blue pixel
	}

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, pixels, w, h, w*4))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, w, img.Bounds().Dx())
	require.Equal(t, h, img.Bounds().Dy())

	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, color.RGBA{R: 255, A: 255}, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)})

	r, g, b, a = img.At(1, 0).RGBA()
	assert.Equal(t, color.RGBA{B: 255, A: 255}, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)})
}

func TestWritePNGRejectsUndersizedRowBytes(t *testing.T) {
	var buf bytes.Buffer
	err := WritePNG(&buf, make([]byte, 4), 2, 1, 4)
	assert.Error(t, err)
}

func TestWritePNGHandlesPaddedRowBytes(t *testing.T) {
	const w, h = 1, 2
	rowBytes := 8 // padded beyond width*4
	pixels := make([]byte, rowBytes*h)
	// Row 0: green pixel at offset 0.
	pixels[0], pixels[1], pixels[2], pixels[3] = 0, 255, 0, 255
	// Row 1: white pixel at offset rowBytes.
	pixels[rowBytes+0], pixels[rowBytes+1], pixels[rowBytes+2], pixels[rowBytes+3] = 255, 255, 255, 255

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, pixels, w, h, rowBytes))

	img, err := png.Decode(&buf)
	require.NoError(t, err)

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, [3]uint8{0, 255, 0}, [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})

	r, g, b, _ = img.At(0, 1).RGBA()
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
}
