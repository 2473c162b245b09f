// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"math"
	"testing"
)

func TestDemoPointCountDefault(t *testing.T) {
	if n := demoPointCount(nil); n != 1000 {
		t.Fatalf("default point count = %d, want 1000", n)
	}
	if n := demoPointCount([]string{"-width", "800"}); n != 1000 {
		t.Fatalf("no -points flag: got %d, want default 1000", n)
	}
}

func TestDemoPointCountParsesFlag(t *testing.T) {
	if n := demoPointCount([]string{"-points", "5000"}); n != 5000 {
		t.Fatalf("got %d, want 5000", n)
	}
	if n := demoPointCount([]string{"-width", "800", "-points", "250", "-height", "600"}); n != 250 {
		t.Fatalf("got %d, want 250", n)
	}
}

func TestDemoPointCountRejectsNonPositive(t *testing.T) {
	if n := demoPointCount([]string{"-points", "0"}); n != 1000 {
		t.Fatalf("zero points should fall back to default, got %d", n)
	}
	if n := demoPointCount([]string{"-points", "-5"}); n != 1000 {
		t.Fatalf("negative points should fall back to default, got %d", n)
	}
}

func TestDemoPointCountIgnoresTrailingFlagWithNoValue(t *testing.T) {
	if n := demoPointCount([]string{"-points"}); n != 1000 {
		t.Fatalf("dangling -points with no value should fall back to default, got %d", n)
	}
}

func TestRandomPointsShapeAndRange(t *testing.T) {
	pts := randomPoints(200)
	if len(pts) != 200 {
		t.Fatalf("len = %d, want 200", len(pts))
	}
	for i, p := range pts {
		if p[0] < -1 || p[0] > 1 || p[1] < -1 || p[1] > 1 {
			t.Fatalf("point %d = %v out of [-1,1] range", i, p)
		}
	}
}

func TestRandomPointsZero(t *testing.T) {
	if pts := randomPoints(0); len(pts) != 0 {
		t.Fatalf("len = %d, want 0", len(pts))
	}
}

func TestEncodePointsLayout(t *testing.T) {
	pts := [][2]float32{{1.5, -2.25}, {0, 3}}
	got := encodePoints(pts)
	if len(got) != 16 {
		t.Fatalf("len = %d, want 16", len(got))
	}

	for i, want := range []float32{1.5, -2.25, 0, 3} {
		bits := uint32(got[i*4]) | uint32(got[i*4+1])<<8 | uint32(got[i*4+2])<<16 | uint32(got[i*4+3])<<24
		if got := math.Float32frombits(bits); got != want {
			t.Fatalf("float %d = %v, want %v", i, got, want)
		}
	}
}

func TestEncodePointsEmpty(t *testing.T) {
	if got := encodePoints(nil); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}
