// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"

	"datoviz.org/dvz/canvas"
	"datoviz.org/dvz/gpu"
	"datoviz.org/dvz/id"
	"datoviz.org/dvz/internal/log"
	"datoviz.org/dvz/protocol"
	"datoviz.org/dvz/renderer"
)

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().String("args", "", "extra pass-through GPU/window options, shell-quoted (e.g. --args=\"-points 5000\")")
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Open a window driving a built-in point-scatter scene",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		extra, _ := cmd.Flags().GetString("args")
		passthrough, err := shellwords.Parse(extra)
		if err != nil {
			return newUsageError("demo: parsing --args: %v", err)
		}
		points := demoPointCount(passthrough)

		cfg := loadConfig()
		log.Infof("starting demo with %d points (log level %d)", points, cfg.LogLevel)
		return runPointScatterDemo(points)
	},
}

// demoPointCount looks for a "-points N" pair in the tokenized extra
// args, defaulting to 1000 (spec.md end-to-end scenario 1 "point
// scatter").
func demoPointCount(args []string) int {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "-points" {
			var n int
			if _, err := fmt.Sscanf(args[i+1], "%d", &n); err == nil && n > 0 {
				return n
			}
		}
	}
	return 1000
}

// runPointScatterDemo is grounded on gpu/examples/drawtri/drawtri.go's
// window/GPU/surface setup, generalized from one fixed triangle to a
// renderer-driven batch: a random point cloud uploaded into one vertex
// Dat, drawn by a point-list graphics pipeline, replayed every frame
// through renderer.Renderer.
func runPointScatterDemo(pointCount int) error {
	// GLFW requires every windowing call on the thread that created the
	// window (gpu/examples/drawtri/drawtri.go's init pins this too).
	runtime.LockOSThread()

	gp := gpu.NewGPU()
	if err := gp.Config("datoviz-demo"); err != nil {
		return fmt.Errorf("demo: gpu config: %w", err)
	}
	defer gp.Release()

	dev, err := gp.NewDevice()
	if err != nil {
		return fmt.Errorf("demo: new device: %w", err)
	}
	defer dev.Release()

	ren := renderer.New(gp, dev, func() canvas.Backend { return canvas.NewGLFWBackend() })
	ren.SetErrorCallback(func(i int, req protocol.Request, err error) {
		log.Errorf("request %d (%s %s): %v", i, req.Action, req.ObjType, err)
	})

	batch := protocol.New()

	// TargetID is left at id.None on every create request here: Add
	// allocates and returns the assigned ID (spec.md §4.2), so the
	// scene graph below is wired up from its return values rather than
	// hand-picked constants.
	canvasID := protocol.CanvasID(batch.Add(protocol.Request{
		Action: protocol.ActionCreate, ObjType: protocol.ObjectCanvas,
		Content: protocol.CreateCanvas{Width: 1024, Height: 768, ClearColor: [4]float32{0.05, 0.05, 0.08, 1}},
	}))

	pointBytes := encodePoints(randomPoints(pointCount))
	datID := protocol.DatID(batch.Add(protocol.Request{
		Action: protocol.ActionCreate, ObjType: protocol.ObjectDat,
		Content: protocol.CreateDat{Buffer: protocol.BuffVertex, Size: uint64(len(pointBytes))},
	}))
	batch.Add(protocol.Request{
		Action: protocol.ActionUpdate, ObjType: protocol.ObjectDat, TargetID: id.ID(datID),
		Content: protocol.UploadDat{Offset: 0, Data: pointBytes},
	})

	vertShader := protocol.ShaderID(batch.Add(protocol.Request{
		Action: protocol.ActionCreate, ObjType: protocol.ObjectShader,
		Content: protocol.CreateShader{Stage: 0, Format: protocol.ShaderWGSL, Code: []byte(pointVertexWGSL)},
	}))
	fragShader := protocol.ShaderID(batch.Add(protocol.Request{
		Action: protocol.ActionCreate, ObjType: protocol.ObjectShader,
		Content: protocol.CreateShader{Stage: 1, Format: protocol.ShaderWGSL, Code: []byte(pointFragmentWGSL)},
	}))

	graphicsID := protocol.GraphicsID(batch.Add(protocol.Request{
		Action: protocol.ActionCreate, ObjType: protocol.ObjectGraphics,
		Content: protocol.CreateGraphics{
			Topology:   protocol.TopologyPointList,
			VertShader: vertShader,
			FragShader: fragShader,
			Bindings:   []protocol.VertexBinding{{Index: 0, Stride: 8}},
			Attributes: []protocol.VertexAttribute{{Binding: 0, Location: 0, Format: protocol.FormatR32G32Sfloat, Offset: 0}},
		},
	}))
	batch.Add(protocol.Request{
		Action: protocol.ActionBind, ObjType: protocol.ObjectGraphics, TargetID: id.ID(graphicsID),
		Content: protocol.BindVertex{GraphicsID: graphicsID, BindingIdx: 0, DatID: datID, Offset: 0},
	})

	batch.Add(protocol.Request{
		Action: protocol.ActionRecord, ObjType: protocol.ObjectCanvas, TargetID: id.ID(canvasID),
		Content: protocol.RecordBegin{CanvasID: canvasID},
	})
	batch.Add(protocol.Request{
		Action: protocol.ActionRecord, ObjType: protocol.ObjectCanvas, TargetID: id.ID(canvasID),
		Content: protocol.RecordViewport{CanvasID: canvasID, Width: 1024, Height: 768},
	})
	batch.Add(protocol.Request{
		Action: protocol.ActionRecord, ObjType: protocol.ObjectCanvas, TargetID: id.ID(canvasID),
		Content: protocol.RecordDraw{CanvasID: canvasID, GraphicsID: graphicsID, VertexCount: uint32(pointCount)},
	})
	batch.Add(protocol.Request{
		Action: protocol.ActionRecord, ObjType: protocol.ObjectCanvas, TargetID: id.ID(canvasID),
		Content: protocol.RecordEnd{CanvasID: canvasID},
	})

	if err := ren.Dispatch(batch); err != nil {
		return fmt.Errorf("demo: dispatch: %w", err)
	}

	cv, ok := ren.Canvas(canvasID)
	if !ok {
		return fmt.Errorf("demo: canvas %d was not created", canvasID)
	}

	ctx := context.Background()
	for !cv.Backend().ShouldClose() {
		cv.Backend().Poll()
		result, err := cv.Frame(ctx)
		if err != nil {
			return fmt.Errorf("demo: frame: %w", err)
		}
		if result != canvas.FrameReady {
			continue
		}
		if err := cv.Submit(canvas.FrameTiming{}); err != nil {
			return fmt.Errorf("demo: submit: %w", err)
		}
	}
	return nil
}

func randomPoints(n int) [][2]float32 {
	pts := make([][2]float32, n)
	for i := range pts {
		pts[i] = [2]float32{rand.Float32()*2 - 1, rand.Float32()*2 - 1}
	}
	return pts
}

func encodePoints(pts [][2]float32) []byte {
	out := make([]byte, len(pts)*8)
	for i, p := range pts {
		binary.LittleEndian.PutUint32(out[i*8:], math.Float32bits(p[0]))
		binary.LittleEndian.PutUint32(out[i*8+4:], math.Float32bits(p[1]))
	}
	return out
}

const pointVertexWGSL = `
struct VertexOut {
  @builtin(position) position: vec4<f32>,
};

@vertex
fn vs_main(@location(0) xy: vec2<f32>) -> VertexOut {
  var out: VertexOut;
  out.position = vec4<f32>(xy, 0.0, 1.0);
  return out;
}
`

const pointFragmentWGSL = `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
  return vec4<f32>(0.9, 0.85, 0.2, 1.0);
}
`
