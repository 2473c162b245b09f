// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"errors"
	"log"
)

// VideoSink receives presented frames for recording to a video file.
// No concrete encoding backend ships with this implementation (the
// source system's own sink backends are themselves unimplemented); the
// attach/detach state machine is preserved so a caller can wire one in
// later without changing the canvas's contract.
type VideoSink interface {
	Attach() error
	Detach() error
	Started() bool
}

// ErrSinkAlreadyStarted is returned by Canvas.AttachVideoSink once a
// sink has already started receiving frames (attach is only valid
// before the canvas's first Submit).
var ErrSinkAlreadyStarted = errors.New("canvas: video sink already started")

// ErrVideoSinkDisabled is returned by Canvas.AttachVideoSink when the
// canvas was created with Config.EnableVideoSink false.
var ErrVideoSinkDisabled = errors.New("canvas: video sink disabled in config")

// AttachVideoSink attaches sink to the canvas. Attach succeeds only
// before the canvas's first Submit and only when the canvas was
// created with Config.EnableVideoSink; calling it after frames have
// begun presenting returns ErrSinkAlreadyStarted.
func (c *Canvas[U]) AttachVideoSink(sink VideoSink) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.videoSinkEnabled {
		return ErrVideoSinkDisabled
	}
	if c.started {
		return ErrSinkAlreadyStarted
	}
	if err := sink.Attach(); err != nil {
		return err
	}
	c.sink = sink
	return nil
}

// DetachVideoSink detaches the canvas's sink, if any. Detaching before
// the canvas has submitted any frame logs and returns success rather
// than erroring, since the sink never actually started.
func (c *Canvas[U]) DetachVideoSink() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sink == nil {
		return nil
	}
	if !c.started {
		log.Printf("canvas: detaching video sink before first submit")
		c.sink = nil
		return nil
	}
	err := c.sink.Detach()
	c.sink = nil
	return err
}
