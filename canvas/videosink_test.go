// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSink struct {
	attached, detached bool
	attachErr, detachErr error
}

func (f *fakeSink) Attach() error { f.attached = true; return f.attachErr }
func (f *fakeSink) Detach() error { f.detached = true; return f.detachErr }
func (f *fakeSink) Started() bool { return f.attached && !f.detached }

func newTestCanvas(enableSink bool) *Canvas[int] {
	return &Canvas[int]{videoSinkEnabled: enableSink, timings: newTimingRing(4)}
}

func TestAttachVideoSinkFailsWhenDisabled(t *testing.T) {
	c := newTestCanvas(false)
	sink := &fakeSink{}
	err := c.AttachVideoSink(sink)
	assert.ErrorIs(t, err, ErrVideoSinkDisabled)
	assert.False(t, sink.attached)
}

func TestAttachVideoSinkSucceedsWhenEnabled(t *testing.T) {
	c := newTestCanvas(true)
	sink := &fakeSink{}
	assert.NoError(t, c.AttachVideoSink(sink))
	assert.True(t, sink.attached)
}

func TestAttachVideoSinkFailsAfterStarted(t *testing.T) {
	c := newTestCanvas(true)
	c.started = true
	err := c.AttachVideoSink(&fakeSink{})
	assert.ErrorIs(t, err, ErrSinkAlreadyStarted)
}

func TestAttachVideoSinkPropagatesAttachError(t *testing.T) {
	c := newTestCanvas(true)
	wantErr := errors.New("boom")
	err := c.AttachVideoSink(&fakeSink{attachErr: wantErr})
	assert.ErrorIs(t, err, wantErr)
}

func TestDetachVideoSinkBeforeStartLogsAndSucceeds(t *testing.T) {
	c := newTestCanvas(true)
	sink := &fakeSink{}
	assert.NoError(t, c.AttachVideoSink(sink))

	assert.NoError(t, c.DetachVideoSink())
	assert.False(t, sink.detached)
	assert.Nil(t, c.sink)
}

func TestDetachVideoSinkAfterStartCallsDetach(t *testing.T) {
	c := newTestCanvas(true)
	sink := &fakeSink{}
	assert.NoError(t, c.AttachVideoSink(sink))
	c.started = true

	assert.NoError(t, c.DetachVideoSink())
	assert.True(t, sink.detached)
}

func TestDetachVideoSinkNoopWithoutSink(t *testing.T) {
	c := newTestCanvas(true)
	assert.NoError(t, c.DetachVideoSink())
}
