// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datoviz.org/dvz/input"
)

func newTestInterpreter(t *testing.T) (*Interpreter, *[]Gesture, *time.Time) {
	var events []Gesture
	clock := time.Now()
	in := New(func(g Gesture) { events = append(events, g) })
	in.now = func() time.Time { return clock }
	return in, &events, &clock
}

func TestPressThenQuickReleaseIsClick(t *testing.T) {
	in, events, clock := newTestInterpreter(t)

	in.HandlePointer(input.PointerEvent{Action: input.PointerPress, X: 10, Y: 10})
	*clock = clock.Add(100 * time.Millisecond)
	in.HandlePointer(input.PointerEvent{Action: input.PointerRelease, X: 10, Y: 10})

	require.Len(t, *events, 2)
	assert.Equal(t, KindPress, (*events)[0].Kind)
	assert.Equal(t, KindClick, (*events)[1].Kind)
	assert.Equal(t, Click, in.state)
}

func TestPressThenSlowReleaseIsPlainRelease(t *testing.T) {
	in, events, clock := newTestInterpreter(t)

	in.HandlePointer(input.PointerEvent{Action: input.PointerPress, X: 0, Y: 0})
	*clock = clock.Add(300 * time.Millisecond)
	in.HandlePointer(input.PointerEvent{Action: input.PointerRelease, X: 0, Y: 0})

	require.Len(t, *events, 2)
	assert.Equal(t, KindRelease, (*events)[1].Kind)
	assert.Equal(t, Release, in.state)
}

func TestLargeMoveDuringPressStartsDrag(t *testing.T) {
	in, events, _ := newTestInterpreter(t)

	in.HandlePointer(input.PointerEvent{Action: input.PointerPress, X: 0, Y: 0})
	in.HandlePointer(input.PointerEvent{Action: input.PointerMove, X: 20, Y: 0})

	require.Len(t, *events, 2)
	assert.Equal(t, KindDragStart, (*events)[1].Kind)
	assert.Equal(t, Dragging, in.state)
	assert.Equal(t, [2]float64{20, 0}, (*events)[1].Shift)
}

func TestSmallMoveDuringPressDoesNotStartDrag(t *testing.T) {
	in, events, _ := newTestInterpreter(t)

	in.HandlePointer(input.PointerEvent{Action: input.PointerPress, X: 0, Y: 0})
	in.HandlePointer(input.PointerEvent{Action: input.PointerMove, X: 2, Y: 0})

	assert.Len(t, *events, 1, "a sub-threshold move must not start a drag")
	assert.Equal(t, Press, in.state)
}

func TestDragSequenceEndsWithDragStop(t *testing.T) {
	in, events, _ := newTestInterpreter(t)

	in.HandlePointer(input.PointerEvent{Action: input.PointerPress, X: 0, Y: 0})
	in.HandlePointer(input.PointerEvent{Action: input.PointerMove, X: 20, Y: 0})
	in.HandlePointer(input.PointerEvent{Action: input.PointerMove, X: 30, Y: 5})
	in.HandlePointer(input.PointerEvent{Action: input.PointerRelease, X: 30, Y: 5})

	last := (*events)[len(*events)-1]
	assert.Equal(t, KindDragStop, last.Kind)
	assert.Equal(t, Release, in.state)
}

func TestQuickSecondPressAfterClickIsDoubleClick(t *testing.T) {
	in, events, clock := newTestInterpreter(t)

	in.HandlePointer(input.PointerEvent{Action: input.PointerPress, X: 0, Y: 0})
	*clock = clock.Add(50 * time.Millisecond)
	in.HandlePointer(input.PointerEvent{Action: input.PointerRelease, X: 0, Y: 0})
	require.Equal(t, Click, in.state)

	*clock = clock.Add(50 * time.Millisecond)
	in.HandlePointer(input.PointerEvent{Action: input.PointerPress, X: 0, Y: 0})
	require.Equal(t, ClickPress, in.state)

	in.HandlePointer(input.PointerEvent{Action: input.PointerRelease, X: 0, Y: 0})
	last := (*events)[len(*events)-1]
	assert.Equal(t, KindDoubleClick, last.Kind)
	assert.Equal(t, DoubleClick, in.state)
}

func TestSlowSecondPressAfterClickDoesNotChainIntoClickPress(t *testing.T) {
	in, events, clock := newTestInterpreter(t)

	in.HandlePointer(input.PointerEvent{Action: input.PointerPress, X: 0, Y: 0})
	*clock = clock.Add(50 * time.Millisecond)
	in.HandlePointer(input.PointerEvent{Action: input.PointerRelease, X: 0, Y: 0})
	require.Equal(t, Click, in.state)

	*clock = clock.Add(300 * time.Millisecond)
	in.HandlePointer(input.PointerEvent{Action: input.PointerPress, X: 0, Y: 0})
	assert.Equal(t, Press, in.state, "a press past the double-click window starts a fresh press, not a chained click-press")
	last := (*events)[len(*events)-1]
	assert.Equal(t, KindPress, last.Kind, "the late press must still be emitted")
}

func TestMoveBeyondShiftDuringClickResetsToRelease(t *testing.T) {
	in, _, clock := newTestInterpreter(t)

	in.HandlePointer(input.PointerEvent{Action: input.PointerPress, X: 0, Y: 0})
	*clock = clock.Add(50 * time.Millisecond)
	in.HandlePointer(input.PointerEvent{Action: input.PointerRelease, X: 0, Y: 0})
	require.Equal(t, Click, in.state)

	in.HandlePointer(input.PointerEvent{Action: input.PointerMove, X: 50, Y: 0})
	assert.Equal(t, Release, in.state, "a move past the shift threshold while clicked must reset to release")
}

func TestMoveWithinShiftDuringClickStaysClick(t *testing.T) {
	in, _, clock := newTestInterpreter(t)

	in.HandlePointer(input.PointerEvent{Action: input.PointerPress, X: 0, Y: 0})
	*clock = clock.Add(50 * time.Millisecond)
	in.HandlePointer(input.PointerEvent{Action: input.PointerRelease, X: 0, Y: 0})
	require.Equal(t, Click, in.state)

	in.HandlePointer(input.PointerEvent{Action: input.PointerMove, X: 1, Y: 0})
	assert.Equal(t, Click, in.state, "a move within the shift threshold must not disturb the click state")
}

func TestDoubleClickSwallowsNextPressThenReturnsToRelease(t *testing.T) {
	in, events, clock := newTestInterpreter(t)

	in.HandlePointer(input.PointerEvent{Action: input.PointerPress, X: 0, Y: 0})
	*clock = clock.Add(50 * time.Millisecond)
	in.HandlePointer(input.PointerEvent{Action: input.PointerRelease, X: 0, Y: 0})
	*clock = clock.Add(50 * time.Millisecond)
	in.HandlePointer(input.PointerEvent{Action: input.PointerPress, X: 0, Y: 0})
	in.HandlePointer(input.PointerEvent{Action: input.PointerRelease, X: 0, Y: 0})
	require.Equal(t, DoubleClick, in.state)

	before := len(*events)
	in.HandlePointer(input.PointerEvent{Action: input.PointerPress, X: 0, Y: 0})
	assert.Len(t, *events, before, "the swallowed press must not emit a gesture")
	assert.Equal(t, Release, in.state)
}
