// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gesture implements the gesture interpreter (spec C8): a
// per-pointer state machine that subscribes to input.Router pointer
// events and re-emits higher-level click/drag/double-click gestures.
//
// Grounded on the teacher's events.Listeners subscribe/dispatch idiom
// (cogentcore-core/events/listeners.go) for the callback-list shape,
// but the state machine itself is new: spec.md §4.8's table has no
// teacher analogue.
package gesture

import (
	"time"

	"datoviz.org/dvz/input"
)

// State is the interpreter's current position in the state machine
// (spec.md §4.8, initial = Release).
type State int

const (
	Release State = iota
	Press
	Click
	ClickPress
	Dragging
	DoubleClick
)

func (s State) String() string {
	switch s {
	case Release:
		return "release"
	case Press:
		return "press"
	case Click:
		return "click"
	case ClickPress:
		return "click-press"
	case Dragging:
		return "dragging"
	case DoubleClick:
		return "double-click"
	default:
		return "unknown"
	}
}

// Kind identifies the gesture re-emitted by the interpreter.
type Kind int

const (
	KindPress Kind = iota
	KindClick
	KindRelease
	KindDragStart
	KindDrag
	KindDragStop
	KindDoubleClick
)

// Thresholds (spec.md §4.8 "Thresholds are constants").
const (
	ClickMaxDelay       = 250 * time.Millisecond
	ClickMaxShift       = 5.0 // pixels
	DoubleClickMaxDelay = 200 * time.Millisecond
)

// Gesture is the event re-emitted to subscribers. PressPos/LastPos/
// Shift/IsPressValid are populated for drag gestures (spec.md §4.8
// "Drag events carry (press_pos, last_pos, shift = cur-press,
// is_press_valid)").
type Gesture struct {
	Kind         Kind
	Button       int
	PressPos     [2]float64
	LastPos      [2]float64
	Shift        [2]float64
	IsPressValid bool
}

// Callback receives interpreted gestures.
type Callback func(Gesture)

// Interpreter tracks one pointer's gesture state, driven by
// input.Router pointer events (spec.md §4.8).
type Interpreter struct {
	state State

	pressPos  [2]float64
	lastPos     [2]float64
	pressButton int
	pressTime   time.Time

	now  func() time.Time
	emit Callback
}

// New returns an Interpreter that calls emit for every re-emitted
// gesture. now defaults to time.Now; tests may override it for
// deterministic delay thresholds.
func New(emit Callback) *Interpreter {
	return &Interpreter{state: Release, emit: emit, now: time.Now}
}

// Attach subscribes the interpreter to r's pointer events.
func (in *Interpreter) Attach(r *input.Router) uint64 {
	return r.Subscribe(input.KindPointer, func(ev input.Event, _ any) {
		in.HandlePointer(*ev.Pointer)
	}, nil)
}

func (in *Interpreter) pos(e input.PointerEvent) [2]float64 { return [2]float64{e.X, e.Y} }

func (in *Interpreter) shift(cur [2]float64) [2]float64 {
	return [2]float64{cur[0] - in.pressPos[0], cur[1] - in.pressPos[1]}
}

func dist(a, b [2]float64) float64 {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return dx*dx + dy*dy // compared against a squared threshold below
}

// HandlePointer advances the state machine by one pointer event and
// emits zero or more gestures, per spec.md §4.8's transition table.
func (in *Interpreter) HandlePointer(e input.PointerEvent) {
	now := in.now()
	pos := in.pos(e)

	switch in.state {
	case Release:
		if e.Action == input.PointerPress {
			in.pressPos = pos
			in.lastPos = pos
			in.pressTime = now
			in.pressButton = e.Button
			in.state = Press
			in.emit(Gesture{Kind: KindPress, Button: e.Button, PressPos: pos, IsPressValid: true})
		}

	case Press:
		switch e.Action {
		case input.PointerRelease:
			if now.Sub(in.pressTime) <= ClickMaxDelay {
				in.state = Click
				in.pressTime = now
				in.emit(Gesture{Kind: KindClick, Button: in.pressButton, PressPos: in.pressPos, LastPos: pos})
			} else {
				in.state = Release
				in.emit(Gesture{Kind: KindRelease, Button: in.pressButton, PressPos: in.pressPos, LastPos: pos})
			}
		case input.PointerMove:
			if dist(pos, in.pressPos) > ClickMaxShift*ClickMaxShift {
				in.state = Dragging
				in.lastPos = pos
				in.emit(Gesture{Kind: KindDragStart, Button: in.pressButton, PressPos: in.pressPos, LastPos: pos, Shift: in.shift(pos), IsPressValid: true})
			}
		}

	case Click:
		switch e.Action {
		case input.PointerPress:
			in.pressPos = pos
			in.lastPos = pos
			in.pressButton = e.Button
			if now.Sub(in.pressTime) <= DoubleClickMaxDelay {
				in.state = ClickPress
			} else {
				in.state = Press
			}
			in.pressTime = now
			in.emit(Gesture{Kind: KindPress, Button: e.Button, PressPos: pos, IsPressValid: true})
		case input.PointerMove:
			if dist(pos, in.pressPos) > ClickMaxShift*ClickMaxShift {
				in.state = Release
			}
		}

	case ClickPress:
		switch e.Action {
		case input.PointerRelease:
			in.state = DoubleClick
			in.emit(Gesture{Kind: KindDoubleClick, Button: in.pressButton, PressPos: in.pressPos, LastPos: pos})
		case input.PointerMove:
			if dist(pos, in.pressPos) > ClickMaxShift*ClickMaxShift {
				in.state = Dragging
				in.lastPos = pos
				in.emit(Gesture{Kind: KindDragStart, Button: in.pressButton, PressPos: in.pressPos, LastPos: pos, Shift: in.shift(pos), IsPressValid: true})
			}
		}

	case Dragging:
		switch e.Action {
		case input.PointerMove:
			in.lastPos = pos
			in.emit(Gesture{Kind: KindDrag, Button: in.pressButton, PressPos: in.pressPos, LastPos: pos, Shift: in.shift(pos), IsPressValid: true})
		case input.PointerRelease:
			in.state = Release
			in.emit(Gesture{Kind: KindDragStop, Button: in.pressButton, PressPos: in.pressPos, LastPos: pos, Shift: in.shift(pos), IsPressValid: true})
		}

	case DoubleClick:
		// Swallow the next press-or-move, then fall back to release
		// (spec.md §4.8 "double-click | press or move | release | (swallow)").
		if e.Action == input.PointerPress || e.Action == input.PointerMove {
			in.state = Release
		}
	}
}
