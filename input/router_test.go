// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitCallsSubscribersInInsertionOrder(t *testing.T) {
	r := NewRouter()
	var order []int
	r.Subscribe(KindPointer, func(Event, any) { order = append(order, 1) }, nil)
	r.Subscribe(KindPointer, func(Event, any) { order = append(order, 2) }, nil)
	r.Subscribe(KindPointer, func(Event, any) { order = append(order, 3) }, nil)

	r.Emit(PointerEv(PointerEvent{Action: PointerMove}))

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestEmitDoesNotDeliverToOtherKinds(t *testing.T) {
	r := NewRouter()
	called := false
	r.Subscribe(KindKeyboard, func(Event, any) { called = true }, nil)

	r.Emit(PointerEv(PointerEvent{Action: PointerMove}))

	assert.False(t, called)
}

func TestUnionSubscriptionReceivesEveryKind(t *testing.T) {
	r := NewRouter()
	var kinds []Kind
	r.Subscribe(KindAny, func(ev Event, _ any) { kinds = append(kinds, ev.Kind) }, nil)

	r.Emit(PointerEv(PointerEvent{}))
	r.Emit(ResizeEv(ResizeEvent{Width: 10, Height: 20}))

	assert.Equal(t, []Kind{KindPointer, KindResize}, kinds)
}

// A callback that subscribes a new callback during dispatch must not
// have that new callback invoked until a later Emit (spec.md §4.7:
// dispatch works off a snapshot taken before the loop starts).
func TestCallbackAddedDuringEmitIsNotCalledThisEmit(t *testing.T) {
	r := NewRouter()
	secondCalled := 0
	r.Subscribe(KindPointer, func(Event, any) {
		r.Subscribe(KindPointer, func(Event, any) { secondCalled++ }, nil)
	}, nil)

	r.Emit(PointerEv(PointerEvent{}))
	assert.Equal(t, 0, secondCalled)

	r.Emit(PointerEv(PointerEvent{}))
	assert.Equal(t, 1, secondCalled)
}

// A callback that unsubscribes itself mid-dispatch must still finish
// running for the Emit that removed it, and must not run again on the
// next Emit.
func TestCallbackRemovedDuringEmitStillCompletesCurrentInvocation(t *testing.T) {
	r := NewRouter()
	calls := 0
	var id uint64
	id = r.Subscribe(KindPointer, func(Event, any) {
		calls++
		r.Unsubscribe(KindPointer, id)
	}, nil)

	r.Emit(PointerEv(PointerEvent{}))
	assert.Equal(t, 1, calls)

	r.Emit(PointerEv(PointerEvent{}))
	assert.Equal(t, 1, calls, "unsubscribed callback must not run on a later emit")
}

func TestUnsubscribeUnknownIDIsNoop(t *testing.T) {
	r := NewRouter()
	assert.NotPanics(t, func() { r.Unsubscribe(KindPointer, 12345) })
}
