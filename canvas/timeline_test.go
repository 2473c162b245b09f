// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimelineSignalIncrementsMonotonically(t *testing.T) {
	tl := newTimeline()
	assert.Equal(t, uint64(0), tl.Value())
	assert.Equal(t, uint64(1), tl.Signal())
	assert.Equal(t, uint64(2), tl.Signal())
	assert.Equal(t, uint64(2), tl.Value())
}

func TestTimelineWaitReleasesOnSignal(t *testing.T) {
	tl := newTimeline()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		tl.Wait(3)
	}()

	tl.Signal()
	tl.Signal()
	// Not yet at target; give the waiter a chance to (incorrectly) return.
	time.Sleep(10 * time.Millisecond)
	tl.Signal()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after target value reached")
	}
}

func TestTimelineWaitReturnsImmediatelyIfAlreadyMet(t *testing.T) {
	tl := newTimeline()
	tl.Signal()
	tl.Signal()
	done := make(chan struct{})
	go func() {
		tl.Wait(1)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked despite target already satisfied")
	}
}
