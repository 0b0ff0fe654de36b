// Package worker supervises the three long-lived job flavors a session
// can run: tight-loop thread jobs, ticked async jobs, and haltable async
// jobs driven entirely by external events.
package worker

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"sliderbridge/ratemeter"
)

// Handle is returned by every Run* constructor. Stop requests shutdown
// and blocks until the worker's goroutine has exited.
type Handle struct {
	cancel context.CancelFunc
	stop   atomic.Bool
	done   chan struct{}
	meter  *ratemeter.Meter
	failed atomic.Bool
}

// Stop requests the worker to halt and waits for it to exit.
func (h *Handle) Stop() {
	h.stop.Store(true)
	if h.cancel != nil {
		h.cancel()
	}
	<-h.done
}

// Rate returns the worker's current tick rate.
func (h *Handle) Rate() float64 { return h.meter.Rate() }

// Failed reports whether the worker's setup returned false.
func (h *Handle) Failed() bool { return h.failed.Load() }

// ThreadJob is a synchronous tight-loop job run on a dedicated OS
// thread, for transports whose I/O blocks (USB, serial).
type ThreadJob struct {
	Setup    func() bool
	Tick     func() bool
	Teardown func()
}

// RunThread launches j on a dedicated OS thread. Setup runs once; if it
// returns false the worker is marked failed and Tick never runs. Tick
// runs in a loop, each true return counted by the rate meter, until Stop
// is called. Teardown, if set, always runs after the loop exits (even
// when Setup failed) so the job can release its OS handles before Stop
// returns.
func RunThread(j ThreadJob) *Handle {
	h := &Handle{done: make(chan struct{}), meter: &ratemeter.Meter{}}

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(h.done)
		if j.Teardown != nil {
			defer j.Teardown()
		}

		if j.Setup != nil && !j.Setup() {
			h.failed.Store(true)
			return
		}
		for !h.stop.Load() {
			if j.Tick() {
				h.meter.Tick()
			}
		}
	}()

	return h
}

// AsyncJob is a ticked job run on the shared async runtime (an ordinary
// goroutine pool here, since Go has no separate async executor).
type AsyncJob struct {
	Setup func(context.Context) bool
	Tick  func(context.Context) bool
}

// RunAsync launches j, ticking until ctx is cancelled or Stop is called.
func RunAsync(ctx context.Context, j AsyncJob) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{done: make(chan struct{}), meter: &ratemeter.Meter{}, cancel: cancel}

	go func() {
		defer close(h.done)

		if j.Setup != nil && !j.Setup(ctx) {
			h.failed.Store(true)
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if j.Tick(ctx) {
				h.meter.Tick()
			}
		}
	}()

	return h
}

// RunHaltable launches run on its own goroutine. run owns its own select
// against ctx.Done() and is expected to return promptly once it fires.
// Used for the embedded HTTP/WebSocket server and the UMGR lighting
// bridge, whose loops are driven by external events rather than a tick
// counter.
func RunHaltable(ctx context.Context, run func(context.Context)) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{done: make(chan struct{}), meter: &ratemeter.Meter{}, cancel: cancel}

	var once sync.Once
	go func() {
		defer once.Do(func() { close(h.done) })
		run(ctx)
	}()

	return h
}
