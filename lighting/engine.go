package lighting

import (
	"context"
	"time"

	"sliderbridge/state"
	"sliderbridge/worker"
)

// ReactiveLayout names which reactive painter Engine uses.
type ReactiveLayout int

const (
	ReactiveFour ReactiveLayout = iota
	ReactiveSix
	ReactiveEight
	ReactiveSixteen
	ReactiveRainbowLayout
	ReactiveVoltexLayout
	ReactiveHoriLayout
)

// Mode selects Engine's overall behavior.
type Mode int

const (
	ModeReactive Mode = iota
	ModeAttract
)

// Engine computes a lighting snapshot into the shared slot every tick.
type Engine struct {
	Hub         *state.Hub
	Mode        Mode
	Layout      ReactiveLayout
	Palette     Palette
	Sensitivity byte
	Faster      bool

	started time.Time
}

// Job returns the worker.AsyncJob for this Engine, ticked at 30 Hz
// (Faster) or 15 Hz.
func (e *Engine) Job() worker.AsyncJob {
	return worker.AsyncJob{Setup: e.setup, Tick: e.tick}
}

func (e *Engine) setup(context.Context) bool {
	e.started = time.Now()
	return true
}

func (e *Engine) interval() time.Duration {
	if e.Faster {
		return 33333 * time.Microsecond
	}
	return 66666 * time.Microsecond
}

func (e *Engine) tick(ctx context.Context) bool {
	var next state.Lighting

	switch e.Mode {
	case ModeAttract:
		next = Attract(time.Since(e.started))
	case ModeReactive:
		in := e.Hub.Input().Read()
		f := in.Flat(e.Sensitivity)
		switch e.Layout {
		case ReactiveFour:
			next = Even(f, 4, e.Palette)
		case ReactiveSix:
			next = Six(f, e.Palette)
		case ReactiveEight:
			next = Even(f, 8, e.Palette)
		case ReactiveSixteen:
			next = Even(f, 16, e.Palette)
		case ReactiveVoltexLayout:
			next = Voltex(f)
		case ReactiveHoriLayout:
			next = Hori(f)
		case ReactiveRainbowLayout:
			next = Rainbow(f, time.Since(e.started))
		}
	}

	e.Hub.Lighting().With(func(l *state.Lighting) {
		*l = next
		l.Dirty = true
	})

	select {
	case <-ctx.Done():
	case <-time.After(e.interval()):
	}
	return true
}
