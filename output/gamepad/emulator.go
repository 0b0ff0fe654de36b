package gamepad

import (
	"context"

	"sliderbridge/state"
	"sliderbridge/worker"
)

// Layout selects which projection the emulator applies.
type Layout int

const (
	LayoutVoltex Layout = iota
	LayoutNeardayo
	LayoutHori
	LayoutHoriWide
)

// Emulator drives a Bus from the shared input slot.
type Emulator struct {
	Hub        *state.Hub
	Layout     Layout
	Sensitivity byte

	bus        Bus
	leftWind   Wind
	rightWind  Wind
	lastReport Report
}

// Job returns the worker.AsyncJob for this Emulator. tick does not wait
// between calls and the configured output polling rate is not applied, so
// the job is ticked as fast as worker.RunAsync loops.
func (e *Emulator) Job() worker.AsyncJob {
	return worker.AsyncJob{
		Setup: e.setup,
		Tick:  e.tick,
	}
}

func (e *Emulator) setup(context.Context) bool {
	e.bus = NewBus()
	if err := e.bus.Connect(); err != nil {
		return false
	}
	return true
}

func (e *Emulator) tick(context.Context) bool {
	in := e.Hub.Input().Read()
	f := in.Flat(e.Sensitivity)

	var report Report
	switch e.Layout {
	case LayoutVoltex, LayoutNeardayo:
		v := VoltexFromFlat(f)
		report = e.voltexReport(v, f)
	case LayoutHori, LayoutHoriWide:
		var h HoriState
		if e.Layout == LayoutHoriWide {
			h = HoriFromFlatWide(f)
		} else {
			h = HoriFromFlat(f)
		}
		lx, ly, rx, ry := HoriAxisWord(h)
		report.LX, report.LY = int16(lx)<<8, int16(ly)<<8
		report.RX, report.RY = int16(rx)<<8, int16(ry)<<8
		report.Buttons = horiButtons(h)
	}

	if report == e.lastReport {
		return false
	}
	e.lastReport = report
	if err := e.bus.Push(report); err != nil {
		return false
	}
	return true
}

func (e *Emulator) voltexReport(v VoltexState, f state.Flat) Report {
	var r Report

	if v.BT[0] {
		r.Buttons |= 1 << 0 // A
	}
	if v.BT[1] {
		r.Buttons |= 1 << 1 // B
	}
	if v.BT[2] {
		r.Buttons |= 1 << 2 // X
	}
	if v.BT[3] {
		r.Buttons |= 1 << 3 // Y
	}
	if v.FX[0] {
		r.Buttons |= 1 << 4 // LB
	}
	if v.FX[1] {
		r.Buttons |= 1 << 5 // RB
	}
	if v.Extra[0] {
		r.Buttons |= 1 << 6 // START
	}
	if v.Extra[1] {
		r.Buttons |= 1 << 7 // BACK
	}
	if v.Extra[2] {
		r.Buttons |= 1 << 8 // GUIDE
	}

	left := v.Laser[0]
	right := v.Laser[1]
	if e.Layout == LayoutNeardayo {
		left = left || anyTrue(f[32:35])
		right = right || anyTrue(f[35:38])
	}
	e.leftWind.Update(left, right)
	r.LX = e.leftWind.Axis()

	left2, right2 := v.Laser[2], v.Laser[3]
	e.rightWind.Update(left2, right2)
	r.RX = e.rightWind.Axis()

	return r
}

func horiButtons(h HoriState) uint16 {
	var b uint16
	for i, pressed := range h.BT {
		if pressed {
			b |= 1 << uint(i)
		}
	}
	return b
}
