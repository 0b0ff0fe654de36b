package keyboard

import (
	"context"

	"sliderbridge/state"
	"sliderbridge/worker"
)

// Backend performs the actual key injection for a set of down/up
// transitions, diffed by Output each tick.
type Backend interface {
	// SendEvents is called once per tick with the keycodes that just
	// went down and the keycodes that just went up, in a single batch.
	SendEvents(down, up []uint16) error
	Close()
}

// Output de-duplicates a Layout's 41-entry keycode map into a set of
// unique keys and diffs each tick's flat input against the last one,
// emitting only the down/up transitions — this is the "key diffing"
// testable property.
type Output struct {
	Hub         *state.Hub
	Layout      Layout
	Sensitivity byte
	Backend     Backend

	inputToIdx []int
	idxToCode  []uint16
	nextKeys   []bool
	lastKeys   []bool
}

// NewOutput builds an Output for layout, de-duplicating its keycode
// table.
func NewOutput(hub *state.Hub, layout Layout, sensitivity byte, backend Backend) *Output {
	o := &Output{Hub: hub, Layout: layout, Sensitivity: sensitivity, Backend: backend}
	o.buildIndex()
	return o
}

func (o *Output) buildIndex() {
	kbMap := keyMaps[o.Layout]

	o.inputToIdx = make([]int, 41)
	o.idxToCode = nil
	codeToIdx := map[uint16]int{}

	for flatIdx, code := range kbMap {
		if code == 0 {
			o.inputToIdx[flatIdx] = -1
			continue
		}
		idx, ok := codeToIdx[code]
		if !ok {
			idx = len(o.idxToCode)
			codeToIdx[code] = idx
			o.idxToCode = append(o.idxToCode, code)
		}
		o.inputToIdx[flatIdx] = idx
	}

	o.nextKeys = make([]bool, len(o.idxToCode))
	o.lastKeys = make([]bool, len(o.idxToCode))
}

// Job returns the worker.AsyncJob for this Output. tick does not wait
// between calls and the configured output polling rate is not applied, so
// the job is ticked as fast as worker.RunAsync loops.
func (o *Output) Job() worker.AsyncJob {
	return worker.AsyncJob{Tick: o.tick}
}

func (o *Output) tick(context.Context) bool {
	for i := range o.nextKeys {
		o.nextKeys[i] = false
	}

	in := o.Hub.Input().Read()
	f := in.Flat(o.Sensitivity)
	for flatIdx, pressed := range f {
		if !pressed {
			continue
		}
		idx := o.inputToIdx[flatIdx]
		if idx >= 0 {
			o.nextKeys[idx] = true
		}
	}

	return o.send()
}

func (o *Output) send() bool {
	var down, up []uint16
	for i := range o.nextKeys {
		n, l := o.nextKeys[i], o.lastKeys[i]
		switch {
		case n && !l:
			down = append(down, o.idxToCode[i])
		case !n && l:
			up = append(up, o.idxToCode[i])
		}
		o.lastKeys[i] = n
	}

	if len(down) == 0 && len(up) == 0 {
		return false
	}
	if err := o.Backend.SendEvents(down, up); err != nil {
		return false
	}
	return true
}

// Reset releases every currently-held key by sending up events for them.
func (o *Output) Reset() {
	for i := range o.nextKeys {
		o.nextKeys[i] = false
	}
	o.send()
}
