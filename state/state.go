// Package state holds the shared input and lighting slots read and
// written by every worker in a session.
package state

import "sync"

// Input is a snapshot of the controller's raw sensor state.
//
// Pad index 0 is the bottom-left pad; indices flow left-to-right, bottom
// row first (even indices), top row second (odd indices).
type Input struct {
	Ground [32]byte // pressure per pad, 0..255
	Air    [6]byte  // 0 = uninterrupted, 1 = interrupted; index 0 is the lowest beam
	Extra  [3]byte  // coin, test, service
}

// Flat is the canonical 41-bit Boolean projection of Input used by output
// emulation and reactive lighting.
//
//	flat[0..32]  touch pads left->right, bottom then top
//	flat[32..38] air beams bottom->top
//	flat[38..41] extra buttons
type Flat [41]bool

// Flat projects Input into its Boolean view at the given pressure
// threshold.
func (in Input) Flat(sensitivity byte) Flat {
	var f Flat
	for i, g := range in.Ground {
		f[i] = g >= sensitivity
	}
	for i, a := range in.Air {
		f[32+i] = a != 0
	}
	for i, e := range in.Extra {
		f[38+i] = e != 0
	}
	return f
}

// VerticalFlip swaps ground[2k] with ground[2k+1] for k in 0..16. It is
// its own inverse.
func VerticalFlip(ground [32]byte) [32]byte {
	var out [32]byte
	for k := 0; k < 16; k++ {
		out[2*k] = ground[2*k+1]
		out[2*k+1] = ground[2*k]
	}
	return out
}

// Lighting is a snapshot of the controller's RGB output state.
//
// Ground alternates pad-pixel, divider-pixel, pad-pixel, ... left to
// right: 16 pad pixels interleaved with 15 divider pixels, 31 total.
// AirLeft and AirRight run bottom to top.
type Lighting struct {
	Ground   [31][3]byte
	AirLeft  [3][3]byte
	AirRight [3][3]byte
	Dirty    bool
}

// Paint sets ground pixel idx to rgb.
func (l *Lighting) Paint(idx int, rgb [3]byte) {
	l.Ground[idx] = rgb
}

// PaintAirLeft sets air-left pixel idx to rgb.
func (l *Lighting) PaintAirLeft(idx int, rgb [3]byte) {
	l.AirLeft[idx] = rgb
}

// PaintAirRight sets air-right pixel idx to rgb.
func (l *Lighting) PaintAirRight(idx int, rgb [3]byte) {
	l.AirRight[idx] = rgb
}

// PaintAir sets both the left and right air pixel idx to rgb, matching the
// reactive layouts that treat the two strips symmetrically.
func (l *Lighting) PaintAir(idx int, rgb [3]byte) {
	l.AirLeft[idx] = rgb
	l.AirRight[idx] = rgb
}

// Reset zeroes every pixel and marks the frame dirty, used when the UMGR
// lighting source disconnects and the controller must go dark.
func (l *Lighting) Reset() {
	*l = Lighting{Dirty: true}
}

// InputSlot is an independently lockable holder for an Input snapshot.
type InputSlot struct {
	mu  sync.RWMutex
	cur Input
}

// Read copies out the current input snapshot.
func (s *InputSlot) Read() Input {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// With grants exclusive mutating access to the input snapshot.
func (s *InputSlot) With(f func(*Input)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(&s.cur)
}

// LightingSlot is an independently lockable holder for a Lighting
// snapshot.
type LightingSlot struct {
	mu  sync.RWMutex
	cur Lighting
}

// Read copies out the current lighting snapshot.
func (s *LightingSlot) Read() Lighting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// With grants exclusive mutating access to the lighting snapshot.
func (s *LightingSlot) With(f func(*Lighting)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(&s.cur)
}

// Hub is the shared state root for a session: one input slot, one
// lighting slot, each guarded by its own lock so producers and consumers
// on either side never contend with each other.
type Hub struct {
	input    *InputSlot
	lighting *LightingSlot
}

// NewHub builds an empty hub: zero pressure, zero color, dirty=false.
func NewHub() *Hub {
	return &Hub{
		input:    &InputSlot{},
		lighting: &LightingSlot{},
	}
}

// Input returns the hub's input slot.
func (h *Hub) Input() *InputSlot { return h.input }

// Lighting returns the hub's lighting slot.
func (h *Hub) Lighting() *LightingSlot { return h.lighting }

// SnapshotBytes concatenates ground++air++extra++lights.ground for
// diagnostic UI use. It takes the input lock, copies, releases it, then
// takes the lighting lock, copies, releases it — input always before
// lighting, so this never deadlocks against any other fixed-order caller.
func (h *Hub) SnapshotBytes() []byte {
	in := h.input.Read()
	lt := h.lighting.Read()

	out := make([]byte, 0, 32+6+3+31*3)
	out = append(out, in.Ground[:]...)
	out = append(out, in.Air[:]...)
	out = append(out, in.Extra[:]...)
	for _, px := range lt.Ground {
		out = append(out, px[:]...)
	}
	return out
}
