package keyboard

import (
	"testing"

	"sliderbridge/state"
)

type fakeBackend struct {
	down, up []uint16
	calls    int
}

func (f *fakeBackend) SendEvents(down, up []uint16) error {
	f.down = append([]uint16(nil), down...)
	f.up = append([]uint16(nil), up...)
	f.calls++
	return nil
}
func (f *fakeBackend) Close() {}

func TestKeyDiffing(t *testing.T) {
	hub := state.NewHub()
	backend := &fakeBackend{}
	out := NewOutput(hub, LayoutEightK, 100, backend)

	hub.Input().With(func(in *state.Input) {
		in.Ground[0] = 200
		in.Ground[1] = 200
	})
	out.tick(nil)
	if backend.calls != 1 {
		t.Fatalf("expected first tick to send events, calls = %d", backend.calls)
	}
	firstDown := len(backend.down)
	if firstDown == 0 {
		t.Fatalf("expected at least one down event")
	}

	// Same input again: nothing should change.
	backend.calls = 0
	out.tick(nil)
	if backend.calls != 0 {
		t.Fatalf("expected no-op tick to send nothing, calls = %d", backend.calls)
	}

	// Release everything: expect exactly firstDown up events.
	hub.Input().With(func(in *state.Input) {
		in.Ground[0] = 0
		in.Ground[1] = 0
	})
	out.tick(nil)
	if len(backend.up) != firstDown {
		t.Fatalf("up events = %d, want %d", len(backend.up), firstDown)
	}
}
