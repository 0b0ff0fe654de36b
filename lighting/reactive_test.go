package lighting

import (
	"testing"

	"sliderbridge/state"
)

func TestReactiveEightScenarioC(t *testing.T) {
	var f state.Flat
	for i := 0; i < 4; i++ {
		f[i] = true
	}

	p := Palette{
		Active:   [3]byte{255, 0, 255},
		Inactive: [3]byte{255, 255, 0},
	}

	l := Even(f, 8, p)

	if l.Ground[0] != p.Active {
		t.Errorf("pad pixel 0 = %v, want active %v", l.Ground[0], p.Active)
	}
	if l.Ground[2] != p.Active {
		t.Errorf("pad pixel 2 = %v, want active %v", l.Ground[2], p.Active)
	}
	if l.Ground[8] != p.Inactive {
		t.Errorf("pad pixel 8 = %v, want inactive %v", l.Ground[8], p.Inactive)
	}
	if l.Ground[3] != p.Active {
		t.Errorf("divider pixel 3 = %v, want active %v", l.Ground[3], p.Active)
	}
}
