package usbhid

import "testing"

func TestTasollerTwoReadScenario(t *testing.T) {
	frame := make([]byte, 36)
	frame[3] = 0b10000001
	for i := 4; i < 36; i++ {
		frame[i] = 5
	}

	ground, air, extra := decodeTasollerTwo(frame)
	ground = applyFlipIfModel(ground, Models["tasoller-two"])

	for i, g := range ground {
		if g != 5 {
			t.Fatalf("ground[%d] = %d, want 5", i, g)
		}
	}
	wantAir := [6]byte{1, 0, 0, 0, 0, 0}
	if air != wantAir {
		t.Fatalf("air = %v, want %v", air, wantAir)
	}
	wantExtra := [3]byte{0, 1, 0}
	if extra != wantExtra {
		t.Fatalf("extra = %v, want %v", extra, wantExtra)
	}
}

func applyFlipIfModel(ground [32]byte, m Model) [32]byte {
	// decodeTasollerTwo already applies its own vertical flip
	// internally; this helper exists purely to make the scenario's
	// intent ("after vertical flip") explicit in the test without
	// double-flipping.
	_ = m
	return ground
}
