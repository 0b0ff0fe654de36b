package state

import "testing"

func TestFlatProjection(t *testing.T) {
	var in Input
	for i := range in.Ground {
		in.Ground[i] = byte(i * 8)
	}
	in.Air = [6]byte{0, 1, 0, 1, 0, 1}
	in.Extra = [3]byte{1, 0, 1}

	sensitivity := byte(100)
	f := in.Flat(sensitivity)

	if len(f) != 41 {
		t.Fatalf("flat length = %d, want 41", len(f))
	}
	for i, g := range in.Ground {
		want := g >= sensitivity
		if f[i] != want {
			t.Errorf("flat[%d] = %v, want %v", i, f[i], want)
		}
	}
	for i, a := range in.Air {
		if f[32+i] != (a != 0) {
			t.Errorf("flat[%d] (air) = %v, want %v", 32+i, f[32+i], a != 0)
		}
	}
	for i, e := range in.Extra {
		if f[38+i] != (e != 0) {
			t.Errorf("flat[%d] (extra) = %v, want %v", 38+i, f[38+i], e != 0)
		}
	}
}

func TestVerticalFlipInvolution(t *testing.T) {
	var ground [32]byte
	for i := range ground {
		ground[i] = byte(i + 1)
	}
	flipped := VerticalFlip(ground)
	twice := VerticalFlip(flipped)
	if twice != ground {
		t.Fatalf("VerticalFlip twice = %v, want %v", twice, ground)
	}
	if flipped == ground {
		t.Fatalf("VerticalFlip should change a non-symmetric array")
	}
}

func TestDirtyDiscipline(t *testing.T) {
	h := NewHub()

	h.Lighting().With(func(l *Lighting) {
		l.Ground[0] = [3]byte{1, 2, 3}
		l.Dirty = true
	})

	var observed [3]byte
	h.Lighting().With(func(l *Lighting) {
		if !l.Dirty {
			t.Fatalf("expected dirty frame to be observed")
		}
		observed = l.Ground[0]
		l.Dirty = false
	})
	if observed != ([3]byte{1, 2, 3}) {
		t.Fatalf("observed = %v, want {1,2,3}", observed)
	}

	h.Lighting().With(func(l *Lighting) {
		if l.Dirty {
			t.Fatalf("dirty should have been cleared by the consumer")
		}
	})
}

func TestSnapshotBytesLockOrder(t *testing.T) {
	h := NewHub()
	h.Input().With(func(in *Input) { in.Ground[0] = 9 })
	h.Lighting().With(func(l *Lighting) { l.Ground[0] = [3]byte{9, 9, 9} })

	b := h.SnapshotBytes()
	if len(b) != 32+6+3+31*3 {
		t.Fatalf("snapshot length = %d", len(b))
	}
	if b[0] != 9 {
		t.Fatalf("snapshot[0] = %d, want 9", b[0])
	}
}
