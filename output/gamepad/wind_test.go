package gamepad

import "testing"

func TestLaserWindSequenceA(t *testing.T) {
	var w Wind
	seq := []struct{ l, r bool }{{true, false}, {true, true}, {false, true}}
	want := []int{-1, -1, 1}
	for i, s := range seq {
		got := w.Update(s.l, s.r)
		if got != want[i] {
			t.Errorf("step %d: Update(%v,%v) = %d, want %d", i, s.l, s.r, got, want[i])
		}
	}
}

func TestLaserWindSequenceB(t *testing.T) {
	var w Wind
	seq := []struct{ l, r bool }{{true, false}, {true, true}, {true, false}}
	want := []int{-1, -1, -1}
	for i, s := range seq {
		got := w.Update(s.l, s.r)
		if got != want[i] {
			t.Errorf("step %d: Update(%v,%v) = %d, want %d", i, s.l, s.r, got, want[i])
		}
	}
}

func TestVoltexAxisScenarioD(t *testing.T) {
	var w Wind
	// laser[0]=true (left pressed), laser[1]=false
	w.Update(true, false)
	if w.Axis() != -20000 {
		t.Fatalf("axis = %d, want -20000", w.Axis())
	}
}
