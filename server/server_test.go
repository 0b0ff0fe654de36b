package server

import (
	"strings"
	"testing"

	"sliderbridge/state"
)

func TestWebSocketTouchScenarioB(t *testing.T) {
	hub := state.NewHub()
	s := &Server{Hub: hub}

	msg := "b" + strings.Repeat("1", 32) + strings.Repeat("0", 6)
	ok := s.handleText([]byte(msg), make(chan wsMessage, 1))
	if !ok {
		t.Fatalf("expected ok=true")
	}

	in := hub.Input().Read()
	for i, g := range in.Ground {
		if g != 255 {
			t.Errorf("ground[%d] = %d, want 255", i, g)
		}
	}
	for i, a := range in.Air {
		if a != 0 {
			t.Errorf("air[%d] = %d, want 0", i, a)
		}
	}
}

func TestHeartbeat(t *testing.T) {
	s := &Server{Hub: state.NewHub()}
	send := make(chan wsMessage, 1)
	if !s.handleText([]byte("a12345"), send) {
		t.Fatalf("expected ok=true")
	}
	msg := <-send
	if string(msg.data) != "alive" {
		t.Fatalf("reply = %q, want alive", msg.data)
	}
}
