package umgr

import (
	"bytes"
	"testing"
	"time"

	"sliderbridge/state"
)

func TestUMGRPingScenario(t *testing.T) {
	s := &Server{Hub: state.NewHub()}
	lastLights := time.Now()

	msg := []byte{0x01, 0x12, 0x04, 0xde, 0xad, 0xbe, 0xef}
	reply, ok := s.handlePacket(msg, &lastLights, 66666*time.Microsecond)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	want := []byte{0x01, 0x1a, 0x06, 0xde, 0xad, 0xbe, 0xef, 0x51, 0xed}
	if !bytes.Equal(reply, want) {
		t.Fatalf("reply = %x, want %x", reply, want)
	}
}

func TestUMGRInitializeScenario(t *testing.T) {
	s := &Server{Hub: state.NewHub()}
	lastLights := time.Now()

	reply, ok := s.handlePacket([]byte{0x01, 0x11, 0x00}, &lastLights, 0)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if !bytes.Equal(reply, []byte{0x01, 0x19, 0x00}) {
		t.Fatalf("reply = %x", reply)
	}
}
