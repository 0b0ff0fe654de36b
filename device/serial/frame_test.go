package serial

import (
	"bytes"
	"testing"
)

func TestStuffingRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		{1, 2, 3},
		{0xfd, 0xff, 0x00, 0xfe},
		bytes.Repeat([]byte{0xff}, 5),
	}

	for _, p := range payloads {
		raw := Encode(0x42, p)
		var d Decoder
		frames := d.Deserialize(raw)
		if len(frames) != 1 {
			t.Fatalf("payload %v: got %d frames, want 1", p, len(frames))
		}
		f := frames[0]
		if f.Command != 0x42 {
			t.Errorf("payload %v: command = %x, want 0x42", p, f.Command)
		}
		if len(p) == 0 {
			if len(f.Payload) != 0 {
				t.Errorf("payload %v: got %v, want empty", p, f.Payload)
			}
			continue
		}
		if !bytes.Equal(f.Payload, p) {
			t.Errorf("payload %v: decoded %v", p, f.Payload)
		}
	}
}

func TestChecksumInvariant(t *testing.T) {
	payload := []byte{10, 20, 30}
	raw := Encode(5, payload)

	// Un-stuff manually to recover command, len, payload, checksum.
	var unstuffed []byte
	escape := byte(0)
	for _, b := range raw[1:] {
		if b == 0xfd {
			escape = 1
			continue
		}
		unstuffed = append(unstuffed, b+escape)
		escape = 0
	}

	sum := byte(0xff)
	for _, b := range unstuffed {
		sum += b
	}
	if sum != 0 {
		t.Fatalf("checksum invariant violated: sum = %d", sum)
	}
}

func TestSerialBootstrapScenario(t *testing.T) {
	s := NewSession(nil)

	var sent []Frame
	s.writeFrame = func(f Frame) { sent = append(sent, f) }

	s.Tick(nil) // Init -> send reset

	resetAck := Encode(0x10, nil)
	s.Tick(resetAck) // AwaitReset -> send info

	infoAck := Encode(0xf0, []byte{1})
	s.Tick(infoAck) // AwaitInfo -> send start, advance to ReadLoop

	if len(sent) != 3 {
		t.Fatalf("got %d frames sent, want 3: %+v", len(sent), sent)
	}
	wantCmds := []byte{0x10, 0xf0, 0x03}
	for i, f := range sent {
		if f.Command != wantCmds[i] {
			t.Errorf("frame %d command = %x, want %x", i, f.Command, wantCmds[i])
		}
	}
	if s.bootstrap != bootReadLoop {
		t.Fatalf("bootstrap state = %v, want ReadLoop", s.bootstrap)
	}
}
