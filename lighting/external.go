package lighting

import (
	"context"
	"log"
	"time"

	goserial "go.bug.st/serial"

	"sliderbridge/state"
	"sliderbridge/worker"
)

// SerialSource ingests an external LED controller's 100-byte frames
// ({0xAA,0xAA} followed by 31 reversed GBR pixels) and writes them into
// the shared lighting slot, for ledMode=serial.
type SerialSource struct {
	Hub      *state.Hub
	PortName string

	port goserial.Port
	log  *log.Logger
}

// Job returns the worker.AsyncJob for this SerialSource.
func (s *SerialSource) Job() worker.AsyncJob {
	return worker.AsyncJob{Setup: s.setup, Tick: s.tick}
}

func (s *SerialSource) setup(context.Context) bool {
	s.log = log.New(log.Writer(), "lighting/serial: ", log.LstdFlags)
	port, err := goserial.Open(s.PortName, &goserial.Mode{BaudRate: 115200})
	if err != nil {
		s.log.Printf("could not open %s: %v", s.PortName, err)
		return false
	}
	port.SetReadTimeout(50 * time.Millisecond)
	s.port = port
	return true
}

func (s *SerialSource) tick(ctx context.Context) bool {
	progressed := false

	buf := make([]byte, 4096)
	n, err := s.port.Read(buf)
	if err == nil && n >= 100 && n%100 == 0 {
		frame := buf[:100]
		if frame[0] == 0xaa && frame[1] == 0xaa {
			s.Hub.Lighting().With(func(l *state.Lighting) {
				for i := 0; i < 31; i++ {
					chunk := frame[2+i*3 : 2+i*3+3]
					// reversed order, GBR -> RGB
					l.Ground[30-i] = [3]byte{chunk[1], chunk[2], chunk[0]}
				}
				l.Dirty = true
			})
			progressed = true
		}
	}

	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Millisecond):
	}
	return progressed
}
