package serial

import (
	"io"
	"log"
	"time"

	goserial "go.bug.st/serial"

	"sliderbridge/state"
	"sliderbridge/worker"
)

type bootstrapState int

const (
	bootInit bootstrapState = iota
	bootAwaitReset
	bootAwaitInfo
	bootReadLoop
)

const (
	cmdReset = 0x10
	cmdInfo  = 0xf0
	cmdStart = 0x03
	cmdStop  = 0x04
	cmdInput = 0x01
	cmdLight = 0x02
)

// Session drives the {Init -> AwaitReset -> AwaitInfo -> ReadLoop} serial
// bootstrap and read/write loop described for the byte-stuffed slider
// protocol. Session never touches a port: it takes received bytes through
// Tick and sends frames through its writeFrame callback, so the state
// machine can be exercised without a real device.
type Session struct {
	hub        *state.Hub
	brightness byte
	flipAll    bool

	decoder Decoder
	writeFrame func(Frame)

	bootstrap      bootstrapState
	lastLightSent  time.Time
	log            *log.Logger
}

// NewSession builds a Session bound to hub. hub may be nil for tests that
// only exercise the bootstrap handshake.
func NewSession(hub *state.Hub) *Session {
	s := &Session{
		hub:        hub,
		brightness: 63,
		bootstrap:  bootInit,
		log:        log.New(log.Writer(), "serial: ", log.LstdFlags),
	}
	s.writeFrame = func(Frame) {}
	return s
}

// Brightness sets the brightness byte sent with every lighting frame
// (0..63).
func (s *Session) Brightness(b byte) { s.brightness = b }

// FlipAll enables the per-model "flip-all" ground permutation applied to
// inbound frames before they are written into the shared input slot.
func (s *Session) FlipAll(v bool) { s.flipAll = v }

// Tick decodes any freshly read bytes and advances the bootstrap/read-loop
// state machine by as many steps as the resulting frames allow. Outgoing
// frames are handed to writeFrame as soon as they are built; there is no
// outbound queue. A nil/empty data argument
// just advances the state machine (used by Init, which has nothing to
// decode).
func (s *Session) Tick(data []byte) {
	var frames []Frame
	if len(data) > 0 {
		frames = s.decoder.Deserialize(data)
	}

	switch s.bootstrap {
	case bootInit:
		s.writeFrame(Frame{Command: cmdReset})
		s.bootstrap = bootAwaitReset

	case bootAwaitReset:
		for _, f := range frames {
			if f.Command == cmdReset {
				s.writeFrame(Frame{Command: cmdInfo})
				s.bootstrap = bootAwaitInfo
				break
			}
			s.log.Printf("unexpected frame while awaiting reset ack: %+v", f)
		}

	case bootAwaitInfo:
		if len(frames) > 0 {
			s.writeFrame(Frame{Command: cmdStart})
			s.bootstrap = bootReadLoop
		}

	case bootReadLoop:
		s.handleReadLoop(frames)
	}
}

func (s *Session) handleReadLoop(frames []Frame) {
	for _, f := range frames {
		if f.Command == cmdInput && len(f.Payload) == 32 {
			var ground [32]byte
			copy(ground[:], f.Payload)
			if s.flipAll {
				ground = state.VerticalFlip(ground)
			}
			if s.hub != nil {
				s.hub.Input().With(func(in *state.Input) {
					in.Ground = ground
				})
			}
		} else {
			s.log.Printf("unexpected frame in read loop: %+v", f)
		}
	}

	if s.hub == nil {
		return
	}

	var sendLights bool
	var payload [97]byte
	s.hub.Lighting().With(func(l *state.Lighting) {
		if l.Dirty || time.Since(s.lastLightSent) > time.Second {
			sendLights = true
			payload[0] = s.brightness
			for i := 0; i < 31; i++ {
				px := l.Ground[30-i]
				payload[1+i*3+0] = px[1]
				payload[1+i*3+1] = px[0]
				payload[1+i*3+2] = px[2]
			}
			l.Dirty = false
		}
	})
	if sendLights {
		s.writeFrame(Frame{Command: cmdLight, Payload: payload[:]})
		s.lastLightSent = time.Now()
	}
}

// Stop emits the stop frame if the session had progressed far enough to
// have started the device.
func (s *Session) Stop() {
	if s.bootstrap == bootReadLoop {
		s.writeFrame(Frame{Command: cmdStop})
	}
}

// portReadWriter adapts go.bug.st/serial's Port to the small interface
// this package needs, with a bounded read timeout so the tick loop never
// blocks indefinitely.
type portReadWriter struct {
	port goserial.Port
}

func (p portReadWriter) Read(buf []byte) (int, error)  { return p.port.Read(buf) }
func (p portReadWriter) Write(buf []byte) (int, error) { return p.port.Write(buf) }

// Driver wires a Session to a real serial port as a worker.ThreadJob: the
// transport blocks on reads, so like the USB driver it runs on a
// dedicated OS thread rather than the async runtime.
type Driver struct {
	PortName string
	Session  *Session

	raw     [512]byte
	rawPort goserial.Port
	port    io.ReadWriter
}

// Job returns the worker.ThreadJob driving this Driver.
func (d *Driver) Job() worker.ThreadJob {
	return worker.ThreadJob{
		Setup:    d.setup,
		Tick:     d.tick,
		Teardown: d.teardown,
	}
}

func (d *Driver) setup() bool {
	port, err := goserial.Open(d.PortName, &goserial.Mode{BaudRate: 115200})
	if err != nil {
		log.Printf("serial: could not open %s: %v", d.PortName, err)
		return false
	}
	port.SetReadTimeout(100 * time.Millisecond)
	d.rawPort = port

	prw := portReadWriter{port: port}
	d.port = prw
	d.Session.writeFrame = func(f Frame) {
		if _, err := prw.Write(Encode(f.Command, f.Payload)); err != nil {
			log.Printf("serial: write error: %v", err)
		}
	}
	return true
}

// teardown emits the session's stop frame, if it had progressed far
// enough to need one, and closes the underlying port.
func (d *Driver) teardown() {
	d.Session.Stop()
	if d.rawPort != nil {
		d.rawPort.Close()
	}
}

func (d *Driver) tick() bool {
	n, err := d.port.Read(d.raw[:])
	if err != nil {
		return false
	}
	if n > 0 {
		d.Session.Tick(d.raw[:n])
		return true
	}
	d.Session.Tick(nil)
	return false
}
