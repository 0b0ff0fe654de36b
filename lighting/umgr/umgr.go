// Package umgr implements the UMGR binary WebSocket lighting
// sub-protocol: SetLED, Initialize, Ping, and RequestServerInfo.
package umgr

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"sliderbridge/state"
)

const (
	opSetLED            = 0x10
	opInitialize        = 0x11
	opPing              = 0x12
	opRequestServerInfo = 0xd0

	opReady            = 0x19
	opPong             = 0x1a
	opReportServerInfo = 0xd8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Server hosts the UMGR WebSocket endpoint used for external LED
// hardware ingestion.
type Server struct {
	Hub    *state.Hub
	Port   int
	Faster bool

	log *log.Logger
}

// Run serves the UMGR WebSocket endpoint until ctx is cancelled. It is
// run via worker.RunHaltable by the caller.
func (s *Server) Run(ctx context.Context) {
	s.log = log.New(log.Writer(), "lighting/umgr: ", log.LstdFlags)

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleWS)
	srv := &http.Server{Addr: addr(s.Port), Handler: mux}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.log.Printf("listen failed: %v", err)
	}
}

func addr(port int) string {
	return ":" + itoa(port)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	delay := 66666 * time.Microsecond
	if s.Faster {
		delay = 33333 * time.Microsecond
	}
	lastLights := time.Now()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			s.Hub.Lighting().With(func(l *state.Lighting) { l.Reset() })
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		reply, ok := s.handlePacket(data, &lastLights, delay)
		if !ok {
			s.Hub.Lighting().With(func(l *state.Lighting) { l.Reset() })
			return
		}
		if reply != nil {
			if err := conn.WriteMessage(websocket.BinaryMessage, reply); err != nil {
				return
			}
		}
	}
}

// handlePacket decodes one {version, opcode, payload_len, payload} frame
// and returns an optional reply. ok is false when the connection must be
// closed (malformed length, or an unrecognized opcode).
func (s *Server) handlePacket(msg []byte, lastLights *time.Time, delay time.Duration) (reply []byte, ok bool) {
	if len(msg) < 3 {
		return nil, false
	}
	version, opcode, payloadLen := msg[0], msg[1], msg[2]
	payload := msg[3:]
	if int(payloadLen) != len(payload) {
		return nil, false
	}

	switch {
	case version == 0x01 && opcode == opSetLED && payloadLen == 103:
		s.Hub.Lighting().With(func(l *state.Lighting) {
			for i := 0; i < 16; i++ {
				pos := 1 + i*3
				l.Paint(i*2, [3]byte{payload[pos], payload[pos+1], payload[pos+2]})
			}
			for i := 0; i < 15; i++ {
				pos := 49 + i*3
				l.Paint(1+i*2, [3]byte{payload[pos], payload[pos+1], payload[pos+2]})
			}
			for i := 0; i < 3; i++ {
				pos := 94 + i*3
				l.PaintAir(2-i, [3]byte{payload[pos], payload[pos+1], payload[pos+2]})
			}
			if time.Since(*lastLights) > delay {
				l.Dirty = true
				*lastLights = time.Now()
			}
		})
		return nil, true

	case version == 0x01 && opcode == opInitialize && payloadLen == 0:
		return []byte{0x01, opReady, 0x00}, true

	case version == 0x01 && opcode == opPing && payloadLen == 4:
		return []byte{0x01, opPong, 0x06, payload[0], payload[1], payload[2], payload[3], 0x51, 0xed}, true

	case version == 0x01 && opcode == opRequestServerInfo && payloadLen == 0:
		return buildServerInfo(), true

	default:
		return nil, false
	}
}

func buildServerInfo() []byte {
	out := []byte{0x01, opReportServerInfo, 44}
	out = append(out, padName("sliderbridge", 16)...)
	out = append(out, 0x00, 0x01, 0x00, 0x00) // server version 1.0
	out = append(out, 0x00, 0x00)             // reserved
	out = append(out, padName("generic-slider", 16)...)
	out = append(out, 0x00, 0x01, 0x00, 0x01) // hardware version 1.1
	out = append(out, 0x00, 0x00)             // reserved
	return out
}

func padName(name string, n int) []byte {
	out := make([]byte, n)
	copy(out, name)
	return out
}
