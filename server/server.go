// Package server hosts the embedded touch-surface HTTP/WebSocket
// endpoint: a static-asset server for the browser client, plus the
// WebSocket sub-protocol translating touches into input and streaming
// lighting back.
package server

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"mime"
	"net"
	"net/http"
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"sliderbridge/state"
)

//go:embed assets
var assetsFS embed.FS

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Server is the touch-surface HTTP/WebSocket server (C5). Its Run method
// is started via worker.RunHaltable: Run owns its own accept loop and
// returns once ctx is cancelled.
type Server struct {
	Hub             *state.Hub
	Port            int
	DisableAir      bool
	StreamLighting  bool

	log     *log.Logger
	clients sync.WaitGroup
}

// Run starts the HTTP server on Port and blocks until ctx is cancelled,
// then stops accepting, drains in-flight connections (bounded by a short
// grace period), and returns.
func (s *Server) Run(ctx context.Context) {
	s.log = log.New(log.Writer(), "server: ", log.LstdFlags)
	port := s.Port
	if port == 0 {
		port = 1606
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/", s.handleStatic)

	ln, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		s.log.Printf("listen on %d failed: %v", port, err)
		return
	}

	httpSrv := &http.Server{Handler: mux}
	go func() {
		if err := httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Printf("serve error: %v", err)
		}
	}()

	<-ctx.Done()
	ln.Close()
	httpSrv.Close()

	done := make(chan struct{})
	go func() {
		s.clients.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
	}
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	name := path.Clean(r.URL.Path)
	if name == "/" || name == "/index.html" {
		if s.DisableAir {
			name = "/index_ground.html"
		} else {
			name = "/index.html"
		}
	}

	data, err := fs.ReadFile(assetsFS, "assets"+name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Write(data)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("upgrade failed: %v", err)
		return
	}

	s.clients.Add(1)
	defer s.clients.Done()

	send := make(chan wsMessage, 64)
	stop := make(chan struct{})
	var once sync.Once
	closeConn := func() {
		once.Do(func() {
			close(stop)
			conn.Close()
		})
	}
	defer closeConn()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writePump(conn, send, stop)
	}()

	if s.StreamLighting {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.lightingPump(send, stop)
		}()
	}

	s.readPump(conn, send, closeConn)
	wg.Wait()
}

func (s *Server) readPump(conn *websocket.Conn, send chan wsMessage, closeConn func()) {
	defer closeConn()
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			return
		}
		if !s.handleText(data, send) {
			return
		}
	}
}

// handleText decodes one inbound text frame, queues any reply onto send,
// and returns false when the connection must be closed.
func (s *Server) handleText(data []byte, send chan wsMessage) bool {
	switch {
	case len(data) == 6 && data[0] == 'a':
		select {
		case send <- wsMessage{msgType: websocket.TextMessage, data: []byte("alive")}:
		default:
		}
		return true

	case len(data) == 39 && data[0] == 'b':
		s.Hub.Input().With(func(in *state.Input) {
			for i := 0; i < 32; i++ {
				if data[1+i] == '1' {
					in.Ground[i] = 255
				} else {
					in.Ground[i] = 0
				}
			}
			for i := 0; i < 6; i++ {
				if data[33+i] == '1' {
					in.Air[i] = 1
				} else {
					in.Air[i] = 0
				}
				if s.DisableAir {
					in.Air[i] = 0
				}
			}
		})
		return true

	default:
		return false
	}
}

type wsMessage struct {
	msgType int
	data    []byte
}

func (s *Server) writePump(conn *websocket.Conn, send chan wsMessage, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case msg := <-send:
			if err := conn.WriteMessage(msg.msgType, msg.data); err != nil {
				return
			}
		}
	}
}

func (s *Server) lightingPump(send chan wsMessage, stop chan struct{}) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			lt := s.Hub.Lighting().Read()
			buf := make([]byte, 0, 93)
			for _, px := range lt.Ground {
				buf = append(buf, px[:]...)
			}
			select {
			case send <- wsMessage{msgType: websocket.BinaryMessage, data: buf}:
			default:
			}
		}
	}
}
