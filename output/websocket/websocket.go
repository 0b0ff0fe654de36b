// Package websocket streams flat input to an external WebSocket server
// as the outputMode=websocket target.
package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"sliderbridge/state"
	"sliderbridge/worker"
)

// Output dials outputWebsocketUrl and streams the flat input as JSON,
// one message per tick.
type Output struct {
	Hub         *state.Hub
	URL         string
	Sensitivity byte

	conn *websocket.Conn
	log  *log.Logger
}

type message struct {
	Flat [41]bool `json:"flat"`
}

// Job returns the worker.AsyncJob for this Output.
func (o *Output) Job() worker.AsyncJob {
	return worker.AsyncJob{Setup: o.setup, Tick: o.tick}
}

func (o *Output) setup(ctx context.Context) bool {
	o.log = log.New(log.Writer(), "output/websocket: ", log.LstdFlags)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, o.URL, nil)
	if err != nil {
		o.log.Printf("dial %s failed: %v", o.URL, err)
		return false
	}
	o.conn = conn
	return true
}

func (o *Output) tick(ctx context.Context) bool {
	in := o.Hub.Input().Read()
	msg := message{Flat: in.Flat(o.Sensitivity)}
	b, err := json.Marshal(msg)
	if err != nil {
		return false
	}

	if err := o.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		o.log.Printf("write failed: %v", err)
		return false
	}

	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Millisecond):
	}
	return true
}
