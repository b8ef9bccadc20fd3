package dsdneo

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// TelemetryBroadcaster fans out engine events to connected websocket
// clients, enriching this port beyond the teacher's own stack (gorilla/
// websocket is not a teacher dependency; it's grounded on
// dbehnke-dmr-nexus's telemetry broadcast use of the same library, per
// SPEC_FULL.md's DOMAIN STACK section).
type TelemetryBroadcaster struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	conns    map[*websocket.Conn]struct{}
}

func NewTelemetryBroadcaster() *TelemetryBroadcaster {
	return &TelemetryBroadcaster{
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		conns:    make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades an incoming request to a websocket connection and
// registers it for broadcast.
func (b *TelemetryBroadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	b.mu.Lock()
	b.conns[conn] = struct{}{}
	b.mu.Unlock()

	go func() {
		defer func() {
			b.mu.Lock()
			delete(b.conns, conn)
			b.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Hook returns a TelemetryHook that broadcasts events as JSON text frames
// to all connected clients.
func (b *TelemetryBroadcaster) Hook() TelemetryHook {
	return TelemetryHook{
		Publish: func(event string, fields map[string]any) {
			b.mu.Lock()
			defer b.mu.Unlock()
			payload := encodeTelemetryEvent(event, fields)
			for c := range b.conns {
				_ = c.WriteMessage(websocket.TextMessage, payload)
			}
		},
	}
}

func encodeTelemetryEvent(event string, fields map[string]any) []byte {
	out := fmt.Sprintf("{\"event\":%q", event)
	for k, v := range fields {
		out += fmt.Sprintf(",%q:%q", k, fmt.Sprint(v))
	}
	out += "}"
	return []byte(out)
}
