package stub

import (
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// hub is a minimal websocket hub over all connected clients. Every event is
// re-broadcast to every connection, sender included, which is what gives chat
// its echo semantics.
type hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]*sync.Mutex
}

func newHub() *hub {
	return &hub{conns: make(map[*websocket.Conn]*sync.Mutex)}
}

func (h *hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = &sync.Mutex{}
}

func (h *hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// broadcast sends the frame to all connections. Per-connection write locks
// keep concurrent broadcasts from interleaving on one socket.
func (h *hub) broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn, wmu := range h.conns {
		wmu.Lock()
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("websocket write error: %v", err)
		}
		wmu.Unlock()
	}
}
