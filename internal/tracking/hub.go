package tracking

import (
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Hub fans order status changes out to websocket clients tracking an order.
// The order and delivery services notify it after every applied transition;
// clients subscribe per order ID. All methods are nil-safe so services can
// run without a hub in tests.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*websocket.Conn]bool // orderID -> connections
}

// NewHub creates an empty tracking hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*websocket.Conn]bool),
	}
}

// Subscribe registers a connection as a tracker of the given order.
func (h *Hub) Subscribe(orderID string, conn *websocket.Conn) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[orderID] == nil {
		h.clients[orderID] = make(map[*websocket.Conn]bool)
	}
	h.clients[orderID][conn] = true
}

// Unsubscribe removes a connection; called when the socket closes.
func (h *Hub) Unsubscribe(orderID string, conn *websocket.Conn) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[orderID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.clients, orderID)
		}
	}
}

// Broadcast pushes a status payload to every tracker of the order. Write
// failures only drop the one dead connection.
func (h *Hub) Broadcast(orderID string, payload interface{}) {
	if h == nil {
		return
	}
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients[orderID]))
	for conn := range h.clients[orderID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(payload); err != nil {
			log.Printf("Failed to push tracking update for order %s: %v", orderID, err)
			h.Unsubscribe(orderID, conn)
			conn.Close()
		}
	}
}
