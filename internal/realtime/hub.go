package realtime

import (
	"net/http"
	"sync"

	"comandas_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Event names pushed to connected clients.
const (
	EventOrderCreated = "order_created"
	EventOrderUpdated = "order_updated"
)

// Event is a change hint, not a delta. Clients must refetch the active order
// set when they receive one; the order id is informational only.
type Event struct {
	Event   string `json:"event"`
	OrderID int64  `json:"order_id,omitempty"`
}

// Hub is the websocket fan-out for order change notifications. Delivery is
// at-least-once for currently connected clients and best effort overall:
// disconnected clients reconcile on their next initial fetch.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan Event
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

// NewHub creates a hub. Call Run in a goroutine before serving connections.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan Event, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// Run listens for register/unregister/broadcast until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(event); err != nil {
					utils.LogError(err, "ws write error, dropping client")
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// OrderCreated implements services.Notifier.
func (h *Hub) OrderCreated(orderID int64) {
	h.publish(Event{Event: EventOrderCreated, OrderID: orderID})
}

// OrderUpdated implements services.Notifier.
func (h *Hub) OrderUpdated(orderID int64) {
	h.publish(Event{Event: EventOrderUpdated, OrderID: orderID})
}

// publish never blocks the mutation path. When the buffer is full the event
// is dropped; clients self-correct on their next poll.
func (h *Hub) publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
		utils.LogWarn("notification buffer full, dropping event", map[string]interface{}{
			"event":    event.Event,
			"order_id": event.OrderID,
		})
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the request and subscribes the connection.
// Route: GET /ws
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.LogError(err, "ws upgrade error")
		return
	}

	h.register <- conn
	go h.listen(conn)
}

// listen drains client frames until the connection closes. Clients never
// send anything meaningful; this only detects disconnects.
func (h *Hub) listen(conn *websocket.Conn) {
	defer func() { h.unregister <- conn }()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
