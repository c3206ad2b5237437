package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Monitor message types
const (
	MsgSelectionAudit MessageType = "selection_audit"
	MsgError          MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans selection events out to connected admin monitors
type Hub struct {
	monitors map[*Connection]bool
	mu       sync.RWMutex
	logger   *zap.Logger

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

// Connection represents one monitor's WebSocket connection
type Connection struct {
	AdminID string
	Send    chan []byte
	Hub     *Hub
}

// NewHub creates a hub and starts its event loop
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		monitors:   make(map[*Connection]bool),
		logger:     logger,
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for conn := range h.monitors {
				delete(h.monitors, conn)
				close(conn.Send)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.monitors[conn] = true
			h.mu.Unlock()
			h.logger.Info("monitor connected", zap.String("adminId", conn.AdminID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if h.monitors[conn] {
				delete(h.monitors, conn)
				close(conn.Send)
				h.logger.Info("monitor disconnected", zap.String("adminId", conn.AdminID))
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.monitors {
				select {
				case conn.Send <- data:
				default:
					// Slow monitor; drop rather than stall selection.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// MonitorCount returns the number of connected monitors
func (h *Hub) MonitorCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.monitors)
}

// BroadcastToMonitors sends a message to every monitor (implements service.Broadcaster).
// It never blocks; events are dropped when the queue is full.
func (h *Hub) BroadcastToMonitors(msgType string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Warn("unencodable monitor payload", zap.String("type", msgType), zap.Error(err))
		return
	}
	data, _ := json.Marshal(&Message{Type: MessageType(msgType), Payload: body})

	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
		h.logger.Debug("monitor queue full, event dropped", zap.String("type", msgType))
	}
}

// Close stops the event loop and closes every monitor connection
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}
