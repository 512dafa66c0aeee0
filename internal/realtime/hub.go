package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 512 // clients only listen; inbound frames stay tiny
)

// Event is a change notification pushed to subscribed clients so list screens
// can refresh without polling.
type Event struct {
	Type    string      `json:"type"` // e.g. "opportunity.created"
	Entity  string      `json:"entity"`
	ID      string      `json:"id"`
	Payload interface{} `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}

// subscriber owns one websocket client. All writes to the connection go
// through the send channel and a single writePump goroutine; the connection
// itself permits only one concurrent writer.
type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans change events out to every connected websocket client.
type Hub struct {
	mutex       sync.RWMutex
	subscribers map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*subscriber]struct{}),
	}
}

func (h *Hub) register(s *subscriber) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.subscribers[s] = struct{}{}
}

func (h *Hub) unregister(s *subscriber) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, exists := h.subscribers[s]; exists {
		delete(h.subscribers, s)
		close(s.send)
	}
}

// Publish enqueues the event for every subscriber. Safe to call from any
// number of goroutines; subscribers whose buffer is full are skipped.
func (h *Hub) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for s := range h.subscribers {
		select {
		case s.send <- data:
		default:
			// Client too slow, skip this event for it
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.subscribers)
}

// ServeWS registers the connection and blocks until the client goes away.
func (h *Hub) ServeWS(conn *websocket.Conn) {
	s := &subscriber{
		conn: conn,
		send: make(chan []byte, 256),
	}
	h.register(s)

	go h.writePump(s)
	h.readPump(s)
}

func (h *Hub) readPump(s *subscriber) {
	defer func() {
		h.unregister(s)
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMsgSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Inbound messages are discarded; the loop only detects disconnects.
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for s := range h.subscribers {
		delete(h.subscribers, s)
		close(s.send)
	}
}
