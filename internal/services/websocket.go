package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/monishaRema/zep-shift-server/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // App clients connect from any origin
	},
}

// Subscriber is a WebSocket client following one tracking id. An empty
// TrackingID follows the whole feed.
type Subscriber struct {
	TrackingID string
	Conn       *websocket.Conn
	Send       chan []byte
	Hub        *Hub
}

// Hub fans appended tracking entries out to connected subscribers.
type Hub struct {
	subscribers map[*Subscriber]bool
	register    chan *Subscriber
	unregister  chan *Subscriber
	entries     chan models.TrackingEntry
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*Subscriber]bool),
		register:    make(chan *Subscriber),
		unregister:  make(chan *Subscriber),
		entries:     make(chan models.TrackingEntry, 16),
	}
}

// Run starts the hub loop.
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mutex.Lock()
			h.subscribers[sub] = true
			h.mutex.Unlock()

		case sub := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.subscribers[sub]; ok {
				delete(h.subscribers, sub)
				close(sub.Send)
			}
			h.mutex.Unlock()

		case entry := <-h.entries:
			data, err := json.Marshal(entry)
			if err != nil {
				continue
			}
			h.mutex.Lock()
			for sub := range h.subscribers {
				if sub.TrackingID != "" && sub.TrackingID != entry.TrackingID {
					continue
				}
				select {
				case sub.Send <- data:
				default:
					close(sub.Send)
					delete(h.subscribers, sub)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// PublishEntry hands an appended tracking entry to the hub. Non-blocking:
// if the hub is saturated the entry is dropped, the database remains the
// source of truth.
func (h *Hub) PublishEntry(entry models.TrackingEntry) {
	select {
	case h.entries <- entry:
	default:
	}
}

// SubscriberCount returns the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.subscribers)
}

// HandleWebSocket upgrades the connection and registers a subscriber for
// the given tracking id.
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, trackingID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	sub := &Subscriber{
		TrackingID: trackingID,
		Conn:       conn,
		Send:       make(chan []byte, 8),
		Hub:        hub,
	}
	hub.register <- sub

	go sub.writePump()
	go sub.readPump()
}

func (s *Subscriber) writePump() {
	defer s.Conn.Close()
	for message := range s.Send {
		if err := s.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// readPump discards inbound frames; it exists to detect the close
// handshake and unregister the subscriber.
func (s *Subscriber) readPump() {
	defer func() {
		s.Hub.unregister <- s
		s.Conn.Close()
	}()
	for {
		if _, _, err := s.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
