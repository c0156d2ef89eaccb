package stream

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/andrescamacho/cardquest-go/internal/application/logging"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
)

// Message is the wire form of a domain event
type Message struct {
	ID        string                 `json:"id,omitempty"`
	Type      string                 `json:"type"`
	CardID    string                 `json:"card_id,omitempty"`
	HeroID    string                 `json:"hero_id,omitempty"`
	ItemID    string                 `json:"item_id,omitempty"`
	Amount    int                    `json:"amount,omitempty"`
	Message   string                 `json:"message,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// Hub fans published events out to connected websocket clients. A client
// whose buffer is full is dropped instead of stalling the simulation.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
	bufferSize int
	dispatcher Dispatcher
	logger     logging.Logger
}

// NewHub creates a hub; bufferSize bounds each client's pending messages
func NewHub(bufferSize int, logger logging.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, bufferSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		bufferSize: bufferSize,
		logger:     logger,
	}
}

// AcceptActions lets clients send player commands through d. Call before Run.
func (h *Hub) AcceptActions(d Dispatcher) {
	h.dispatcher = d
}

// Run handles registrations and broadcasts until ctx ends
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Log(logging.LevelInfo, "stream client connected", map[string]interface{}{
				"remote": client.remote,
			})
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Log(logging.LevelInfo, "stream client disconnected", map[string]interface{}{
				"remote": client.remote,
			})
		case payload := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					delete(h.clients, client)
					close(client.send)
					h.logger.Log(logging.LevelWarn, "dropping slow stream client", map[string]interface{}{
						"remote": client.remote,
					})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish serializes an event and queues it for every client. It never
// blocks; when the hub is saturated the event is discarded.
func (h *Hub) Publish(e events.Event) {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	payload, err := json.Marshal(Message{
		ID:        e.ID,
		Type:      string(e.Type),
		CardID:    e.CardID,
		HeroID:    e.HeroID,
		ItemID:    e.ItemID,
		Amount:    e.Amount,
		Message:   e.Message,
		Data:      e.Data,
		Timestamp: ts.UnixMilli(),
	})
	if err != nil {
		h.logger.Log(logging.LevelError, "failed to encode event for stream", map[string]interface{}{
			"type":  string(e.Type),
			"error": err.Error(),
		})
		return
	}

	select {
	case h.broadcast <- payload:
	default:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
