package websocket

import (
	"context"
	"sync/atomic"

	"github.com/isdelr/tagpulse-be/internal/models"
	"github.com/rs/zerolog/log"
)

// broadcastBuffer bounds the number of pending broadcasts. Publish drops
// messages once it is full.
const broadcastBuffer = 256

// directMessage is a reply addressed to a single client.
type directMessage struct {
	client  *Client
	message []byte
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	// Registered clients. Only touched by Run.
	clients map[*Client]bool

	// Outbound messages for every client.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Replies for one client. Run is the only sender on Client.Send.
	direct chan directMessage

	count atomic.Int64
	done  chan struct{}
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte, broadcastBuffer),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		direct:     make(chan directMessage, sendBufferSize),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop. It returns when ctx is
// cancelled, closing every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.remove(client)
			}
			log.Info().Msg("Websocket hub stopped")
			return
		case client := <-h.Register:
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				h.remove(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case dm := <-h.direct:
			if _, ok := h.clients[dm.client]; ok {
				select {
				case dm.client.Send <- dm.message:
				default:
				}
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					log.Warn().Msg("Client send buffer full, disconnecting")
					h.remove(client)
				}
			}
		}
	}
}

// Publish broadcasts a newly created event. It never blocks the caller.
func (h *Hub) Publish(event models.Event) {
	message := NewEventMessage(event)
	if message == nil {
		return
	}
	select {
	case h.Broadcast <- message:
	default:
		log.Warn().Int64("event_id", event.ID).Msg("Broadcast buffer full, dropping event")
	}
}

// Attach registers a client. It reports false once the hub has stopped.
func (h *Hub) Attach(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Detach unregisters a client. It is a no-op once the hub has stopped.
func (h *Hub) Detach(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

// Reply queues message for client only. It is dropped if the client is no
// longer registered, its buffer is full, or the hub has stopped.
func (h *Hub) Reply(client *Client, message []byte) {
	if message == nil {
		return
	}
	select {
	case h.direct <- directMessage{client: client, message: message}:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

func (h *Hub) remove(client *Client) {
	delete(h.clients, client)
	close(client.Send)
	h.count.Store(int64(len(h.clients)))
}
