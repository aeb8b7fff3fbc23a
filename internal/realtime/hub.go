package realtime

import (
	"encoding/json"
	"log"

	"subleasend/backend/internal/models"
	"subleasend/backend/internal/storage"
)

// Client is the interface for a connected notification consumer. It abstracts
// the underlying transport so the hub can manage connections uniformly.
type Client interface {
	// GetUserID returns the authenticated user the client belongs to.
	GetUserID() uint
	// GetSendChannel returns the channel the hub delivers events on.
	GetSendChannel() chan<- models.MessageEvent
	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's connection and channels.
	Close()
}

// Hub routes persisted-message events to the recipient's live connections.
// Messages are posted over REST; the hub only fans out notifications.
type Hub struct {
	Clients map[uint]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	EventCh      chan models.MessageEvent

	Storage *storage.Service
}

func NewHub(s *storage.Service) *Hub {
	return &Hub{
		Clients:      make(map[uint]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		EventCh:      make(chan models.MessageEvent),
		Storage:      s,
	}
}

// StartPubSubListener subscribes to the message event channel and feeds
// decoded events into the hub's main loop. Runs until the subscription dies.
func (h *Hub) StartPubSubListener() {
	if h.Storage == nil || h.Storage.Redis == nil {
		return
	}

	go func() {
		pubsub := h.Storage.Redis.Subscribe(h.Storage.Ctx, storage.MessageEventChannel)
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var ev models.MessageEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("ERROR: Failed to decode message event: %v", err)
				continue
			}
			h.EventCh <- ev
		}
	}()
}

// Run is the hub's main dispatcher loop.
func (h *Hub) Run() {
	h.StartPubSubListener()

	for {
		select {
		case client := <-h.RegisterCh:
			// A new connection for the same user replaces the old one.
			if old, ok := h.Clients[client.GetUserID()]; ok {
				old.Close()
			}
			h.Clients[client.GetUserID()] = client

		case client := <-h.UnregisterCh:
			if current, ok := h.Clients[client.GetUserID()]; ok && current == client {
				delete(h.Clients, client.GetUserID())
			}

		case ev := <-h.EventCh:
			client, ok := h.Clients[ev.RecipientID]
			if !ok {
				continue
			}
			select {
			case client.GetSendChannel() <- ev:
			default:
				// Slow consumer; drop the connection.
				client.Close()
				delete(h.Clients, ev.RecipientID)
			}
		}
	}
}
