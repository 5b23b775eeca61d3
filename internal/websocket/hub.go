package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Messages for global broadcast to every connected client.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// A map of project IDs to a set of clients subscribed to it. Clients on
	// the global feed are subscribed under FeedGlobal.
	subscriptions map[string]map[*Client]bool
}

// FeedGlobal is the subscription key for clients watching all activity.
const FeedGlobal = "global"

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:     make(chan []byte),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
			if client.ProjectID != "" {
				h.addSubscription(client, client.ProjectID)
			}
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeSubscription(client)
				}
			}
		}
	}
}

// BroadcastTo sends a message to all clients subscribed to a specific project ID.
func (h *Hub) BroadcastTo(projectID string, message []byte) {
	if subs, ok := h.subscriptions[projectID]; ok {
		for client := range subs {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
				delete(h.subscriptions[projectID], client)
			}
		}
	}
}

func (h *Hub) addSubscription(client *Client, projectID string) {
	if h.subscriptions[projectID] == nil {
		h.subscriptions[projectID] = make(map[*Client]bool)
	}
	h.subscriptions[projectID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	for projectID, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, projectID)
			}
		}
	}
}
