package ws

import (
	"context"

	"go.uber.org/zap"
)

type delivery struct {
	userID  string
	message []byte
}

// Hub owns the set of live connections per user. All map access happens on
// the Run goroutine.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	deliver    chan delivery
	register   chan *Client
	unregister chan *Client
	count      chan chan int
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		deliver:    make(chan delivery, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		count:      make(chan chan int),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, set := range h.clients {
				for c := range set {
					close(c.send)
				}
			}
			h.clients = make(map[string]map[*Client]struct{})
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			h.logger.Debug("ws connected", zap.String("user_id", client.userID), zap.Int("user_clients", len(set)))

		case client := <-h.unregister:
			h.remove(client)

		case d := <-h.deliver:
			set := h.clients[d.userID]
			for client := range set {
				select {
				case client.send <- d.message:
				default:
					h.remove(client)
				}
			}

		case reply := <-h.count:
			n := 0
			for _, set := range h.clients {
				n += len(set)
			}
			reply <- n
		}
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
	h.logger.Debug("ws disconnected", zap.String("user_id", client.userID))
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Send queues message for every connection of userID. It never blocks; a
// full queue drops the message.
func (h *Hub) Send(userID string, message []byte) {
	if h == nil {
		return
	}
	select {
	case h.deliver <- delivery{userID: userID, message: message}:
	default:
		h.logger.Warn("ws delivery dropped", zap.String("user_id", userID), zap.String("reason", "buffer_full"))
	}
}

// ClientCount blocks until the Run loop answers or ctx ends.
func (h *Hub) ClientCount(ctx context.Context) int {
	if h == nil {
		return 0
	}
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
	case <-ctx.Done():
		return 0
	}
	select {
	case n := <-reply:
		return n
	case <-ctx.Done():
		return 0
	}
}
