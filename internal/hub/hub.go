package hub

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Client is one connected participant. Outbound frames are queued on send
// and drained by the connection's write pump; done is closed when the
// connection goes away, so senders never write to a dead queue.
type Client struct {
	ID   string
	send chan []byte
	done chan struct{}
	once sync.Once
}

// NewClient creates a client with a send queue of the given size
func NewClient(id string, buffer int) *Client {
	return &Client{
		ID:   id,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

// Send returns the outbound queue
func (c *Client) Send() <-chan []byte {
	return c.send
}

// Done is closed once the client has been shut down
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close shuts the client down. Safe to call more than once.
func (c *Client) Close() {
	c.once.Do(func() { close(c.done) })
}

// Hub tracks connected clients and which room each one listens to
type Hub struct {
	clients map[string]*Client             // playerID -> client
	rooms   map[string]map[string]struct{} // room code -> playerIDs
	mu      sync.RWMutex
	timeout time.Duration
}

// New creates a hub that gives up on a recipient whose queue stays full for
// longer than sendTimeout
func New(sendTimeout time.Duration) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]struct{}),
		timeout: sendTimeout,
	}
}

// Register adds a client. A client registered under an existing id replaces
// the old one.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.clients[c.ID]; ok && old != c {
		log.Warn().Str("player", c.ID).Msg("replacing existing connection")
		old.Close()
	}
	h.clients[c.ID] = c
}

// Unregister removes a client from the hub and from every room, and closes it
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.clients[c.ID]; ok && current == c {
		delete(h.clients, c.ID)
		for code, members := range h.rooms {
			delete(members, c.ID)
			if len(members) == 0 {
				delete(h.rooms, code)
			}
		}
	}
	c.Close()
	log.Debug().Str("player", c.ID).Int("clients", len(h.clients)).Msg("client removed")
}

// CloseAll shuts down every connected client and returns how many there were
func (h *Hub) CloseAll() int {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Close()
	}
	return len(clients)
}

// Join subscribes playerID to a room's broadcasts
func (h *Hub) Join(code, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[code]
	if !ok {
		members = make(map[string]struct{})
		h.rooms[code] = members
	}
	members[playerID] = struct{}{}
}

// Leave unsubscribes playerID from a room's broadcasts
func (h *Hub) Leave(code, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[code]; ok {
		delete(members, playerID)
		if len(members) == 0 {
			delete(h.rooms, code)
		}
	}
}

// RoomSize returns how many clients listen to a room
func (h *Hub) RoomSize(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[code])
}

// Broadcast sends msg to every client in the room and returns how many
// received it
func (h *Hub) Broadcast(code string, msg []byte) int {
	// Collect recipients while holding the lock, send without it
	recipients := h.recipients(code)

	sent := 0
	for _, c := range recipients {
		if h.deliver(c, msg) {
			sent++
		}
	}
	log.Debug().Str("room", code).Msgf("broadcast sent to %d/%d clients", sent, len(recipients))
	return sent
}

// BroadcastPersonalized renders one message per recipient
func (h *Hub) BroadcastPersonalized(code string, render func(playerID string) []byte) {
	for _, c := range h.recipients(code) {
		if msg := render(c.ID); msg != nil {
			h.deliver(c, msg)
		}
	}
}

// SendTo delivers msg to a single client
func (h *Hub) SendTo(playerID string, msg []byte) bool {
	h.mu.RLock()
	c, ok := h.clients[playerID]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	return h.deliver(c, msg)
}

func (h *Hub) recipients(code string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	recipients := make([]*Client, 0, len(h.rooms[code]))
	for id := range h.rooms[code] {
		if c, ok := h.clients[id]; ok {
			recipients = append(recipients, c)
		}
	}
	return recipients
}

func (h *Hub) deliver(c *Client, msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	case <-c.done:
		return false
	default:
	}

	timer := time.NewTimer(h.timeout)
	defer timer.Stop()
	select {
	case c.send <- msg:
		return true
	case <-c.done:
		return false
	case <-timer.C:
		// Timeout - skip this client to avoid blocking
		log.Debug().Str("player", c.ID).Msg("send timed out")
		return false
	}
}
