package notifications

import (
	"context"
	"errors"
	"sync"

	"fachnmchi/internal/middleware"
	"fachnmchi/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const defaultMaxConns = 5000

// ErrHubFull is returned by Register when the connection limit is reached.
var ErrHubFull = errors.New("server connection limit reached")

// ErrHubClosed is returned by Register after Shutdown.
var ErrHubClosed = errors.New("hub is shut down")

// Hub tracks the websocket clients of the feed stream.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]struct{}
	maxConns int
	closed   bool
	log      *observability.WSLogger
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[*Client]struct{}),
		maxConns: defaultMaxConns,
		log:      observability.NewWSLogger(middleware.Logger, "feed"),
	}
}

// Name returns a human-readable identifier for this hub.
func (h *Hub) Name() string { return "feed hub" }

// Register adds a connection. conn may be nil in tests.
func (h *Hub) Register(clientID string, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHubClosed
	}
	if len(h.clients) >= h.maxConns {
		h.mu.Unlock()
		return nil, ErrHubFull
	}
	c := newClient(h, conn, clientID)
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	observability.WebSocketConnectionsTotal.Inc()
	h.log.LogConnect(context.Background(), clientID, n)
	return c, nil
}

// UnregisterClient removes a client and closes its send channel.
func (h *Hub) UnregisterClient(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.Send)
	}
	h.mu.Unlock()

	if ok {
		observability.WebSocketConnectionsTotal.Dec()
		h.log.LogDisconnect(context.Background(), c.ID, "unregistered")
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastAll queues message for every client. Slow clients drop it.
func (h *Hub) BroadcastAll(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.TrySend(message)
	}
}

// StartWiring forwards every feed event published through n to this hub.
// Without Redis the notifier delivers to the hub directly.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	if !n.Distributed() {
		n.SetLocalSink(h.BroadcastAll)
		return nil
	}
	return n.StartFeedSubscriber(ctx, func(payload string) {
		h.BroadcastAll([]byte(payload))
	})
}

// Shutdown disconnects every client. Closing a client's send channel makes
// its WritePump send the close frame, so the hub never writes concurrently.
func (h *Hub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true

	for c := range h.clients {
		close(c.Send)
		delete(h.clients, c)
		observability.WebSocketConnectionsTotal.Dec()
	}
	return nil
}
