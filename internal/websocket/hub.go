package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"classroom-service/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrClientDisconnected = fmt.Errorf("client disconnected")
)

// Presence mirrors connection and room state into a shared store so other
// instances and the REST layer can answer who-is-online questions.
type Presence interface {
	SetUserOnline(ctx context.Context, userID string) error
	SetUserOffline(ctx context.Context, userID string) error
	JoinRoom(ctx context.Context, userID, roomID, role string) error
	LeaveRoom(ctx context.Context, userID, roomID string) error
}

type clientEvent struct {
	client *Client
	event  *Event
}

// Hub owns every live connection and runs the single dispatch loop that
// processes inbound events in arrival order. Handlers never block: room
// lookups are in-memory and deliveries are fire-and-forget, so one slow
// peer cannot stall the loop.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Client lookup by connection id, used by the relay fan-out
	clientsByID map[string]*Client

	// Room membership bookkeeping
	registry *RoomRegistry

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Inbound events from clients
	inbound chan *clientEvent

	presence Presence
	metrics  *RelayMetrics

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc

	// Guards the client maps: the dispatch loop writes them, Publish reads
	// them from REST handler goroutines
	mu sync.RWMutex

	logger *logger.Logger
}

func NewHub(registry *RoomRegistry, presence Presence, log *logger.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		clients:     make(map[*Client]bool),
		clientsByID: make(map[string]*Client),
		registry:    registry,
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		inbound:     make(chan *clientEvent, 64),
		presence:    presence,
		metrics:     NewRelayMetrics(),
		ctx:         ctx,
		cancel:      cancel,
		logger:      log,
	}
}

func (h *Hub) Registry() *RoomRegistry {
	return h.registry
}

func (h *Hub) Metrics() MetricsSnapshot {
	return h.metrics.Snapshot()
}

// Run processes registration, disconnects and inbound events on one
// goroutine until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case ce := <-h.inbound:
			h.handleEvent(ce)

		case <-h.ctx.Done():
			h.logger.Info("WebSocket hub shutting down")
			return
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	h.clientsByID[client.id] = client
	h.mu.Unlock()
	h.metrics.connectionOpened()

	h.logger.Info("Client registered", "clientID", client.id, "userID", client.userID, "role", client.role)

	if h.presence != nil {
		if err := h.presence.SetUserOnline(h.ctx, client.userKey()); err != nil {
			h.logger.Error("Failed to set user online", "userID", client.userID, "error", err)
		}
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	delete(h.clientsByID, client.id)
	h.mu.Unlock()

	// Disconnect is an implicit leave of every joined room
	rooms := h.registry.RoomsOf(client.id)
	h.registry.OnDisconnect(client.id)

	client.closeSendChannel()
	h.metrics.connectionClosed()

	h.logger.Info("Client unregistered", "clientID", client.id, "userID", client.userID, "rooms", len(rooms))

	if h.presence != nil {
		for _, roomID := range rooms {
			if err := h.presence.LeaveRoom(h.ctx, client.userKey(), roomID); err != nil {
				h.logger.Error("Failed to clear room presence", "userID", client.userID, "roomID", roomID, "error", err)
			}
		}
		if err := h.presence.SetUserOffline(h.ctx, client.userKey()); err != nil {
			h.logger.Error("Failed to set user offline", "userID", client.userID, "error", err)
		}
	}
}

// handleEvent routes one inbound event. Malformed events are dropped here
// and never crash the loop.
func (h *Hub) handleEvent(ce *clientEvent) {
	client, event := ce.client, ce.event

	if err := event.Validate(); err != nil {
		h.logger.Debug("Dropping malformed event", "clientID", client.id, "error", err)
		h.metrics.eventRejected()
		client.sendError("INVALID_EVENT", err.Error())
		return
	}

	switch event.Type {
	case EventRoomJoin:
		h.handleJoin(client, event)

	case EventRoomLeave:
		h.handleLeave(client, event)

	default:
		if !event.Type.IsRelayable() {
			h.metrics.eventRejected()
			return
		}
		h.broadcast(client.id, event.RoomID, event)
	}
}

func (h *Hub) handleJoin(client *Client, event *Event) {
	var payload RoomActionPayload
	if len(event.Payload) > 0 {
		if err := event.DecodePayload(&payload); err != nil {
			h.logger.Debug("Dropping join with bad payload", "clientID", client.id, "error", err)
			return
		}
	}

	h.registry.Join(client.id, event.RoomID)
	h.logger.Info("Client joined room", "clientID", client.id, "userID", client.userID, "roomID", event.RoomID)

	if h.presence != nil {
		role := payload.Role
		if role == "" {
			role = client.role
		}
		if err := h.presence.JoinRoom(h.ctx, client.userKey(), event.RoomID, role); err != nil {
			h.logger.Error("Failed to record room presence", "userID", client.userID, "roomID", event.RoomID, "error", err)
		}
	}
}

func (h *Hub) handleLeave(client *Client, event *Event) {
	h.registry.Leave(client.id, event.RoomID)
	h.logger.Info("Client left room", "clientID", client.id, "userID", client.userID, "roomID", event.RoomID)

	if h.presence != nil {
		if err := h.presence.LeaveRoom(h.ctx, client.userKey(), event.RoomID); err != nil {
			h.logger.Error("Failed to clear room presence", "userID", client.userID, "roomID", event.RoomID, "error", err)
		}
	}
}

// broadcast fans one event out to the sender's room. A sender that has not
// joined the room gets a no-op: join is never inferred from broadcast.
// Delivery is at-most-once; unreachable peers are skipped silently.
func (h *Hub) broadcast(senderConnID, roomID string, event *Event) {
	if !h.registry.IsMember(senderConnID, roomID) {
		h.logger.Warn("Broadcast from non-member dropped", "connID", senderConnID, "roomID", roomID, "type", event.Type)
		h.metrics.eventRejected()
		return
	}

	h.deliver(roomID, event, senderConnID)
	h.metrics.eventRelayed()
}

// Publish is the server-side relay entry used by REST handlers after a
// durable write succeeds. It reaches every room member; receivers
// deduplicate by entity id.
func (h *Hub) Publish(roomID string, event *Event) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.RoomID == "" {
		event.RoomID = roomID
	}
	if err := event.Validate(); err != nil {
		h.logger.Error("Refusing to publish malformed event", "roomID", roomID, "error", err)
		h.metrics.eventRejected()
		return
	}

	h.deliver(roomID, event, "")
	h.metrics.eventRelayed()
}

func (h *Hub) deliver(roomID string, event *Event, senderConnID string) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal event", "type", event.Type, "error", err)
		return
	}

	excludeSender := senderConnID != "" && event.Type.ExcludesSender()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, connID := range h.registry.MembersOf(roomID) {
		if excludeSender && connID == senderConnID {
			continue
		}
		client, ok := h.clientsByID[connID]
		if !ok {
			// Registry can briefly lead the client map during teardown
			continue
		}
		if err := client.enqueue(data); err != nil {
			h.metrics.deliveryDropped()
			continue
		}
		h.metrics.delivered()
	}
}
