package websocket

import (
	"context"
	"encoding/json"
	"testing"

	"classroom-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(NewRoomRegistry(), nil, logger.New("error"))
}

// newTestClient builds a client without a network connection; deliveries
// land in the send buffer where tests can read them back.
func newTestClient(userID uint, role string) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		id:     uuid.New().String(),
		send:   make(chan []byte, 16),
		userID: userID,
		role:   role,
		ctx:    ctx,
		cancel: cancel,
	}
}

func receivedEvents(t *testing.T, c *Client) []*Event {
	t.Helper()
	var events []*Event
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				// Unregistered clients have their send channel closed
				return events
			}
			var ev Event
			require.NoError(t, json.Unmarshal(data, &ev))
			events = append(events, &ev)
		default:
			return events
		}
	}
}

func joinRoom(h *Hub, c *Client, roomID string) {
	h.handleEvent(&clientEvent{
		client: c,
		event:  &Event{ID: uuid.New().String(), Type: EventRoomJoin, RoomID: roomID},
	})
}

func relayFrom(h *Hub, c *Client, eventType EventType, roomID string, payload interface{}) {
	ev, _ := NewEvent(uuid.New().String(), eventType, roomID, payload)
	ev.SenderID = c.id
	h.handleEvent(&clientEvent{client: c, event: ev})
}

func TestBroadcastExcludesSenderForDrawSegments(t *testing.T) {
	h := newTestHub()
	a, b, c := newTestClient(1, "student"), newTestClient(2, "student"), newTestClient(3, "teacher")
	for _, cl := range []*Client{a, b, c} {
		h.registerClient(cl)
		joinRoom(h, cl, "session-1")
	}

	relayFrom(h, a, EventDrawSegment, "session-1", DrawSegmentPayload{X1: 0, Y1: 0, X2: 10, Y2: 10, Color: "#ff0000", Width: 2, Tool: "pen"})

	assert.Empty(t, receivedEvents(t, a), "sender already rendered its own stroke")

	for _, peer := range []*Client{b, c} {
		events := receivedEvents(t, peer)
		require.Len(t, events, 1)
		assert.Equal(t, EventDrawSegment, events[0].Type)

		var seg DrawSegmentPayload
		require.NoError(t, events[0].DecodePayload(&seg))
		assert.Equal(t, 10.0, seg.X2)
		assert.Equal(t, "#ff0000", seg.Color)
	}
}

func TestBroadcastIncludesSenderForDiscussionEvents(t *testing.T) {
	h := newTestHub()
	a, b, c := newTestClient(1, "student"), newTestClient(2, "student"), newTestClient(3, "student")
	for _, cl := range []*Client{a, b, c} {
		h.registerClient(cl)
		joinRoom(h, cl, "session-1")
	}

	relayFrom(h, a, EventPostCreated, "session-1", map[string]interface{}{"id": 42})

	for _, member := range []*Client{a, b, c} {
		events := receivedEvents(t, member)
		require.Len(t, events, 1, "include-sender tags reach the whole room")
		assert.Equal(t, EventPostCreated, events[0].Type)
	}
}

func TestBroadcastFromNonMemberIsNoOp(t *testing.T) {
	h := newTestHub()
	member, outsider := newTestClient(1, "student"), newTestClient(2, "student")
	h.registerClient(member)
	h.registerClient(outsider)
	joinRoom(h, member, "session-1")

	relayFrom(h, outsider, EventPostCreated, "session-1", map[string]interface{}{"id": 1})

	assert.Empty(t, receivedEvents(t, member), "join is not inferred from broadcast")
	assert.Equal(t, int64(1), h.Metrics().EventsRejected)
}

func TestNoCrossRoomLeakage(t *testing.T) {
	h := newTestHub()
	a, b, d := newTestClient(1, "student"), newTestClient(2, "student"), newTestClient(4, "student")
	h.registerClient(a)
	h.registerClient(b)
	h.registerClient(d)
	joinRoom(h, a, "session-1")
	joinRoom(h, b, "session-1")
	joinRoom(h, d, "session-2")

	relayFrom(h, a, EventClearBoard, "session-1", nil)

	assert.NotEmpty(t, receivedEvents(t, b))
	assert.Empty(t, receivedEvents(t, d), "session-2 member must not see session-1 events")
}

func TestPublishReachesAllMembers(t *testing.T) {
	h := newTestHub()
	a, b := newTestClient(1, "teacher"), newTestClient(2, "student")
	h.registerClient(a)
	h.registerClient(b)
	joinRoom(h, a, "session-1")
	joinRoom(h, b, "session-1")

	ev, err := NewEvent("", EventAttendanceChange, "session-1", AttendanceChangePayload{StudentID: 2, Status: "present"})
	require.NoError(t, err)
	h.Publish("session-1", ev)

	for _, member := range []*Client{a, b} {
		events := receivedEvents(t, member)
		require.Len(t, events, 1)
		assert.Equal(t, EventAttendanceChange, events[0].Type)
		assert.NotEmpty(t, events[0].ID, "publish stamps an event id")
	}
}

func TestMalformedEventsAreDroppedNotFatal(t *testing.T) {
	h := newTestHub()
	a := newTestClient(1, "student")
	h.registerClient(a)
	joinRoom(h, a, "session-1")

	// Unknown tag
	h.handleEvent(&clientEvent{client: a, event: &Event{ID: "x", Type: EventType("bogus"), RoomID: "session-1"}})
	// Missing room id
	h.handleEvent(&clientEvent{client: a, event: &Event{ID: "y", Type: EventPostCreated}})

	events := receivedEvents(t, a)
	require.Len(t, events, 2)
	for _, ev := range events {
		assert.Equal(t, EventError, ev.Type, "offender gets an error event, nothing is relayed")
	}
	assert.Equal(t, int64(2), h.Metrics().EventsRejected)
}

func TestDisconnectIsImplicitLeaveOfAllRooms(t *testing.T) {
	h := newTestHub()
	a, b := newTestClient(1, "student"), newTestClient(2, "student")
	h.registerClient(a)
	h.registerClient(b)
	joinRoom(h, a, "session-1")
	joinRoom(h, a, "session-2")
	joinRoom(h, b, "session-1")

	h.unregisterClient(a)

	assert.False(t, h.registry.IsMember(a.id, "session-1"))
	assert.False(t, h.registry.IsMember(a.id, "session-2"))
	assert.True(t, h.registry.IsMember(b.id, "session-1"))

	// Subsequent broadcasts must not reach the departed connection
	relayFrom(h, b, EventClearBoard, "session-1", nil)
	assert.Empty(t, receivedEvents(t, a))
}

func TestLeaveStopsDelivery(t *testing.T) {
	h := newTestHub()
	a, b := newTestClient(1, "student"), newTestClient(2, "student")
	h.registerClient(a)
	h.registerClient(b)
	joinRoom(h, a, "session-1")
	joinRoom(h, b, "session-1")

	h.handleEvent(&clientEvent{
		client: b,
		event:  &Event{ID: uuid.New().String(), Type: EventRoomLeave, RoomID: "session-1"},
	})

	relayFrom(h, a, EventPostCreated, "session-1", map[string]interface{}{"id": 7})

	assert.NotEmpty(t, receivedEvents(t, a))
	assert.Empty(t, receivedEvents(t, b))
}

func TestFullSendBufferDropsDeliverySilently(t *testing.T) {
	h := newTestHub()
	a, b := newTestClient(1, "student"), newTestClient(2, "student")
	b.send = make(chan []byte, 1)
	h.registerClient(a)
	h.registerClient(b)
	joinRoom(h, a, "session-1")
	joinRoom(h, b, "session-1")

	relayFrom(h, a, EventPostCreated, "session-1", map[string]interface{}{"id": 1})
	relayFrom(h, a, EventPostUpdated, "session-1", map[string]interface{}{"id": 1})

	events := receivedEvents(t, b)
	assert.Len(t, events, 1, "overflow is dropped for this peer only")
	assert.Equal(t, int64(1), h.Metrics().DeliveriesDropped)
}
