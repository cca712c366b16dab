package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType identifies one kind of classroom event using a custom enum type
// for better type safety.
type EventType string

const (
	// Room membership actions
	EventRoomJoin  EventType = "room.join"
	EventRoomLeave EventType = "room.leave"

	// Whiteboard events
	EventDrawSegment EventType = "whiteboard.draw"
	EventClearBoard  EventType = "whiteboard.clear"

	// Attendance events
	EventAttendanceChange EventType = "attendance.change"

	// Discussion events
	EventPostCreated    EventType = "post.created"
	EventPostUpdated    EventType = "post.updated"
	EventPostDeleted    EventType = "post.deleted"
	EventCommentCreated EventType = "comment.created"
	EventCommentUpdated EventType = "comment.updated"
	EventCommentDeleted EventType = "comment.deleted"
	EventReplyCreated   EventType = "reply.created"
	EventReplyUpdated   EventType = "reply.updated"
	EventLikeToggled    EventType = "like.toggled"

	// Error events
	EventError EventType = "error"
)

func (t EventType) String() string {
	return string(t)
}

// IsValid checks if the EventType is a valid enum value.
func (t EventType) IsValid() bool {
	switch t {
	case EventRoomJoin, EventRoomLeave,
		EventDrawSegment, EventClearBoard,
		EventAttendanceChange,
		EventPostCreated, EventPostUpdated, EventPostDeleted,
		EventCommentCreated, EventCommentUpdated, EventCommentDeleted,
		EventReplyCreated, EventReplyUpdated, EventLikeToggled,
		EventError:
		return true
	default:
		return false
	}
}

// IsRelayable reports whether the event type is fanned out to room members.
// Membership actions and errors are handled by the hub itself.
func (t EventType) IsRelayable() bool {
	switch t {
	case EventRoomJoin, EventRoomLeave, EventError:
		return false
	default:
		return t.IsValid()
	}
}

// senderExcluded is the per-tag delivery policy. A tag listed here is not
// echoed back to its sender: the drawing client already renders its own
// segment locally. Every other relayable tag is delivered to the sender too,
// and receivers deduplicate by entity id. The policy is fixed here and is
// not configurable at call time.
var senderExcluded = map[EventType]bool{
	EventDrawSegment: true,
}

// ExcludesSender reports whether broadcasts of this tag skip the sender.
func (t EventType) ExcludesSender() bool {
	return senderExcluded[t]
}

// Event is the envelope relayed between room members.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	RoomID    string          `json:"roomId,omitempty"`
	SenderID  string          `json:"senderId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// Validate checks the envelope before dispatch. Events failing validation
// are dropped by the hub, never propagated.
func (e *Event) Validate() error {
	if !e.Type.IsValid() {
		return fmt.Errorf("invalid event type: %s", e.Type)
	}
	if e.Type != EventError && e.RoomID == "" {
		return fmt.Errorf("event %s is missing room id", e.Type)
	}
	return nil
}

// DecodePayload unmarshals the payload into the tag-specific struct.
func (e *Event) DecodePayload(dest interface{}) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("event %s has no payload", e.Type)
	}
	return json.Unmarshal(e.Payload, dest)
}

/** -------------------- tag-specific payloads -------------------- */

// RoomActionPayload accompanies room.join and room.leave. Role is
// display-only; authorization happens at the REST layer.
type RoomActionPayload struct {
	Role string `json:"role,omitempty"`
}

// DrawSegmentPayload describes one line segment. A stroke is a sequence of
// independent segment events emitted as the pointer moves, not one atomic path.
type DrawSegmentPayload struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color string  `json:"color"`
	Width float64 `json:"width"`
	Tool  string  `json:"tool"`
}

// AttendanceChangePayload carries one student's new attendance state.
type AttendanceChangePayload struct {
	StudentID uint   `json:"studentId"`
	Status    string `json:"status"`
}

// EntityDeletedPayload identifies a removed discussion entity by id.
// For comments, receivers drop nested replies along with the comment.
type EntityDeletedPayload struct {
	ID       uint `json:"id"`
	ParentID uint `json:"parentId,omitempty"`
}

// ErrorPayload is sent only to the offending client.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

/** -------------------- constructors -------------------- */

// NewEvent builds an envelope with the given tag and payload, stamping the
// current time. Marshal errors surface to the caller since payload structs
// are always marshalable internal types.
func NewEvent(id string, eventType EventType, roomID string, payload interface{}) (*Event, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
		}
		raw = data
	}
	return &Event{
		ID:        id,
		Type:      eventType,
		RoomID:    roomID,
		Payload:   raw,
		Timestamp: time.Now().Unix(),
	}, nil
}

// NewErrorEvent builds the error envelope delivered back to a single client.
func NewErrorEvent(id, code, message string) *Event {
	payload, _ := json.Marshal(ErrorPayload{Code: code, Message: message})
	return &Event{
		ID:        id,
		Type:      EventError,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}
}
