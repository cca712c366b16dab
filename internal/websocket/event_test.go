package websocket

import (
	"testing"
)

func TestEventTypeValidity(t *testing.T) {
	valid := []EventType{
		EventRoomJoin, EventRoomLeave,
		EventDrawSegment, EventClearBoard,
		EventAttendanceChange,
		EventPostCreated, EventPostUpdated, EventPostDeleted,
		EventCommentCreated, EventCommentUpdated, EventCommentDeleted,
		EventReplyCreated, EventReplyUpdated, EventLikeToggled,
		EventError,
	}
	for _, tag := range valid {
		if !tag.IsValid() {
			t.Errorf("%s should be valid", tag)
		}
	}

	for _, tag := range []EventType{"", "channel.message", "whiteboard.erase"} {
		if tag.IsValid() {
			t.Errorf("%q should not be valid", tag)
		}
	}
}

func TestSenderPolicyIsFixedPerTag(t *testing.T) {
	if !EventDrawSegment.ExcludesSender() {
		t.Error("draw segments are rendered locally and must not echo to the sender")
	}

	included := []EventType{
		EventClearBoard, EventAttendanceChange,
		EventPostCreated, EventPostUpdated, EventPostDeleted,
		EventCommentCreated, EventCommentUpdated, EventCommentDeleted,
		EventReplyCreated, EventReplyUpdated, EventLikeToggled,
	}
	for _, tag := range included {
		if tag.ExcludesSender() {
			t.Errorf("%s should include the sender; receivers deduplicate by id", tag)
		}
	}
}

func TestRelayableTags(t *testing.T) {
	for _, tag := range []EventType{EventRoomJoin, EventRoomLeave, EventError} {
		if tag.IsRelayable() {
			t.Errorf("%s is handled by the hub, not relayed", tag)
		}
	}
	if !EventDrawSegment.IsRelayable() || !EventLikeToggled.IsRelayable() {
		t.Error("domain events must be relayable")
	}
}

func TestEventValidateRequiresRoom(t *testing.T) {
	ev := &Event{ID: "x", Type: EventPostCreated}
	if err := ev.Validate(); err == nil {
		t.Error("expected validation error for missing room id")
	}

	ev.RoomID = "session-1"
	if err := ev.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}
