// Package reconcile merges incoming relay events into local client state.
// It is the client half of the real-time layer: the server fans events out,
// and each participant runs one Reconciler on its UI event loop to keep the
// whiteboard, discussion tree and attendance roster consistent. Events are
// applied one at a time in arrival order, so no locking happens here.
//
// The merge rules are deliberately safe under arbitrary interleaving of
// concurrent senders: inserts are idempotent by entity id, updates touch
// only mutable fields and drop unknown ids, and counts are replaced from
// authoritative payloads instead of incremented locally.
package reconcile

import (
	"fmt"

	"classroom-service/internal/websocket"
)

// Handler applies one decoded event to local state.
type Handler func(*websocket.Event) error

// Reconciler owns the per-feature local state and the tag dispatch table.
type Reconciler struct {
	whiteboard *Whiteboard
	discussion *Discussion
	attendance *Roster

	handlers map[websocket.EventType]Handler
}

func New() *Reconciler {
	r := &Reconciler{
		whiteboard: NewWhiteboard(),
		discussion: NewDiscussion(),
		attendance: NewRoster(),
	}

	// One table, one handler per relayable tag.
	r.handlers = map[websocket.EventType]Handler{
		websocket.EventDrawSegment:      r.applyDrawSegment,
		websocket.EventClearBoard:       r.applyClearBoard,
		websocket.EventAttendanceChange: r.applyAttendanceChange,
		websocket.EventPostCreated:      r.discussion.applyPostCreated,
		websocket.EventPostUpdated:      r.discussion.applyPostUpdated,
		websocket.EventPostDeleted:      r.discussion.applyPostDeleted,
		websocket.EventCommentCreated:   r.discussion.applyCommentCreated,
		websocket.EventCommentUpdated:   r.discussion.applyCommentUpdated,
		websocket.EventCommentDeleted:   r.discussion.applyCommentDeleted,
		websocket.EventReplyCreated:     r.discussion.applyReplyCreated,
		websocket.EventReplyUpdated:     r.discussion.applyReplyUpdated,
		websocket.EventLikeToggled:      r.discussion.applyLikeToggled,
	}

	return r
}

// Apply is the single entry point the UI subscribes to. Events with tags
// this client does not understand are dropped, matching the relay's
// tolerance for version skew between peers.
func (r *Reconciler) Apply(event *websocket.Event) error {
	handler, ok := r.handlers[event.Type]
	if !ok {
		return nil
	}
	return handler(event)
}

func (r *Reconciler) Whiteboard() *Whiteboard {
	return r.whiteboard
}

func (r *Reconciler) Discussion() *Discussion {
	return r.discussion
}

func (r *Reconciler) Attendance() *Roster {
	return r.attendance
}

func (r *Reconciler) applyDrawSegment(event *websocket.Event) error {
	var seg websocket.DrawSegmentPayload
	if err := event.DecodePayload(&seg); err != nil {
		return fmt.Errorf("draw segment: %w", err)
	}
	r.whiteboard.ApplySegment(seg)
	return nil
}

func (r *Reconciler) applyClearBoard(event *websocket.Event) error {
	r.whiteboard.Clear()
	return nil
}

func (r *Reconciler) applyAttendanceChange(event *websocket.Event) error {
	var change websocket.AttendanceChangePayload
	if err := event.DecodePayload(&change); err != nil {
		return fmt.Errorf("attendance change: %w", err)
	}
	r.attendance.Set(change.StudentID, change.Status)
	return nil
}
