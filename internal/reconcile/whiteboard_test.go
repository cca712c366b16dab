package reconcile

import (
	"testing"

	"classroom-service/internal/websocket"
)

func drawEvent(t *testing.T, seg websocket.DrawSegmentPayload) *websocket.Event {
	t.Helper()
	event, err := websocket.NewEvent("ev", websocket.EventDrawSegment, "session-1", seg)
	if err != nil {
		t.Fatalf("building draw event: %v", err)
	}
	return event
}

func TestStrokeReplayMatchesSender(t *testing.T) {
	r := New()

	first := websocket.DrawSegmentPayload{X1: 0, Y1: 0, X2: 10, Y2: 10, Color: "#000000", Width: 1, Tool: "pen"}
	second := websocket.DrawSegmentPayload{X1: 10, Y1: 10, X2: 20, Y2: 5, Color: "#000000", Width: 1, Tool: "pen"}

	if err := r.Apply(drawEvent(t, first)); err != nil {
		t.Fatalf("apply first segment: %v", err)
	}
	if err := r.Apply(drawEvent(t, second)); err != nil {
		t.Fatalf("apply second segment: %v", err)
	}

	segments := r.Whiteboard().Segments()
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].X2 != 10 || segments[0].Y2 != 10 {
		t.Errorf("first segment endpoints wrong: %+v", segments[0])
	}
	if segments[1].X1 != 10 || segments[1].X2 != 20 || segments[1].Y2 != 5 {
		t.Errorf("second segment endpoints wrong: %+v", segments[1])
	}
	for _, seg := range segments {
		if seg.Color != "#000000" || seg.Width != 1 {
			t.Errorf("segment style not preserved: %+v", seg)
		}
	}
}

func TestClearBoardWipesCanvas(t *testing.T) {
	r := New()

	// A student draws one red stroke in the teacher's session
	seg := websocket.DrawSegmentPayload{X1: 5, Y1: 5, X2: 50, Y2: 50, Color: "red", Width: 2, Tool: "pen"}
	if err := r.Apply(drawEvent(t, seg)); err != nil {
		t.Fatalf("apply segment: %v", err)
	}

	segments := r.Whiteboard().Segments()
	if len(segments) != 1 {
		t.Fatalf("expected exactly one stroke, got %d", len(segments))
	}
	got := segments[0]
	if got.X1 != 5 || got.Y1 != 5 || got.X2 != 50 || got.Y2 != 50 || got.Color != "red" || got.Width != 2 {
		t.Errorf("stroke does not match sender parameters: %+v", got)
	}

	clear, err := websocket.NewEvent("ev-clear", websocket.EventClearBoard, "session-1", nil)
	if err != nil {
		t.Fatalf("building clear event: %v", err)
	}
	if err := r.Apply(clear); err != nil {
		t.Fatalf("apply clear: %v", err)
	}

	if got := r.Whiteboard().Len(); got != 0 {
		t.Errorf("expected empty canvas after clear, got %d strokes", got)
	}
}
