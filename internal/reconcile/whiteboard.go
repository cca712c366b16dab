package reconcile

import (
	"classroom-service/internal/websocket"
)

// Segment is one replayed line segment. A stroke arrives as a sequence of
// independent segments emitted while the pointer moves; replaying them in
// order reproduces the sender's canvas exactly.
type Segment struct {
	X1    float64
	Y1    float64
	X2    float64
	Y2    float64
	Color string
	Width float64
	Tool  string
}

// Whiteboard is the local canvas replay state. There is no durable entity
// behind it: the segment list is the whole board.
type Whiteboard struct {
	segments []Segment
}

func NewWhiteboard() *Whiteboard {
	return &Whiteboard{segments: make([]Segment, 0)}
}

func (w *Whiteboard) ApplySegment(p websocket.DrawSegmentPayload) {
	w.segments = append(w.segments, Segment{
		X1:    p.X1,
		Y1:    p.Y1,
		X2:    p.X2,
		Y2:    p.Y2,
		Color: p.Color,
		Width: p.Width,
		Tool:  p.Tool,
	})
}

// Clear wipes the whole canvas.
func (w *Whiteboard) Clear() {
	w.segments = w.segments[:0]
}

// Segments returns the replay list in draw order.
func (w *Whiteboard) Segments() []Segment {
	return w.segments
}

func (w *Whiteboard) Len() int {
	return len(w.segments)
}
