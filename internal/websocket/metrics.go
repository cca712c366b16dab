package websocket

import (
	"sync/atomic"
)

// RelayMetrics tracks aggregate counters for the relay. Counters only ever
// grow; the stats endpoint reads snapshots.
type RelayMetrics struct {
	activeConnections int64
	eventsRelayed     int64
	eventsRejected    int64
	deliveries        int64
	deliveriesDropped int64
}

func NewRelayMetrics() *RelayMetrics {
	return &RelayMetrics{}
}

func (m *RelayMetrics) connectionOpened() {
	atomic.AddInt64(&m.activeConnections, 1)
}

func (m *RelayMetrics) connectionClosed() {
	atomic.AddInt64(&m.activeConnections, -1)
}

func (m *RelayMetrics) eventRelayed() {
	atomic.AddInt64(&m.eventsRelayed, 1)
}

func (m *RelayMetrics) eventRejected() {
	atomic.AddInt64(&m.eventsRejected, 1)
}

func (m *RelayMetrics) delivered() {
	atomic.AddInt64(&m.deliveries, 1)
}

func (m *RelayMetrics) deliveryDropped() {
	atomic.AddInt64(&m.deliveriesDropped, 1)
}

// MetricsSnapshot is the read-side view served by the stats endpoint.
type MetricsSnapshot struct {
	ActiveConnections int64 `json:"activeConnections"`
	EventsRelayed     int64 `json:"eventsRelayed"`
	EventsRejected    int64 `json:"eventsRejected"`
	Deliveries        int64 `json:"deliveries"`
	DeliveriesDropped int64 `json:"deliveriesDropped"`
}

func (m *RelayMetrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		ActiveConnections: atomic.LoadInt64(&m.activeConnections),
		EventsRelayed:     atomic.LoadInt64(&m.eventsRelayed),
		EventsRejected:    atomic.LoadInt64(&m.eventsRejected),
		Deliveries:        atomic.LoadInt64(&m.deliveries),
		DeliveriesDropped: atomic.LoadInt64(&m.deliveriesDropped),
	}
}
