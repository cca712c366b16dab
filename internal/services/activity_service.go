package services

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/IBM/sarama"
)

// ActivityEvent is one row of the session activity feed pushed to Kafka for
// downstream analytics. Emission is best effort: a broker hiccup never
// fails the request that triggered it.
type ActivityEvent struct {
	SessionID uint   `json:"sessionId"`
	ActorID   uint   `json:"actorId"`
	Action    string `json:"action"`
	EntityID  uint   `json:"entityId,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type ActivityService struct {
	producer sarama.SyncProducer
	topic    string
}

// NewActivityService wraps a producer; pass nil to disable emission, for
// deployments without brokers.
func NewActivityService(producer sarama.SyncProducer, topic string) *ActivityService {
	return &ActivityService{
		producer: producer,
		topic:    topic,
	}
}

func (s *ActivityService) Record(sessionID, actorID uint, action string, entityID uint) {
	if s == nil || s.producer == nil {
		return
	}

	event := ActivityEvent{
		SessionID: sessionID,
		ActorID:   actorID,
		Action:    action,
		EntityID:  entityID,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal activity event", "action", action, "error", err)
		return
	}

	// Keyed by session so one session's feed stays ordered within a partition
	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(uint64(sessionID), 10)),
		Value: sarama.ByteEncoder(data),
	}

	if _, _, err := s.producer.SendMessage(msg); err != nil {
		slog.Error("Failed to publish activity event", "action", action, "sessionID", sessionID, "error", err)
	}
}

func (s *ActivityService) Close() error {
	if s == nil || s.producer == nil {
		return nil
	}
	return s.producer.Close()
}
