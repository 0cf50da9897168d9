package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/GTDGit/duckwolf_api/internal/metrics"
	"github.com/GTDGit/duckwolf_api/internal/models"
)

const sinkKafka = "kafka"

// NotificationEvent is the audit record published for each dashboard notification.
type NotificationEvent struct {
	EventID   string                  `json:"eventId"`
	EventType string                  `json:"eventType"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Severity  models.NotificationType `json:"severity"`
	Timestamp time.Time               `json:"timestamp"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes notifications to a Kafka topic. The writer runs in
// async mode so Publish never waits on the brokers.
type KafkaNotifier struct {
	writer  messageWriter
	metrics *metrics.Metrics
}

func NewKafkaNotifier(brokers []string, topic string, m *metrics.Metrics) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			for range messages {
				m.RecordNotificationPublished(sinkKafka, err == nil)
			}
			if err != nil {
				log.Error().Err(err).Int("count", len(messages)).Str("topic", topic).Msg("Failed to publish notification events")
			}
		},
	}
	return &KafkaNotifier{writer: writer, metrics: m}
}

func (p *KafkaNotifier) Publish(n models.Notification) {
	event := NotificationEvent{
		EventID:   n.ID,
		EventType: "dashboard.notification.created",
		Title:     n.Title,
		Message:   n.Message,
		Severity:  n.Type,
		Timestamp: n.Timestamp,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("event_id", n.ID).Msg("Failed to marshal notification event")
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
		Time:  event.Timestamp,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.metrics.RecordNotificationPublished(sinkKafka, false)
		log.Error().Err(err).Str("event_id", n.ID).Msg("Failed to enqueue notification event")
	}
}

func (p *KafkaNotifier) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
