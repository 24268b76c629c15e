package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/wist/backend/internal/domain"
)

// EventItemCreated is the type tag of item creation events
const EventItemCreated = "wishlist_item.created"

const (
	publishTimeout = 5 * time.Second
	batchTimeout   = 10 * time.Millisecond
)

// ItemEvent is the message published for item lifecycle changes
type ItemEvent struct {
	Type       string               `json:"type"`
	OccurredAt time.Time            `json:"occurredAt"`
	Item       *domain.WishlistItem `json:"item"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes item events to a Kafka topic.
// Writes are synchronous so broker failures reach the caller; each publish is bounded by timeout.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

// NewKafkaPublisher creates a publisher writing to topic on the given brokers
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher needs at least one broker")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka publisher needs a topic")
	}

	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: batchTimeout,
			WriteTimeout: publishTimeout,
		},
		timeout: publishTimeout,
	}, nil
}

// PublishItemCreated sends an item creation event keyed by item id
func (p *KafkaPublisher) PublishItemCreated(ctx context.Context, item *domain.WishlistItem) error {
	now := time.Now().UTC()
	data, err := json.Marshal(ItemEvent{Type: EventItemCreated, OccurredAt: now, Item: item})
	if err != nil {
		return fmt.Errorf("failed to encode item event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(item.ID, 10)),
		Value: data,
		Time:  now,
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish item event: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. Used when events are disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishItemCreated(context.Context, *domain.WishlistItem) error { return nil }

func (NoopPublisher) Close() error { return nil }
