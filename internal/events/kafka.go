package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes events as JSON messages keyed by registration id
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaWriter creates a writer for topic on the given brokers
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}
}

// NewKafkaPublisher wraps w
func NewKafkaPublisher(w *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishRegistrationCreated(ctx context.Context, ev RegistrationCreated) error {
	ev.Type = TypeRegistrationCreated
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", ev.Type, err)
	}
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("registration-%d", ev.RegistrationID)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s: %w", ev.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
