package events

import (
	"context"

	"smpid/pkg/kafka"
)

type kafkaPublisher struct {
	producer *kafka.Producer
	source   string
}

// NewKafkaPublisher publishes events to the shared portal topic.
func NewKafkaPublisher(brokers []string, topic, source string) (Publisher, error) {
	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers: brokers,
		Topic:   topic,
	})
	if err != nil {
		return nil, err
	}
	return &kafkaPublisher{producer: producer, source: source}, nil
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType, key string, payload any) error {
	msg, err := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource(p.source).
		WithSchemaVersion(SchemaVersion).
		Build()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher discards events. Used when no brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, string, any) error { return nil }
func (noopPublisher) Close() error                                       { return nil }

// ForConfig picks the Kafka publisher when brokers are configured, the
// no-op publisher otherwise.
func ForConfig(brokers []string, topic, source string) (Publisher, error) {
	if len(brokers) == 0 {
		return NewNoopPublisher(), nil
	}
	return NewKafkaPublisher(brokers, topic, source)
}
