package mykafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	CustomerTopic = "customer_events"
	ProductTopic  = "product_events"
	OrderTopic    = "order_events"
)

// Publisher sends one domain event to a topic.
type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	w messageWriter
}

func NewProducer(brokers []string) *Producer {
	return &Producer{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}}
}

func (p *Producer) PublishEvent(ctx context.Context, topic, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}

	if err := p.w.WriteMessages(ctx, kafka.Message{Topic: topic, Key: []byte(key), Value: data}); err != nil {
		return fmt.Errorf("kafka: write to %s: %w", topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.w.Close()
}

// Nop drops every event. It stands in when no brokers are configured.
type Nop struct{}

func (Nop) PublishEvent(context.Context, string, string, any) error { return nil }
func (Nop) Close() error                                          { return nil }

// New returns a Producer for brokers, or Nop when there are none.
func New(brokers []string) Publisher {
	if len(brokers) == 0 {
		return Nop{}
	}
	return NewProducer(brokers)
}
