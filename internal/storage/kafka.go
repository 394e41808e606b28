package storage

import (
	"context"
	"encoding/json"

	"micarta/internal/domain"

	"github.com/segmentio/kafka-go"
)

type KafkaOrderPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaOrderPublisher(writer *kafka.Writer) *KafkaOrderPublisher {
	return &KafkaOrderPublisher{Writer: writer}
}

func (p *KafkaOrderPublisher) PublishOrder(ctx context.Context, event domain.OrderEvent) error {
	payload, _ := json.Marshal(event)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EventID),
		Value: payload,
	})
}
