// Package analytics consumes order_placed events and keeps running order
// stats for the ops console.
package analytics

import (
	"context"
	"encoding/json"
	"errors"

	"micarta/internal/domain"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type StatsStore interface {
	RecordOrder(ctx context.Context, event domain.OrderEvent) error
	TopItems(ctx context.Context, limit int) ([]domain.ItemStats, error)
}

type Consumer struct {
	Reader *kafka.Reader
	Store  StatsStore
	Logger *zap.Logger
}

func NewConsumer(reader *kafka.Reader, store StatsStore, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{Reader: reader, Store: store, Logger: logger}
}

// Start blocks reading order events until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	c.Logger.Info("order stats consumer starting")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			c.Logger.Error("read order event", zap.Error(err))
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Logger.Error("decode order event", zap.Error(err))
			continue
		}

		c.ProcessOrder(ctx, event)
	}
}

func (c *Consumer) ProcessOrder(ctx context.Context, event domain.OrderEvent) {
	if event.Type != domain.EventOrderPlaced {
		return
	}
	if err := c.Store.RecordOrder(ctx, event); err != nil {
		c.Logger.Error("record order stats", zap.String("event_id", event.EventID), zap.Error(err))
		return
	}
	c.Logger.Info("order recorded",
		zap.String("event_id", event.EventID),
		zap.Int("lines", len(event.Items)),
		zap.Float64("total", event.Total))
}
