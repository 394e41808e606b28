package storage

import (
	"context"
	"fmt"

	"micarta/internal/domain"
	"micarta/internal/pricing"

	"github.com/redis/go-redis/v9"
)

const (
	statsOrdersKey  = "stats:orders:bytitle"
	statsRevenueKey = "stats:revenue:bytitle"
)

// RedisStatsStore aggregates per-title order counts and revenue from
// order_placed events.
type RedisStatsStore struct {
	Client *redis.Client
}

func NewRedisStatsStore(client *redis.Client) *RedisStatsStore {
	return &RedisStatsStore{Client: client}
}

func (s *RedisStatsStore) RecordOrder(ctx context.Context, event domain.OrderEvent) error {
	for _, item := range event.Items {
		count := float64(item.Quantity)
		revenue := item.UnitPrice * float64(item.Quantity)
		if item.Metered() {
			count = 1
			revenue = pricing.Resolve(item.Pricing, item.CustomQuantity)
		}
		if err := s.Client.ZIncrBy(ctx, statsOrdersKey, count, item.Title).Err(); err != nil {
			return fmt.Errorf("record order count: %w", err)
		}
		if err := s.Client.HIncrByFloat(ctx, statsRevenueKey, item.Title, revenue).Err(); err != nil {
			return fmt.Errorf("record revenue: %w", err)
		}
	}
	return nil
}

func (s *RedisStatsStore) TopItems(ctx context.Context, limit int) ([]domain.ItemStats, error) {
	if limit <= 0 {
		limit = 10
	}
	members, err := s.Client.ZRevRangeWithScores(ctx, statsOrdersKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read top items: %w", err)
	}

	var stats []domain.ItemStats
	for _, member := range members {
		title, ok := member.Member.(string)
		if !ok {
			continue
		}
		revenue, _ := s.Client.HGet(ctx, statsRevenueKey, title).Float64()
		stats = append(stats, domain.ItemStats{
			Title:   title,
			Orders:  member.Score,
			Revenue: revenue,
		})
	}
	return stats, nil
}
