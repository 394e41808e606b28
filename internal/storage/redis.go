package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"micarta/internal/domain"

	"github.com/redis/go-redis/v9"
)

const defaultCartKey = "cart:items"

// RedisCartStore keeps the whole line-item sequence as one JSON array under
// a fixed key, rewritten in full on every mutation.
type RedisCartStore struct {
	Client *redis.Client
	Key    string
}

func NewRedisCartStore(client *redis.Client, key string) *RedisCartStore {
	if key == "" {
		key = defaultCartKey
	}
	return &RedisCartStore{Client: client, Key: key}
}

func (s *RedisCartStore) Load(ctx context.Context) ([]domain.LineItem, error) {
	raw, err := s.Client.Get(ctx, s.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

func (s *RedisCartStore) Save(ctx context.Context, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.Client.Set(ctx, s.Key, payload, 0).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
