package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"micarta/internal/domain"
)

// FileCartStore is the single-host analogue of the Redis store: the cart
// lives in one JSON file, rewritten whole on every save.
type FileCartStore struct {
	Path string
}

func NewFileCartStore(path string) *FileCartStore {
	return &FileCartStore{Path: path}
}

func (s *FileCartStore) Load(_ context.Context) ([]domain.LineItem, error) {
	raw, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
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

func (s *FileCartStore) Save(_ context.Context, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := os.WriteFile(s.Path, payload, 0644); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
