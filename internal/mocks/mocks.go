// Package mocks holds hand-written testify mocks for the service and
// analytics interfaces.
package mocks

import (
	"context"

	"micarta/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type CartStore struct {
	mock.Mock
}

func NewCartStore(t testingT) *CartStore {
	m := &CartStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CartStore) Load(ctx context.Context) ([]domain.LineItem, error) {
	args := m.Called(ctx)
	var items []domain.LineItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.LineItem)
	}
	return items, args.Error(1)
}

func (m *CartStore) Save(ctx context.Context, items []domain.LineItem) error {
	return m.Called(ctx, items).Error(0)
}

type MenuRepository struct {
	mock.Mock
}

func NewMenuRepository(t testingT) *MenuRepository {
	m := &MenuRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MenuRepository) FetchMenu(ctx context.Context) (domain.MenuPayload, error) {
	args := m.Called(ctx)
	payload, _ := args.Get(0).(domain.MenuPayload)
	return payload, args.Error(1)
}

type OrderPublisher struct {
	mock.Mock
}

func NewOrderPublisher(t testingT) *OrderPublisher {
	m := &OrderPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderPublisher) PublishOrder(ctx context.Context, event domain.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

type StatsStore struct {
	mock.Mock
}

func NewStatsStore(t testingT) *StatsStore {
	m := &StatsStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StatsStore) RecordOrder(ctx context.Context, event domain.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *StatsStore) TopItems(ctx context.Context, limit int) ([]domain.ItemStats, error) {
	args := m.Called(ctx, limit)
	var stats []domain.ItemStats
	if args.Get(0) != nil {
		stats = args.Get(0).([]domain.ItemStats)
	}
	return stats, args.Error(1)
}
