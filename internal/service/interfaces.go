package service

import (
	"context"

	"micarta/internal/domain"
)

// CartStore persists the full line-item sequence on every mutation and
// hydrates it back at startup.
type CartStore interface {
	Load(ctx context.Context) ([]domain.LineItem, error)
	Save(ctx context.Context, items []domain.LineItem) error
}

type MenuRepository interface {
	FetchMenu(ctx context.Context) (domain.MenuPayload, error)
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, event domain.OrderEvent) error
}

type CartServiceInterface interface {
	Items() []domain.LineItem
	AddItem(ctx context.Context, entry domain.MenuEntry, side *domain.MenuSide) error
	AddItemWithQuantity(ctx context.Context, entry domain.MenuEntry, quantity float64) error
	RemoveItem(ctx context.Context, title string)
	RemoveItemByKey(ctx context.Context, key string)
	UpdateQuantity(ctx context.Context, key string, quantity int)
	Clear(ctx context.Context)
	Total() float64
	TotalItemCount() float64
	OrderMessage(req CheckoutRequest) string
	CheckoutURL(req CheckoutRequest) string
	Checkout(ctx context.Context, req CheckoutRequest) (string, error)
}

type MenuServiceInterface interface {
	Menu(ctx context.Context) (domain.MenuPayload, error)
}
