package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"micarta/internal/domain"
	"micarta/internal/pricing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSideRequired    = errors.New("a side selection is required for this item")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrMissingPricing  = errors.New("item has no pricing spec for custom quantities")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrMissingPhone    = errors.New("destination phone number is required")
)

// CartService owns the ordered line-item sequence. Every mutation reassigns
// the sequence and re-persists it before returning; persistence failures are
// logged and never surfaced, so the in-memory state stays authoritative.
type CartService struct {
	mu        sync.Mutex
	items     []domain.LineItem
	store     CartStore
	publisher OrderPublisher
	logger    *zap.Logger
}

// NewCartService hydrates the cart from the store. Any load failure degrades
// to an empty cart with a logged warning; callers never see a loading error.
func NewCartService(ctx context.Context, store CartStore, publisher OrderPublisher, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CartService{store: store, publisher: publisher, logger: logger}
	items, err := store.Load(ctx)
	if err != nil {
		logger.Warn("cart hydration failed, starting empty", zap.Error(err))
		items = nil
	}
	s.items = items
	return s
}

func (s *CartService) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

func cloneItems(items []domain.LineItem) []domain.LineItem {
	if items == nil {
		return nil
	}
	cloned := make([]domain.LineItem, len(items))
	for i, item := range items {
		cloned[i] = item.Clone()
	}
	return cloned
}

// AddItem puts one unit of a menu entry in the cart, merging into an existing
// line when the derived identity key matches. A side selection is mandatory
// whenever the entry offers sides.
func (s *CartService) AddItem(ctx context.Context, entry domain.MenuEntry, side *domain.MenuSide) error {
	if len(entry.Sides) > 0 && side == nil {
		return ErrSideRequired
	}

	item := domain.LineItem{
		Title:     entry.Title,
		Quantity:  1,
		UnitPrice: resolveUnitPrice(entry, side),
	}
	if side != nil {
		name := side.Name
		item.Side = &name
		if side.ID != "" {
			id := side.ID
			item.SideID = &id
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := item.Key()
	for i := range s.items {
		if s.items[i].Key() == key {
			s.items[i].Quantity++
			s.persist(ctx)
			return nil
		}
	}
	s.items = append(s.items, item)
	s.persist(ctx)
	return nil
}

// AddItemWithQuantity appends a metered line priced from the entry's pricing
// spec. Metered lines never merge, even for an identical title and quantity.
func (s *CartService) AddItemWithQuantity(ctx context.Context, entry domain.MenuEntry, quantity float64) error {
	if entry.Pricing == nil {
		return ErrMissingPricing
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	q := quantity
	spec := *entry.Pricing
	item := domain.LineItem{
		Title:          entry.Title,
		Quantity:       1,
		UnitPrice:      pricing.Resolve(&spec, &q),
		CustomQuantity: &q,
		Pricing:        &spec,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	s.persist(ctx)
	return nil
}

// RemoveItem deletes every line whose title matches, across all side
// variants. RemoveItemByKey is the precise counterpart.
func (s *CartService) RemoveItem(ctx context.Context, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.Title != title {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persist(ctx)
}

func (s *CartService) RemoveItemByKey(ctx context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeByKeyLocked(ctx, key)
}

func (s *CartService) removeByKeyLocked(ctx context.Context, key string) {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.Key() != key {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persist(ctx)
}

// UpdateQuantity sets the repeat count on the line matching the identity key.
// A non-positive quantity removes the line instead.
func (s *CartService) UpdateQuantity(ctx context.Context, key string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeByKeyLocked(ctx, key)
		return
	}
	for i := range s.items {
		if s.items[i].Key() == key {
			s.items[i].Quantity = quantity
		}
	}
	s.persist(ctx)
}

func (s *CartService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persist(ctx)
}

// Total recomputes on every call. Metered lines are re-priced from their
// retained pricing spec; fixed lines multiply unit price by quantity.
func (s *CartService) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalOf(s.items)
}

func totalOf(items []domain.LineItem) float64 {
	var total float64
	for _, item := range items {
		if item.Metered() {
			total += pricing.Resolve(item.Pricing, item.CustomQuantity)
		} else {
			total += item.UnitPrice * float64(item.Quantity)
		}
	}
	return total
}

// TotalItemCount sums custom quantities where present, repeat counts
// otherwise. Metered lines contribute fractional amounts.
func (s *CartService) TotalItemCount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count float64
	for _, item := range s.items {
		if item.Metered() {
			count += *item.CustomQuantity
		} else {
			count += float64(item.Quantity)
		}
	}
	return count
}

// Checkout builds the outbound order URL and publishes an order_placed event.
// Publish failures are logged and do not fail the checkout.
func (s *CartService) Checkout(ctx context.Context, req CheckoutRequest) (string, error) {
	phone := digitsOnly(req.Phone)
	if phone == "" {
		return "", ErrMissingPhone
	}

	s.mu.Lock()
	items := cloneItems(s.items)
	s.mu.Unlock()

	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	// The link and the published event must describe the same cart contents,
	// so both are derived from the one snapshot taken above.
	link := checkoutLink(items, req)

	if s.publisher != nil {
		event := domain.OrderEvent{
			Type:      domain.EventOrderPlaced,
			EventID:   uuid.NewString(),
			Items:     items,
			Total:     totalOf(items),
			Phone:     phone,
			Timestamp: time.Now(),
		}
		if err := s.publisher.PublishOrder(ctx, event); err != nil {
			s.logger.Warn("order event publish failed", zap.String("event_id", event.EventID), zap.Error(err))
		}
	}

	return link, nil
}

// resolveUnitPrice picks the add-time price: side price first, then the
// side's pricing spec, then the entry's flat price, then its pricing spec.
func resolveUnitPrice(entry domain.MenuEntry, side *domain.MenuSide) float64 {
	if side != nil {
		if side.Price != 0 {
			return side.Price
		}
		if side.Pricing != nil {
			return side.Pricing.PricePerUnit
		}
	}
	if entry.Price != 0 {
		return entry.Price
	}
	if entry.Pricing != nil {
		return entry.Pricing.PricePerUnit
	}
	return 0
}

// persist writes through to the store. Failures stay on the diagnostic
// channel: the mutation already applied in memory and callers get success.
func (s *CartService) persist(ctx context.Context) {
	items := append([]domain.LineItem(nil), s.items...)
	if err := s.store.Save(ctx, items); err != nil {
		s.logger.Warn("cart persistence failed, in-memory state kept", zap.Error(err))
	}
}

var _ CartServiceInterface = (*CartService)(nil)
