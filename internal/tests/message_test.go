package tests

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"micarta/internal/domain"
	"micarta/internal/mocks"
	"micarta/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestOrderMessageEnglish(t *testing.T) {
	ctx := context.Background()
	cart := newCart(t, &memStore{})
	entry, side := pizzaWithSides()
	assert.NoError(t, cart.AddItem(ctx, entry, &side))

	msg := cart.OrderMessage(service.CheckoutRequest{Language: "EN"})

	assert.Contains(t, msg, "1. Pizza Margherita (Tamaño Grande) - $11,990")
	assert.Contains(t, msg, "Total: $11,990")
	assert.True(t, strings.HasSuffix(msg, "Thank you!"), "message must end with the closing line, got %q", msg)
}

func TestOrderMessageExtendedQuantity(t *testing.T) {
	ctx := context.Background()
	cart := newCart(t, &memStore{})
	entry, side := pizzaWithSides()
	assert.NoError(t, cart.AddItem(ctx, entry, &side))
	assert.NoError(t, cart.AddItem(ctx, entry, &side))

	msg := cart.OrderMessage(service.CheckoutRequest{Language: "EN"})

	assert.Contains(t, msg, "1. Pizza Margherita (Tamaño Grande) - $11,990 x2 = $23,980")
	assert.Contains(t, msg, "Total: $23,980")
}

func TestOrderMessageMeteredLine(t *testing.T) {
	ctx := context.Background()
	cart := newCart(t, &memStore{})
	assert.NoError(t, cart.AddItemWithQuantity(ctx, paltaByWeight(), 2.5))

	msg := cart.OrderMessage(service.CheckoutRequest{Language: "EN"})

	assert.Contains(t, msg, "1. Palta Hass (2.5kg) - $15,000")
	assert.Contains(t, msg, "Total: $15,000")
}

func TestOrderMessageSpanishLocale(t *testing.T) {
	ctx := context.Background()
	cart := newCart(t, &memStore{})
	entry, side := pizzaWithSides()
	assert.NoError(t, cart.AddItem(ctx, entry, &side))

	msg := cart.OrderMessage(service.CheckoutRequest{Language: "ES"})

	assert.Contains(t, msg, "$11.990", "es-CL grouping uses a dot")
	assert.True(t, strings.HasSuffix(msg, "¡Gracias!"))
}

func TestOrderMessagePortugueseLocale(t *testing.T) {
	ctx := context.Background()
	cart := newCart(t, &memStore{})
	entry, side := pizzaWithSides()
	assert.NoError(t, cart.AddItem(ctx, entry, &side))

	msg := cart.OrderMessage(service.CheckoutRequest{Language: "PT"})

	assert.Contains(t, msg, "$11.990", "pt-BR grouping uses a dot")
	assert.True(t, strings.HasSuffix(msg, "Obrigado!"))
}

func TestOrderMessagePickupBlock(t *testing.T) {
	ctx := context.Background()
	cart := newCart(t, &memStore{})
	entry, side := pizzaWithSides()
	assert.NoError(t, cart.AddItem(ctx, entry, &side))

	msg := cart.OrderMessage(service.CheckoutRequest{
		Language:   "EN",
		PickupName: "Sofía",
		PickupTime: "19:30",
	})

	assert.Contains(t, msg, "Name: Sofía")
	assert.Contains(t, msg, "Pickup time: 19:30")
}

func TestCheckoutURL(t *testing.T) {
	ctx := context.Background()
	cart := newCart(t, &memStore{})
	entry, side := pizzaWithSides()
	assert.NoError(t, cart.AddItem(ctx, entry, &side))

	req := service.CheckoutRequest{Phone: "+56 9 1234-5678", Language: "EN"}
	link := cart.CheckoutURL(req)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/56912345678?text="), "got %q", link)

	parsed, err := url.Parse(link)
	assert.NoError(t, err)
	assert.Equal(t, cart.OrderMessage(req), parsed.Query().Get("text"))
}

func TestOrderMessageDoesNotMutateCart(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	cart := newCart(t, store)
	entry, side := pizzaWithSides()
	assert.NoError(t, cart.AddItem(ctx, entry, &side))
	savesBefore := store.saves

	cart.OrderMessage(service.CheckoutRequest{Language: "EN"})
	cart.CheckoutURL(service.CheckoutRequest{Phone: "123", Language: "EN"})

	assert.Equal(t, savesBefore, store.saves, "message generation is read-only")
	assert.Len(t, cart.Items(), 1)
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes order event", func(t *testing.T) {
		publisher := mocks.NewOrderPublisher(t)
		publisher.On("PublishOrder", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
			return e.Type == domain.EventOrderPlaced && e.Phone == "56912345678" &&
				len(e.Items) == 1 && e.Total == 11990 && e.EventID != ""
		})).Return(nil).Once()

		cart := service.NewCartService(ctx, &memStore{}, publisher, zap.NewNop())
		entry, side := pizzaWithSides()
		assert.NoError(t, cart.AddItem(ctx, entry, &side))

		link, err := cart.Checkout(ctx, service.CheckoutRequest{Phone: "+56 9 1234 5678", Language: "EN"})
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(link, "https://wa.me/56912345678?text="))
	})

	t.Run("publish failure does not fail checkout", func(t *testing.T) {
		publisher := mocks.NewOrderPublisher(t)
		publisher.On("PublishOrder", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		cart := service.NewCartService(ctx, &memStore{}, publisher, zap.NewNop())
		assert.NoError(t, cart.AddItem(ctx, domain.MenuEntry{Title: "Empanada", Price: 2500}, nil))

		link, err := cart.Checkout(ctx, service.CheckoutRequest{Phone: "123"})
		assert.NoError(t, err)
		assert.NotEmpty(t, link)
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		cart := newCart(t, &memStore{})
		_, err := cart.Checkout(ctx, service.CheckoutRequest{Phone: "123"})
		assert.ErrorIs(t, err, service.ErrEmptyCart)
	})

	t.Run("rejects missing phone", func(t *testing.T) {
		cart := newCart(t, &memStore{})
		assert.NoError(t, cart.AddItem(ctx, domain.MenuEntry{Title: "Empanada", Price: 2500}, nil))
		_, err := cart.Checkout(ctx, service.CheckoutRequest{Phone: "no digits here"})
		assert.ErrorIs(t, err, service.ErrMissingPhone)
	})
}

// The checkout link and the published event come from one snapshot: rendering
// the captured event items must reproduce the link text exactly, even while
// other callers keep mutating the cart.
func TestCheckoutLinkMatchesPublishedEvent(t *testing.T) {
	ctx := context.Background()

	var captured domain.OrderEvent
	publisher := mocks.NewOrderPublisher(t)
	publisher.On("PublishOrder", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(domain.OrderEvent)
	}).Return(nil).Once()

	cart := service.NewCartService(ctx, &memStore{}, publisher, zap.NewNop())
	entry, side := pizzaWithSides()
	assert.NoError(t, cart.AddItem(ctx, entry, &side))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			_ = cart.AddItem(ctx, domain.MenuEntry{Title: "Empanada", Price: 2500}, nil)
		}
	}()

	req := service.CheckoutRequest{Phone: "56912345678", Language: "EN"}
	link, err := cart.Checkout(ctx, req)
	assert.NoError(t, err)
	<-done

	parsed, err := url.Parse(link)
	assert.NoError(t, err)

	replay := service.NewCartService(ctx, &memStore{items: captured.Items}, nil, zap.NewNop())
	assert.Equal(t, replay.OrderMessage(req), parsed.Query().Get("text"))
	assert.Equal(t, replay.Total(), captured.Total)
}
