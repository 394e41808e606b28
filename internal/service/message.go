package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"micarta/internal/domain"
	"micarta/internal/pricing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CheckoutRequest carries everything needed to turn the cart into an
// outbound WhatsApp order link.
type CheckoutRequest struct {
	Phone      string `json:"phone"`
	PickupName string `json:"pickup_name,omitempty"`
	PickupTime string `json:"pickup_time,omitempty"`
	Language   string `json:"language,omitempty"` // "EN", "PT", anything else reads as Spanish
}

type messageTemplates struct {
	greeting    string
	totalLabel  string
	nameLabel   string
	pickupLabel string
	closing     string
}

func templatesFor(lang string) messageTemplates {
	switch lang {
	case "EN":
		return messageTemplates{
			greeting:    "Hello! I would like to place the following order:",
			totalLabel:  "Total:",
			nameLabel:   "Name:",
			pickupLabel: "Pickup time:",
			closing:     "Thank you!",
		}
	case "PT":
		return messageTemplates{
			greeting:    "Olá! Gostaria de fazer o seguinte pedido:",
			totalLabel:  "Total:",
			nameLabel:   "Nome:",
			pickupLabel: "Horário de retirada:",
			closing:     "Obrigado!",
		}
	default:
		return messageTemplates{
			greeting:    "¡Hola! Quisiera hacer el siguiente pedido:",
			totalLabel:  "Total:",
			nameLabel:   "Nombre:",
			pickupLabel: "Hora de retiro:",
			closing:     "¡Gracias!",
		}
	}
}

func localeTag(lang string) language.Tag {
	switch lang {
	case "PT":
		return language.MustParse("pt-BR")
	case "EN":
		return language.MustParse("en-US")
	default:
		return language.MustParse("es-CL")
	}
}

func formatAmount(lang string, amount float64) string {
	p := message.NewPrinter(localeTag(lang))
	return p.Sprintf("%v", number.Decimal(amount, number.MaxFractionDigits(2)))
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func digitsOnly(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}

// OrderMessage renders the numbered order summary. It reads cart state only
// and mutates nothing.
func (s *CartService) OrderMessage(req CheckoutRequest) string {
	s.mu.Lock()
	items := append([]domain.LineItem(nil), s.items...)
	s.mu.Unlock()
	return buildOrderMessage(items, req)
}

// CheckoutURL wraps the order message in a wa.me deep link. The phone number
// is reduced to its digits before insertion.
func (s *CartService) CheckoutURL(req CheckoutRequest) string {
	s.mu.Lock()
	items := append([]domain.LineItem(nil), s.items...)
	s.mu.Unlock()
	return checkoutLink(items, req)
}

// checkoutLink builds the wa.me deep link from an item snapshot, so the link
// and anything else derived from the same snapshot cannot diverge.
func checkoutLink(items []domain.LineItem, req CheckoutRequest) string {
	msg := buildOrderMessage(items, req)
	return "https://wa.me/" + digitsOnly(req.Phone) + "?text=" + url.QueryEscape(msg)
}

func buildOrderMessage(items []domain.LineItem, req CheckoutRequest) string {
	tpl := templatesFor(req.Language)

	var b strings.Builder
	b.WriteString(tpl.greeting)
	b.WriteString("\n\n")

	for i, item := range items {
		b.WriteString(orderLine(i+1, item, req.Language))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%s $%s\n", tpl.totalLabel, formatAmount(req.Language, totalOf(items)))

	if req.PickupName != "" {
		fmt.Fprintf(&b, "\n%s %s", tpl.nameLabel, req.PickupName)
	}
	if req.PickupTime != "" {
		fmt.Fprintf(&b, "\n%s %s", tpl.pickupLabel, req.PickupTime)
	}
	if req.PickupName != "" || req.PickupTime != "" {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tpl.closing)
	return b.String()
}

func orderLine(position int, item domain.LineItem, lang string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s", position, item.Title)

	if item.Metered() {
		abbr := ""
		if item.Pricing != nil {
			abbr = pricing.UnitAbbreviation(item.Pricing.Unit)
		}
		price := pricing.Resolve(item.Pricing, item.CustomQuantity)
		fmt.Fprintf(&b, " (%s%s) - $%s", formatQuantity(*item.CustomQuantity), abbr, formatAmount(lang, price))
		return b.String()
	}

	if item.Side != nil && *item.Side != "" {
		fmt.Fprintf(&b, " (%s)", *item.Side)
	}
	if item.Quantity > 1 {
		fmt.Fprintf(&b, " - $%s x%d = $%s",
			formatAmount(lang, item.UnitPrice),
			item.Quantity,
			formatAmount(lang, item.UnitPrice*float64(item.Quantity)))
	} else {
		fmt.Fprintf(&b, " - $%s", formatAmount(lang, item.UnitPrice))
	}
	return b.String()
}
