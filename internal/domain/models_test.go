package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineItemKey(t *testing.T) {
	side := "Tamaño Grande"
	quantity := 2.5
	halfKilo := 0.5

	tests := []struct {
		name string
		item LineItem
		want string
	}{
		{
			name: "title alone",
			item: LineItem{Title: "Empanada"},
			want: "Empanada",
		},
		{
			name: "side takes precedence",
			item: LineItem{Title: "Pizza Margherita", Side: &side, CustomQuantity: &quantity},
			want: "Pizza Margherita_Tamaño Grande",
		},
		{
			name: "custom quantity in key",
			item: LineItem{Title: "Palta Hass", CustomQuantity: &quantity},
			want: "Palta Hass_2.5",
		},
		{
			name: "fractional quantity keeps minimal form",
			item: LineItem{Title: "Queso", CustomQuantity: &halfKilo},
			want: "Queso_0.5",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, testCase.item.Key())
		})
	}
}

func TestLineItemMetered(t *testing.T) {
	quantity := 1.5
	assert.False(t, LineItem{Title: "Empanada"}.Metered())
	assert.True(t, LineItem{Title: "Palta Hass", CustomQuantity: &quantity}.Metered())
}
