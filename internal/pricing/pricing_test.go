package pricing

import (
	"testing"

	"github.com/fjod/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTotal_Pix(t *testing.T) {
	total := Total(dec("100"), dec("10"), domain.PaymentMethodPix)
	assert.Equal(t, "104.50", total.StringFixed(2))
	assert.True(t, total.Equal(dec("104.5")))
}

func TestTotal_Card(t *testing.T) {
	total := Total(dec("100"), dec("10"), domain.PaymentMethodCard)
	assert.True(t, total.Equal(dec("110.00")))
}

func TestTotal_RoundsOnlyAtTheEnd(t *testing.T) {
	// 3 x 0.333 = 0.999; +10 = 10.999; x0.95 = 10.44905 -> 10.45
	lines := []domain.CartLine{{ProductID: 1, Quantity: 3, UnitPrice: dec("0.333")}}
	q := QuoteFor(lines, domain.PaymentMethodPix)

	assert.True(t, q.Subtotal.Equal(dec("0.999")), "subtotal must not be rounded")
	assert.True(t, q.Total.Equal(dec("10.45")), "got %s", q.Total)
}

func TestSubtotal(t *testing.T) {
	lines := []domain.CartLine{
		{ProductID: 1, Quantity: 2, UnitPrice: dec("25")},
		{ProductID: 2, Quantity: 1, UnitPrice: dec("50")},
	}
	assert.True(t, Subtotal(lines).Equal(dec("100")))
}

func TestSubtotal_Empty(t *testing.T) {
	assert.True(t, Subtotal(nil).IsZero())
}

func TestQuoteFor_Card(t *testing.T) {
	lines := []domain.CartLine{
		{ProductID: 1, Quantity: 2, UnitPrice: dec("25")},
		{ProductID: 2, Quantity: 1, UnitPrice: dec("50")},
	}
	q := QuoteFor(lines, domain.PaymentMethodCard)

	assert.True(t, q.Subtotal.Equal(dec("100")))
	assert.True(t, q.DeliveryFee.Equal(dec("10")))
	assert.True(t, q.Total.Equal(dec("110")))
}
