package pricing

import (
	"github.com/fjod/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// DeliveryFee is charged once per order regardless of distance or weight.
	DeliveryFee = decimal.NewFromInt(10)

	// PixFactor applies the 5% discount for upfront Pix payment.
	PixFactor = decimal.RequireFromString("0.95")
)

const currencyPlaces = 2

// Quote is the price breakdown of a cart for one payment method.
type Quote struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// Subtotal sums quantity x unit price without rounding.
func Subtotal(lines []domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// Total applies the payment-method rule and rounds to cents only at the end.
func Total(subtotal, deliveryFee decimal.Decimal, method domain.PaymentMethod) decimal.Decimal {
	gross := subtotal.Add(deliveryFee)
	if method == domain.PaymentMethodPix {
		gross = gross.Mul(PixFactor)
	}
	return gross.Round(currencyPlaces)
}

// QuoteFor prices the given lines.
func QuoteFor(lines []domain.CartLine, method domain.PaymentMethod) Quote {
	subtotal := Subtotal(lines)
	return Quote{
		Subtotal:    subtotal,
		DeliveryFee: DeliveryFee,
		Total:       Total(subtotal, DeliveryFee, method),
	}
}
