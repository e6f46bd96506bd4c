package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fjod/storefront/internal/cart"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/pricing"
	"github.com/shopspring/decimal"
)

const (
	MinAddQuantity = 1
	MaxAddQuantity = 99
)

// CartView is the cart screen. Total is the card price, without the Pix discount.
type CartView struct {
	Lines       []domain.CartLine `json:"lines"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	DeliveryFee decimal.Decimal   `json:"delivery_fee"`
	Total       decimal.Decimal   `json:"total"`
}

type CartService struct {
	codec  *cart.Codec
	lookup cart.ProductLookup
}

func NewCartService(codec *cart.Codec, lookup cart.ProductLookup) *CartService {
	return &CartService{codec: codec, lookup: lookup}
}

func (s *CartService) lines(ctx context.Context, token string) ([]domain.CartLine, error) {
	lines, err := s.codec.Expand(ctx, s.codec.Decode(token), s.lookup)
	if err != nil {
		return nil, persistence("expand cart", err)
	}
	return lines, nil
}

func (s *CartService) View(ctx context.Context, token string) (*CartView, error) {
	lines, err := s.lines(ctx, token)
	if err != nil {
		return nil, err
	}
	quote := pricing.QuoteFor(lines, domain.PaymentMethodCard)
	return &CartView{
		Lines:       lines,
		Subtotal:    quote.Subtotal,
		DeliveryFee: quote.DeliveryFee,
		Total:       quote.Total,
	}, nil
}

// AddItem adds quantity of a product and returns the new cart token.
func (s *CartService) AddItem(ctx context.Context, token string, productID int64, quantity int) (string, error) {
	if quantity < MinAddQuantity || quantity > MaxAddQuantity {
		return "", &ValidationError{Fields: map[string]string{
			"quantity": fmt.Sprintf("must be between %d and %d", MinAddQuantity, MaxAddQuantity),
		}}
	}

	newToken, err := s.codec.AddItem(ctx, token, productID, quantity, s.lookup)
	if errors.Is(err, domain.ErrProductNotFound) {
		return "", ErrProductNotFound
	}
	if err != nil {
		return "", persistence("add cart item", err)
	}
	return newToken, nil
}

func (s *CartService) SetQuantity(token string, productID int64, quantity int) (string, error) {
	if quantity > MaxAddQuantity {
		return "", &ValidationError{Fields: map[string]string{
			"quantity": fmt.Sprintf("must be at most %d", MaxAddQuantity),
		}}
	}
	return s.codec.SetQuantity(token, productID, quantity)
}

func (s *CartService) RemoveItem(token string, productID int64) (string, error) {
	return s.codec.RemoveItem(token, productID)
}
