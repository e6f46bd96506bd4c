package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fjod/storefront/internal/cardbrand"
	"github.com/fjod/storefront/internal/cart"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/pricing"
	"github.com/fjod/storefront/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	NextPix  = "pix"
	NextCard = "card"
)

// CheckoutInfo is the checkout screen: the cart, the shopper's saved addresses
// and cards, and blank forms for adding new ones.
type CheckoutInfo struct {
	Lines       []domain.CartLine `json:"lines"`
	Addresses   []domain.Address  `json:"addresses"`
	Cards       []domain.Card     `json:"cards"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	DeliveryFee decimal.Decimal   `json:"delivery_fee"`
	CardTotal   decimal.Decimal   `json:"card_total"`
	PixTotal    decimal.Decimal   `json:"pix_total"`
	NewAddress  AddressForm       `json:"new_address"`
	NewCard     CardForm          `json:"new_card"`
}

type FinalizeRequest struct {
	AddressID     int64
	PaymentMethod string
	CardID        *int64
	RawAddress    domain.RawAddress
}

type FinalizeResult struct {
	Order     *domain.Order
	Next      string
	CartToken string
}

type CheckoutService struct {
	codec    *cart.Codec
	lookup   cart.ProductLookup
	store    Store
	resolver *AddressResolver
	validate *validator.Validate
	tracer   trace.Tracer
	log      *zap.Logger
}

func NewCheckoutService(codec *cart.Codec, lookup cart.ProductLookup, store Store, log *zap.Logger) *CheckoutService {
	return &CheckoutService{
		codec:    codec,
		lookup:   lookup,
		store:    store,
		resolver: NewAddressResolver(store, log),
		validate: newValidator(),
		tracer:   otel.Tracer("storefront/service"),
		log:      log,
	}
}

func (s *CheckoutService) expand(ctx context.Context, token string) ([]domain.CartLine, error) {
	lines, err := s.codec.Expand(ctx, s.codec.Decode(token), s.lookup)
	if err != nil {
		return nil, persistence("expand cart", err)
	}
	return lines, nil
}

// Info loads the checkout screen for the user.
func (s *CheckoutService) Info(ctx context.Context, userID int64, token string) (*CheckoutInfo, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	lines, err := s.expand(ctx, token)
	if err != nil {
		return nil, err
	}

	addresses, err := s.store.ListAddressesForUser(ctx, userID)
	if err != nil {
		return nil, persistence("list addresses", err)
	}
	cards, err := s.store.ListCardsForUser(ctx, userID)
	if err != nil {
		return nil, persistence("list cards", err)
	}

	subtotal := pricing.Subtotal(lines)
	return &CheckoutInfo{
		Lines:       lines,
		Addresses:   addresses,
		Cards:       cards,
		Subtotal:    subtotal,
		DeliveryFee: pricing.DeliveryFee,
		CardTotal:   pricing.Total(subtotal, pricing.DeliveryFee, domain.PaymentMethodCard),
		PixTotal:    pricing.Total(subtotal, pricing.DeliveryFee, domain.PaymentMethodPix),
	}, nil
}

// rejectForm reloads the checkout screen around a rejected form.
func (s *CheckoutService) rejectForm(ctx context.Context, userID int64, token string, cause error, form any) error {
	info, err := s.Info(ctx, userID, token)
	if err != nil {
		logger.FromContext(ctx, s.log).Warn("failed to reload checkout info", zap.Error(err))
		info = nil
	}
	return &FormError{Err: cause, Form: form, Info: info}
}

func (s *CheckoutService) SaveAddress(ctx context.Context, userID int64, token string, form AddressForm) (*domain.Address, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	if err := s.validate.StructCtx(ctx, form); err != nil {
		return nil, s.rejectForm(ctx, userID, token, fieldErrors(err), form)
	}

	addr := &domain.Address{
		UserID:        userID,
		RecipientName: strings.TrimSpace(form.RecipientName),
		Street:        strings.TrimSpace(form.Street),
		Number:        strings.TrimSpace(form.Number),
		Neighborhood:  strings.TrimSpace(form.Neighborhood),
		City:          strings.TrimSpace(form.City),
		State:         strings.TrimSpace(form.State),
		PostalCode:    strings.TrimSpace(form.PostalCode),
		Complement:    strings.TrimSpace(form.Complement),
	}

	id, err := s.store.InsertAddress(ctx, addr)
	if err != nil {
		logger.FromContext(ctx, s.log).Error("failed to save address", zap.Int64("user_id", userID), zap.Error(err))
		return nil, s.rejectForm(ctx, userID, token, persistence("insert address", err), form)
	}
	addr.ID = id
	return addr, nil
}

// SaveCard stores a card. The brand is derived from the number; unknown
// prefixes are stored without a brand.
func (s *CheckoutService) SaveCard(ctx context.Context, userID int64, token string, form CardForm) (*domain.Card, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	number := cardbrand.Normalize(form.Number)
	if err := s.validate.StructCtx(ctx, form); err != nil {
		return nil, s.rejectForm(ctx, userID, token, fieldErrors(err), form)
	}
	if err := s.validate.StructCtx(ctx, cardNumber{Number: number}); err != nil {
		return nil, s.rejectForm(ctx, userID, token, fieldErrors(err), form)
	}

	brand, _ := cardbrand.Detect(number)
	card := &domain.Card{
		UserID:     userID,
		HolderName: strings.TrimSpace(form.HolderName),
		Number:     number,
		Brand:      brand,
		Expiry:     form.Expiry,
		Type:       domain.CardType(form.CardType),
	}

	id, err := s.store.InsertCard(ctx, card)
	if err != nil {
		logger.FromContext(ctx, s.log).Error("failed to save card", zap.Int64("user_id", userID), zap.Error(err))
		return nil, s.rejectForm(ctx, userID, token, persistence("insert card", err), form)
	}
	card.ID = id
	return card, nil
}

// FinalizeOrder turns the cart into an order. Checks run in this order and the
// first failure wins: payment method, authentication, non-empty cart.
func (s *CheckoutService) FinalizeOrder(ctx context.Context, userID int64, token string, req FinalizeRequest) (*FinalizeResult, error) {
	ctx, span := s.tracer.Start(ctx, "checkout.FinalizeOrder")
	defer span.End()

	log := logger.FromContext(ctx, s.log)

	result, err := s.finalize(ctx, log, userID, token, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("order.id", result.Order.ID),
		attribute.String("order.payment_method", result.Order.PaymentMethod.String()),
	)
	return result, nil
}

func (s *CheckoutService) finalize(ctx context.Context, log *zap.Logger, userID int64, token string, req FinalizeRequest) (*FinalizeResult, error) {
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return nil, ErrPaymentMethodRequired
	}
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	lines, err := s.expand(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	method := domain.ParsePaymentMethod(req.PaymentMethod)

	addressID, err := s.resolveAddress(ctx, userID, req)
	if err != nil {
		log.Error("failed to resolve delivery address", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	quote := pricing.QuoteFor(lines, method)

	order := &domain.Order{
		UserID:        userID,
		AddressID:     addressID,
		PaymentMethod: method,
		CardID:        req.CardID,
		DeliveryFee:   quote.DeliveryFee,
		TotalValue:    quote.Total,
		PaymentStatus: domain.PaymentStatusAwaitingPayment,
		Status:        domain.OrderStatusReceived,
		Lines:         make([]domain.OrderLine, 0, len(lines)),
	}
	if method == domain.PaymentMethodPix {
		order.CardID = nil
	}
	for _, l := range lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID:   l.ProductID,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}

	if err := s.persistOrder(ctx, order); err != nil {
		log.Error("failed to persist order", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	cleared, err := s.codec.Empty()
	if err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	next := NextCard
	if method == domain.PaymentMethodPix {
		next = NextPix
	}

	log.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.String("payment_method", method.String()),
		zap.String("total", order.TotalValue.StringFixed(2)))

	return &FinalizeResult{Order: order, Next: next, CartToken: cleared}, nil
}

func (s *CheckoutService) resolveAddress(ctx context.Context, userID int64, req FinalizeRequest) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "checkout.ResolveAddress")
	defer span.End()

	id, err := s.resolver.Resolve(ctx, userID, req.AddressID, req.RawAddress)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	span.SetAttributes(attribute.Int64("address.id", id))
	return id, nil
}

func (s *CheckoutService) persistOrder(ctx context.Context, order *domain.Order) error {
	ctx, span := s.tracer.Start(ctx, "checkout.PersistOrder")
	defer span.End()

	id, err := s.store.InsertOrder(ctx, order)
	if err != nil {
		span.RecordError(err)
		return persistence("insert order", err)
	}
	order.ID = id
	return nil
}
