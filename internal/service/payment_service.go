package service

import (
	"context"
	"errors"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/pix"
	"github.com/fjod/storefront/internal/repository"
	"github.com/fjod/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type PixView struct {
	Order       *domain.Order    `json:"order"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
	DeliveryFee decimal.Decimal  `json:"delivery_fee"`
	Total       decimal.Decimal  `json:"total"`
	Addresses   []domain.Address `json:"addresses"`
	Cards       []domain.Card    `json:"cards"`
	Pix         *pix.Charge      `json:"pix"`
}

type CardView struct {
	Order          *domain.Order   `json:"order"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	Total          decimal.Decimal `json:"total"`
	SelectedCardID *int64          `json:"selected_card_id"`
}

type PaymentService struct {
	store  Store
	now    func() time.Time
	tracer trace.Tracer
	log    *zap.Logger
}

func NewPaymentService(store Store, log *zap.Logger) *PaymentService {
	return &PaymentService{
		store:  store,
		now:    time.Now,
		tracer: otel.Tracer("storefront/service"),
		log:    log,
	}
}

func (s *PaymentService) loadOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, persistence("get order", err)
	}
	return order, nil
}

// PixView shows a pending Pix order with a fresh display code that expires
// 30 minutes after the order was created.
func (s *PaymentService) PixView(ctx context.Context, userID, orderID int64) (*PixView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	order, err := s.loadOrder(ctx, orderID)
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

	charge, err := pix.NewCharge(order.ID, order.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &PixView{
		Order:       order,
		Subtotal:    order.Subtotal(),
		DeliveryFee: order.DeliveryFee,
		Total:       order.TotalValue,
		Addresses:   addresses,
		Cards:       cards,
		Pix:         charge,
	}, nil
}

func (s *PaymentService) CardView(ctx context.Context, orderID int64) (*CardView, error) {
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &CardView{
		Order:          order,
		Subtotal:       order.Subtotal(),
		DeliveryFee:    order.DeliveryFee,
		Total:          order.TotalValue,
		SelectedCardID: order.CardID,
	}, nil
}

// Confirm marks the order paid. A missing order is ErrOrderNotFound and no
// update is attempted; an update that changes no rows is ErrPaymentStatusNotUpdated.
// Confirming an already paid order applies the update again.
func (s *PaymentService) Confirm(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "payment.Confirm", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	if err := requireUser(userID); err != nil {
		return nil, err
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	log := logger.FromContext(ctx, s.log)

	paidAt := s.now().UTC()
	rows, err := s.store.UpdateOrderPaymentStatus(ctx, order.ID, domain.PaymentStatusPaid, paidAt)
	if err != nil {
		log.Error("failed to update payment status", zap.Int64("order_id", order.ID), zap.Error(err))
		span.RecordError(err)
		return nil, persistence("update payment status", err)
	}
	if rows <= 0 {
		log.Warn("payment status update changed no rows", zap.Int64("order_id", order.ID))
		return nil, ErrPaymentStatusNotUpdated
	}

	order.PaymentStatus = domain.PaymentStatusPaid
	order.PaidAt = &paidAt

	log.Info("payment confirmed",
		zap.Int64("order_id", order.ID),
		zap.String("payment_method", order.PaymentMethod.String()))
	return order, nil
}

// History lists the user's orders, newest first.
func (s *PaymentService) History(ctx context.Context, userID int64) ([]*domain.Order, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	orders, err := s.store.ListOrdersForUser(ctx, userID)
	if err != nil {
		return nil, persistence("list orders", err)
	}
	return orders, nil
}
