package service

import (
	"context"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/pkg/logger"
	"go.uber.org/zap"
)

// FulfillmentService moves an order through preparation and delivery. It never
// touches the payment status.
type FulfillmentService struct {
	store OrderStore
	log   *zap.Logger
}

func NewFulfillmentService(store OrderStore, log *zap.Logger) *FulfillmentService {
	return &FulfillmentService{store: store, log: log}
}

func (s *FulfillmentService) UpdateStatus(ctx context.Context, orderID int64, status string) (*domain.Order, error) {
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}
	next, ok := domain.ParseOrderStatus(status)
	if !ok {
		return nil, &ValidationError{Fields: map[string]string{
			"status": "must be one of RECEIVED, PREPARING, SHIPPED, DELIVERED, CANCELED",
		}}
	}

	rows, err := s.store.UpdateOrderStatus(ctx, orderID, next)
	if err != nil {
		return nil, persistence("update order status", err)
	}
	if rows == 0 {
		return nil, ErrOrderNotFound
	}

	logger.FromContext(ctx, s.log).Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("status", next.String()))

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, persistence("get order", err)
	}
	return order, nil
}
