package service

import (
	"context"
	"time"

	"github.com/fjod/storefront/internal/domain"
)

type AddressStore interface {
	ListAddressesForUser(ctx context.Context, userID int64) ([]domain.Address, error)
	InsertAddress(ctx context.Context, a *domain.Address) (int64, error)
}

type CardStore interface {
	ListCardsForUser(ctx context.Context, userID int64) ([]domain.Card, error)
	InsertCard(ctx context.Context, c *domain.Card) (int64, error)
}

type OrderStore interface {
	InsertOrder(ctx context.Context, order *domain.Order) (int64, error)
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
	ListOrdersForUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	UpdateOrderPaymentStatus(ctx context.Context, orderID int64, status domain.PaymentStatus, paidAt time.Time) (int64, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (int64, error)
}

// Store is everything the checkout flow persists.
type Store interface {
	AddressStore
	CardStore
	OrderStore
}

func requireUser(userID int64) error {
	if userID <= 0 {
		return ErrNotAuthenticated
	}
	return nil
}
