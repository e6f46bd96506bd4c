package service

import (
	"context"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/repository"
	"github.com/shopspring/decimal"
)

// MockStore implements Store for testing
type MockStore struct {
	Addresses      []domain.Address
	Cards          []domain.Card
	Orders         map[int64]*domain.Order
	NextAddressID  int64
	NextCardID     int64
	NextOrderID    int64
	InsertAddrErr  error
	ListAddrErr    error
	InsertCardErr  error
	InsertOrderErr error
	GetOrderErr    error
	UpdateErr      error
	UpdateRows     int64

	InsertedAddresses []domain.Address
	InsertedCards     []domain.Card
	InsertedOrders    []*domain.Order
	InsertOrderCalls  int
	UpdateCalls       int
	UpdatedStatus     domain.PaymentStatus
	UpdatedPaidAt     time.Time

	StatusErr         error
	StatusCalls       int
	UpdatedOrderState domain.OrderStatus
}

func (m *MockStore) ListAddressesForUser(_ context.Context, userID int64) ([]domain.Address, error) {
	if m.ListAddrErr != nil {
		return nil, m.ListAddrErr
	}
	out := make([]domain.Address, 0)
	for i := len(m.Addresses) - 1; i >= 0; i-- {
		if m.Addresses[i].UserID == userID {
			out = append(out, m.Addresses[i])
		}
	}
	return out, nil
}

func (m *MockStore) InsertAddress(_ context.Context, a *domain.Address) (int64, error) {
	if m.InsertAddrErr != nil {
		return 0, m.InsertAddrErr
	}
	m.InsertedAddresses = append(m.InsertedAddresses, *a)
	return m.NextAddressID, nil
}

func (m *MockStore) ListCardsForUser(_ context.Context, userID int64) ([]domain.Card, error) {
	out := make([]domain.Card, 0)
	for _, c := range m.Cards {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockStore) InsertCard(_ context.Context, c *domain.Card) (int64, error) {
	if m.InsertCardErr != nil {
		return 0, m.InsertCardErr
	}
	m.InsertedCards = append(m.InsertedCards, *c)
	return m.NextCardID, nil
}

func (m *MockStore) InsertOrder(_ context.Context, order *domain.Order) (int64, error) {
	m.InsertOrderCalls++
	if m.InsertOrderErr != nil {
		return 0, m.InsertOrderErr
	}
	m.InsertedOrders = append(m.InsertedOrders, order)
	return m.NextOrderID, nil
}

func (m *MockStore) GetOrderByID(_ context.Context, id int64) (*domain.Order, error) {
	if m.GetOrderErr != nil {
		return nil, m.GetOrderErr
	}
	o, ok := m.Orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (m *MockStore) ListOrdersForUser(_ context.Context, userID int64) ([]*domain.Order, error) {
	out := make([]*domain.Order, 0)
	for _, o := range m.Orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *MockStore) UpdateOrderPaymentStatus(_ context.Context, _ int64, status domain.PaymentStatus, paidAt time.Time) (int64, error) {
	m.UpdateCalls++
	m.UpdatedStatus = status
	m.UpdatedPaidAt = paidAt
	return m.UpdateRows, m.UpdateErr
}

func (m *MockStore) UpdateOrderStatus(_ context.Context, orderID int64, status domain.OrderStatus) (int64, error) {
	m.StatusCalls++
	m.UpdatedOrderState = status
	if m.StatusErr != nil {
		return 0, m.StatusErr
	}
	o, ok := m.Orders[orderID]
	if !ok {
		return 0, nil
	}
	o.Status = status
	return 1, nil
}

// mockCatalog implements cart.ProductLookup and ProductLister
type mockCatalog struct {
	Products map[int64]*domain.Product
	Err      error
}

func (m *mockCatalog) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockCatalog) GetAllProducts(context.Context) ([]*domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*domain.Product, 0, len(m.Products))
	for id := int64(1); id <= int64(len(m.Products)); id++ {
		if p, ok := m.Products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockCatalog) GetCategoryConditions(context.Context) (map[string][]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	seen := make(map[string]map[string]bool)
	filters := make(map[string][]string)
	for id := int64(1); id <= int64(len(m.Products)); id++ {
		p, ok := m.Products[id]
		if !ok {
			continue
		}
		if seen[p.Category] == nil {
			seen[p.Category] = make(map[string]bool)
		}
		if !seen[p.Category][p.Condition] {
			seen[p.Category][p.Condition] = true
			filters[p.Category] = append(filters[p.Category], p.Condition)
		}
	}
	return filters, nil
}

func newTestCatalog() *mockCatalog {
	return &mockCatalog{Products: map[int64]*domain.Product{
		1: {ID: 1, Name: "Lamp", Price: decimal.NewFromInt(25)},
		2: {ID: 2, Name: "Chair", Price: decimal.NewFromInt(50), ImageURL: "/img/chair.png"},
		3: {ID: 3, Name: "Mirror", Price: decimal.RequireFromString("89.90")},
	}}
}
