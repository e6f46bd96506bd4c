package http

import (
	"context"

	"github.com/fjod/storefront/internal/catalog"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/service"
)

type CartServiceMock struct {
	view       *service.CartView
	token      string
	err        error
	gotToken   string
	gotProduct int64
	gotQty     int
}

func (m *CartServiceMock) View(_ context.Context, token string) (*service.CartView, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.view, nil
}

func (m *CartServiceMock) AddItem(_ context.Context, token string, productID int64, quantity int) (string, error) {
	m.gotToken, m.gotProduct, m.gotQty = token, productID, quantity
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

func (m *CartServiceMock) SetQuantity(token string, productID int64, quantity int) (string, error) {
	m.gotToken, m.gotProduct, m.gotQty = token, productID, quantity
	return m.token, m.err
}

func (m *CartServiceMock) RemoveItem(token string, productID int64) (string, error) {
	m.gotToken, m.gotProduct = token, productID
	return m.token, m.err
}

type CheckoutServiceMock struct {
	info      *service.CheckoutInfo
	address   *domain.Address
	card      *domain.Card
	result    *service.FinalizeResult
	err       error
	gotUserID int64
	gotReq    service.FinalizeRequest
}

func (m *CheckoutServiceMock) Info(_ context.Context, userID int64, _ string) (*service.CheckoutInfo, error) {
	m.gotUserID = userID
	return m.info, m.err
}

func (m *CheckoutServiceMock) SaveAddress(_ context.Context, userID int64, _ string, _ service.AddressForm) (*domain.Address, error) {
	m.gotUserID = userID
	return m.address, m.err
}

func (m *CheckoutServiceMock) SaveCard(_ context.Context, userID int64, _ string, _ service.CardForm) (*domain.Card, error) {
	m.gotUserID = userID
	return m.card, m.err
}

func (m *CheckoutServiceMock) FinalizeOrder(_ context.Context, userID int64, _ string, req service.FinalizeRequest) (*service.FinalizeResult, error) {
	m.gotUserID = userID
	m.gotReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type PaymentServiceMock struct {
	pix        *service.PixView
	card       *service.CardView
	order      *domain.Order
	orders     []*domain.Order
	err        error
	gotOrderID int64
}

func (m *PaymentServiceMock) PixView(_ context.Context, _, orderID int64) (*service.PixView, error) {
	m.gotOrderID = orderID
	return m.pix, m.err
}

func (m *PaymentServiceMock) CardView(_ context.Context, orderID int64) (*service.CardView, error) {
	m.gotOrderID = orderID
	if orderID <= 0 {
		return nil, service.ErrInvalidOrderID
	}
	return m.card, m.err
}

func (m *PaymentServiceMock) Confirm(_ context.Context, _, orderID int64) (*domain.Order, error) {
	m.gotOrderID = orderID
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m *PaymentServiceMock) History(_ context.Context, _ int64) ([]*domain.Order, error) {
	return m.orders, m.err
}

type CatalogServiceMock struct {
	page         *catalog.Page
	product      *domain.Product
	filters      map[string][]string
	err          error
	gotPageIndex int
}

func (m *CatalogServiceMock) Page(_ context.Context, pageIndex int) (*catalog.Page, error) {
	m.gotPageIndex = pageIndex
	return m.page, m.err
}

func (m *CatalogServiceMock) Product(_ context.Context, _ int64) (*domain.Product, error) {
	return m.product, m.err
}

func (m *CatalogServiceMock) Filters(context.Context) (map[string][]string, error) {
	return m.filters, m.err
}

type FulfillmentServiceMock struct {
	order      *domain.Order
	err        error
	gotOrderID int64
	gotStatus  string
}

func (m *FulfillmentServiceMock) UpdateStatus(_ context.Context, orderID int64, status string) (*domain.Order, error) {
	m.gotOrderID, m.gotStatus = orderID, status
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}
