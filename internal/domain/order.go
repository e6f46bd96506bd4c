package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is a frozen copy of price and quantity at order time.
type OrderLine struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (l OrderLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Order struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	AddressID     int64           `json:"address_id"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	CardID        *int64          `json:"card_id"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`
	TotalValue    decimal.Decimal `json:"total_value"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Status        OrderStatus     `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	PaidAt        *time.Time      `json:"paid_at"`
	Lines         []OrderLine     `json:"lines"`

	// Filled when the order is loaded from storage. Card carries a masked number only.
	Address *Address `json:"address,omitempty"`
	Card    *Card    `json:"card,omitempty"`
}

// OrderStatus tracks fulfillment and moves independently of PaymentStatus.
type OrderStatus string

const (
	OrderStatusReceived  OrderStatus = "RECEIVED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch status := OrderStatus(strings.ToUpper(strings.TrimSpace(s))); status {
	case OrderStatusReceived, OrderStatusPreparing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCanceled:
		return status, true
	}
	return "", false
}

func (s OrderStatus) String() string {
	return string(s)
}

// Subtotal sums the frozen line totals.
func (o *Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range o.Lines {
		sum = sum.Add(l.Total())
	}
	return sum
}
