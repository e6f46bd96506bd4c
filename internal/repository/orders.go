package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderPaid          = "order.paid"
	EventOrderStatusChanged = "order.status_changed"
)

type orderCreatedPayload struct {
	OrderID       int64                `json:"order_id"`
	UserID        int64                `json:"user_id"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	TotalValue    string               `json:"total_value"`
	Lines         []domain.OrderLine   `json:"lines"`
	CreatedAt     time.Time            `json:"created_at"`
}

type orderStatusPayload struct {
	OrderID int64              `json:"order_id"`
	Status  domain.OrderStatus `json:"status"`
}

type orderPaidPayload struct {
	OrderID int64     `json:"order_id"`
	PaidAt  time.Time `json:"paid_at"`
}

// InsertOrder writes the order header, its lines and an order.created outbox
// event in a single transaction and returns the generated order id.
func (r *Repository) InsertOrder(ctx context.Context, order *domain.Order) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var cardID sql.NullInt64
	if order.CardID != nil {
		cardID = sql.NullInt64{Int64: *order.CardID, Valid: true}
	}

	if order.Status == "" {
		order.Status = domain.OrderStatusReceived
	}

	headerQuery := `INSERT INTO orders (user_id, address_id, payment_method, card_id, delivery_fee, total_value, payment_status, status, created_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	                RETURNING id, created_at`

	err = tx.QueryRowContext(ctx, headerQuery,
		order.UserID,
		order.AddressID,
		order.PaymentMethod,
		cardID,
		order.DeliveryFee,
		order.TotalValue,
		order.PaymentStatus,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return 0, mapPQError("insert order", err)
	}

	lineQuery := `INSERT INTO order_lines (order_id, product_id, product_name, quantity, unit_price)
	              VALUES ($1, $2, $3, $4, $5)
	              RETURNING id`

	for i := range order.Lines {
		line := &order.Lines[i]
		line.OrderID = order.ID
		if err := tx.QueryRowContext(ctx, lineQuery,
			line.OrderID,
			line.ProductID,
			line.ProductName,
			line.Quantity,
			line.UnitPrice,
		).Scan(&line.ID); err != nil {
			return 0, mapPQError("insert order line", err)
		}
	}

	payload := orderCreatedPayload{
		OrderID:       order.ID,
		UserID:        order.UserID,
		PaymentMethod: order.PaymentMethod,
		TotalValue:    order.TotalValue.StringFixed(2),
		Lines:         order.Lines,
		CreatedAt:     order.CreatedAt,
	}
	if err := insertOutboxEvent(ctx, tx, order.ID, EventOrderCreated, payload); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit order: %w", err)
	}
	return order.ID, nil
}

// orderSelect loads the header together with its delivery address and, for
// card orders, the card. Only the last four card digits leave the database.
const orderSelect = `SELECT o.id, o.user_id, o.address_id, o.payment_method, o.card_id, o.delivery_fee,
       o.total_value, o.payment_status, o.status, o.created_at, o.paid_at,
       a.recipient_name, a.street, a.number, a.neighborhood, a.city, a.state, a.postal_code, a.complement,
       c.holder_name, RIGHT(c.number, 4), c.brand, c.expiry, c.card_type
FROM orders o
JOIN addresses a ON a.id = o.address_id
LEFT JOIN cards c ON c.id = o.card_id`

type rowScanner interface {
	Scan(dest ...any) error
}

type cardColumns struct {
	holderName sql.NullString
	last4      sql.NullString
	brand      sql.NullString
	expiry     sql.NullString
	cardType   sql.NullString
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var cardID sql.NullInt64
	var paidAt sql.NullTime
	var addr domain.Address
	var card cardColumns
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.AddressID,
		&o.PaymentMethod,
		&cardID,
		&o.DeliveryFee,
		&o.TotalValue,
		&o.PaymentStatus,
		&o.Status,
		&o.CreatedAt,
		&paidAt,
		&addr.RecipientName,
		&addr.Street,
		&addr.Number,
		&addr.Neighborhood,
		&addr.City,
		&addr.State,
		&addr.PostalCode,
		&addr.Complement,
		&card.holderName,
		&card.last4,
		&card.brand,
		&card.expiry,
		&card.cardType,
	); err != nil {
		return nil, err
	}

	addr.ID = o.AddressID
	addr.UserID = o.UserID
	o.Address = &addr

	if cardID.Valid {
		id := cardID.Int64
		o.CardID = &id
		o.Card = &domain.Card{
			ID:         id,
			UserID:     o.UserID,
			HolderName: card.holderName.String,
			Brand:      domain.CardBrand(card.brand.String),
			Expiry:     card.expiry.String,
			Type:       domain.CardType(card.cardType.String),
			Masked:     domain.MaskCardNumber(card.last4.String),
		}
	}
	if paidAt.Valid {
		t := paidAt.Time
		o.PaidAt = &t
	}
	return &o, nil
}

// GetOrderByID returns the order with its lines, or ErrOrderNotFound.
func (r *Repository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := orderSelect + ` WHERE o.id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}

	lines, err := r.linesForOrders(ctx, []int64{order.ID})
	if err != nil {
		return nil, err
	}
	order.Lines = lines[order.ID]
	return order, nil
}

func (r *Repository) ListOrdersForUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	query := orderSelect + ` WHERE o.user_id = $1 ORDER BY o.created_at DESC, o.id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders by user id: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if len(ids) == 0 {
		return orders, nil
	}

	lines, err := r.linesForOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Lines = lines[o.ID]
	}
	return orders, nil
}

func (r *Repository) linesForOrders(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderLine, error) {
	query := `SELECT id, order_id, product_id, product_name, quantity, unit_price
	          FROM order_lines WHERE order_id = ANY($1) ORDER BY order_id, id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("query order lines: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.OrderLine, len(orderIDs))
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order line row: %w", err)
		}
		result[l.OrderID] = append(result[l.OrderID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return result, nil
}

// UpdateOrderPaymentStatus sets status and paid_at and returns the number of
// rows changed. A paid transition also records an order.paid outbox event.
func (r *Repository) UpdateOrderPaymentStatus(ctx context.Context, orderID int64, status domain.PaymentStatus, paidAt time.Time) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`UPDATE orders SET payment_status = $1, paid_at = $2 WHERE id = $3`,
		status, paidAt, orderID)
	if err != nil {
		return 0, fmt.Errorf("update payment status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if affected > 0 && status == domain.PaymentStatusPaid {
		payload := orderPaidPayload{OrderID: orderID, PaidAt: paidAt}
		if err := insertOutboxEvent(ctx, tx, orderID, EventOrderPaid, payload); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit payment status: %w", err)
	}
	return affected, nil
}

// UpdateOrderStatus moves the fulfillment status and returns the number of rows
// changed. A change records an order.status_changed outbox event.
func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return 0, fmt.Errorf("update order status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if affected > 0 {
		if err := insertOutboxEvent(ctx, tx, orderID, EventOrderStatusChanged, orderStatusPayload{OrderID: orderID, Status: status}); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit order status: %w", err)
	}
	return affected, nil
}

func insertOutboxEvent(ctx context.Context, tx *sql.Tx, orderID int64, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO outbox_events (id, aggregate_id, event_type, payload, created_at) VALUES ($1, $2, $3, $4, NOW())`,
		uuid.New(), strconv.FormatInt(orderID, 10), eventType, body)
	if err != nil {
		return mapPQError("insert outbox event", err)
	}
	return nil
}
