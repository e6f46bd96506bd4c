package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentService interface {
	PixView(ctx context.Context, userID, orderID int64) (*service.PixView, error)
	CardView(ctx context.Context, orderID int64) (*service.CardView, error)
	Confirm(ctx context.Context, userID, orderID int64) (*domain.Order, error)
	History(ctx context.Context, userID int64) ([]*domain.Order, error)
}

type OrdersHandler struct {
	payments PaymentService
	timeout  time.Duration
	log      *zap.Logger
}

func NewOrdersHandler(payments PaymentService, timeout time.Duration, log *zap.Logger) *OrdersHandler {
	return &OrdersHandler{
		payments: payments,
		timeout:  timeout,
		log:      log,
	}
}

type ConfirmPaymentResponseDTO struct {
	Order   *domain.Order `json:"order"`
	Message string        `json:"message"`
	Next    string        `json:"next"`
}

type OrdersResponseDTO struct {
	Orders []*domain.Order `json:"orders"`
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.payments.History(ctx, getUserIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, r, h.log, err, NextHome)
		return
	}
	respondJSON(w, http.StatusOK, OrdersResponseDTO{Orders: orders})
}

// GET /api/v1/orders/{id}/pix
func (h *OrdersHandler) GetPix(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	view, err := h.payments.PixView(ctx, getUserIDFromContext(r.Context()), orderID)
	if err != nil {
		handleServiceError(w, r, h.log, err, NextCart)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// GET /api/v1/orders/{id}/card
func (h *OrdersHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		orderID = 0
	}

	view, err := h.payments.CardView(ctx, orderID)
	if err != nil {
		handleServiceError(w, r, h.log, err, NextCart)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// POST /api/v1/orders/{id}/pix/confirm
func (h *OrdersHandler) ConfirmPix(w http.ResponseWriter, r *http.Request) {
	h.confirm(w, r, NextPix)
}

// POST /api/v1/orders/{id}/card/confirm
func (h *OrdersHandler) ConfirmCard(w http.ResponseWriter, r *http.Request) {
	h.confirm(w, r, NextCard)
}

// confirm marks the order paid. When the update does not apply the client is
// sent back to the payment view it came from.
func (h *OrdersHandler) confirm(w http.ResponseWriter, r *http.Request, retryView string) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	order, err := h.payments.Confirm(ctx, getUserIDFromContext(r.Context()), orderID)
	if err != nil {
		handleServiceError(w, r, h.log, err, fmt.Sprintf("%s:%d", retryView, orderID))
		return
	}

	respondJSON(w, http.StatusOK, ConfirmPaymentResponseDTO{
		Order:   order,
		Message: "payment confirmed",
		Next:    NextHome,
	})
}

func orderIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || orderID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a positive integer")
		return 0, false
	}
	return orderID, true
}
