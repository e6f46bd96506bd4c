package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"go.uber.org/zap"
)

type FulfillmentService interface {
	UpdateStatus(ctx context.Context, orderID int64, status string) (*domain.Order, error)
}

// AdminHandler serves back-office order operations.
type AdminHandler struct {
	fulfillment FulfillmentService
	timeout     time.Duration
	log         *zap.Logger
}

func NewAdminHandler(fulfillment FulfillmentService, timeout time.Duration, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		fulfillment: fulfillment,
		timeout:     timeout,
		log:         log,
	}
}

type UpdateOrderStatusRequestDTO struct {
	Status string `json:"status"`
}

// PUT /api/v1/admin/orders/{id}/status
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.fulfillment.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		handleServiceError(w, r, h.log, err, NextHome)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
