package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CheckoutService interface {
	Info(ctx context.Context, userID int64, token string) (*service.CheckoutInfo, error)
	SaveAddress(ctx context.Context, userID int64, token string, form service.AddressForm) (*domain.Address, error)
	SaveCard(ctx context.Context, userID int64, token string, form service.CardForm) (*domain.Card, error)
	FinalizeOrder(ctx context.Context, userID int64, token string, req service.FinalizeRequest) (*service.FinalizeResult, error)
}

type CheckoutHandler struct {
	checkout CheckoutService
	timeout  time.Duration
	log      *zap.Logger
}

func NewCheckoutHandler(checkout CheckoutService, timeout time.Duration, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		timeout:  timeout,
		log:      log,
	}
}

type FinalizeOrderRequestDTO struct {
	AddressID     int64             `json:"address_id"`
	PaymentMethod string            `json:"payment_method"`
	CardID        *int64            `json:"card_id,omitempty"`
	Address       domain.RawAddress `json:"address"`
}

type FinalizeOrderResponseDTO struct {
	OrderID       int64                `json:"order_id"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Total         decimal.Decimal      `json:"total"`
	Next          string               `json:"next"`
}

type SavedResponseDTO struct {
	ID   int64  `json:"id"`
	Next string `json:"next"`
}

type SavedCardResponseDTO struct {
	Card  *domain.Card `json:"card"`
	Last4 string       `json:"last4"`
	Next  string       `json:"next"`
}

// GET /api/v1/checkout/info
func (h *CheckoutHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	info, err := h.checkout.Info(ctx, getUserIDFromContext(r.Context()), readCartToken(r))
	if err != nil {
		handleServiceError(w, r, h.log, err, NextCart)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// POST /api/v1/checkout/addresses
func (h *CheckoutHandler) SaveAddress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var form service.AddressForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	addr, err := h.checkout.SaveAddress(ctx, getUserIDFromContext(r.Context()), readCartToken(r), form)
	if err != nil {
		handleServiceError(w, r, h.log, err, NextCheckoutInfo)
		return
	}
	respondJSON(w, http.StatusCreated, SavedResponseDTO{ID: addr.ID, Next: NextCheckoutInfo})
}

// POST /api/v1/checkout/cards
func (h *CheckoutHandler) SaveCard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var form service.CardForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	card, err := h.checkout.SaveCard(ctx, getUserIDFromContext(r.Context()), readCartToken(r), form)
	if err != nil {
		handleServiceError(w, r, h.log, err, NextCheckoutInfo)
		return
	}
	respondJSON(w, http.StatusCreated, SavedCardResponseDTO{Card: card, Last4: card.Last4(), Next: NextCheckoutInfo})
}

// POST /api/v1/checkout/finalize
func (h *CheckoutHandler) FinalizeOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req FinalizeOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.checkout.FinalizeOrder(ctx, getUserIDFromContext(r.Context()), readCartToken(r), service.FinalizeRequest{
		AddressID:     req.AddressID,
		PaymentMethod: req.PaymentMethod,
		CardID:        req.CardID,
		RawAddress:    req.Address,
	})
	if err != nil {
		handleServiceError(w, r, h.log, err, NextCart)
		return
	}
	writeCartToken(w, result.CartToken)

	respondJSON(w, http.StatusCreated, FinalizeOrderResponseDTO{
		OrderID:       result.Order.ID,
		PaymentMethod: result.Order.PaymentMethod,
		Total:         result.Order.TotalValue,
		Next:          result.Next,
	})
}
