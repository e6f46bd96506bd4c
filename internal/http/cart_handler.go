package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fjod/storefront/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CartService interface {
	View(ctx context.Context, token string) (*service.CartView, error)
	AddItem(ctx context.Context, token string, productID int64, quantity int) (string, error)
	SetQuantity(token string, productID int64, quantity int) (string, error)
	RemoveItem(token string, productID int64) (string, error)
}

type CartHandler struct {
	cart    CartService
	timeout time.Duration
	log     *zap.Logger
}

func NewCartHandler(cart CartService, timeout time.Duration, log *zap.Logger) *CartHandler {
	return &CartHandler{
		cart:    cart,
		timeout: timeout,
		log:     log,
	}
}

type AddItemRequestDTO struct {
	ProductID int64  `json:"product_id"`
	Quantity  *int   `json:"quantity,omitempty"`
	Next      string `json:"next,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Cart    *service.CartView `json:"cart"`
	Next    string            `json:"next,omitempty"`
	Message string            `json:"message,omitempty"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	view, err := h.cart.View(ctx, readCartToken(r))
	if err != nil {
		handleServiceError(w, r, h.log, err, NextCatalog)
		return
	}

	respondJSON(w, http.StatusOK, CartResponseDTO{Cart: view})
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if req.Next == "" {
		req.Next = r.URL.Query().Get("next")
	}

	token, err := h.cart.AddItem(ctx, readCartToken(r), req.ProductID, quantity)
	if err != nil {
		handleServiceError(w, r, h.log, err, NextCatalog)
		return
	}
	writeCartToken(w, token)

	h.respondCart(ctx, w, r, http.StatusCreated, token, addItemNext(req.Next), "item added to cart")
}

func addItemNext(next string) string {
	if strings.EqualFold(strings.TrimSpace(next), "infos") {
		return NextCheckoutInfo
	}
	return NextCart
}

// PUT /api/v1/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, err := h.cart.SetQuantity(readCartToken(r), productID, req.Quantity)
	if err != nil {
		handleServiceError(w, r, h.log, err, NextCart)
		return
	}
	writeCartToken(w, token)

	h.respondCart(ctx, w, r, http.StatusOK, token, NextCart, "")
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	token, err := h.cart.RemoveItem(readCartToken(r), productID)
	if err != nil {
		handleServiceError(w, r, h.log, err, NextCart)
		return
	}
	writeCartToken(w, token)

	h.respondCart(ctx, w, r, http.StatusOK, token, NextCart, "")
}

func (h *CartHandler) respondCart(ctx context.Context, w http.ResponseWriter, r *http.Request, status int, token, next, message string) {
	view, err := h.cart.View(ctx, token)
	if err != nil {
		handleServiceError(w, r, h.log, err, NextCart)
		return
	}
	respondJSON(w, status, CartResponseDTO{Cart: view, Next: next, Message: message})
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}
