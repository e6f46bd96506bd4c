package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/storefront/internal/catalog"
	"github.com/fjod/storefront/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogService interface {
	Page(ctx context.Context, pageIndex int) (*catalog.Page, error)
	Product(ctx context.Context, id int64) (*domain.Product, error)
	Filters(ctx context.Context) (map[string][]string, error)
}

type FiltersResponseDTO struct {
	Categories map[string][]string `json:"categories"`
}

type ProductHandler struct {
	catalog CatalogService
	timeout time.Duration
	log     *zap.Logger
}

func NewProductHandler(catalog CatalogService, timeout time.Duration, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		timeout: timeout,
		log:     log,
	}
}

// GET /api/v1/products?page=N
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	// out of range and malformed pages are clamped by the catalog
	pageIndex, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		pageIndex = 1
	}

	page, err := h.catalog.Page(ctx, pageIndex)
	if err != nil {
		handleServiceError(w, r, h.log, err, NextHome)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	product, err := h.catalog.Product(ctx, id)
	if err != nil {
		handleServiceError(w, r, h.log, err, NextCatalog)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// GET /api/v1/products/filters
func (h *ProductHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	filters, err := h.catalog.Filters(ctx)
	if err != nil {
		handleServiceError(w, r, h.log, err, NextCatalog)
		return
	}
	respondJSON(w, http.StatusOK, FiltersResponseDTO{Categories: filters})
}
