package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func(ctx context.Context) error

type RouterConfig struct {
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrdersHandler
	Products *ProductHandler
	Admin    *AdminHandler
	Sessions *SessionManager
	Limiter  *RateLimiter
	Health   map[string]HealthChecker
	Timeout  time.Duration
	Logger   *zap.Logger

	// AdminToken guards /api/v1/admin. Empty disables those routes.
	AdminToken string
}

func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDHeaderMiddleware)
	r.Use(AccessLogMiddleware(cfg.Logger))
	r.Use(middleware.Timeout(cfg.Timeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware(cfg.Sessions))

	r.Get("/health", healthHandler(cfg.Health))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", cfg.Products.GetProducts)
			r.Get("/filters", cfg.Products.GetFilters)
			r.Get("/{id}", cfg.Products.GetProduct)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Cart.GetCart)
			r.With(cfg.Limiter.Limit).Post("/items", cfg.Cart.AddItem)
			r.Put("/items/{product_id}", cfg.Cart.UpdateQuantity)
			r.Delete("/items/{product_id}", cfg.Cart.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/info", cfg.Checkout.GetInfo)
			r.Group(func(r chi.Router) {
				r.Use(cfg.Limiter.Limit)
				r.Post("/addresses", cfg.Checkout.SaveAddress)
				r.Post("/cards", cfg.Checkout.SaveCard)
				r.Post("/finalize", cfg.Checkout.FinalizeOrder)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", cfg.Orders.ListOrders)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/pix", cfg.Orders.GetPix)
				r.Get("/card", cfg.Orders.GetCard)
				r.With(cfg.Limiter.Limit).Post("/pix/confirm", cfg.Orders.ConfirmPix)
				r.With(cfg.Limiter.Limit).Post("/card/confirm", cfg.Orders.ConfirmCard)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminMiddleware(cfg.AdminToken))
			r.Put("/orders/{id}/status", cfg.Admin.UpdateOrderStatus)
		})
	})

	return r
}

func healthHandler(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		result := map[string]string{"status": "ok"}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				result[name] = "unavailable"
				result["status"] = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			result[name] = "ok"
		}
		respondJSON(w, status, result)
	}
}
