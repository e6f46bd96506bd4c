package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fjod/storefront/internal/service"
	"github.com/fjod/storefront/pkg/logger"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Next    string `json:"next,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Next steps a client should navigate to after a response.
const (
	NextCart         = "cart"
	NextCheckoutInfo = "checkout_info"
	NextCatalog      = "catalog"
	NextLogin        = "login"
	NextHome         = "home"
	NextPix          = "pix"
	NextCard         = "card"
)

const genericErrorMessage = "something went wrong, please try again"

// FormErrorDetails is returned with a rejected address or card form.
type FormErrorDetails struct {
	Fields map[string]string     `json:"fields,omitempty"`
	Form   any                   `json:"form"`
	Info   *service.CheckoutInfo `json:"checkout_info,omitempty"`
}

// respondJSON writes data as JSON. Encode failures go to the global zap logger
// since the status line is already sent.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps service errors to a response. Internal error text is
// never written to the client; fallbackNext is used for unexpected failures.
func handleServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error, fallbackNext string) {
	resp := ErrorResponse{Error: genericErrorMessage, Code: "internal_error", Next: fallbackNext}
	status := http.StatusInternalServerError

	var ve *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		status, resp.Code, resp.Error, resp.Next = http.StatusUnauthorized, "unauthorized", "please sign in to continue", NextLogin
	case errors.Is(err, service.ErrPaymentMethodRequired):
		status, resp.Code, resp.Error, resp.Next = http.StatusBadRequest, "payment_method_required", err.Error(), NextCheckoutInfo
	case errors.Is(err, service.ErrEmptyCart):
		status, resp.Code, resp.Error, resp.Next = http.StatusUnprocessableEntity, "empty_cart", "your cart is empty", NextCart
	case errors.Is(err, service.ErrProductNotFound):
		status, resp.Code, resp.Error, resp.Next = http.StatusNotFound, "product_not_found", "product not found", NextCatalog
	case errors.Is(err, service.ErrOrderNotFound):
		status, resp.Code, resp.Error, resp.Next = http.StatusNotFound, "order_not_found", "order not found", NextCatalog
	case errors.Is(err, service.ErrInvalidOrderID):
		status, resp.Code, resp.Error, resp.Next = http.StatusBadRequest, "invalid_order_id", "invalid order", NextCatalog
	case errors.Is(err, service.ErrPaymentStatusNotUpdated):
		status, resp.Code, resp.Error = http.StatusConflict, "payment_not_updated", err.Error()
	case errors.As(err, &ve):
		status, resp.Code, resp.Error, resp.Next = http.StatusUnprocessableEntity, "validation_failed", "some fields are invalid", ""
	}

	var fe *service.FormError
	if errors.As(err, &fe) {
		details := FormErrorDetails{Form: fe.Form, Info: fe.Info}
		if ve != nil {
			details.Fields = ve.Fields
		}
		resp.Details = details
		resp.Next = NextCheckoutInfo
	} else if ve != nil {
		resp.Details = ve.Fields
	}

	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context(), log).Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	respondJSON(w, status, resp)
}
