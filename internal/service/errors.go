package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fjod/storefront/internal/domain"
)

var (
	ErrNotAuthenticated        = errors.New("user is not authenticated")
	ErrPaymentMethodRequired   = errors.New("select a payment method before continuing")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrProductNotFound         = domain.ErrProductNotFound
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidOrderID          = errors.New("invalid order id")
	ErrPaymentStatusNotUpdated = errors.New("could not update payment status")
	ErrPersistence             = errors.New("storage operation failed")
	ErrAddressIDUnavailable    = errors.New("saved address id is not available")
)

// ValidationError lists rejected fields by their json name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// FormError returns a rejected form exactly as it was submitted, together with
// the reloaded checkout screen, so the client can show it again.
type FormError struct {
	Err  error
	Form any
	Info *CheckoutInfo
}

func (e *FormError) Error() string {
	return e.Err.Error()
}

func (e *FormError) Unwrap() error {
	return e.Err
}

func persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
