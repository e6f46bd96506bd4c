package domain

import "strings"

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "Card"
	PaymentMethodPix  PaymentMethod = "Pix"
)

// ParsePaymentMethod maps a submitted value to a method. Anything that is not
// Pix is charged as a card, matching the checkout form.
func ParsePaymentMethod(s string) PaymentMethod {
	if strings.EqualFold(strings.TrimSpace(s), string(PaymentMethodPix)) {
		return PaymentMethodPix
	}
	return PaymentMethodCard
}

func (m PaymentMethod) String() string {
	return string(m)
}

type PaymentStatus string

const (
	PaymentStatusAwaitingPayment PaymentStatus = "AWAITING_PAYMENT"
	PaymentStatusPaid            PaymentStatus = "PAID"
)

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusPaid
}

// String representation (for logging)
func (s PaymentStatus) String() string {
	return string(s)
}
