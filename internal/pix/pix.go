// Package pix builds the display data for a pending Pix payment. The code is
// cosmetic: no payment provider is involved.
package pix

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// ExpiryWindow is how long a Pix charge is shown as payable after the order is created.
const ExpiryWindow = 30 * time.Minute

const qrSize = 256

// Charge is what the payment-pending view shows.
type Charge struct {
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	QRCodePNG string    `json:"qr_code_png,omitempty"`
}

// NewCode returns PIX-{orderId}-{8 random uppercase hex chars}.
func NewCode(orderID int64) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("PIX-%d-%s", orderID, suffix)
}

// ExpiresAt computes the expiry from the order creation time.
func ExpiresAt(createdAt time.Time) time.Time {
	return createdAt.Add(ExpiryWindow)
}

// NewCharge generates a fresh code and its QR image for the order.
func NewCharge(orderID int64, createdAt time.Time) (*Charge, error) {
	code := NewCode(orderID)
	png, err := qrcode.Encode(code, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode pix qr code: %w", err)
	}
	return &Charge{
		Code:      code,
		CreatedAt: createdAt,
		ExpiresAt: ExpiresAt(createdAt),
		QRCodePNG: base64.StdEncoding.EncodeToString(png),
	}, nil
}
