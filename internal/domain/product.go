package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceholderImageURL is shown for products without an image.
const PlaceholderImageURL = "/img/no-image.png"

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Condition   string          `json:"condition"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DisplayImage returns the product image, falling back to the placeholder.
func (p Product) DisplayImage() string {
	if p.ImageURL == "" {
		return PlaceholderImageURL
	}
	return p.ImageURL
}
