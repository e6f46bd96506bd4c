package cardbrand

import (
	"testing"

	"github.com/fjod/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		number string
		brand  domain.CardBrand
		ok     bool
	}{
		{"elo wins over visa", "4011123456789012", domain.CardBrandElo, true},
		{"amex", "341234567890123", domain.CardBrandAmex, true},
		{"mastercard", "5112345678901234", domain.CardBrandMastercard, true},
		{"mastercard 2-series", "2221004567890123", domain.CardBrandMastercard, true},
		{"visa", "4111111111111111", domain.CardBrandVisa, true},
		{"visa with separators", "4111 1111-1111 1111", domain.CardBrandVisa, true},
		{"hipercard", "6062821234567890", domain.CardBrandHipercard, true},
		{"too short", "4111", "", false},
		{"not digits", "4111abcd11111111", "", false},
		{"unknown prefix", "9999999999999999", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brand, ok := Detect(tt.number)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.brand, brand)
		})
	}
}
