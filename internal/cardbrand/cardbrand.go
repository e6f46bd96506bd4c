// Package cardbrand derives a card brand from the leading digits of its number.
package cardbrand

import (
	"strings"

	"github.com/fjod/storefront/internal/domain"
)

const (
	minDigits = 13
	maxDigits = 19
)

type prefixRule struct {
	prefix string
	brand  domain.CardBrand
}

// Order matters: narrower prefixes are listed before the broader ones they overlap
// (Elo before Visa/Discover, Hipercard before Diners).
var rules = []prefixRule{
	{"401178", domain.CardBrandElo},
	{"401179", domain.CardBrandElo},
	{"4011", domain.CardBrandElo},
	{"4312", domain.CardBrandElo},
	{"4389", domain.CardBrandElo},
	{"4514", domain.CardBrandElo},
	{"4573", domain.CardBrandElo},
	{"4576", domain.CardBrandElo},
	{"5041", domain.CardBrandElo},
	{"5066", domain.CardBrandElo},
	{"5067", domain.CardBrandElo},
	{"509", domain.CardBrandElo},
	{"6277", domain.CardBrandElo},
	{"6362", domain.CardBrandElo},
	{"6363", domain.CardBrandElo},
	{"650", domain.CardBrandElo},
	{"6516", domain.CardBrandElo},
	{"6550", domain.CardBrandElo},
	{"606282", domain.CardBrandHipercard},
	{"3841", domain.CardBrandHipercard},
	{"34", domain.CardBrandAmex},
	{"37", domain.CardBrandAmex},
	{"300", domain.CardBrandDiners},
	{"301", domain.CardBrandDiners},
	{"302", domain.CardBrandDiners},
	{"303", domain.CardBrandDiners},
	{"304", domain.CardBrandDiners},
	{"305", domain.CardBrandDiners},
	{"36", domain.CardBrandDiners},
	{"38", domain.CardBrandDiners},
	{"35", domain.CardBrandJCB},
	{"6011", domain.CardBrandDiscover},
	{"65", domain.CardBrandDiscover},
	{"51", domain.CardBrandMastercard},
	{"52", domain.CardBrandMastercard},
	{"53", domain.CardBrandMastercard},
	{"54", domain.CardBrandMastercard},
	{"55", domain.CardBrandMastercard},
	{"4", domain.CardBrandVisa},
}

// Detect returns the brand for a card number. Spaces and dashes are ignored.
// It reports false for non-numeric, short, or unrecognized numbers.
func Detect(number string) (domain.CardBrand, bool) {
	digits := Normalize(number)
	if len(digits) < minDigits || len(digits) > maxDigits {
		return "", false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return "", false
		}
	}

	for _, r := range rules {
		if strings.HasPrefix(digits, r.prefix) {
			return r.brand, true
		}
	}

	// Mastercard 2-series: 2221..2720
	if p := digits[:4]; p >= "2221" && p <= "2720" {
		return domain.CardBrandMastercard, true
	}
	return "", false
}

// Normalize strips spaces and dashes from a card number.
func Normalize(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(number))
}
