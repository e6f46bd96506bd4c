package domain

type CardBrand string

const (
	CardBrandVisa       CardBrand = "Visa"
	CardBrandMastercard CardBrand = "Mastercard"
	CardBrandAmex       CardBrand = "American Express"
	CardBrandElo        CardBrand = "Elo"
	CardBrandHipercard  CardBrand = "Hipercard"
	CardBrandDiners     CardBrand = "Diners Club"
	CardBrandDiscover   CardBrand = "Discover"
	CardBrandJCB        CardBrand = "JCB"
)

type CardType string

const (
	CardTypeCredit CardType = "credit"
	CardTypeDebit  CardType = "debit"
)

type Card struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	HolderName string    `json:"holder_name"`
	Number     string    `json:"-"`
	Brand      CardBrand `json:"brand,omitempty"`
	Expiry     string    `json:"expiry"`
	Type       CardType  `json:"card_type"`

	Masked string `json:"masked_number,omitempty"`
}

// MaskCardNumber hides everything but the last four digits.
func MaskCardNumber(last4 string) string {
	return "**** **** **** " + last4
}

// Last4 returns the last four digits of the card number for display.
func (c Card) Last4() string {
	if len(c.Number) <= 4 {
		return c.Number
	}
	return c.Number[len(c.Number)-4:]
}
