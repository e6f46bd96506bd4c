package domain

import "github.com/shopspring/decimal"

// CartLine is a cart entry expanded against the live catalog.
// UnitPrice always comes from the catalog, never from client storage.
type CartLine struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Product   Product         `json:"product"`
}

func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
