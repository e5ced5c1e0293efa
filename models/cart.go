package models

import "github.com/shopspring/decimal"

// CartItem is a product snapshot plus a quantity of at least 1.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is price × quantity; display-priced products count as 0.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Numeric().Mul(decimal.NewFromInt(int64(c.Quantity)))
}
