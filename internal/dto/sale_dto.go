package dto

import "github.com/shopspring/decimal"

// CartLineRequest carries the point of sale's snapshot of the line: the
// recorded sale keeps this name and price even if the catalog changes later.
type CartLineRequest struct {
	ID       string          `json:"id"       validate:"required"`
	Name     string          `json:"name"     validate:"required"`
	Price    decimal.Decimal `json:"price"    validate:"min=0"`
	Quantity int             `json:"quantity" validate:"required,min=1"`
}

// ProcessSaleRequest is the checkout payload. An empty cart is accepted and
// records a zero-total sale.
type ProcessSaleRequest struct {
	Items []CartLineRequest `json:"items" validate:"dive"`
}
