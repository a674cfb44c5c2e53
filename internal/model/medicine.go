package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine is a catalog entry. IDs are opaque strings: seed entries carry
// fixed short IDs so defaults stay stable across restarts, new entries get
// a UUID from the store.
type Medicine struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	StockQty   int             `json:"stock_qty"`
	ExpiryDate time.Time       `json:"expiry_date"`
}

// MedicineUpdate is a partial update: nil fields are left untouched.
type MedicineUpdate struct {
	Name       *string
	Category   *string
	Price      *decimal.Decimal
	StockQty   *int
	ExpiryDate *time.Time
}

// CartItem is one line of a checkout request. Name and Price are snapshots
// taken by the point of sale, not live catalog references.
type CartItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}
