package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem is one line of a recorded sale. Name and subtotal are denormalized
// at sale time so later catalog edits or deletions cannot rewrite history.
type SaleItem struct {
	ID           string          `json:"id"`
	MedicineID   string          `json:"medicine_id"`
	MedicineName string          `json:"medicine_name"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Sale is immutable once created. The ledger keeps sales newest-first.
type Sale struct {
	ID          string          `json:"id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	SaleDate    time.Time       `json:"sale_date"`
	Items       []SaleItem      `json:"items"`
}
