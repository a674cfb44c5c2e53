package dto

import (
	"github.com/shopspring/decimal"

	"pharmapos/internal/model"
)

// Dates cross the wire as calendar days, not timestamps.
const DateLayout = "2006-01-02"

type CreateMedicineRequest struct {
	Name       string          `json:"name"        validate:"required"`
	Category   string          `json:"category"    validate:"required"`
	Price      decimal.Decimal `json:"price"       validate:"min=0"`
	StockQty   int             `json:"stock_qty"   validate:"min=0"`
	ExpiryDate string          `json:"expiry_date" validate:"required,datetime=2006-01-02"`
}

// UpdateMedicineRequest: nil fields are left untouched.
type UpdateMedicineRequest struct {
	Name       *string          `json:"name"        validate:"omitempty,min=1"`
	Category   *string          `json:"category"    validate:"omitempty,min=1"`
	Price      *decimal.Decimal `json:"price"`
	StockQty   *int             `json:"stock_qty"   validate:"omitempty,min=0"`
	ExpiryDate *string          `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateStockRequest struct {
	// Negative values are clamped to zero by the store.
	StockQty int `json:"stock_qty"`
}

type BulkStockRequest struct {
	IDs      []string `json:"ids" validate:"required,min=1"`
	StockQty int      `json:"stock_qty"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// AlertsResponse bundles the derived alert sets with the acknowledged IDs.
type AlertsResponse struct {
	LowStock []model.Medicine `json:"low_stock"`
	Expired  []model.Medicine `json:"expired"`
	ReadIDs  []string         `json:"read_ids"`
}
