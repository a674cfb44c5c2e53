// Package seed holds the fixed default data the store falls back to when a
// persisted snapshot is absent or unreadable.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"pharmapos/internal/model"
)

// Categories offered by the inventory forms.
var Categories = []string{
	"Antibiotic",
	"Analgesic",
	"Antihistamine",
	"Antidiabetic",
	"Antacid",
	"Supplement",
	"Syrup",
	"Blood Thinner",
	"Other",
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Medicines returns the seed catalog. It deliberately spans normal,
// low-stock, and expired entries so alert behavior is visible on first run.
func Medicines() []model.Medicine {
	return []model.Medicine{
		{ID: "1", Name: "Amoxicillin 500mg", Category: "Antibiotic", Price: decimal.NewFromFloat(15.50), StockQty: 120, ExpiryDate: date(2025, time.December, 1)},
		{ID: "2", Name: "Paracetamol 500mg", Category: "Analgesic", Price: decimal.NewFromFloat(5.00), StockQty: 500, ExpiryDate: date(2026, time.May, 15)},
		{ID: "3", Name: "Ibuprofen 400mg", Category: "Analgesic", Price: decimal.NewFromFloat(8.75), StockQty: 8, ExpiryDate: date(2025, time.August, 20)}, // low stock
		{ID: "4", Name: "Cetirizine 10mg", Category: "Antihistamine", Price: decimal.NewFromFloat(12.00), StockQty: 45, ExpiryDate: date(2024, time.February, 10)}, // expired
		{ID: "5", Name: "Metformin 500mg", Category: "Antidiabetic", Price: decimal.NewFromFloat(10.00), StockQty: 200, ExpiryDate: date(2025, time.November, 30)},
		{ID: "6", Name: "Omeprazole 20mg", Category: "Antacid", Price: decimal.NewFromFloat(22.50), StockQty: 5, ExpiryDate: date(2025, time.October, 10)}, // low stock
		{ID: "7", Name: "Vitamin C 500mg", Category: "Supplement", Price: decimal.NewFromFloat(7.00), StockQty: 150, ExpiryDate: date(2026, time.January, 1)},
		{ID: "8", Name: "Cough Syrup 100ml", Category: "Syrup", Price: decimal.NewFromFloat(18.00), StockQty: 30, ExpiryDate: date(2024, time.December, 25)},
		{ID: "9", Name: "Aspirin 81mg", Category: "Blood Thinner", Price: decimal.NewFromFloat(6.50), StockQty: 90, ExpiryDate: date(2025, time.September, 15)},
		{ID: "10", Name: "Loratadine 10mg", Category: "Antihistamine", Price: decimal.NewFromFloat(11.00), StockQty: 60, ExpiryDate: date(2025, time.July, 20)},
	}
}

// Users returns the two fixed default accounts.
func Users() []model.User {
	return []model.User{
		{ID: "1", Username: "admin", Password: "admin123", Role: model.RoleAdmin, Email: "admin@pharmacy.com"},
		{ID: "2", Username: "staff", Password: "staff123", Role: model.RoleStaff, Email: "staff@pharmacy.com"},
	}
}

// Settings returns the default display configuration.
func Settings() model.Settings {
	return model.Settings{
		CurrencySymbol: "₱",
		ThemeColor:     "amber",
		FontFamily:     "font-sans",
		PharmacyName:   "St. Margareth Pharmacy",
	}
}

// AuditLog returns the single bootstrap audit entry.
func AuditLog(now time.Time) []model.AuditEntry {
	return []model.AuditEntry{
		{ID: "1", Action: model.ActionSystemInit, Details: "System initialized", User: "System", Role: model.RoleAdmin, Timestamp: now},
	}
}
