package model

import "time"

// AuditEntry records one state-changing action. The log is append-only and
// kept newest-first; User is the session username or "System".
type AuditEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	User      string    `json:"user"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// Audit action categories written by the store.
const (
	ActionSystemInit      = "System Init"
	ActionUserLogin       = "User Login"
	ActionUserLogout      = "User Logout"
	ActionUserCreated     = "User Created"
	ActionProfileUpdate   = "Profile Update"
	ActionUserDeleted     = "User Deleted"
	ActionInventoryAdd    = "Inventory Add"
	ActionInventoryUpdate = "Inventory Update"
	ActionInventoryDelete = "Inventory Delete"
	ActionStockAdjust     = "Stock Adjustment"
	ActionBulkStockAdjust = "Bulk Stock Adjustment"
	ActionBulkDelete      = "Bulk Inventory Delete"
	ActionPOSSale         = "POS Sale"
	ActionSettingsUpdate  = "Settings Update"
)
