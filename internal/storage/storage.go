// Package storage provides the persistence adapters behind the store: each
// collection is saved as a whole JSON snapshot under a fixed key, and loaded
// once at startup. In-memory state is the authority for a running session;
// adapters only replay it across restarts.
package storage

import "errors"

// Snapshot keys, one per persisted collection.
const (
	KeySessionUser  = "pharmacy_user"
	KeyUsers        = "pharmacy_users"
	KeyMedicines    = "pharmacy_medicines"
	KeySales        = "pharmacy_sales"
	KeyAuditLog     = "pharmacy_audit_logs"
	KeySettings     = "pharmacy_settings"
	KeyReadAlertIDs = "pharmacy_read_notifications"
)

// ErrNotFound is returned by Load when no snapshot exists for the key.
// Callers fall back to their documented default.
var ErrNotFound = errors.New("storage: key not found")

// Adapter is the contract the store consumes. Save is fire-and-forget from
// the caller's perspective: a failed write must never roll back the
// in-memory mutation that triggered it.
type Adapter interface {
	// Load decodes the snapshot stored under key into out.
	Load(key string, out any) error
	// Save encodes v and stores it under key, replacing any prior snapshot.
	Save(key string, v any) error
}
