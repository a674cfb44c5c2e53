// Package store implements the PharmacyStore: the single source of truth for
// the medicine catalog, sales ledger, registered users, audit log, settings,
// and notification read-state. Every mutation appends an audit entry and
// persists the touched collections; readers always observe whole mutations.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"pharmapos/internal/model"
	"pharmapos/internal/seed"
	"pharmapos/internal/storage"
)

// LowStockThreshold is the quantity below which a medicine raises a
// low-stock alert.
const LowStockThreshold = 10

var (
	// ErrInvalidCredentials is returned by Login when no registered user
	// matches the username/password/role triple. Failed logins are not
	// audited.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInsufficientStock is returned by ProcessSale when a cart line asks
	// for more units than the live stock holds. The whole sale is rejected
	// before any state changes.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrUnknownMedicine is returned by ProcessSale when a cart line
	// references a medicine that is not in the catalog.
	ErrUnknownMedicine = errors.New("unknown medicine")
)

// Store holds all collections behind one lock. Mutations run to completion
// under the write lock, so no reader can observe a sale without its stock
// deduction or audit entry.
type Store struct {
	mu      sync.RWMutex
	adapter storage.Adapter
	log     zerolog.Logger
	now     func() time.Time

	sessionUser  *model.User
	users        []model.User
	medicines    []model.Medicine
	sales        []model.Sale
	auditLog     []model.AuditEntry
	settings     model.Settings
	readAlertIDs []string
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithClock overrides the wall clock, used by tests to pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New loads every collection from the adapter, falling back to the seed
// defaults for any snapshot that is absent or unreadable.
func New(adapter storage.Adapter, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		adapter: adapter,
		log:     logger.With().Str("component", "store").Logger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.sessionUser = loadOr[*model.User](s, storage.KeySessionUser, nil)
	s.users = loadOr(s, storage.KeyUsers, seed.Users())
	s.medicines = loadOr(s, storage.KeyMedicines, seed.Medicines())
	s.sales = loadOr(s, storage.KeySales, []model.Sale{})
	s.auditLog = loadOr(s, storage.KeyAuditLog, seed.AuditLog(s.now()))
	s.settings = loadOr(s, storage.KeySettings, seed.Settings())
	s.readAlertIDs = loadOr(s, storage.KeyReadAlertIDs, []string{})
	return s
}

// loadOr reads one snapshot, returning def when it is missing or corrupt.
// Corrupt snapshots are logged and abandoned; the seed default wins.
func loadOr[T any](s *Store, key string, def T) T {
	var v T
	err := s.adapter.Load(key, &v)
	if err == nil {
		return v
	}
	if !errors.Is(err, storage.ErrNotFound) {
		s.log.Warn().Err(err).Str("key", key).Msg("snapshot unreadable, using defaults")
	}
	return def
}

// persist writes one collection snapshot. Failures are logged and swallowed:
// the in-memory state is the authority for the running session, so a dead
// disk must not fail the mutation that already happened.
func (s *Store) persist(key string, v any) {
	if err := s.adapter.Save(key, v); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("persist failed")
	}
}

// ── Session ──────────────────────────────────────────────────────────────────

// Login authenticates against the registered users. All three of username,
// password, and role must match one account.
func (s *Store) Login(username, password, role string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username && u.Password == password && u.Role == role {
			user := u
			s.sessionUser = &user
			s.appendAudit(model.ActionUserLogin, fmt.Sprintf("%s logged in successfully", u.Username))
			s.persist(storage.KeySessionUser, s.sessionUser)
			return user, nil
		}
	}
	return model.User{}, ErrInvalidCredentials
}

// Logout clears the session user. A no-op when nobody is logged in.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessionUser == nil {
		return
	}
	s.appendAudit(model.ActionUserLogout, fmt.Sprintf("%s logged out", s.sessionUser.Username))
	s.sessionUser = nil
	s.persist(storage.KeySessionUser, s.sessionUser)
}

// SessionUser returns the current session user, when one is set.
func (s *Store) SessionUser() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.sessionUser == nil {
		return model.User{}, false
	}
	return *s.sessionUser, true
}

// ── Catalog ──────────────────────────────────────────────────────────────────

// Medicines returns a snapshot copy of the catalog.
func (s *Store) Medicines() []model.Medicine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Medicine, len(s.medicines))
	copy(out, s.medicines)
	return out
}

// MedicineByID looks up one catalog entry.
func (s *Store) MedicineByID(id string) (model.Medicine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.medicines {
		if m.ID == id {
			return m, true
		}
	}
	return model.Medicine{}, false
}

// AddMedicine assigns a fresh ID and appends the medicine to the catalog.
func (s *Store) AddMedicine(data model.Medicine) model.Medicine {
	s.mu.Lock()
	defer s.mu.Unlock()

	data.ID = uuid.NewString()
	s.medicines = append(s.medicines, data)
	s.appendAudit(model.ActionInventoryAdd, fmt.Sprintf("Added new medicine: %s", data.Name))
	s.persist(storage.KeyMedicines, s.medicines)
	return data
}

// UpdateMedicine merges the non-nil fields of upd into the matching entry.
// Unknown IDs are a silent no-op. The audit entry references the medicine's
// name before the update.
func (s *Store) UpdateMedicine(id string, upd model.MedicineUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.medicineIndex(id)
	if i < 0 {
		return
	}
	oldName := s.medicines[i].Name
	m := &s.medicines[i]
	if upd.Name != nil {
		m.Name = *upd.Name
	}
	if upd.Category != nil {
		m.Category = *upd.Category
	}
	if upd.Price != nil {
		m.Price = *upd.Price
	}
	if upd.StockQty != nil {
		m.StockQty = *upd.StockQty
	}
	if upd.ExpiryDate != nil {
		m.ExpiryDate = *upd.ExpiryDate
	}
	s.appendAudit(model.ActionInventoryUpdate, fmt.Sprintf("Updated details for: %s", oldName))
	s.persist(storage.KeyMedicines, s.medicines)
}

// UpdateStock sets the stock quantity, clamping at zero. Unknown IDs are a
// silent no-op.
func (s *Store) UpdateStock(id string, newQty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.medicineIndex(id)
	if i < 0 {
		return
	}
	oldQty := s.medicines[i].StockQty
	s.medicines[i].StockQty = clampQty(newQty)
	s.appendAudit(model.ActionStockAdjust,
		fmt.Sprintf("Adjusted stock for %s: %d -> %d", s.medicines[i].Name, oldQty, s.medicines[i].StockQty))
	s.persist(storage.KeyMedicines, s.medicines)
}

func clampQty(q int) int {
	if q < 0 {
		return 0
	}
	return q
}

// DeleteMedicine removes the matching entry. Unknown IDs are a silent no-op.
// Past sales keep their denormalized snapshots and are unaffected.
func (s *Store) DeleteMedicine(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.medicineIndex(id)
	if i < 0 {
		return
	}
	name := s.medicines[i].Name
	s.medicines = append(s.medicines[:i], s.medicines[i+1:]...)
	s.appendAudit(model.ActionInventoryDelete, fmt.Sprintf("Deleted medicine: %s", name))
	s.persist(storage.KeyMedicines, s.medicines)
}

// BulkUpdateStock applies UpdateStock to every ID, then records one
// aggregate audit entry for the whole call.
func (s *Store) BulkUpdateStock(ids []string, newQty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qty := clampQty(newQty)
	var touched []string
	for _, id := range ids {
		if i := s.medicineIndex(id); i >= 0 {
			touched = append(touched, s.medicines[i].Name)
			s.medicines[i].StockQty = qty
		}
	}
	if len(touched) == 0 {
		return
	}
	s.appendAudit(model.ActionBulkStockAdjust,
		fmt.Sprintf("Set stock to %d for %d medicines: %s", qty, len(touched), strings.Join(touched, ", ")))
	s.persist(storage.KeyMedicines, s.medicines)
}

// BulkDeleteMedicines removes every matching ID and records one aggregate
// audit entry for the whole call.
func (s *Store) BulkDeleteMedicines(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for _, id := range ids {
		if i := s.medicineIndex(id); i >= 0 {
			removed = append(removed, s.medicines[i].Name)
			s.medicines = append(s.medicines[:i], s.medicines[i+1:]...)
		}
	}
	if len(removed) == 0 {
		return
	}
	s.appendAudit(model.ActionBulkDelete,
		fmt.Sprintf("Deleted %d medicines: %s", len(removed), strings.Join(removed, ", ")))
	s.persist(storage.KeyMedicines, s.medicines)
}

func (s *Store) medicineIndex(id string) int {
	for i, m := range s.medicines {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// ── Sales ────────────────────────────────────────────────────────────────────

// Sales returns a snapshot copy of the ledger, newest-first.
func (s *Store) Sales() []model.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

// ProcessSale records a checkout: it builds an immutable Sale from the cart,
// prepends it to the ledger, deducts stock for every line, and writes one
// summary audit entry — all under a single lock hold. Oversell is rejected:
// a cart line asking for more than the live stock fails the whole sale
// before anything changes. An empty cart still records a zero-total sale.
func (s *Store) ProcessSale(cart []model.CartItem) (model.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Pre-flight: every line must resolve, and the summed quantity per
	// medicine must fit within live stock — the same medicine may appear on
	// several cart lines.
	wanted := make(map[string]int, len(cart))
	for _, line := range cart {
		i := s.medicineIndex(line.ID)
		if i < 0 {
			return model.Sale{}, fmt.Errorf("%w: %s", ErrUnknownMedicine, line.ID)
		}
		wanted[line.ID] += line.Quantity
		if wanted[line.ID] > s.medicines[i].StockQty {
			return model.Sale{}, fmt.Errorf("%w: %s has %d in stock, cart wants %d",
				ErrInsufficientStock, s.medicines[i].Name, s.medicines[i].StockQty, wanted[line.ID])
		}
	}

	total := decimal.Zero
	items := make([]model.SaleItem, 0, len(cart))
	for _, line := range cart {
		subtotal := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)
		items = append(items, model.SaleItem{
			ID:           uuid.NewString(),
			MedicineID:   line.ID,
			MedicineName: line.Name,
			Quantity:     line.Quantity,
			Subtotal:     subtotal,
		})
	}

	sale := model.Sale{
		ID:          uuid.NewString(),
		TotalAmount: total,
		SaleDate:    s.now(),
		Items:       items,
	}
	s.sales = append([]model.Sale{sale}, s.sales...)

	for _, line := range cart {
		i := s.medicineIndex(line.ID)
		s.medicines[i].StockQty -= line.Quantity
	}

	summaries := make([]string, 0, len(cart))
	for _, line := range cart {
		summaries = append(summaries, fmt.Sprintf("%s (x%d)", line.Name, line.Quantity))
	}
	s.appendAudit(model.ActionPOSSale,
		fmt.Sprintf("Sold %d unique items. Total: %s%s. Items: %s",
			len(cart), s.settings.CurrencySymbol, total.StringFixed(2), strings.Join(summaries, ", ")))

	s.persist(storage.KeySales, s.sales)
	s.persist(storage.KeyMedicines, s.medicines)
	return sale, nil
}

// ── Users ────────────────────────────────────────────────────────────────────

// Users returns a snapshot copy of the registered accounts.
func (s *Store) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

// AddUser registers a new account with a fresh ID.
func (s *Store) AddUser(data model.User) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	data.ID = uuid.NewString()
	s.users = append(s.users, data)
	s.appendAudit(model.ActionUserCreated, fmt.Sprintf("Created new user: %s (%s)", data.Username, data.Role))
	s.persist(storage.KeyUsers, s.users)
	return data
}

// UpdateUser merges the non-nil fields of upd into the matching account.
// Editing the current session user's account also updates the live session.
// Unknown IDs are a silent no-op.
func (s *Store) UpdateUser(id string, upd model.UserUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, u := range s.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	u := &s.users[idx]
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Password != nil {
		u.Password = *upd.Password
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if s.sessionUser != nil && s.sessionUser.ID == id {
		updated := *u
		s.sessionUser = &updated
		s.persist(storage.KeySessionUser, s.sessionUser)
	}
	s.appendAudit(model.ActionProfileUpdate, "User updated profile details")
	s.persist(storage.KeyUsers, s.users)
}

// RemoveUser deletes the matching account. Unknown IDs are a silent no-op.
func (s *Store) RemoveUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			s.appendAudit(model.ActionUserDeleted, fmt.Sprintf("Deleted user: %s", u.Username))
			s.persist(storage.KeyUsers, s.users)
			return
		}
	}
}

// ── Settings ─────────────────────────────────────────────────────────────────

// Settings returns the current display configuration.
func (s *Store) Settings() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings merges the non-nil fields of upd. One audit entry is
// written per call regardless of how many fields changed.
func (s *Store) UpdateSettings(upd model.SettingsUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if upd.CurrencySymbol != nil {
		s.settings.CurrencySymbol = *upd.CurrencySymbol
	}
	if upd.ThemeColor != nil {
		s.settings.ThemeColor = *upd.ThemeColor
	}
	if upd.FontFamily != nil {
		s.settings.FontFamily = *upd.FontFamily
	}
	if upd.PharmacyName != nil {
		s.settings.PharmacyName = *upd.PharmacyName
	}
	s.appendAudit(model.ActionSettingsUpdate, "System settings modified")
	s.persist(storage.KeySettings, s.settings)
}

// ── Alerts & notification read-state ─────────────────────────────────────────

// LowStockItems returns the medicines below the low-stock threshold,
// recomputed from the live catalog on every call.
func (s *Store) LowStockItems() []model.Medicine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lowStockLocked()
}

func (s *Store) lowStockLocked() []model.Medicine {
	out := []model.Medicine{}
	for _, m := range s.medicines {
		if m.StockQty < LowStockThreshold {
			out = append(out, m)
		}
	}
	return out
}

// ExpiredItems returns the medicines whose expiry date is strictly before
// today. The comparison is calendar-day only; an item expiring today is not
// yet expired.
func (s *Store) ExpiredItems() []model.Medicine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiredLocked()
}

func (s *Store) expiredLocked() []model.Medicine {
	today := dayOf(s.now())
	out := []model.Medicine{}
	for _, m := range s.medicines {
		if dayOf(m.ExpiryDate).Before(today) {
			out = append(out, m)
		}
	}
	return out
}

// dayOf normalizes a timestamp to its calendar day, discarding time of day
// and zone so only the date components compare.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ReadAlertIDs returns the acknowledged alert IDs.
func (s *Store) ReadAlertIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.readAlertIDs))
	copy(out, s.readAlertIDs)
	return out
}

// MarkAllAsRead snapshots the IDs of everything currently alerting
// (low-stock plus expired) as acknowledged. Items that start alerting
// afterward are unread again — this is a point-in-time snapshot, not a
// live filter.
func (s *Store) MarkAllAsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	ids := []string{}
	for _, m := range append(s.lowStockLocked(), s.expiredLocked()...) {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		ids = append(ids, m.ID)
	}
	s.readAlertIDs = ids
	s.persist(storage.KeyReadAlertIDs, s.readAlertIDs)
}

// MarkAllAsUnread clears the acknowledged set entirely.
func (s *Store) MarkAllAsUnread() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.readAlertIDs = []string{}
	s.persist(storage.KeyReadAlertIDs, s.readAlertIDs)
}

// ── Audit log ────────────────────────────────────────────────────────────────

// AuditLog returns a snapshot copy of the audit trail, newest-first.
func (s *Store) AuditLog() []model.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AuditEntry, len(s.auditLog))
	copy(out, s.auditLog)
	return out
}

// AddAuditLog records an ad hoc entry attributed to the session user.
func (s *Store) AddAuditLog(action, details string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendAudit(action, details)
}

// appendAudit prepends one entry and persists the log. Callers hold the
// write lock.
func (s *Store) appendAudit(action, details string) {
	username, role := "System", "system"
	if s.sessionUser != nil {
		username, role = s.sessionUser.Username, s.sessionUser.Role
	}
	entry := model.AuditEntry{
		ID:        uuid.NewString(),
		Action:    action,
		Details:   details,
		User:      username,
		Role:      role,
		Timestamp: s.now(),
	}
	s.auditLog = append([]model.AuditEntry{entry}, s.auditLog...)
	s.persist(storage.KeyAuditLog, s.auditLog)
}
