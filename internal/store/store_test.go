package store

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmapos/internal/model"
	"pharmapos/internal/storage"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// memAdapter is an in-memory storage.Adapter recording every save.
type memAdapter struct {
	data     map[string]any
	saves    map[string]int
	failSave bool
}

func newMemAdapter() *memAdapter {
	return &memAdapter{data: make(map[string]any), saves: make(map[string]int)}
}

// Load always misses: every test starts from the seed defaults. Saved
// values are retained only so tests can assert what was written.
func (a *memAdapter) Load(string, any) error { return storage.ErrNotFound }

func (a *memAdapter) Save(key string, v any) error {
	a.saves[key]++
	if a.failSave {
		return errors.New("disk full")
	}
	a.data[key] = v
	return nil
}

var _ storage.Adapter = (*memAdapter)(nil)

// corruptAdapter fails every load with a decode error.
type corruptAdapter struct{ memAdapter }

func (a *corruptAdapter) Load(string, any) error { return errors.New("decode: unexpected token") }

// ── Fixtures ─────────────────────────────────────────────────────────────────

var testDay = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

// newTestStore builds a store on the seed defaults with a pinned clock.
func newTestStore(t *testing.T) (*Store, *memAdapter, *time.Time) {
	t.Helper()
	now := testDay
	adapter := newMemAdapter()
	s := New(adapter, zerolog.Nop(), WithClock(func() time.Time { return now }))
	return s, adapter, &now
}

func findMedicine(t *testing.T, s *Store, name string) model.Medicine {
	t.Helper()
	for _, m := range s.Medicines() {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("medicine %q not in catalog", name)
	return model.Medicine{}
}

func mustLogin(t *testing.T, s *Store) model.User {
	t.Helper()
	u, err := s.Login("admin", "admin123", model.RoleAdmin)
	require.NoError(t, err)
	return u
}

// ── Seed & defaults ──────────────────────────────────────────────────────────

func TestSeededDefaults(t *testing.T) {
	s, _, _ := newTestStore(t)

	assert.Len(t, s.Medicines(), 10)
	assert.Len(t, s.Users(), 2)
	assert.Empty(t, s.Sales())
	assert.Empty(t, s.ReadAlertIDs())

	logs := s.AuditLog()
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionSystemInit, logs[0].Action)

	cfg := s.Settings()
	assert.Equal(t, "₱", cfg.CurrencySymbol)
	assert.Equal(t, "St. Margareth Pharmacy", cfg.PharmacyName)

	_, ok := s.SessionUser()
	assert.False(t, ok)
}

func TestCorruptSnapshotsFallBackToDefaults(t *testing.T) {
	s := New(&corruptAdapter{}, zerolog.Nop(), WithClock(func() time.Time { return testDay }))

	assert.Len(t, s.Medicines(), 10)
	assert.Len(t, s.Users(), 2)
	require.Len(t, s.AuditLog(), 1)
	assert.Equal(t, model.ActionSystemInit, s.AuditLog()[0].Action)
}

// ── Authentication ───────────────────────────────────────────────────────────

func TestLoginSetsSessionAndAudits(t *testing.T) {
	s, _, _ := newTestStore(t)

	user := mustLogin(t, s)
	assert.Equal(t, "admin", user.Username)

	session, ok := s.SessionUser()
	require.True(t, ok)
	assert.Equal(t, user.ID, session.ID)

	logs := s.AuditLog()
	assert.Equal(t, model.ActionUserLogin, logs[0].Action)
	assert.Equal(t, "admin", logs[0].User)
	assert.Equal(t, model.RoleAdmin, logs[0].Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s, _, _ := newTestStore(t)
	before := len(s.AuditLog())

	_, err := s.Login("admin", "wrong", model.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Role must match too — right password, wrong role.
	_, err = s.Login("admin", "admin123", model.RoleStaff)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, ok := s.SessionUser()
	assert.False(t, ok)
	// Failed logins are not audited.
	assert.Len(t, s.AuditLog(), before)
}

func TestLogout(t *testing.T) {
	s, _, _ := newTestStore(t)
	mustLogin(t, s)

	s.Logout()
	_, ok := s.SessionUser()
	assert.False(t, ok)
	assert.Equal(t, model.ActionUserLogout, s.AuditLog()[0].Action)

	// Logout with no session is a silent no-op.
	before := len(s.AuditLog())
	s.Logout()
	assert.Len(t, s.AuditLog(), before)
}

// ── Catalog ──────────────────────────────────────────────────────────────────

func TestAddMedicine(t *testing.T) {
	s, _, _ := newTestStore(t)

	med := s.AddMedicine(model.Medicine{
		Name:       "Azithromycin 250mg",
		Category:   "Antibiotic",
		Price:      decimal.NewFromFloat(25.00),
		StockQty:   40,
		ExpiryDate: testDay.AddDate(1, 0, 0),
	})
	assert.NotEmpty(t, med.ID)
	assert.Len(t, s.Medicines(), 11)
	assert.Equal(t, model.ActionInventoryAdd, s.AuditLog()[0].Action)
	assert.Contains(t, s.AuditLog()[0].Details, "Azithromycin 250mg")
}

func TestUpdateMedicineAuditsNameBeforeUpdate(t *testing.T) {
	s, _, _ := newTestStore(t)
	med := findMedicine(t, s, "Aspirin 81mg")

	newName := "Aspirin 100mg"
	s.UpdateMedicine(med.ID, model.MedicineUpdate{Name: &newName})

	updated, ok := s.MedicineByID(med.ID)
	require.True(t, ok)
	assert.Equal(t, "Aspirin 100mg", updated.Name)
	// The entry references the name the medicine had before the update.
	assert.Contains(t, s.AuditLog()[0].Details, "Aspirin 81mg")
}

func TestUpdateMedicineUnknownIDIsNoOp(t *testing.T) {
	s, _, _ := newTestStore(t)
	before := len(s.AuditLog())

	name := "Ghost"
	s.UpdateMedicine("no-such-id", model.MedicineUpdate{Name: &name})

	assert.Len(t, s.Medicines(), 10)
	assert.Len(t, s.AuditLog(), before)
}

func TestUpdateStockClampsAtZero(t *testing.T) {
	s, _, _ := newTestStore(t)
	med := findMedicine(t, s, "Paracetamol 500mg")

	s.UpdateStock(med.ID, 42)
	got, _ := s.MedicineByID(med.ID)
	assert.Equal(t, 42, got.StockQty)

	s.UpdateStock(med.ID, -5)
	got, _ = s.MedicineByID(med.ID)
	assert.Equal(t, 0, got.StockQty)

	assert.Equal(t, model.ActionStockAdjust, s.AuditLog()[0].Action)
	assert.Contains(t, s.AuditLog()[0].Details, "42 -> 0")
}

func TestDeleteMedicine(t *testing.T) {
	s, _, _ := newTestStore(t)
	med := findMedicine(t, s, "Loratadine 10mg")

	s.DeleteMedicine(med.ID)
	_, ok := s.MedicineByID(med.ID)
	assert.False(t, ok)
	assert.Equal(t, model.ActionInventoryDelete, s.AuditLog()[0].Action)

	// Unknown id: silent no-op.
	before := len(s.AuditLog())
	s.DeleteMedicine("no-such-id")
	assert.Len(t, s.AuditLog(), before)
}

func TestBulkOperationsEmitOneAggregateEntry(t *testing.T) {
	s, _, _ := newTestStore(t)
	a := findMedicine(t, s, "Ibuprofen 400mg")
	b := findMedicine(t, s, "Omeprazole 20mg")
	before := len(s.AuditLog())

	s.BulkUpdateStock([]string{a.ID, b.ID, "no-such-id"}, 50)
	assert.Len(t, s.AuditLog(), before+1)
	assert.Equal(t, model.ActionBulkStockAdjust, s.AuditLog()[0].Action)
	gotA, _ := s.MedicineByID(a.ID)
	gotB, _ := s.MedicineByID(b.ID)
	assert.Equal(t, 50, gotA.StockQty)
	assert.Equal(t, 50, gotB.StockQty)

	s.BulkDeleteMedicines([]string{a.ID, b.ID})
	assert.Len(t, s.AuditLog(), before+2)
	assert.Equal(t, model.ActionBulkDelete, s.AuditLog()[0].Action)
	assert.Len(t, s.Medicines(), 8)

	// Bulk call matching nothing writes nothing.
	s.BulkDeleteMedicines([]string{"no-such-id"})
	assert.Len(t, s.AuditLog(), before+2)
}

// ── Sales ────────────────────────────────────────────────────────────────────

func TestProcessSaleRecordsLedgerStockAndAudit(t *testing.T) {
	s, _, _ := newTestStore(t)
	ibuprofen := findMedicine(t, s, "Ibuprofen 400mg")
	require.Equal(t, 8, ibuprofen.StockQty)

	sale, err := s.ProcessSale([]model.CartItem{
		{ID: ibuprofen.ID, Name: ibuprofen.Name, Price: decimal.NewFromFloat(8.75), Quantity: 2},
	})
	require.NoError(t, err)

	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromFloat(17.50)),
		"total = %s", sale.TotalAmount)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Ibuprofen 400mg", sale.Items[0].MedicineName)
	assert.True(t, sale.Items[0].Subtotal.Equal(decimal.NewFromFloat(17.50)))

	// Ledger is newest-first and holds exactly this sale.
	ledger := s.Sales()
	require.Len(t, ledger, 1)
	assert.Equal(t, sale.ID, ledger[0].ID)

	got, _ := s.MedicineByID(ibuprofen.ID)
	assert.Equal(t, 6, got.StockQty)

	logs := s.AuditLog()
	assert.Equal(t, model.ActionPOSSale, logs[0].Action)
	assert.Contains(t, logs[0].Details, "₱17.50")
	assert.Contains(t, logs[0].Details, "Ibuprofen 400mg (x2)")
}

func TestProcessSaleMultiLineTotals(t *testing.T) {
	s, _, _ := newTestStore(t)
	amox := findMedicine(t, s, "Amoxicillin 500mg")
	para := findMedicine(t, s, "Paracetamol 500mg")

	sale, err := s.ProcessSale([]model.CartItem{
		{ID: amox.ID, Name: amox.Name, Price: decimal.NewFromFloat(15.50), Quantity: 3},
		{ID: para.ID, Name: para.Name, Price: decimal.NewFromFloat(5.00), Quantity: 10},
	})
	require.NoError(t, err)

	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromFloat(96.50)))

	gotAmox, _ := s.MedicineByID(amox.ID)
	gotPara, _ := s.MedicineByID(para.ID)
	assert.Equal(t, 117, gotAmox.StockQty)
	assert.Equal(t, 490, gotPara.StockQty)
}

func TestProcessSaleEmptyCart(t *testing.T) {
	s, _, _ := newTestStore(t)
	auditBefore := len(s.AuditLog())

	sale, err := s.ProcessSale(nil)
	require.NoError(t, err)

	assert.True(t, sale.TotalAmount.IsZero())
	assert.Empty(t, sale.Items)
	assert.Len(t, s.Sales(), 1)
	assert.Len(t, s.AuditLog(), auditBefore+1)
}

func TestProcessSaleRejectsOversell(t *testing.T) {
	s, _, _ := newTestStore(t)
	ibuprofen := findMedicine(t, s, "Ibuprofen 400mg") // stock 8
	auditBefore := len(s.AuditLog())

	_, err := s.ProcessSale([]model.CartItem{
		{ID: ibuprofen.ID, Name: ibuprofen.Name, Price: decimal.NewFromFloat(8.75), Quantity: 9},
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing changed: no sale, no deduction, no audit entry.
	assert.Empty(t, s.Sales())
	got, _ := s.MedicineByID(ibuprofen.ID)
	assert.Equal(t, 8, got.StockQty)
	assert.Len(t, s.AuditLog(), auditBefore)
}

func TestProcessSaleRejectsOversellAcrossDuplicateLines(t *testing.T) {
	s, _, _ := newTestStore(t)
	ibuprofen := findMedicine(t, s, "Ibuprofen 400mg") // stock 8
	line := model.CartItem{ID: ibuprofen.ID, Name: ibuprofen.Name, Price: decimal.NewFromFloat(8.75), Quantity: 5}

	// Each line fits on its own; together they exceed stock.
	_, err := s.ProcessSale([]model.CartItem{line, line})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Empty(t, s.Sales())
	got, _ := s.MedicineByID(ibuprofen.ID)
	assert.Equal(t, 8, got.StockQty)
}

func TestProcessSaleDeductsSummedQuantityForDuplicateLines(t *testing.T) {
	s, _, _ := newTestStore(t)
	ibuprofen := findMedicine(t, s, "Ibuprofen 400mg") // stock 8
	line := model.CartItem{ID: ibuprofen.ID, Name: ibuprofen.Name, Price: decimal.NewFromFloat(8.75), Quantity: 3}

	sale, err := s.ProcessSale([]model.CartItem{line, line})
	require.NoError(t, err)
	require.Len(t, sale.Items, 2)

	got, _ := s.MedicineByID(ibuprofen.ID)
	assert.Equal(t, 2, got.StockQty)
}

func TestProcessSaleRejectsUnknownMedicine(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.ProcessSale([]model.CartItem{
		{ID: "no-such-id", Name: "Ghost", Price: decimal.NewFromFloat(1), Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrUnknownMedicine)
	assert.Empty(t, s.Sales())
}

func TestSaleHistorySurvivesCatalogDeletion(t *testing.T) {
	s, _, _ := newTestStore(t)
	aspirin := findMedicine(t, s, "Aspirin 81mg")

	sale, err := s.ProcessSale([]model.CartItem{
		{ID: aspirin.ID, Name: aspirin.Name, Price: decimal.NewFromFloat(6.50), Quantity: 4},
	})
	require.NoError(t, err)

	s.DeleteMedicine(aspirin.ID)
	newName := "Renamed"
	s.UpdateMedicine(aspirin.ID, model.MedicineUpdate{Name: &newName}) // no-op, already gone

	ledger := s.Sales()
	require.Len(t, ledger, 1)
	require.Equal(t, sale.ID, ledger[0].ID)
	assert.Equal(t, "Aspirin 81mg", ledger[0].Items[0].MedicineName)
	assert.True(t, ledger[0].Items[0].Subtotal.Equal(decimal.NewFromFloat(26.00)))
}

// ── Derived alert sets ───────────────────────────────────────────────────────

func TestLowStockMatchesThresholdExactly(t *testing.T) {
	s, _, _ := newTestStore(t)

	check := func() {
		expected := map[string]bool{}
		for _, m := range s.Medicines() {
			if m.StockQty < LowStockThreshold {
				expected[m.ID] = true
			}
		}
		got := s.LowStockItems()
		assert.Len(t, got, len(expected))
		for _, m := range got {
			assert.True(t, expected[m.ID], "%s should be low stock", m.Name)
		}
	}

	check() // seed: Ibuprofen (8) and Omeprazole (5)

	// Crossing the threshold flips membership both ways.
	ibuprofen := findMedicine(t, s, "Ibuprofen 400mg")
	s.UpdateStock(ibuprofen.ID, 10)
	check()
	s.UpdateStock(ibuprofen.ID, 9)
	check()
}

func TestExpiredComparesCalendarDaysOnly(t *testing.T) {
	now := testDay
	s := New(newMemAdapter(), zerolog.Nop(), WithClock(func() time.Time { return now }))

	med := s.AddMedicine(model.Medicine{
		Name:       "Sameday 1mg",
		Category:   "Other",
		Price:      decimal.NewFromFloat(1.00),
		StockQty:   20,
		ExpiryDate: time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), // expires "today"
	})

	contains := func(items []model.Medicine, id string) bool {
		for _, m := range items {
			if m.ID == id {
				return true
			}
		}
		return false
	}

	// Expiring today is not yet expired, regardless of time of day.
	assert.False(t, contains(s.ExpiredItems(), med.ID))

	// The set flips with the calendar even with no catalog mutation.
	now = now.AddDate(0, 0, 1)
	assert.True(t, contains(s.ExpiredItems(), med.ID))

	// Seed's Cetirizine (2024-02-10) is expired against any 2025 date.
	cetirizine := findMedicine(t, s, "Cetirizine 10mg")
	assert.True(t, contains(s.ExpiredItems(), cetirizine.ID))
}

// ── Notification read-state ──────────────────────────────────────────────────

func TestMarkAllReadThenUnreadRoundTrip(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.MarkAllAsRead()
	read := s.ReadAlertIDs()
	assert.NotEmpty(t, read)

	// Snapshot covers the union of low-stock and expired, deduplicated.
	alerting := map[string]bool{}
	for _, m := range append(s.LowStockItems(), s.ExpiredItems()...) {
		alerting[m.ID] = true
	}
	assert.Len(t, read, len(alerting))
	for _, id := range read {
		assert.True(t, alerting[id])
	}

	s.MarkAllAsUnread()
	assert.Empty(t, s.ReadAlertIDs())
}

func TestMarkAllAsReadIsPointInTimeSnapshot(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.MarkAllAsRead()
	readBefore := s.ReadAlertIDs()

	// A medicine that starts alerting afterward is unread.
	vitamin := findMedicine(t, s, "Vitamin C 500mg")
	s.UpdateStock(vitamin.ID, 3)

	assert.Len(t, s.ReadAlertIDs(), len(readBefore))
	assert.NotContains(t, s.ReadAlertIDs(), vitamin.ID)
}

// ── Users & settings ─────────────────────────────────────────────────────────

func TestAddAndRemoveUser(t *testing.T) {
	s, _, _ := newTestStore(t)

	user := s.AddUser(model.User{Username: "cashier", Password: "secret1", Role: model.RoleStaff})
	assert.NotEmpty(t, user.ID)
	assert.Len(t, s.Users(), 3)
	assert.Equal(t, model.ActionUserCreated, s.AuditLog()[0].Action)

	s.RemoveUser(user.ID)
	assert.Len(t, s.Users(), 2)
	assert.Equal(t, model.ActionUserDeleted, s.AuditLog()[0].Action)
	assert.Contains(t, s.AuditLog()[0].Details, "cashier")
}

func TestUpdateUserSyncsLiveSession(t *testing.T) {
	s, _, _ := newTestStore(t)
	user := mustLogin(t, s)

	email := "root@pharmacy.com"
	s.UpdateUser(user.ID, model.UserUpdate{Email: &email})

	session, ok := s.SessionUser()
	require.True(t, ok)
	assert.Equal(t, email, session.Email)

	// Editing a different account leaves the session alone.
	other := s.Users()[1]
	otherEmail := "other@pharmacy.com"
	s.UpdateUser(other.ID, model.UserUpdate{Email: &otherEmail})
	session, _ = s.SessionUser()
	assert.Equal(t, email, session.Email)
}

func TestUpdateSettingsMergesPartial(t *testing.T) {
	s, _, _ := newTestStore(t)
	before := len(s.AuditLog())

	symbol := "$"
	name := "Corner Drugstore"
	s.UpdateSettings(model.SettingsUpdate{CurrencySymbol: &symbol, PharmacyName: &name})

	cfg := s.Settings()
	assert.Equal(t, "$", cfg.CurrencySymbol)
	assert.Equal(t, "Corner Drugstore", cfg.PharmacyName)
	// Untouched keys keep their defaults.
	assert.Equal(t, "amber", cfg.ThemeColor)
	assert.Equal(t, "font-sans", cfg.FontFamily)

	// One entry per call, however many fields changed.
	assert.Len(t, s.AuditLog(), before+1)
	assert.Equal(t, model.ActionSettingsUpdate, s.AuditLog()[0].Action)
}

// ── Audit & persistence behavior ─────────────────────────────────────────────

func TestAuditTrailIsNewestFirstAndAttributed(t *testing.T) {
	s, _, now := newTestStore(t)
	mustLogin(t, s)

	*now = now.Add(time.Minute)
	s.AddAuditLog("Report Export", "Exported monthly sales report")

	logs := s.AuditLog()
	assert.Equal(t, "Report Export", logs[0].Action)
	assert.Equal(t, "admin", logs[0].User)
	assert.Equal(t, model.RoleAdmin, logs[0].Role)
	assert.True(t, logs[0].Timestamp.After(logs[1].Timestamp))
}

func TestMutationsAttributedToSystemWithoutSession(t *testing.T) {
	s, _, _ := newTestStore(t)

	med := findMedicine(t, s, "Metformin 500mg")
	s.UpdateStock(med.ID, 100)

	assert.Equal(t, "System", s.AuditLog()[0].User)
	assert.Equal(t, "system", s.AuditLog()[0].Role)
}

func TestPersistFailureDoesNotRollBackMutation(t *testing.T) {
	adapter := newMemAdapter()
	adapter.failSave = true
	s := New(adapter, zerolog.Nop(), WithClock(func() time.Time { return testDay }))

	med := findMedicine(t, s, "Paracetamol 500mg")
	s.UpdateStock(med.ID, 7)

	// The in-memory mutation sticks even though every save failed.
	got, _ := s.MedicineByID(med.ID)
	assert.Equal(t, 7, got.StockQty)
	assert.Greater(t, adapter.saves[storage.KeyMedicines], 0)
}

func TestMutationsPersistTouchedCollections(t *testing.T) {
	s, adapter, _ := newTestStore(t)
	ibuprofen := findMedicine(t, s, "Ibuprofen 400mg")

	salesBefore := adapter.saves[storage.KeySales]
	medsBefore := adapter.saves[storage.KeyMedicines]
	auditBefore := adapter.saves[storage.KeyAuditLog]

	_, err := s.ProcessSale([]model.CartItem{
		{ID: ibuprofen.ID, Name: ibuprofen.Name, Price: decimal.NewFromFloat(8.75), Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, salesBefore+1, adapter.saves[storage.KeySales])
	assert.Equal(t, medsBefore+1, adapter.saves[storage.KeyMedicines])
	assert.Equal(t, auditBefore+1, adapter.saves[storage.KeyAuditLog])
}
