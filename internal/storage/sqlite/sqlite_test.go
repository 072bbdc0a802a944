package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rajkumarptv/ChitLedger/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "chitledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestConfigRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.GetConfig(ctx)
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil config before first setup")
	}

	cfg := &models.ChitConfig{
		Name:                   "Street Fund",
		TotalChitValue:         100000,
		FixedMonthlyCollection: 600,
		MonthlyPayoutBase:      5000,
		DurationMonths:         20,
		StartDate:              "2024-01-01",
		AdminPhone:             "9876543210",
		UPIID:                  "fund@upi",
		UPIName:                "Street Fund",
	}
	if err := store.SaveConfig(ctx, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if cfg.ID == "" {
		t.Error("expected config ID to be generated")
	}

	got, err = store.GetConfig(ctx)
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if got.Name != "Street Fund" || got.FixedMonthlyCollection != 600 {
		t.Errorf("config mismatch: %+v", got)
	}

	// Saving again updates the singleton, not a second row.
	cfg.MonthlyPayoutBase = 5500
	if err := store.SaveConfig(ctx, cfg); err != nil {
		t.Fatalf("SaveConfig update failed: %v", err)
	}
	got, _ = store.GetConfig(ctx)
	if got.MonthlyPayoutBase != 5500 {
		t.Errorf("payout base = %d, want 5500", got.MonthlyPayoutBase)
	}
}

func TestMembers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	m := &models.Member{Name: "Ravi", Phone: "9000011111", JoinDate: "2024-01-05"}
	if err := store.CreateMember(ctx, m); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}
	if m.ID == "" {
		t.Error("expected member ID to be generated")
	}

	got, err := store.GetMember(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMember failed: %v", err)
	}
	if got.Name != "Ravi" {
		t.Errorf("name = %s, want Ravi", got.Name)
	}

	m.Name = "Ravi K"
	m.SideFund = true
	if err := store.UpdateMember(ctx, m); err != nil {
		t.Fatalf("UpdateMember failed: %v", err)
	}
	got, _ = store.GetMember(ctx, m.ID)
	if got.Name != "Ravi K" || !got.SideFund {
		t.Errorf("update not persisted: %+v", got)
	}

	if err := store.UpdateMember(ctx, &models.Member{ID: "nope", Name: "X"}); err == nil {
		t.Error("expected error updating unknown member")
	}

	unknown, err := store.GetMember(ctx, "nope")
	if err != nil {
		t.Fatalf("GetMember failed: %v", err)
	}
	if unknown != nil {
		t.Error("expected nil for unknown member")
	}
}

func TestPaymentUpsertKeepsOneRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	m := &models.Member{Name: "Ravi", Phone: "9000011111"}
	if err := store.CreateMember(ctx, m); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}

	rec := &models.PaymentRecord{
		MemberID:    m.ID,
		PeriodIndex: 3,
		Amount:      600,
		Status:      models.StatusMemberClaimed,
		Method:      models.MethodGPay,
		PaymentDate: "2024-03-01",
		Note:        "first write",
		UpdatedAt:   1,
	}
	if err := store.UpsertPayment(ctx, rec); err != nil {
		t.Fatalf("UpsertPayment failed: %v", err)
	}

	rec.Status = models.StatusPaid
	rec.Note = "second write"
	rec.Receipt = &models.Receipt{URL: "/receipts/abc.png", Name: "proof.png"}
	rec.UpdatedAt = 2
	if err := store.UpsertPayment(ctx, rec); err != nil {
		t.Fatalf("second UpsertPayment failed: %v", err)
	}

	records, err := store.ListPaymentsForPeriod(ctx, 3)
	if err != nil {
		t.Fatalf("ListPaymentsForPeriod failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records for (member, period), want exactly 1", len(records))
	}
	got := records[0]
	if got.Status != models.StatusPaid || got.Note != "second write" {
		t.Errorf("latest write lost: %+v", got)
	}
	if got.Receipt == nil || got.Receipt.Name != "proof.png" {
		t.Errorf("receipt mismatch: %+v", got.Receipt)
	}
}

func TestPaymentCustomAmountRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	m := &models.Member{Name: "Lakshmi", Phone: "9000022222"}
	if err := store.CreateMember(ctx, m); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}

	custom := int64(750)
	rec := &models.PaymentRecord{
		MemberID:     m.ID,
		PeriodIndex:  0,
		Amount:       600,
		CustomAmount: &custom,
		ExtraAmount:  50,
		Status:       models.StatusPaid,
		Method:       models.MethodCash,
		PaymentDate:  "2024-01-10",
	}
	if err := store.UpsertPayment(ctx, rec); err != nil {
		t.Fatalf("UpsertPayment failed: %v", err)
	}

	got, err := store.GetPayment(ctx, m.ID, 0)
	if err != nil {
		t.Fatalf("GetPayment failed: %v", err)
	}
	if got.CustomAmount == nil || *got.CustomAmount != 750 {
		t.Errorf("custom amount = %v, want 750", got.CustomAmount)
	}
	if got.EffectiveAmount() != 750 {
		t.Errorf("effective amount = %d, want 750", got.EffectiveAmount())
	}

	missing, err := store.GetPayment(ctx, m.ID, 7)
	if err != nil {
		t.Fatalf("GetPayment failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for period with no record")
	}
}

func TestCountByStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	m1 := &models.Member{Name: "A", Phone: "9000000001"}
	m2 := &models.Member{Name: "B", Phone: "9000000002"}
	store.CreateMember(ctx, m1)
	store.CreateMember(ctx, m2)

	store.UpsertPayment(ctx, &models.PaymentRecord{
		MemberID: m1.ID, PeriodIndex: 0, Amount: 600,
		Status: models.StatusMemberClaimed, Method: models.MethodGPay, PaymentDate: "2024-01-01",
	})
	store.UpsertPayment(ctx, &models.PaymentRecord{
		MemberID: m2.ID, PeriodIndex: 1, Amount: 600,
		Status: models.StatusMemberClaimed, Method: models.MethodPaytm, PaymentDate: "2024-02-01",
	})
	store.UpsertPayment(ctx, &models.PaymentRecord{
		MemberID: m1.ID, PeriodIndex: 1, Amount: 600,
		Status: models.StatusPaid, Method: models.MethodCash, PaymentDate: "2024-02-01",
	})

	n, err := store.CountByStatus(ctx, models.StatusMemberClaimed)
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if n != 2 {
		t.Errorf("claimed count = %d, want 2", n)
	}
}

func TestAuctions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	missing, err := store.GetAuction(ctx, 3)
	if err != nil {
		t.Fatalf("GetAuction failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unset auction")
	}

	if err := store.UpsertAuction(ctx, &models.MonthlyAuction{PeriodIndex: 3, Amount: 500}); err != nil {
		t.Fatalf("UpsertAuction failed: %v", err)
	}
	if err := store.UpsertAuction(ctx, &models.MonthlyAuction{PeriodIndex: 3, Amount: 800}); err != nil {
		t.Fatalf("UpsertAuction update failed: %v", err)
	}

	got, err := store.GetAuction(ctx, 3)
	if err != nil {
		t.Fatalf("GetAuction failed: %v", err)
	}
	if got.Amount != 800 {
		t.Errorf("amount = %d, want latest write 800", got.Amount)
	}
}
