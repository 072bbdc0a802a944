package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rajkumarptv/ChitLedger/internal/ledger"
	"github.com/rajkumarptv/ChitLedger/internal/models"
	"github.com/rajkumarptv/ChitLedger/internal/storage"
	"github.com/rajkumarptv/ChitLedger/internal/storage/sqlite"
	"github.com/rajkumarptv/ChitLedger/internal/upi"
)

// brokenPaymentReads wraps a store so payment reads fail, as a closed or
// corrupted database would.
type brokenPaymentReads struct {
	storage.Store
}

func (s *brokenPaymentReads) GetPayment(ctx context.Context, memberID string, period int) (*models.PaymentRecord, error) {
	return nil, errors.New("database is locked")
}

// setupGroup creates a store seeded with a config and two members.
func setupGroup(t *testing.T) (*sqlite.SQLiteStore, *models.Member, *models.Member) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "chitledger-svc-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
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
		t.Fatalf("failed to seed config: %v", err)
	}

	ravi := &models.Member{Name: "Ravi", Phone: "9000011111", JoinDate: "2024-01-01"}
	lakshmi := &models.Member{Name: "Lakshmi", Phone: "9000022222", JoinDate: "2024-01-01"}
	if err := store.CreateMember(ctx, ravi); err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}
	if err := store.CreateMember(ctx, lakshmi); err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}

	return store, ravi, lakshmi
}

func admin() Actor {
	return Actor{Role: models.RoleAdmin, Phone: "9876543210"}
}

func memberActor(m *models.Member) Actor {
	return Actor{Role: models.RoleMember, MemberID: m.ID, Phone: m.Phone}
}

func TestClaimThenConfirm(t *testing.T) {
	store, ravi, _ := setupGroup(t)
	svc := NewPaymentService(store)
	ctx := context.Background()

	rec, err := svc.Transition(ctx, memberActor(ravi), ledger.ActionClaim, ravi.ID, 2, ledger.Input{
		Method: models.MethodGPay,
	})
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if rec.Status != models.StatusMemberClaimed {
		t.Errorf("status = %s, want MEMBER_CLAIMED", rec.Status)
	}
	if rec.Method != models.MethodGPay || rec.PaymentDate == "" {
		t.Errorf("claim missing method/date: %+v", rec)
	}

	rec, err = svc.Transition(ctx, admin(), ledger.ActionConfirm, ravi.ID, 2, ledger.Input{})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if rec.Status != models.StatusPaid {
		t.Errorf("status = %s, want PAID", rec.Status)
	}
	if rec.Method != models.MethodGPay {
		t.Errorf("method = %s, want member's GPay retained", rec.Method)
	}

	// The committed record is what the store holds.
	stored, err := store.GetPayment(ctx, ravi.ID, 2)
	if err != nil {
		t.Fatalf("GetPayment failed: %v", err)
	}
	if stored.Status != models.StatusPaid {
		t.Errorf("stored status = %s, want PAID", stored.Status)
	}
}

func TestCollectSkipsClaim(t *testing.T) {
	store, ravi, _ := setupGroup(t)
	svc := NewPaymentService(store)
	ctx := context.Background()

	rec, err := svc.Transition(ctx, admin(), ledger.ActionCollect, ravi.ID, 0, ledger.Input{
		Method: models.MethodCash,
		Date:   "2024-01-10",
	})
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if rec.Status != models.StatusPaid {
		t.Errorf("status = %s, want PAID immediately", rec.Status)
	}

	// Collect on an already-paid record must go through Undo first.
	_, err = svc.Transition(ctx, admin(), ledger.ActionCollect, ravi.ID, 0, ledger.Input{
		Method: models.MethodCash,
	})
	if !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}

	if _, err := svc.Transition(ctx, admin(), ledger.ActionUndo, ravi.ID, 0, ledger.Input{}); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if _, err := svc.Transition(ctx, admin(), ledger.ActionCollect, ravi.ID, 0, ledger.Input{
		Method: models.MethodCash,
	}); err != nil {
		t.Errorf("collect after undo failed: %v", err)
	}
}

func TestMemberCannotTouchOthersRecord(t *testing.T) {
	store, ravi, lakshmi := setupGroup(t)
	svc := NewPaymentService(store)
	ctx := context.Background()

	_, err := svc.Transition(ctx, memberActor(ravi), ledger.ActionClaim, lakshmi.ID, 0, ledger.Input{
		Method: models.MethodGPay,
	})
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}

	// Nothing was written for Lakshmi.
	rec, err := store.GetPayment(ctx, lakshmi.ID, 0)
	if err != nil {
		t.Fatalf("GetPayment failed: %v", err)
	}
	if rec != nil {
		t.Error("rejected transition created a record")
	}
}

func TestTransitionValidation(t *testing.T) {
	store, ravi, _ := setupGroup(t)
	svc := NewPaymentService(store)
	ctx := context.Background()

	t.Run("unknown member", func(t *testing.T) {
		_, err := svc.Transition(ctx, admin(), ledger.ActionCollect, "ghost", 0, ledger.Input{
			Method: models.MethodCash,
		})
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("period outside duration", func(t *testing.T) {
		_, err := svc.Transition(ctx, admin(), ledger.ActionCollect, ravi.ID, 25, ledger.Input{
			Method: models.MethodCash,
		})
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("negative period", func(t *testing.T) {
		_, err := svc.Transition(ctx, admin(), ledger.ActionCollect, ravi.ID, -1, ledger.Input{
			Method: models.MethodCash,
		})
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestListPeriodSynthesizesPending(t *testing.T) {
	store, ravi, lakshmi := setupGroup(t)
	svc := NewPaymentService(store)
	ctx := context.Background()

	if _, err := svc.Transition(ctx, admin(), ledger.ActionCollect, ravi.ID, 1, ledger.Input{
		Method: models.MethodCash,
	}); err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	views, err := svc.ListPeriod(ctx, 1)
	if err != nil {
		t.Fatalf("ListPeriod failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d rows, want one per roster member", len(views))
	}

	byID := map[string]PeriodView{}
	for _, v := range views {
		byID[v.Member.ID] = v
	}
	if byID[ravi.ID].Status != models.StatusPaid {
		t.Errorf("ravi status = %s, want PAID", byID[ravi.ID].Status)
	}
	// Lakshmi has no stored record; the listing synthesizes one. Period 1
	// is in the past relative to the running clock, so it derives OVERDUE.
	lv := byID[lakshmi.ID]
	if lv.Record.Status != models.StatusPending {
		t.Errorf("synthesized record status = %s, want stored PENDING", lv.Record.Status)
	}
	if lv.Record.Amount != 600 {
		t.Errorf("synthesized amount = %d, want installment 600", lv.Record.Amount)
	}
	if lv.Status != models.StatusOverdue {
		t.Errorf("derived status = %s, want OVERDUE for past period", lv.Status)
	}
}

func TestAuctionFlow(t *testing.T) {
	store, ravi, lakshmi := setupGroup(t)
	svc := NewAuctionService(store)
	ctx := context.Background()

	t.Run("member cannot set auction", func(t *testing.T) {
		_, err := svc.SetAuction(ctx, Actor{Role: models.RoleMember, MemberID: "m"}, 3, "500")
		if !errors.Is(err, models.ErrUnauthorized) {
			t.Errorf("err = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("summary with bid", func(t *testing.T) {
		if _, err := svc.SetAuction(ctx, admin(), 3, "500"); err != nil {
			t.Fatalf("SetAuction failed: %v", err)
		}
		// Base 5000, 2 members at 600: payout 4500, expected 1200, surplus -3300.
		sum, err := svc.Summary(ctx, 3)
		if err != nil {
			t.Fatalf("Summary failed: %v", err)
		}
		if sum.Payout != 4500 {
			t.Errorf("payout = %d, want 4500", sum.Payout)
		}
		if sum.ExpectedCollection != 1200 {
			t.Errorf("expected = %d, want 1200", sum.ExpectedCollection)
		}
		if sum.Surplus != -3300 {
			t.Errorf("surplus = %d, want -3300", sum.Surplus)
		}
	})

	t.Run("no auction means zero bid", func(t *testing.T) {
		sum, err := svc.Summary(ctx, 7)
		if err != nil {
			t.Fatalf("Summary failed: %v", err)
		}
		if sum.AuctionAmount != 0 || sum.Payout != 5000 {
			t.Errorf("unset auction: amount=%d payout=%d, want 0/5000", sum.AuctionAmount, sum.Payout)
		}
	})

	t.Run("non-numeric amount normalizes to zero", func(t *testing.T) {
		a, err := svc.SetAuction(ctx, admin(), 4, "not-a-number")
		if err != nil {
			t.Fatalf("SetAuction failed: %v", err)
		}
		if a.Amount != 0 {
			t.Errorf("amount = %d, want 0", a.Amount)
		}
	})

	t.Run("pending verifications count every period", func(t *testing.T) {
		claims := []models.PaymentRecord{
			{MemberID: ravi.ID, PeriodIndex: 1, Amount: 600, Status: models.StatusMemberClaimed, Method: models.MethodGPay, PaymentDate: "2024-02-10"},
			{MemberID: lakshmi.ID, PeriodIndex: 5, Amount: 600, Status: models.StatusMemberClaimed, Method: models.MethodPhonePe, PaymentDate: "2024-06-10"},
		}
		for i := range claims {
			if err := store.UpsertPayment(ctx, &claims[i]); err != nil {
				t.Fatalf("UpsertPayment failed: %v", err)
			}
		}

		// Viewing period 3: neither claim belongs to it, but both still
		// await the admin's attention.
		sum, err := svc.Summary(ctx, 3)
		if err != nil {
			t.Fatalf("Summary failed: %v", err)
		}
		if sum.PendingVerifications != 2 {
			t.Errorf("pendingVerifications = %d, want 2", sum.PendingVerifications)
		}
	})
}

func TestPaymentLink(t *testing.T) {
	store, ravi, _ := setupGroup(t)
	svc := NewPaymentService(store)
	ctx := context.Background()

	link, err := svc.PaymentLink(ctx, memberActor(ravi), 2, upi.AppGPay)
	if err != nil {
		t.Fatalf("PaymentLink failed: %v", err)
	}
	if !strings.HasPrefix(link, "tez://upi/pay?") {
		t.Errorf("link = %s, want tez scheme", link)
	}
	if !strings.Contains(link, "am=600") {
		t.Errorf("link amount missing: %s", link)
	}

	if _, err := svc.PaymentLink(ctx, memberActor(ravi), 2, upi.App("venmo")); !errors.Is(err, models.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation for unknown app", err)
	}

	if _, err := svc.PaymentLink(ctx, admin(), 2, upi.AppGPay); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized for admin", err)
	}
}

func TestPaymentLinkUsesCustomAmount(t *testing.T) {
	store, ravi, _ := setupGroup(t)
	svc := NewPaymentService(store)
	ctx := context.Background()

	custom := int64(750)
	rec := ledger.DefaultRecord(ravi.ID, 2, 600)
	rec.CustomAmount = &custom
	if err := store.UpsertPayment(ctx, &rec); err != nil {
		t.Fatalf("UpsertPayment failed: %v", err)
	}

	link, err := svc.PaymentLink(ctx, memberActor(ravi), 2, upi.AppGPay)
	if err != nil {
		t.Fatalf("PaymentLink failed: %v", err)
	}
	if !strings.Contains(link, "am=750") {
		t.Errorf("link = %s, want the admin-set amount 750", link)
	}
}

func TestPaymentLinkSurfacesReadFailure(t *testing.T) {
	store, ravi, _ := setupGroup(t)
	svc := NewPaymentService(&brokenPaymentReads{Store: store})
	ctx := context.Background()

	// A failed record read must not fall back to the base installment:
	// the member could be owed a different amount.
	_, err := svc.PaymentLink(ctx, memberActor(ravi), 2, upi.AppGPay)
	if !errors.Is(err, models.ErrStorage) {
		t.Errorf("err = %v, want ErrStorage", err)
	}
}

func TestMemberService(t *testing.T) {
	store, ravi, _ := setupGroup(t)
	svc := NewMemberService(store)
	ctx := context.Background()

	t.Run("member cannot add to roster", func(t *testing.T) {
		err := svc.Create(ctx, memberActor(ravi), &models.Member{Name: "X", Phone: "9000033333"})
		if !errors.Is(err, models.ErrUnauthorized) {
			t.Errorf("err = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("admin adds and updates", func(t *testing.T) {
		m := &models.Member{Name: "Suresh", Phone: "9000033333"}
		if err := svc.Create(ctx, admin(), m); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		m.SideFund = true
		if err := svc.Update(ctx, admin(), m); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		members, err := svc.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(members) != 3 {
			t.Errorf("roster size = %d, want 3", len(members))
		}
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		err := svc.Create(ctx, admin(), &models.Member{Name: "NoPhone"})
		if !errors.Is(err, models.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("updating unknown member", func(t *testing.T) {
		err := svc.Update(ctx, admin(), &models.Member{ID: "ghost", Name: "G", Phone: "1"})
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}
