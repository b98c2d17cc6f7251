package persistence

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/worldbooks/backend/internal/application/adapter"
	"github.com/worldbooks/backend/internal/domain/entity"
	domainerror "github.com/worldbooks/backend/internal/domain/error"
	"github.com/worldbooks/backend/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	dbSQL.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect gorm: %v", err)
	}
	if err := db.AutoMigrate(&model.TransactionModel{}, &model.InvoiceModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { _ = dbSQL.Close() })
	return db
}

func newStore(t *testing.T) (adapter.TransactionRepository, adapter.InvoiceRepository, *Revision) {
	t.Helper()
	db := openTestDB(t)
	revision := NewRevision()
	return NewTransactionRepository(db, revision), NewInvoiceRepository(db, revision), revision
}

func sampleTransaction(date time.Time, amount string) *entity.Transaction {
	return entity.NewTransaction(
		date, "test entry", decimal.RequireFromString(amount),
		"USD", "sales", "clients", entity.TransactionStatusApproved,
	)
}

func sampleInvoice(number string, date, dueDate time.Time) *entity.Invoice {
	return entity.NewInvoice(
		number, "Acme Corp", date, dueDate,
		decimal.RequireFromString("500.00"), "USD", entity.InvoiceStatusPending,
	)
}

func TestTransactionRepository_RoundTrip(t *testing.T) {
	txns, _, _ := newStore(t)
	ctx := context.Background()

	original := sampleTransaction(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "1000.00")
	if err := txns.Create(ctx, original); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := txns.FindByID(ctx, original.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if got.ID != original.ID {
		t.Errorf("id changed across round trip")
	}
	if !got.Amount.Equal(original.Amount) {
		t.Errorf("amount: expected %s, got %s", original.Amount, got.Amount)
	}
	if got.Status != entity.TransactionStatusApproved {
		t.Errorf("status: expected approved, got %s", got.Status)
	}
	if got.Currency != "USD" || got.Category != "sales" || got.Folder != "clients" {
		t.Error("fields changed across round trip")
	}
}

func TestTransactionRepository_MutatePatchSemantics(t *testing.T) {
	txns, _, _ := newStore(t)
	ctx := context.Background()

	txn := sampleTransaction(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "1000.00")
	if err := txns.Create(ctx, txn); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := txns.Mutate(ctx, txn.ID, func(cur *entity.Transaction) error {
		cur.Status = entity.TransactionStatusReconciled
		return nil
	})
	if err != nil {
		t.Fatalf("mutate failed: %v", err)
	}
	if updated.Status != entity.TransactionStatusReconciled {
		t.Errorf("expected reconciled, got %s", updated.Status)
	}
	if !updated.Amount.Equal(txn.Amount) || updated.Description != txn.Description {
		t.Error("unpatched fields changed")
	}

	t.Run("failing apply leaves the record untouched", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := txns.Mutate(ctx, txn.ID, func(cur *entity.Transaction) error {
			cur.Status = entity.TransactionStatusCancelled
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected apply error, got %v", err)
		}
		got, err := txns.FindByID(ctx, txn.ID)
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}
		if got.Status != entity.TransactionStatusReconciled {
			t.Errorf("failed mutation leaked: status %s", got.Status)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := txns.Mutate(ctx, uuid.New(), func(*entity.Transaction) error { return nil })
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Fatalf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestTransactionRepository_DeleteRemovesEverywhere(t *testing.T) {
	txns, _, _ := newStore(t)
	ctx := context.Background()

	txn := sampleTransaction(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "100.00")
	if err := txns.Create(ctx, txn); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := txns.Delete(ctx, txn.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := txns.FindByID(ctx, txn.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound after delete, got %v", err)
	}
	all, total, err := txns.FindByFilter(ctx, adapter.TransactionFilter{}, adapter.Pagination{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 0 || total != 0 {
		t.Error("deleted record still listed")
	}
	recent, err := txns.FindRecent(ctx, 10)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(recent) != 0 {
		t.Error("deleted record still in recent")
	}
	if err := txns.Delete(ctx, txn.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound on double delete, got %v", err)
	}
}

func TestTransactionRepository_StableOrdering(t *testing.T) {
	txns, _, _ := newStore(t)
	ctx := context.Background()

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := txns.Create(ctx, sampleTransaction(day, "10.00")); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	if err := txns.Create(ctx, sampleTransaction(day.AddDate(0, 0, 5), "10.00")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	first, _, err := txns.FindByFilter(ctx, adapter.TransactionFilter{}, adapter.Pagination{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if first[0].Date.Before(first[len(first)-1].Date) {
		t.Error("expected newest first")
	}

	// Equal dates must come back in the same order on every read.
	for run := 0; run < 3; run++ {
		again, _, err := txns.FindByFilter(ctx, adapter.TransactionFilter{}, adapter.Pagination{})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		for i := range first {
			if first[i].ID != again[i].ID {
				t.Fatalf("ordering changed between reads at index %d", i)
			}
		}
	}
}

func TestTransactionRepository_FilterAndPagination(t *testing.T) {
	txns, _, _ := newStore(t)
	ctx := context.Background()

	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	april := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := txns.Create(ctx, sampleTransaction(march.AddDate(0, 0, i), "10.00")); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	if err := txns.Create(ctx, sampleTransaction(april, "10.00")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	end := march.AddDate(0, 1, 0).Add(-time.Second)
	matched, total, err := txns.FindByFilter(ctx, adapter.TransactionFilter{
		StartDate: &march,
		EndDate:   &end,
	}, adapter.Pagination{Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Errorf("expected total 3 before pagination, got %d", total)
	}
	if len(matched) != 2 {
		t.Errorf("expected page of 2, got %d", len(matched))
	}
}

func TestInvoiceRepository_NumberUniqueness(t *testing.T) {
	_, invs, _ := newStore(t)
	ctx := context.Background()

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	inv := sampleInvoice("INV-001", date, date.AddDate(0, 1, 0))
	if err := invs.Create(ctx, inv); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	taken, err := invs.ExistsByNumber(ctx, "INV-001", uuid.New())
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if !taken {
		t.Error("expected INV-001 to be taken")
	}

	// A record keeping its own number is not a duplicate.
	taken, err = invs.ExistsByNumber(ctx, "INV-001", inv.ID)
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if taken {
		t.Error("record conflicts with itself")
	}
}

func TestRevision_BumpsOnMutationsOnly(t *testing.T) {
	txns, invs, revision := newStore(t)
	ctx := context.Background()

	if revision.Revision() != 0 {
		t.Fatalf("expected fresh store at revision 0, got %d", revision.Revision())
	}

	txn := sampleTransaction(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "100.00")
	if err := txns.Create(ctx, txn); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	afterCreate := revision.Revision()
	if afterCreate != 1 {
		t.Errorf("expected revision 1 after create, got %d", afterCreate)
	}

	// Reads never bump, including reads that derive overdue status.
	pastDue := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	inv := sampleInvoice("INV-010", pastDue, pastDue.AddDate(0, 0, 14))
	if err := invs.Create(ctx, inv); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	afterInvoice := revision.Revision()

	got, err := invs.FindByID(ctx, inv.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if got.EffectiveStatus(time.Now().UTC()) != entity.InvoiceStatusOverdue {
		t.Fatal("expected the invoice to derive overdue")
	}
	if _, _, err := invs.FindByFilter(ctx, adapter.InvoiceFilter{}, adapter.Pagination{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if revision.Revision() != afterInvoice {
		t.Error("reads must not bump the revision")
	}

	// A failing mutation must not bump either.
	boom := errors.New("boom")
	if _, err := txns.Mutate(ctx, txn.ID, func(*entity.Transaction) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected apply error, got %v", err)
	}
	if revision.Revision() != afterInvoice {
		t.Error("failed mutation bumped the revision")
	}

	if _, err := txns.Mutate(ctx, txn.ID, func(cur *entity.Transaction) error {
		cur.Status = entity.TransactionStatusReconciled
		return nil
	}); err != nil {
		t.Fatalf("mutate failed: %v", err)
	}
	if err := invs.Delete(ctx, inv.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if revision.Revision() != afterInvoice+2 {
		t.Errorf("expected two bumps for mutate+delete, got %d", revision.Revision()-afterInvoice)
	}
}

func TestMutate_ConcurrentUpdatesSameRecord(t *testing.T) {
	txns, _, _ := newStore(t)
	ctx := context.Background()

	txn := sampleTransaction(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "0.00")
	if err := txns.Create(ctx, txn); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	const workers = 8
	const perWorker = 5
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, err := txns.Mutate(ctx, txn.ID, func(cur *entity.Transaction) error {
					cur.Amount = cur.Amount.Add(decimal.NewFromInt(1))
					return nil
				})
				if err != nil {
					t.Errorf("mutate failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	got, err := txns.FindByID(ctx, txn.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	// Serialized read-modify-write means no increment is lost.
	want := decimal.NewFromInt(workers * perWorker)
	if !got.Amount.Equal(want) {
		t.Errorf("expected %s after %d serialized increments, got %s", want, workers*perWorker, got.Amount)
	}
}

func TestFindRecent_Bounds(t *testing.T) {
	txns, _, _ := newStore(t)
	ctx := context.Background()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := txns.Create(ctx, sampleTransaction(day.AddDate(0, 0, i), "10.00")); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	recent, err := txns.FindRecent(ctx, 2)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2, got %d", len(recent))
	}
	if recent[0].Date.Before(recent[1].Date) {
		t.Error("expected newest first")
	}

	all, err := txns.FindRecent(ctx, 100)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("asking beyond the store size returns everything, got %d", len(all))
	}

	none, err := txns.FindRecent(ctx, 0)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected empty slice for n=0, got %d", len(none))
	}
}

func TestFilter_SearchIsCaseInsensitive(t *testing.T) {
	txns, invs, _ := newStore(t)
	ctx := context.Background()

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	txn := entity.NewTransaction(
		date, "Office Supplies", decimal.RequireFromString("-50.00"),
		"USD", "operations", "office", entity.TransactionStatusApproved,
	)
	if err := txns.Create(ctx, txn); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for _, needle := range []string{"office", "OFFICE", "Supplies"} {
		matched, total, err := txns.FindByFilter(ctx, adapter.TransactionFilter{Search: needle}, adapter.Pagination{})
		if err != nil {
			t.Fatalf("search %q failed: %v", needle, err)
		}
		if total != 1 || len(matched) != 1 {
			t.Errorf("search %q: expected 1 match, got %d", needle, total)
		}
	}

	inv := sampleInvoice("INV-100", date, date.AddDate(0, 1, 0))
	if err := invs.Create(ctx, inv); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	matched, total, err := invs.FindByFilter(ctx, adapter.InvoiceFilter{Customer: "acme"}, adapter.Pagination{})
	if err != nil {
		t.Fatalf("customer search failed: %v", err)
	}
	if total != 1 || len(matched) != 1 {
		t.Errorf("customer search: expected 1 match, got %d", total)
	}
}

func TestInvoiceRepository_DuplicateNumberOnWrite(t *testing.T) {
	_, invs, revision := newStore(t)
	ctx := context.Background()

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := invs.Create(ctx, sampleInvoice("INV-001", date, date.AddDate(0, 1, 0))); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second := sampleInvoice("INV-002", date, date.AddDate(0, 1, 0))
	if err := invs.Create(ctx, second); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	before := revision.Revision()

	// The unique index rejects a create that reuses a number.
	err := invs.Create(ctx, sampleInvoice("INV-001", date, date.AddDate(0, 1, 0)))
	if !errors.Is(err, domainerror.ErrDuplicateInvoiceNumber) {
		t.Fatalf("expected ErrDuplicateInvoiceNumber, got %v", err)
	}

	// An update that renames onto a taken number is rejected the same way,
	// even without the application-level pre-check.
	_, err = invs.Mutate(ctx, second.ID, func(cur *entity.Invoice) error {
		cur.Number = "INV-001"
		return nil
	})
	if !errors.Is(err, domainerror.ErrDuplicateInvoiceNumber) {
		t.Fatalf("expected ErrDuplicateInvoiceNumber from mutate, got %v", err)
	}

	if revision.Revision() != before {
		t.Errorf("failed writes must not bump the revision: %d -> %d", before, revision.Revision())
	}

	// The record keeps its original number.
	got, err := invs.FindByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if got.Number != "INV-002" {
		t.Errorf("expected INV-002 untouched, got %s", got.Number)
	}
}
