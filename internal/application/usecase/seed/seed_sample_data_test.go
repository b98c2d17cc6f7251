package seed

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/worldbooks/backend/internal/application/adapter"
	"github.com/worldbooks/backend/internal/domain/entity"
	domainerror "github.com/worldbooks/backend/internal/domain/error"
)

type memTransactionRepo struct {
	transactions []*entity.Transaction
}

func (m *memTransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	m.transactions = append(m.transactions, t)
	return nil
}

func (m *memTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, t := range m.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (m *memTransactionRepo) FindByFilter(context.Context, adapter.TransactionFilter, adapter.Pagination) ([]*entity.Transaction, int64, error) {
	return m.transactions, int64(len(m.transactions)), nil
}

func (m *memTransactionRepo) FindRecent(_ context.Context, n int) ([]*entity.Transaction, error) {
	if n > len(m.transactions) {
		n = len(m.transactions)
	}
	return m.transactions[:n], nil
}

func (m *memTransactionRepo) Mutate(_ context.Context, id uuid.UUID, apply func(*entity.Transaction) error) (*entity.Transaction, error) {
	for _, t := range m.transactions {
		if t.ID == id {
			if err := apply(t); err != nil {
				return nil, err
			}
			return t, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (m *memTransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, t := range m.transactions {
		if t.ID == id {
			m.transactions = append(m.transactions[:i], m.transactions[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrTransactionNotFound
}

func (m *memTransactionRepo) Count(context.Context) (int64, error) {
	return int64(len(m.transactions)), nil
}

type memInvoiceRepo struct {
	invoices []*entity.Invoice
}

func (m *memInvoiceRepo) Create(_ context.Context, i *entity.Invoice) error {
	m.invoices = append(m.invoices, i)
	return nil
}

func (m *memInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Invoice, error) {
	for _, i := range m.invoices {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, domainerror.ErrInvoiceNotFound
}

func (m *memInvoiceRepo) FindByFilter(context.Context, adapter.InvoiceFilter, adapter.Pagination) ([]*entity.Invoice, int64, error) {
	return m.invoices, int64(len(m.invoices)), nil
}

func (m *memInvoiceRepo) FindRecent(_ context.Context, n int) ([]*entity.Invoice, error) {
	if n > len(m.invoices) {
		n = len(m.invoices)
	}
	return m.invoices[:n], nil
}

func (m *memInvoiceRepo) ExistsByNumber(_ context.Context, number string, excludeID uuid.UUID) (bool, error) {
	for _, i := range m.invoices {
		if i.Number == number && i.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memInvoiceRepo) Mutate(_ context.Context, id uuid.UUID, apply func(*entity.Invoice) error) (*entity.Invoice, error) {
	for _, i := range m.invoices {
		if i.ID == id {
			if err := apply(i); err != nil {
				return nil, err
			}
			return i, nil
		}
	}
	return nil, domainerror.ErrInvoiceNotFound
}

func (m *memInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	for idx, i := range m.invoices {
		if i.ID == id {
			m.invoices = append(m.invoices[:idx], m.invoices[idx+1:]...)
			return nil
		}
	}
	return domainerror.ErrInvoiceNotFound
}

func (m *memInvoiceRepo) Count(context.Context) (int64, error) {
	return int64(len(m.invoices)), nil
}

func TestSeedSampleData(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC) }

	t.Run("seeds an empty ledger", func(t *testing.T) {
		txns := &memTransactionRepo{}
		invs := &memInvoiceRepo{}
		uc := NewSeedSampleDataUseCase(txns, invs).WithClock(clock)

		out, err := uc.Execute(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Seeded {
			t.Fatal("expected Seeded=true on an empty ledger")
		}
		if out.TransactionsLoaded != len(txns.transactions) {
			t.Errorf("reported %d transactions, stored %d", out.TransactionsLoaded, len(txns.transactions))
		}
		if out.InvoicesLoaded != len(invs.invoices) {
			t.Errorf("reported %d invoices, stored %d", out.InvoicesLoaded, len(invs.invoices))
		}
		if out.TransactionsLoaded == 0 || out.InvoicesLoaded == 0 {
			t.Error("expected a non-empty sample set")
		}
	})

	t.Run("refuses to seed over existing transactions", func(t *testing.T) {
		txns := &memTransactionRepo{}
		txns.transactions = append(txns.transactions, entity.NewTransaction(
			clock(), "real entry", decimal.NewFromInt(10), "USD", "sales", "clients", entity.TransactionStatusApproved,
		))
		invs := &memInvoiceRepo{}
		uc := NewSeedSampleDataUseCase(txns, invs).WithClock(clock)

		out, err := uc.Execute(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Seeded {
			t.Fatal("must not seed over existing data")
		}
		if len(txns.transactions) != 1 || len(invs.invoices) != 0 {
			t.Error("store contents changed")
		}
	})

	t.Run("refuses to seed over existing invoices", func(t *testing.T) {
		txns := &memTransactionRepo{}
		invs := &memInvoiceRepo{}
		invs.invoices = append(invs.invoices, entity.NewInvoice(
			"INV-900", "Real Customer", clock(), clock().AddDate(0, 1, 0),
			decimal.NewFromInt(100), "USD", entity.InvoiceStatusPending,
		))
		uc := NewSeedSampleDataUseCase(txns, invs).WithClock(clock)

		out, err := uc.Execute(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Seeded {
			t.Fatal("must not seed over existing data")
		}
	})

	t.Run("sample set exercises the derivations", func(t *testing.T) {
		txns := &memTransactionRepo{}
		invs := &memInvoiceRepo{}
		uc := NewSeedSampleDataUseCase(txns, invs).WithClock(clock)

		if _, err := uc.Execute(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var hasCancelled bool
		for _, txn := range txns.transactions {
			if txn.Status == entity.TransactionStatusCancelled {
				hasCancelled = true
			}
		}
		if !hasCancelled {
			t.Error("expected at least one cancelled sample transaction")
		}

		var hasOverdue bool
		for _, inv := range invs.invoices {
			if inv.EffectiveStatus(clock()) == entity.InvoiceStatusOverdue {
				hasOverdue = true
			}
		}
		if !hasOverdue {
			t.Error("expected at least one sample invoice derived overdue")
		}
	})
}
