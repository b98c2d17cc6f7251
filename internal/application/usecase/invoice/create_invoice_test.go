package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/worldbooks/backend/internal/application/adapter"
	"github.com/worldbooks/backend/internal/domain/entity"
	domainerror "github.com/worldbooks/backend/internal/domain/error"
)

// memInvoiceRepo is an in-memory InvoiceRepository for use case tests.
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
	for idx, i := range m.invoices {
		if i.ID == id {
			// Commit only on success, matching the persistence layer.
			patched := *i
			if err := apply(&patched); err != nil {
				return nil, err
			}
			m.invoices[idx] = &patched
			return &patched, nil
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

func validInput() CreateInvoiceInput {
	return CreateInvoiceInput{
		Number:       "INV-001",
		CustomerName: "Acme Corp",
		Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		TotalAmount:  decimal.NewFromInt(500),
		Currency:     "USD",
		Status:       entity.InvoiceStatusPending,
	}
}

func TestCreateInvoice(t *testing.T) {
	t.Run("creates with defaulted draft status", func(t *testing.T) {
		repo := &memInvoiceRepo{}
		uc := NewCreateInvoiceUseCase(repo)

		input := validInput()
		input.Status = ""
		out, err := uc.Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Invoice.Status != entity.InvoiceStatusDraft {
			t.Errorf("expected defaulted draft status, got %s", out.Invoice.Status)
		}
		if len(repo.invoices) != 1 {
			t.Fatalf("expected one persisted invoice, got %d", len(repo.invoices))
		}
	})

	t.Run("lowercase currency is normalized", func(t *testing.T) {
		repo := &memInvoiceRepo{}
		uc := NewCreateInvoiceUseCase(repo)

		input := validInput()
		input.Currency = "eur"
		out, err := uc.Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Invoice.Currency != "EUR" {
			t.Errorf("expected EUR, got %s", out.Invoice.Currency)
		}
	})

	t.Run("due date before issue date is rejected", func(t *testing.T) {
		uc := NewCreateInvoiceUseCase(&memInvoiceRepo{})

		input := validInput()
		input.DueDate = input.Date.AddDate(0, 0, -1)
		_, err := uc.Execute(context.Background(), input)
		if !errors.Is(err, domainerror.ErrDueDateBeforeIssueDate) {
			t.Fatalf("expected ErrDueDateBeforeIssueDate, got %v", err)
		}
	})

	t.Run("duplicate invoice number is rejected", func(t *testing.T) {
		repo := &memInvoiceRepo{}
		uc := NewCreateInvoiceUseCase(repo)

		if _, err := uc.Execute(context.Background(), validInput()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := uc.Execute(context.Background(), validInput())
		if !errors.Is(err, domainerror.ErrDuplicateInvoiceNumber) {
			t.Fatalf("expected ErrDuplicateInvoiceNumber, got %v", err)
		}
	})

	t.Run("missing number and customer are rejected", func(t *testing.T) {
		uc := NewCreateInvoiceUseCase(&memInvoiceRepo{})

		input := validInput()
		input.Number = ""
		if _, err := uc.Execute(context.Background(), input); !errors.Is(err, domainerror.ErrMissingInvoiceNumber) {
			t.Errorf("expected ErrMissingInvoiceNumber, got %v", err)
		}

		input = validInput()
		input.CustomerName = ""
		if _, err := uc.Execute(context.Background(), input); !errors.Is(err, domainerror.ErrMissingCustomerName) {
			t.Errorf("expected ErrMissingCustomerName, got %v", err)
		}
	})

	t.Run("negative total is rejected", func(t *testing.T) {
		uc := NewCreateInvoiceUseCase(&memInvoiceRepo{})

		input := validInput()
		input.TotalAmount = decimal.NewFromInt(-1)
		_, err := uc.Execute(context.Background(), input)
		if !errors.Is(err, domainerror.ErrNegativeInvoiceTotal) {
			t.Fatalf("expected ErrNegativeInvoiceTotal, got %v", err)
		}
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		uc := NewCreateInvoiceUseCase(&memInvoiceRepo{})

		input := validInput()
		input.Status = entity.InvoiceStatus("archived")
		_, err := uc.Execute(context.Background(), input)
		if !errors.Is(err, domainerror.ErrInvalidInvoiceStatus) {
			t.Fatalf("expected ErrInvalidInvoiceStatus, got %v", err)
		}
	})
}

func TestUpdateInvoice(t *testing.T) {
	seed := func(t *testing.T) (*memInvoiceRepo, *entity.Invoice) {
		t.Helper()
		repo := &memInvoiceRepo{}
		inv := entity.NewInvoice(
			"INV-001", "Acme Corp",
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(500), "USD", entity.InvoiceStatusPending,
		)
		repo.invoices = append(repo.invoices, inv)
		return repo, inv
	}

	t.Run("patched due date before kept issue date is rejected", func(t *testing.T) {
		repo, inv := seed(t)
		uc := NewUpdateInvoiceUseCase(repo)

		badDue := inv.Date.AddDate(0, 0, -5)
		_, err := uc.Execute(context.Background(), UpdateInvoiceInput{
			InvoiceID: inv.ID,
			DueDate:   &badDue,
		})
		if !errors.Is(err, domainerror.ErrDueDateBeforeIssueDate) {
			t.Fatalf("expected ErrDueDateBeforeIssueDate, got %v", err)
		}
		// The failed patch must not leak into the stored record.
		if !inv.DueDate.Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)) {
			t.Error("rejected patch mutated the stored invoice")
		}
	})

	t.Run("marking paid keeps other fields", func(t *testing.T) {
		repo, inv := seed(t)
		uc := NewUpdateInvoiceUseCase(repo)

		paid := entity.InvoiceStatusPaid
		out, err := uc.Execute(context.Background(), UpdateInvoiceInput{
			InvoiceID: inv.ID,
			Status:    &paid,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Invoice.Status != entity.InvoiceStatusPaid {
			t.Errorf("expected paid, got %s", out.Invoice.Status)
		}
		if out.Invoice.Number != "INV-001" || out.Invoice.CustomerName != "Acme Corp" {
			t.Error("unpatched fields changed")
		}
	})

	t.Run("renaming to a taken number is rejected", func(t *testing.T) {
		repo, inv := seed(t)
		other := entity.NewInvoice(
			"INV-002", "Globex",
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(300), "USD", entity.InvoiceStatusPending,
		)
		repo.invoices = append(repo.invoices, other)
		uc := NewUpdateInvoiceUseCase(repo)

		taken := "INV-002"
		_, err := uc.Execute(context.Background(), UpdateInvoiceInput{
			InvoiceID: inv.ID,
			Number:    &taken,
		})
		if !errors.Is(err, domainerror.ErrDuplicateInvoiceNumber) {
			t.Fatalf("expected ErrDuplicateInvoiceNumber, got %v", err)
		}
	})

	t.Run("keeping own number is not a duplicate", func(t *testing.T) {
		repo, inv := seed(t)
		uc := NewUpdateInvoiceUseCase(repo)

		same := "INV-001"
		if _, err := uc.Execute(context.Background(), UpdateInvoiceInput{
			InvoiceID: inv.ID,
			Number:    &same,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown id yields not found", func(t *testing.T) {
		repo, _ := seed(t)
		uc := NewUpdateInvoiceUseCase(repo)

		name := "Initech"
		_, err := uc.Execute(context.Background(), UpdateInvoiceInput{
			InvoiceID:    uuid.New(),
			CustomerName: &name,
		})
		if !errors.Is(err, domainerror.ErrInvoiceNotFound) {
			t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
		}
	})
}

// racingInvoiceRepo simulates a concurrent update claiming the number
// after the availability check but before the write commits.
type racingInvoiceRepo struct {
	*memInvoiceRepo
}

func (r *racingInvoiceRepo) ExistsByNumber(context.Context, string, uuid.UUID) (bool, error) {
	return false, nil
}

func (r *racingInvoiceRepo) Mutate(context.Context, uuid.UUID, func(*entity.Invoice) error) (*entity.Invoice, error) {
	return nil, domainerror.ErrDuplicateInvoiceNumber
}

func TestUpdateInvoice_ConcurrentNumberClaim(t *testing.T) {
	repo := &racingInvoiceRepo{memInvoiceRepo: &memInvoiceRepo{}}
	uc := NewUpdateInvoiceUseCase(repo)

	number := "INV-001"
	_, err := uc.Execute(context.Background(), UpdateInvoiceInput{
		InvoiceID: uuid.New(),
		Number:    &number,
	})
	if !errors.Is(err, domainerror.ErrDuplicateInvoiceNumber) {
		t.Fatalf("expected duplicate number error, got %v", err)
	}

	var invErr *domainerror.InvoiceError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected a coded invoice error, got %T", err)
	}
	if invErr.Code != domainerror.ErrCodeDuplicateInvoiceNumber {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeDuplicateInvoiceNumber, invErr.Code)
	}
}
