// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/worldbooks/backend/internal/application/adapter"
	"github.com/worldbooks/backend/internal/domain/entity"
	domainerror "github.com/worldbooks/backend/internal/domain/error"
	"github.com/worldbooks/backend/internal/integration/persistence/model"
)

const stableInvoiceOrder = "date DESC, id ASC"

// invoiceRepository implements the adapter.InvoiceRepository interface.
type invoiceRepository struct {
	db       *gorm.DB
	revision *Revision
	locks    *recordLocks
}

// NewInvoiceRepository creates a new invoice repository instance. The
// revision counter is shared with the transaction repository of the same
// store.
func NewInvoiceRepository(db *gorm.DB, revision *Revision) adapter.InvoiceRepository {
	return &invoiceRepository{
		db:       db,
		revision: revision,
		locks:    newRecordLocks(),
	}
}

// Create creates a new invoice in the database.
func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	invoiceModel := model.InvoiceFromEntity(invoice)
	result := r.db.WithContext(ctx).Create(invoiceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.ErrDuplicateInvoiceNumber
		}
		return result.Error
	}
	r.revision.Bump()
	return nil
}

// FindByID retrieves an invoice by its ID.
func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoiceModel model.InvoiceModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&invoiceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvoiceNotFound
		}
		return nil, result.Error
	}
	return invoiceModel.ToEntity(), nil
}

// FindByFilter retrieves invoices matching the filter, ordered newest
// first, along with the total match count before pagination. Status
// filtering here matches the persisted status only; effective-status
// narrowing happens in the use case because overdue is derived at read
// time.
func (r *invoiceRepository) FindByFilter(ctx context.Context, filter adapter.InvoiceFilter, pagination adapter.Pagination) ([]*entity.Invoice, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&model.InvoiceModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(stableInvoiceOrder)
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.Offset)
	}

	var invoiceModels []model.InvoiceModel
	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, 0, err
	}

	invoices := make([]*entity.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = invoiceModels[i].ToEntity()
	}
	return invoices, total, nil
}

// FindRecent retrieves the n most recent invoices.
func (r *invoiceRepository) FindRecent(ctx context.Context, n int) ([]*entity.Invoice, error) {
	if n <= 0 {
		return []*entity.Invoice{}, nil
	}

	var invoiceModels []model.InvoiceModel
	result := r.db.WithContext(ctx).
		Order(stableInvoiceOrder).
		Limit(n).
		Find(&invoiceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	invoices := make([]*entity.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = invoiceModels[i].ToEntity()
	}
	return invoices, nil
}

// ExistsByNumber reports whether another invoice already uses the given
// number. The excludeID carve-out lets an update keep its own number.
func (r *invoiceRepository) ExistsByNumber(ctx context.Context, number string, excludeID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.InvoiceModel{}).
		Where("number = ? AND id <> ?", number, excludeID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Mutate applies a read-modify-write cycle to one invoice, serialized per
// id. A failing apply leaves the stored record and the revision untouched.
func (r *invoiceRepository) Mutate(ctx context.Context, id uuid.UUID, apply func(*entity.Invoice) error) (*entity.Invoice, error) {
	unlock := r.locks.lock(id)
	defer unlock()

	var updated *entity.Invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoiceModel model.InvoiceModel
		if err := tx.Where("id = ?", id).First(&invoiceModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrInvoiceNotFound
			}
			return err
		}

		invoice := invoiceModel.ToEntity()
		if err := apply(invoice); err != nil {
			return err
		}

		if err := tx.Save(model.InvoiceFromEntity(invoice)).Error; err != nil {
			// The unique index on number is the last word; a concurrent
			// update can slip past the application-level check.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domainerror.ErrDuplicateInvoiceNumber
			}
			return err
		}
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.revision.Bump()
	return updated, nil
}

// Delete removes an invoice by its ID.
func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.InvoiceModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInvoiceNotFound
	}
	r.revision.Bump()
	return nil
}

// Count returns the total number of invoices in the store.
func (r *invoiceRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	result := r.db.WithContext(ctx).Model(&model.InvoiceModel{}).Count(&total)
	if result.Error != nil {
		return 0, result.Error
	}
	return total, nil
}

func (r *invoiceRepository) applyFilter(query *gorm.DB, filter adapter.InvoiceFilter) *gorm.DB {
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.Currency != "" {
		query = query.Where("currency = ?", filter.Currency)
	}
	if filter.Customer != "" {
		// Plain LIKE is case-sensitive on postgres.
		query = query.Where("LOWER(customer_name) LIKE LOWER(?)", "%"+filter.Customer+"%")
	}
	return query
}
