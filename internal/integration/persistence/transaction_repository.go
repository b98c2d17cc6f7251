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

// stableTransactionOrder keeps listings deterministic: newest first, ties
// broken by id so equal dates always come back in the same order.
const stableTransactionOrder = "date DESC, id ASC"

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db       *gorm.DB
	revision *Revision
	locks    *recordLocks
}

// NewTransactionRepository creates a new transaction repository instance.
// The revision counter is shared with the invoice repository of the same
// store.
func NewTransactionRepository(db *gorm.DB, revision *Revision) adapter.TransactionRepository {
	return &transactionRepository{
		db:       db,
		revision: revision,
		locks:    newRecordLocks(),
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	r.revision.Bump()
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByFilter retrieves transactions matching the filter, ordered newest
// first, along with the total match count before pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.Pagination) ([]*entity.Transaction, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&model.TransactionModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(stableTransactionOrder)
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.Offset)
	}

	var transactionModels []model.TransactionModel
	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, 0, err
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, total, nil
}

// FindRecent retrieves the n most recent transactions.
func (r *transactionRepository) FindRecent(ctx context.Context, n int) ([]*entity.Transaction, error) {
	if n <= 0 {
		return []*entity.Transaction{}, nil
	}

	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Order(stableTransactionOrder).
		Limit(n).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}

// Mutate applies a read-modify-write cycle to one transaction. Mutations
// to the same id run strictly one after another; the record is reloaded
// under the id lock, patched by apply, and saved inside a database
// transaction. A failing apply leaves the stored record and the revision
// untouched.
func (r *transactionRepository) Mutate(ctx context.Context, id uuid.UUID, apply func(*entity.Transaction) error) (*entity.Transaction, error) {
	unlock := r.locks.lock(id)
	defer unlock()

	var updated *entity.Transaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var transactionModel model.TransactionModel
		if err := tx.Where("id = ?", id).First(&transactionModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrTransactionNotFound
			}
			return err
		}

		transaction := transactionModel.ToEntity()
		if err := apply(transaction); err != nil {
			return err
		}

		if err := tx.Save(model.TransactionFromEntity(transaction)).Error; err != nil {
			return err
		}
		updated = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.revision.Bump()
	return updated, nil
}

// Delete removes a transaction by its ID.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	r.revision.Bump()
	return nil
}

// Count returns the total number of transactions in the store.
func (r *transactionRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	result := r.db.WithContext(ctx).Model(&model.TransactionModel{}).Count(&total)
	if result.Error != nil {
		return 0, result.Error
	}
	return total, nil
}

func (r *transactionRepository) applyFilter(query *gorm.DB, filter adapter.TransactionFilter) *gorm.DB {
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
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Folder != "" {
		query = query.Where("folder = ?", filter.Folder)
	}
	if filter.Currency != "" {
		query = query.Where("currency = ?", filter.Currency)
	}
	if filter.Search != "" {
		// Plain LIKE is case-sensitive on postgres.
		query = query.Where("LOWER(description) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	return query
}
