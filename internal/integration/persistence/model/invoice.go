// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/worldbooks/backend/internal/domain/entity"
)

// InvoiceModel represents the invoices table in the database. Status holds
// the persisted status only; the overdue derivation happens on the entity
// at read time and is never written back.
type InvoiceModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number       string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerName string          `gorm:"type:varchar(255);not null;index"`
	Date         time.Time       `gorm:"type:date;not null;index"`
	DueDate      time.Time       `gorm:"type:date;not null;index"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency     string          `gorm:"type:varchar(3);not null;index"`
	Status       string          `gorm:"type:varchar(20);not null;index"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the InvoiceModel.
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToEntity converts an InvoiceModel to a domain Invoice entity.
func (m *InvoiceModel) ToEntity() *entity.Invoice {
	return &entity.Invoice{
		ID:           m.ID,
		Number:       m.Number,
		CustomerName: m.CustomerName,
		Date:         m.Date,
		DueDate:      m.DueDate,
		TotalAmount:  m.TotalAmount,
		Currency:     m.Currency,
		Status:       entity.InvoiceStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// InvoiceFromEntity converts a domain Invoice entity to an InvoiceModel.
func InvoiceFromEntity(i *entity.Invoice) *InvoiceModel {
	return &InvoiceModel{
		ID:           i.ID,
		Number:       i.Number,
		CustomerName: i.CustomerName,
		Date:         i.Date,
		DueDate:      i.DueDate,
		TotalAmount:  i.TotalAmount,
		Currency:     i.Currency,
		Status:       string(i.Status),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}
