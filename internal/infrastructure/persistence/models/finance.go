package models

import (
	"time"

	"github.com/holycity/portal/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// TransactionModel is the persistence model for accounting ledger entries
type TransactionModel struct {
	BaseModel
	Date        time.Time       `gorm:"not null;index"`
	Category    string          `gorm:"size:20;not null;index"`
	Description string          `gorm:"size:255;not null"`
	Source      string          `gorm:"size:120"`
	Account     string          `gorm:"size:80"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ReceiptRef  string          `gorm:"size:255"`
}

// TableName specifies the table name
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the model to a domain transaction
func (m *TransactionModel) ToDomain() *finance.Transaction {
	return &finance.Transaction{
		BaseEntity:  m.BaseModel.ToDomain(),
		Date:        m.Date,
		Category:    finance.Category(m.Category),
		Description: m.Description,
		Source:      m.Source,
		Account:     m.Account,
		Amount:      m.Amount,
		ReceiptRef:  m.ReceiptRef,
	}
}

// TransactionModelFromDomain converts a domain transaction to the
// persistence model
func TransactionModelFromDomain(t *finance.Transaction) *TransactionModel {
	m := &TransactionModel{
		Date:        t.Date,
		Category:    string(t.Category),
		Description: t.Description,
		Source:      t.Source,
		Account:     t.Account,
		Amount:      t.Amount,
		ReceiptRef:  t.ReceiptRef,
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}
