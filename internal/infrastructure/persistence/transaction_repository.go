package persistence

import (
	"context"
	"time"

	"github.com/holycity/portal/internal/domain/finance"
	"github.com/holycity/portal/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTransactionRepository implements finance.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Save inserts or updates a ledger entry
func (r *GormTransactionRepository) Save(ctx context.Context, txn *finance.Transaction) error {
	return r.db.WithContext(ctx).Save(models.TransactionModelFromDomain(txn)).Error
}

// SumByCategorySince sums amounts of one category dated at or after the
// given instant
func (r *GormTransactionRepository) SumByCategorySince(ctx context.Context, category finance.Category, since time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("category = ? AND date >= ?", string(category), since).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumSigned sums the whole ledger with expense amounts negated
func (r *GormTransactionRepository) SumSigned(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Select("COALESCE(SUM(CASE WHEN category = 'expense' THEN -amount ELSE amount END), 0) AS total").
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// ListBetween lists entries with from <= date < to, newest first
func (r *GormTransactionRepository) ListBetween(ctx context.Context, from, to time.Time) ([]finance.Transaction, error) {
	var transactionModels []models.TransactionModel
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Order("date DESC, created_at DESC").
		Find(&transactionModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransactions(transactionModels), nil
}

// ListAll lists the complete ledger, newest first
func (r *GormTransactionRepository) ListAll(ctx context.Context) ([]finance.Transaction, error) {
	var transactionModels []models.TransactionModel
	err := r.db.WithContext(ctx).
		Order("date DESC, created_at DESC").
		Find(&transactionModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransactions(transactionModels), nil
}

func toDomainTransactions(transactionModels []models.TransactionModel) []finance.Transaction {
	transactions := make([]finance.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = *transactionModels[i].ToDomain()
	}
	return transactions
}

var _ finance.TransactionRepository = (*GormTransactionRepository)(nil)
