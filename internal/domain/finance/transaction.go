package finance

import (
	"context"
	"time"

	"github.com/holycity/portal/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Category splits the ledger into money coming in and money going out.
type Category string

const (
	CategoryIncome  Category = "income"
	CategoryExpense Category = "expense"
)

// ParseCategory converts an externally supplied string into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryIncome, CategoryExpense:
		return Category(s), nil
	default:
		return "", shared.NewDomainError("INVALID_CATEGORY", "Category must be income or expense")
	}
}

// Transaction is one entry in the company's accounting ledger.
type Transaction struct {
	shared.BaseEntity
	Date        time.Time
	Category    Category
	Description string
	Source      string
	Account     string
	Amount      decimal.Decimal
	// ReceiptRef is the stored receipt scan, empty when none was attached.
	ReceiptRef string
}

// NewTransaction creates a ledger entry dated at the given day.
func NewTransaction(date time.Time, category Category, description, source, account string, amount decimal.Decimal) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Amount must be positive")
	}
	if category != CategoryIncome && category != CategoryExpense {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category must be income or expense")
	}
	return &Transaction{
		BaseEntity:  shared.NewBaseEntity(),
		Date:        date,
		Category:    category,
		Description: description,
		Source:      source,
		Account:     account,
		Amount:      amount,
	}, nil
}

// Signed returns the amount with expense entries negated, for balance sums.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Category == CategoryExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// MutationWindow selects the time window of a mutation listing.
type MutationWindow string

const (
	WindowDaily   MutationWindow = "daily"
	WindowMonthly MutationWindow = "monthly"
	WindowYearly  MutationWindow = "yearly"
)

// Summary aggregates the ledger for the dashboard: current-month income and
// expense, and the signed all-time balance.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// TransactionRepository provides access to the accounting ledger.
type TransactionRepository interface {
	Save(ctx context.Context, txn *Transaction) error
	// SumByCategorySince sums amounts of one category dated at or after the
	// given instant.
	SumByCategorySince(ctx context.Context, category Category, since time.Time) (decimal.Decimal, error)
	// SumSigned sums the whole ledger with expenses negated.
	SumSigned(ctx context.Context) (decimal.Decimal, error)
	// ListBetween lists entries with from <= date < to, newest first.
	ListBetween(ctx context.Context, from, to time.Time) ([]Transaction, error)
	ListAll(ctx context.Context) ([]Transaction, error)
}
