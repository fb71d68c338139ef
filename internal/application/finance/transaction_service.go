package finance

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/holycity/portal/internal/domain/finance"
	"github.com/holycity/portal/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrReceiptStorageUnavailable is returned when a receipt upload arrives but
// no receipt store was configured.
var ErrReceiptStorageUnavailable = shared.NewDomainError("STORAGE_FAILURE", "Receipt storage is not configured")

// ReceiptStore persists receipt scans attached to ledger entries. It has the
// same shape as the attendance evidence store so both can share a backend.
type ReceiptStore interface {
	Store(ctx context.Context, name string, content io.Reader, size int64) error
	Remove(ctx context.Context, name string) error
}

// ReceiptUpload is a raw receipt scan handed over by the transport layer
type ReceiptUpload struct {
	Filename string
	Content  io.Reader
	Size     int64
}

// TransactionService manages the accounting ledger
type TransactionService struct {
	transactions finance.TransactionRepository
	receipts     ReceiptStore
	logger       *zap.Logger
	now          func() time.Time
}

// NewTransactionService creates a new transaction service. The receipt store
// may be nil when receipt uploads are not supported.
func NewTransactionService(transactions finance.TransactionRepository, receipts ReceiptStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		receipts:     receipts,
		logger:       logger,
		now:          time.Now,
	}
}

// RecordTransactionInput contains data for recording a ledger entry
type RecordTransactionInput struct {
	Date        string // "2006-01-02", empty means today
	Category    string // income or expense
	Description string
	Source      string
	Account     string
	Amount      string // positive decimal string
	Receipt     *ReceiptUpload
}

// TransactionResponse is a ledger entry in API responses
type TransactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	Date        string           `json:"date"`
	Category    finance.Category `json:"category"`
	Description string           `json:"description"`
	Source      string           `json:"source,omitempty"`
	Account     string           `json:"account,omitempty"`
	Amount      decimal.Decimal  `json:"amount"`
	ReceiptRef  string           `json:"receipt_ref,omitempty"`
}

// SummaryResponse aggregates the ledger for the accounting dashboard
type SummaryResponse struct {
	MonthIncome  decimal.Decimal `json:"month_income"`
	MonthExpense decimal.Decimal `json:"month_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

// MutationsResponse is a windowed ledger listing with its signed total
type MutationsResponse struct {
	Window       finance.MutationWindow `json:"window"`
	From         string                 `json:"from"`
	To           string                 `json:"to"`
	Transactions []TransactionResponse  `json:"transactions"`
	NetChange    decimal.Decimal        `json:"net_change"`
}

// Record appends an entry to the ledger
func (s *TransactionService) Record(ctx context.Context, input RecordTransactionInput) (*TransactionResponse, error) {
	category, err := finance.ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	date, err := s.parseDate(input.Date)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Amount must be a decimal number")
	}

	txn, err := finance.NewTransaction(date, category, input.Description, input.Source, input.Account, amount)
	if err != nil {
		return nil, err
	}

	if input.Receipt != nil && input.Receipt.Filename != "" {
		if s.receipts == nil {
			return nil, ErrReceiptStorageUnavailable
		}
		// The transaction ID makes the name unique even for identical
		// uploads in the same second.
		ref := "receipt_" + txn.ID.String() + "_" + shared.SanitizeFilename(input.Receipt.Filename, "receipt")
		if err := s.receipts.Store(ctx, ref, input.Receipt.Content, input.Receipt.Size); err != nil {
			s.logger.Error("Failed to store receipt", zap.Error(err))
			return nil, shared.NewDomainError("STORAGE_FAILURE", "Could not store receipt")
		}
		txn.ReceiptRef = ref
	}

	if err := s.transactions.Save(ctx, txn); err != nil {
		if txn.ReceiptRef != "" {
			// Do not leave a receipt behind without its ledger entry.
			if rmErr := s.receipts.Remove(context.WithoutCancel(ctx), txn.ReceiptRef); rmErr != nil {
				s.logger.Warn("Failed to remove orphaned receipt",
					zap.String("receipt_ref", txn.ReceiptRef),
					zap.Error(rmErr))
			}
		}
		s.logger.Error("Failed to save transaction", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Transaction recorded",
		zap.String("category", string(category)),
		zap.String("amount", amount.String()))

	return toTransactionResponse(txn), nil
}

// Summary computes the dashboard aggregates: income and expense for the
// current calendar month, and the signed all-time balance.
func (s *TransactionService) Summary(ctx context.Context) (*SummaryResponse, error) {
	monthStart := monthStart(s.now())

	income, err := s.transactions.SumByCategorySince(ctx, finance.CategoryIncome, monthStart)
	if err != nil {
		return nil, err
	}
	expense, err := s.transactions.SumByCategorySince(ctx, finance.CategoryExpense, monthStart)
	if err != nil {
		return nil, err
	}
	balance, err := s.transactions.SumSigned(ctx)
	if err != nil {
		return nil, err
	}

	return &SummaryResponse{
		MonthIncome:  income,
		MonthExpense: expense,
		Balance:      balance,
	}, nil
}

// Mutations lists ledger entries in the daily, monthly, or yearly window
// containing the current instant, newest first, with the window's net change.
func (s *TransactionService) Mutations(ctx context.Context, window finance.MutationWindow) (*MutationsResponse, error) {
	from, to, err := windowBounds(window, s.now())
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactions.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, len(transactions))
	net := decimal.Zero
	for i := range transactions {
		responses[i] = *toTransactionResponse(&transactions[i])
		net = net.Add(transactions[i].Signed())
	}

	return &MutationsResponse{
		Window:       window,
		From:         from.Format("2006-01-02"),
		To:           to.AddDate(0, 0, -1).Format("2006-01-02"),
		Transactions: responses,
		NetChange:    net,
	}, nil
}

// ListAll returns the complete ledger, newest first
func (s *TransactionService) ListAll(ctx context.Context) ([]TransactionResponse, error) {
	transactions, err := s.transactions.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = *toTransactionResponse(&transactions[i])
	}
	return responses, nil
}

func (s *TransactionService) parseDate(v string) (time.Time, error) {
	if v == "" {
		now := s.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_INPUT", "Date must be in YYYY-MM-DD form")
	}
	return d, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// windowBounds returns [from, to) for the window containing now
func windowBounds(window finance.MutationWindow, now time.Time) (time.Time, time.Time, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch window {
	case finance.WindowDaily:
		return day, day.AddDate(0, 0, 1), nil
	case finance.WindowMonthly:
		from := monthStart(now)
		return from, from.AddDate(0, 1, 0), nil
	case finance.WindowYearly:
		from := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_INPUT", "Window must be daily, monthly, or yearly")
	}
}

func toTransactionResponse(t *finance.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		Date:        t.Date.Format("2006-01-02"),
		Category:    t.Category,
		Description: t.Description,
		Source:      t.Source,
		Account:     t.Account,
		Amount:      t.Amount,
		ReceiptRef:  t.ReceiptRef,
	}
}
