package finance

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/holycity/portal/internal/domain/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockTransactionRepository is a mock implementation of finance.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Save(ctx context.Context, txn *finance.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SumByCategorySince(ctx context.Context, category finance.Category, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, category, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SumSigned(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) ListBetween(ctx context.Context, from, to time.Time) ([]finance.Transaction, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListAll(ctx context.Context) ([]finance.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Transaction), args.Error(1)
}

func newService(repo *MockTransactionRepository) *TransactionService {
	svc := NewTransactionService(repo, nil, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2026, 7, 18, 14, 0, 0, 0, time.UTC)
	}
	return svc
}

func mustTransaction(t *testing.T, date string, category finance.Category, amount int64) finance.Transaction {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	txn, err := finance.NewTransaction(d, category, "test entry", "", "", decimal.NewFromInt(amount))
	require.NoError(t, err)
	return *txn
}

func TestRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("records an income entry", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*finance.Transaction")).Return(nil)

		svc := newService(repo)

		resp, err := svc.Record(ctx, RecordTransactionInput{
			Date:        "2026-07-10",
			Category:    "income",
			Description: "Invoice #1042",
			Source:      "PT Maju",
			Account:     "BCA",
			Amount:      "12500000.50",
		})
		require.NoError(t, err)

		assert.Equal(t, finance.CategoryIncome, resp.Category)
		assert.Equal(t, "2026-07-10", resp.Date)
		assert.True(t, resp.Amount.Equal(decimal.RequireFromString("12500000.50")))
		repo.AssertExpectations(t)
	})

	t.Run("empty date defaults to today", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		svc := newService(repo)

		resp, err := svc.Record(ctx, RecordTransactionInput{
			Category:    "expense",
			Description: "Office supplies",
			Amount:      "250000",
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-07-18", resp.Date)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		svc := newService(new(MockTransactionRepository))

		_, err := svc.Record(ctx, RecordTransactionInput{Category: "transfer", Amount: "100"})
		require.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		svc := newService(new(MockTransactionRepository))

		_, err := svc.Record(ctx, RecordTransactionInput{Category: "income", Amount: "-5"})
		require.Error(t, err)

		_, err = svc.Record(ctx, RecordTransactionInput{Category: "income", Amount: "0"})
		require.Error(t, err)
	})
}

// memoryReceiptStore records stored and removed receipt names
type memoryReceiptStore struct {
	stored  []string
	removed []string
}

func (s *memoryReceiptStore) Store(ctx context.Context, name string, content io.Reader, size int64) error {
	if _, err := io.Copy(io.Discard, content); err != nil {
		return err
	}
	s.stored = append(s.stored, name)
	return nil
}

func (s *memoryReceiptStore) Remove(ctx context.Context, name string) error {
	s.removed = append(s.removed, name)
	return nil
}

func TestRecordWithReceipt(t *testing.T) {
	ctx := context.Background()

	receipt := func() *ReceiptUpload {
		return &ReceiptUpload{
			Filename: "nota makan siang.jpg",
			Content:  strings.NewReader("scan bytes"),
			Size:     10,
		}
	}

	t.Run("stores the scan and references it from the entry", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		store := &memoryReceiptStore{}

		svc := NewTransactionService(repo, store, zap.NewNop())

		resp, err := svc.Record(ctx, RecordTransactionInput{
			Category:    "expense",
			Description: "Team lunch",
			Amount:      "350000",
			Receipt:     receipt(),
		})
		require.NoError(t, err)

		require.Len(t, store.stored, 1)
		assert.Equal(t, store.stored[0], resp.ReceiptRef)
		assert.Contains(t, resp.ReceiptRef, "nota_makan_siang.jpg")
		assert.Empty(t, store.removed)
	})

	t.Run("removes the scan when the save fails", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		repo.On("Save", mock.Anything, mock.Anything).Return(assert.AnError)
		store := &memoryReceiptStore{}

		svc := NewTransactionService(repo, store, zap.NewNop())

		_, err := svc.Record(ctx, RecordTransactionInput{
			Category:    "expense",
			Description: "Team lunch",
			Amount:      "350000",
			Receipt:     receipt(),
		})
		require.Error(t, err)
		require.Len(t, store.stored, 1)
		assert.Equal(t, store.stored, store.removed)
	})

	t.Run("fails when no receipt store is configured", func(t *testing.T) {
		svc := NewTransactionService(new(MockTransactionRepository), nil, zap.NewNop())

		_, err := svc.Record(ctx, RecordTransactionInput{
			Category:    "expense",
			Description: "Team lunch",
			Amount:      "350000",
			Receipt:     receipt(),
		})
		assert.ErrorIs(t, err, ErrReceiptStorageUnavailable)
	})
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	svc := newService(repo)

	july := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	repo.On("SumByCategorySince", mock.Anything, finance.CategoryIncome, july).
		Return(decimal.NewFromInt(30000000), nil)
	repo.On("SumByCategorySince", mock.Anything, finance.CategoryExpense, july).
		Return(decimal.NewFromInt(12000000), nil)
	repo.On("SumSigned", mock.Anything).Return(decimal.NewFromInt(95000000), nil)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)

	assert.True(t, summary.MonthIncome.Equal(decimal.NewFromInt(30000000)))
	assert.True(t, summary.MonthExpense.Equal(decimal.NewFromInt(12000000)))
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(95000000)))
	repo.AssertExpectations(t)
}

func TestMutations(t *testing.T) {
	ctx := context.Background()

	entries := []finance.Transaction{
		mustTransaction(t, "2026-07-18", finance.CategoryIncome, 1000000),
		mustTransaction(t, "2026-07-18", finance.CategoryExpense, 300000),
	}

	t.Run("daily window bounds and net change", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		from := time.Date(2026, 7, 18, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 7, 19, 0, 0, 0, 0, time.UTC)
		repo.On("ListBetween", mock.Anything, from, to).Return(entries, nil)

		svc := newService(repo)

		resp, err := svc.Mutations(ctx, finance.WindowDaily)
		require.NoError(t, err)

		assert.Equal(t, "2026-07-18", resp.From)
		assert.Equal(t, "2026-07-18", resp.To)
		assert.Len(t, resp.Transactions, 2)
		// Expenses count negative in the net change
		assert.True(t, resp.NetChange.Equal(decimal.NewFromInt(700000)))
	})

	t.Run("monthly window spans the calendar month", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		repo.On("ListBetween", mock.Anything, from, to).Return([]finance.Transaction{}, nil)

		svc := newService(repo)

		resp, err := svc.Mutations(ctx, finance.WindowMonthly)
		require.NoError(t, err)
		assert.Equal(t, "2026-07-01", resp.From)
		assert.Equal(t, "2026-07-31", resp.To)
	})

	t.Run("yearly window spans the calendar year", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
		repo.On("ListBetween", mock.Anything, from, to).Return([]finance.Transaction{}, nil)

		svc := newService(repo)

		resp, err := svc.Mutations(ctx, finance.WindowYearly)
		require.NoError(t, err)
		assert.Equal(t, "2026-01-01", resp.From)
		assert.Equal(t, "2026-12-31", resp.To)
	})

	t.Run("unknown window rejected", func(t *testing.T) {
		svc := newService(new(MockTransactionRepository))

		_, err := svc.Mutations(ctx, finance.MutationWindow("weekly"))
		require.Error(t, err)
	})
}
