package hr

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/holycity/portal/internal/domain/hr"
	"github.com/holycity/portal/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockEmployeeRepository is a mock implementation of hr.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListAll(ctx context.Context) ([]hr.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hr.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *hr.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

// MockPerformanceRepository is a mock implementation of hr.PerformanceRepository
type MockPerformanceRepository struct {
	mock.Mock
}

func (m *MockPerformanceRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]hr.Performance, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hr.Performance), args.Error(1)
}

func (m *MockPerformanceRepository) Save(ctx context.Context, review *hr.Performance) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a full record", func(t *testing.T) {
		employees := new(MockEmployeeRepository)
		employees.On("Save", mock.Anything, mock.AnythingOfType("*hr.Employee")).Return(nil)

		svc := NewEmployeeService(employees, new(MockPerformanceRepository), zap.NewNop())

		resp, err := svc.CreateEmployee(ctx, CreateEmployeeInput{
			Name:       "Siti Rahma",
			Department: "Accounting",
			Position:   "Staff",
			JoinDate:   "2024-02-01",
			Salary:     "7500000",
		})
		require.NoError(t, err)

		assert.Equal(t, "Siti Rahma", resp.Name)
		assert.Equal(t, "2024-02-01", resp.JoinDate)
		assert.True(t, resp.Salary.Equal(decimal.NewFromInt(7500000)))
		employees.AssertExpectations(t)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		employees := new(MockEmployeeRepository)
		svc := NewEmployeeService(employees, new(MockPerformanceRepository), zap.NewNop())

		_, err := svc.CreateEmployee(ctx, CreateEmployeeInput{Name: "   "})
		require.Error(t, err)
		employees.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unparsable salary", func(t *testing.T) {
		svc := NewEmployeeService(new(MockEmployeeRepository), new(MockPerformanceRepository), zap.NewNop())

		_, err := svc.CreateEmployee(ctx, CreateEmployeeInput{Name: "Budi", Salary: "lots"})
		require.Error(t, err)
	})

	t.Run("rejects malformed join date", func(t *testing.T) {
		svc := NewEmployeeService(new(MockEmployeeRepository), new(MockPerformanceRepository), zap.NewNop())

		_, err := svc.CreateEmployee(ctx, CreateEmployeeInput{Name: "Budi", JoinDate: "01/02/2024"})
		require.Error(t, err)
	})
}

func TestUpdateEmployee(t *testing.T) {
	ctx := context.Background()

	existing, err := hr.NewEmployee("Budi", "Marketing", "Staff", decimal.NewFromInt(5000000), mustDate(t, "2023-01-15"))
	require.NoError(t, err)

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		employees := new(MockEmployeeRepository)
		employees.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		employees.On("Save", mock.Anything, mock.Anything).Return(nil)

		svc := NewEmployeeService(employees, new(MockPerformanceRepository), zap.NewNop())

		position := "Supervisor"
		resp, err := svc.UpdateEmployee(ctx, existing.ID, UpdateEmployeeInput{Position: &position})
		require.NoError(t, err)

		assert.Equal(t, "Supervisor", resp.Position)
		assert.Equal(t, "Budi", resp.Name)
		assert.Equal(t, "Marketing", resp.Department)
	})

	t.Run("missing employee surfaces not found", func(t *testing.T) {
		employees := new(MockEmployeeRepository)
		id := uuid.New()
		employees.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		svc := NewEmployeeService(employees, new(MockPerformanceRepository), zap.NewNop())

		_, err := svc.UpdateEmployee(ctx, id, UpdateEmployeeInput{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("negative salary rejected", func(t *testing.T) {
		employees := new(MockEmployeeRepository)
		employees.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

		svc := NewEmployeeService(employees, new(MockPerformanceRepository), zap.NewNop())

		salary := "-100"
		_, err := svc.UpdateEmployee(ctx, existing.ID, UpdateEmployeeInput{Salary: &salary})
		require.Error(t, err)
		employees.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestRecordPerformance(t *testing.T) {
	ctx := context.Background()

	employee, err := hr.NewEmployee("Siti", "Accounting", "Staff", decimal.Zero, mustDate(t, "2024-02-01"))
	require.NoError(t, err)

	t.Run("records a review for an existing employee", func(t *testing.T) {
		employees := new(MockEmployeeRepository)
		reviews := new(MockPerformanceRepository)
		employees.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)
		reviews.On("Save", mock.Anything, mock.AnythingOfType("*hr.Performance")).Return(nil)

		svc := NewEmployeeService(employees, reviews, zap.NewNop())

		resp, err := svc.RecordPerformance(ctx, RecordPerformanceInput{
			EmployeeID: employee.ID,
			Period:     "2026-07",
			Score:      88,
			Evaluator:  "rina",
		})
		require.NoError(t, err)

		assert.Equal(t, employee.ID, resp.EmployeeID)
		assert.Equal(t, "2026-07", resp.Period)
		assert.Equal(t, 88.0, resp.Score)
	})

	t.Run("rejects review for unknown employee", func(t *testing.T) {
		employees := new(MockEmployeeRepository)
		reviews := new(MockPerformanceRepository)
		id := uuid.New()
		employees.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		svc := NewEmployeeService(employees, reviews, zap.NewNop())

		_, err := svc.RecordPerformance(ctx, RecordPerformanceInput{EmployeeID: id, Period: "2026-07", Score: 50})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		reviews.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects malformed period", func(t *testing.T) {
		employees := new(MockEmployeeRepository)
		employees.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)

		svc := NewEmployeeService(employees, new(MockPerformanceRepository), zap.NewNop())

		_, err := svc.RecordPerformance(ctx, RecordPerformanceInput{
			EmployeeID: employee.ID,
			Period:     "July 2026",
			Score:      70,
		})
		require.Error(t, err)
	})
}

func mustDate(t *testing.T, s string) (d time.Time) {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}
