package hr

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/holycity/portal/internal/domain/hr"
	"github.com/holycity/portal/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EmployeeService manages the employee directory and performance reviews
type EmployeeService struct {
	employees hr.EmployeeRepository
	reviews   hr.PerformanceRepository
	logger    *zap.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	employees hr.EmployeeRepository,
	reviews hr.PerformanceRepository,
	logger *zap.Logger,
) *EmployeeService {
	return &EmployeeService{
		employees: employees,
		reviews:   reviews,
		logger:    logger,
	}
}

// CreateEmployeeInput contains data for creating an employee record
type CreateEmployeeInput struct {
	Name       string
	Department string
	Position   string
	JoinDate   string // "2006-01-02", empty means today
	Salary     string // decimal string, empty means zero
}

// UpdateEmployeeInput contains data for updating an employee record.
// Nil fields are left unchanged.
type UpdateEmployeeInput struct {
	Name       *string
	Department *string
	Position   *string
	JoinDate   *string
	Salary     *string
}

// EmployeeResponse is an employee record in API responses
type EmployeeResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Department string          `json:"department"`
	Position   string          `json:"position"`
	JoinDate   string          `json:"join_date"`
	Salary     decimal.Decimal `json:"salary"`
}

// RecordPerformanceInput contains data for recording a performance review
type RecordPerformanceInput struct {
	EmployeeID uuid.UUID
	Period     string // "YYYY-MM"
	Score      float64
	Remarks    string
	Evaluator  string
}

// PerformanceResponse is a performance review in API responses
type PerformanceResponse struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Period     string    `json:"period"`
	Score      float64   `json:"score"`
	Remarks    string    `json:"remarks,omitempty"`
	Evaluator  string    `json:"evaluator,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// CreateEmployee adds a new employee to the directory
func (s *EmployeeService) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*EmployeeResponse, error) {
	salary, err := parseSalary(input.Salary)
	if err != nil {
		return nil, err
	}
	joinDate, err := parseJoinDate(input.JoinDate)
	if err != nil {
		return nil, err
	}

	employee, err := hr.NewEmployee(input.Name, input.Department, input.Position, salary, joinDate)
	if err != nil {
		return nil, err
	}

	if err := s.employees.Save(ctx, employee); err != nil {
		s.logger.Error("Failed to save employee", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Employee created",
		zap.String("employee_id", employee.ID.String()),
		zap.String("name", employee.Name))

	return toEmployeeResponse(employee), nil
}

// UpdateEmployee applies a partial update to an existing employee record
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uuid.UUID, input UpdateEmployeeInput) (*EmployeeResponse, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Employee name is required")
		}
		employee.Name = *input.Name
	}
	if input.Department != nil {
		employee.Department = *input.Department
	}
	if input.Position != nil {
		employee.Position = *input.Position
	}
	if input.JoinDate != nil {
		joinDate, err := parseJoinDate(*input.JoinDate)
		if err != nil {
			return nil, err
		}
		employee.JoinDate = joinDate
	}
	if input.Salary != nil {
		salary, err := parseSalary(*input.Salary)
		if err != nil {
			return nil, err
		}
		if salary.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Salary cannot be negative")
		}
		employee.Salary = salary
	}

	if err := s.employees.Save(ctx, employee); err != nil {
		s.logger.Error("Failed to update employee", zap.Error(err))
		return nil, err
	}

	return toEmployeeResponse(employee), nil
}

// GetEmployee fetches a single employee record
func (s *EmployeeService) GetEmployee(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// ListEmployees returns the whole directory
func (s *EmployeeService) ListEmployees(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.employees.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = *toEmployeeResponse(&employees[i])
	}
	return responses, nil
}

// RecordPerformance records a periodic review for an employee
func (s *EmployeeService) RecordPerformance(ctx context.Context, input RecordPerformanceInput) (*PerformanceResponse, error) {
	// The review must point at a real directory entry
	if _, err := s.employees.FindByID(ctx, input.EmployeeID); err != nil {
		return nil, err
	}

	review, err := hr.NewPerformance(input.EmployeeID, input.Period, input.Score, input.Remarks, input.Evaluator)
	if err != nil {
		return nil, err
	}

	if err := s.reviews.Save(ctx, review); err != nil {
		s.logger.Error("Failed to save performance review", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Performance review recorded",
		zap.String("employee_id", input.EmployeeID.String()),
		zap.String("period", input.Period))

	return toPerformanceResponse(review), nil
}

// ListPerformance lists all reviews recorded for an employee
func (s *EmployeeService) ListPerformance(ctx context.Context, employeeID uuid.UUID) ([]PerformanceResponse, error) {
	reviews, err := s.reviews.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]PerformanceResponse, len(reviews))
	for i := range reviews {
		responses[i] = *toPerformanceResponse(&reviews[i])
	}
	return responses, nil
}

func parseSalary(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	salary, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Salary must be a decimal number")
	}
	return salary, nil
}

func parseJoinDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_INPUT", "Join date must be in YYYY-MM-DD form")
	}
	return d, nil
}

func toEmployeeResponse(e *hr.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Department: e.Department,
		Position:   e.Position,
		JoinDate:   e.JoinDate.Format("2006-01-02"),
		Salary:     e.Salary,
	}
}

func toPerformanceResponse(p *hr.Performance) *PerformanceResponse {
	return &PerformanceResponse{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		Period:     p.Period,
		Score:      p.Score,
		Remarks:    p.Remarks,
		Evaluator:  p.Evaluator,
		RecordedAt: p.RecordedAt,
	}
}
