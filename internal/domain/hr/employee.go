package hr

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/holycity/portal/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Employee is an entry in the company directory.
type Employee struct {
	shared.BaseEntity
	Name       string
	Department string
	Position   string
	JoinDate   time.Time
	Salary     decimal.Decimal
}

// NewEmployee creates an employee record. Name is mandatory; the other
// attributes are optional and trimmed.
func NewEmployee(name, department, position string, salary decimal.Decimal, joinDate time.Time) (*Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee name is required")
	}
	if salary.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Salary cannot be negative")
	}
	return &Employee{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Department: strings.TrimSpace(department),
		Position:   strings.TrimSpace(position),
		JoinDate:   joinDate,
		Salary:     salary,
	}, nil
}

// EmployeeRepository provides access to the employee directory.
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	ListAll(ctx context.Context) ([]Employee, error)
	Save(ctx context.Context, employee *Employee) error
}
