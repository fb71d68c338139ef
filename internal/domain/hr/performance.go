package hr

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/holycity/portal/internal/domain/shared"
)

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Performance is one periodic review of an employee.
type Performance struct {
	shared.BaseEntity
	EmployeeID uuid.UUID
	// Period is the reviewed month in "YYYY-MM" form.
	Period     string
	Score      float64
	Remarks    string
	Evaluator  string
	RecordedAt time.Time
}

// NewPerformance creates a performance review record.
func NewPerformance(employeeID uuid.UUID, period string, score float64, remarks, evaluator string) (*Performance, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee is required")
	}
	if !periodPattern.MatchString(period) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Period must be in YYYY-MM form")
	}
	if score < 0 || score > 100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Score must be between 0 and 100")
	}
	return &Performance{
		BaseEntity: shared.NewBaseEntity(),
		EmployeeID: employeeID,
		Period:     period,
		Score:      score,
		Remarks:    remarks,
		Evaluator:  evaluator,
		RecordedAt: time.Now(),
	}, nil
}

// PerformanceRepository provides access to performance reviews.
type PerformanceRepository interface {
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Performance, error)
	Save(ctx context.Context, review *Performance) error
}
