package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/holycity/portal/internal/domain/hr"
	"github.com/shopspring/decimal"
)

// EmployeeModel is the persistence model for the employee directory
type EmployeeModel struct {
	BaseModel
	Name       string          `gorm:"size:120;not null;index"`
	Department string          `gorm:"size:80;index"`
	Position   string          `gorm:"size:80"`
	JoinDate   time.Time       `gorm:"not null"`
	Salary     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
}

// TableName specifies the table name
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the model to a domain employee
func (m *EmployeeModel) ToDomain() *hr.Employee {
	return &hr.Employee{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Department: m.Department,
		Position:   m.Position,
		JoinDate:   m.JoinDate,
		Salary:     m.Salary,
	}
}

// EmployeeModelFromDomain converts a domain employee to the persistence model
func EmployeeModelFromDomain(e *hr.Employee) *EmployeeModel {
	m := &EmployeeModel{
		Name:       e.Name,
		Department: e.Department,
		Position:   e.Position,
		JoinDate:   e.JoinDate,
		Salary:     e.Salary,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}

// PerformanceModel is the persistence model for performance reviews
type PerformanceModel struct {
	BaseModel
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Period     string    `gorm:"size:7;not null"`
	Score      float64   `gorm:"not null"`
	Remarks    string    `gorm:"size:500"`
	Evaluator  string    `gorm:"size:80"`
	RecordedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name
func (PerformanceModel) TableName() string {
	return "performance_reviews"
}

// ToDomain converts the model to a domain performance review
func (m *PerformanceModel) ToDomain() *hr.Performance {
	return &hr.Performance{
		BaseEntity: m.BaseModel.ToDomain(),
		EmployeeID: m.EmployeeID,
		Period:     m.Period,
		Score:      m.Score,
		Remarks:    m.Remarks,
		Evaluator:  m.Evaluator,
		RecordedAt: m.RecordedAt,
	}
}

// PerformanceModelFromDomain converts a domain performance review to the
// persistence model
func PerformanceModelFromDomain(p *hr.Performance) *PerformanceModel {
	m := &PerformanceModel{
		EmployeeID: p.EmployeeID,
		Period:     p.Period,
		Score:      p.Score,
		Remarks:    p.Remarks,
		Evaluator:  p.Evaluator,
		RecordedAt: p.RecordedAt,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
