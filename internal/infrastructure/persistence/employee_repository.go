package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/holycity/portal/internal/domain/hr"
	"github.com/holycity/portal/internal/domain/shared"
	"github.com/holycity/portal/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements hr.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListAll lists the whole directory ordered by name
func (r *GormEmployeeRepository) ListAll(ctx context.Context) ([]hr.Employee, error) {
	var employeeModels []models.EmployeeModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&employeeModels).Error; err != nil {
		return nil, err
	}

	employees := make([]hr.Employee, len(employeeModels))
	for i := range employeeModels {
		employees[i] = *employeeModels[i].ToDomain()
	}
	return employees, nil
}

// Save inserts or updates an employee record
func (r *GormEmployeeRepository) Save(ctx context.Context, employee *hr.Employee) error {
	return r.db.WithContext(ctx).Save(models.EmployeeModelFromDomain(employee)).Error
}

var _ hr.EmployeeRepository = (*GormEmployeeRepository)(nil)

// GormPerformanceRepository implements hr.PerformanceRepository using GORM
type GormPerformanceRepository struct {
	db *gorm.DB
}

// NewGormPerformanceRepository creates a new GormPerformanceRepository
func NewGormPerformanceRepository(db *gorm.DB) *GormPerformanceRepository {
	return &GormPerformanceRepository{db: db}
}

// ListByEmployee lists an employee's reviews, most recent period first
func (r *GormPerformanceRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]hr.Performance, error) {
	var reviewModels []models.PerformanceModel
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("period DESC").
		Find(&reviewModels).Error
	if err != nil {
		return nil, err
	}

	reviews := make([]hr.Performance, len(reviewModels))
	for i := range reviewModels {
		reviews[i] = *reviewModels[i].ToDomain()
	}
	return reviews, nil
}

// Save inserts or updates a performance review
func (r *GormPerformanceRepository) Save(ctx context.Context, review *hr.Performance) error {
	return r.db.WithContext(ctx).Save(models.PerformanceModelFromDomain(review)).Error
}

var _ hr.PerformanceRepository = (*GormPerformanceRepository)(nil)
