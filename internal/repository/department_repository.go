package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecity-api/internal/domain"
)

// DepartmentRepository defines the interface for department data access
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Department, error)
	FindByName(ctx context.Context, name string) (*domain.Department, error)
	FindAll(ctx context.Context) ([]*domain.Department, error)
	Update(ctx context.Context, dept *domain.Department) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type departmentRepositoryImpl struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new instance of DepartmentRepository
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

func (r *departmentRepositoryImpl) Create(ctx context.Context, dept *domain.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	var dept domain.Department
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Department, error) {
	var dept domain.Department
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

// FindAll returns departments ordered by name
func (r *departmentRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Department, error) {
	var depts []*domain.Department
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

func (r *departmentRepositoryImpl) Update(ctx context.Context, dept *domain.Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

// Delete removes the department only; issues keep the department name they were assigned
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Department{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
