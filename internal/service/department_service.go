package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecity-api/internal/domain"
	"ecity-api/internal/dto"
	"ecity-api/internal/repository"
	"ecity-api/internal/response"
)

const departmentExists = "A department with this name already exists"

// DepartmentService manages municipal departments
type DepartmentService interface {
	CreateDepartment(ctx context.Context, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error)
	GetDepartment(ctx context.Context, id uuid.UUID) (*dto.DepartmentResponse, error)
	ListDepartments(ctx context.Context) ([]*dto.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, id uuid.UUID, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
	SeedDepartments(ctx context.Context, reqs []dto.DepartmentRequest) (int, error)
}

type departmentServiceImpl struct {
	deptRepo repository.DepartmentRepository
	logger   *zap.Logger
}

func NewDepartmentService(deptRepo repository.DepartmentRepository, logger *zap.Logger) DepartmentService {
	return &departmentServiceImpl{deptRepo: deptRepo, logger: logger}
}

func (s *departmentServiceImpl) CreateDepartment(ctx context.Context, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	if err := s.ensureNameFree(ctx, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	dept := &domain.Department{}
	applyDepartment(dept, req)
	if err := s.deptRepo.Create(ctx, dept); err != nil {
		if isUniqueViolation(err) {
			return nil, response.NewConflictError(departmentExists)
		}
		return nil, internalError("Failed to create department", err)
	}
	return dto.NewDepartmentResponse(dept), nil
}

func (s *departmentServiceImpl) GetDepartment(ctx context.Context, id uuid.UUID) (*dto.DepartmentResponse, error) {
	dept, err := s.deptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Department not found", "Failed to fetch department")
	}
	return dto.NewDepartmentResponse(dept), nil
}

func (s *departmentServiceImpl) ListDepartments(ctx context.Context) ([]*dto.DepartmentResponse, error) {
	depts, err := s.deptRepo.FindAll(ctx)
	if err != nil {
		return nil, internalError("Failed to list departments", err)
	}
	result := make([]*dto.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		result = append(result, dto.NewDepartmentResponse(d))
	}
	return result, nil
}

// UpdateDepartment replaces every field of a department
func (s *departmentServiceImpl) UpdateDepartment(ctx context.Context, id uuid.UUID, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	dept, err := s.deptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Department not found", "Failed to fetch department")
	}
	if err := s.ensureNameFree(ctx, req.Name, id); err != nil {
		return nil, err
	}

	applyDepartment(dept, req)
	if err := s.deptRepo.Update(ctx, dept); err != nil {
		if isUniqueViolation(err) {
			return nil, response.NewConflictError(departmentExists)
		}
		return nil, internalError("Failed to update department", err)
	}
	return dto.NewDepartmentResponse(dept), nil
}

// DeleteDepartment removes a department. Issues keep the department name they were assigned.
func (s *departmentServiceImpl) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	if err := s.deptRepo.Delete(ctx, id); err != nil {
		return lookupError(err, "Department not found", "Failed to delete department")
	}
	return nil
}

// SeedDepartments creates the departments whose names do not exist yet and
// returns how many were created
func (s *departmentServiceImpl) SeedDepartments(ctx context.Context, reqs []dto.DepartmentRequest) (int, error) {
	created := 0
	for i := range reqs {
		_, err := s.CreateDepartment(ctx, &reqs[i])
		var appErr *response.AppError
		switch {
		case err == nil:
			created++
		case errors.As(err, &appErr) && appErr.Code == response.ErrCodeAlreadyExists:
			s.logger.Debug("Department already present", zap.String("name", reqs[i].Name))
		default:
			return created, err
		}
	}
	return created, nil
}

func (s *departmentServiceImpl) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.deptRepo.FindByName(ctx, name)
	if err == nil && existing.ID != self {
		return response.NewConflictError(departmentExists)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return internalError("Failed to check department name", err)
	}
	return nil
}

func applyDepartment(dept *domain.Department, req *dto.DepartmentRequest) {
	dept.Name = req.Name
	dept.Head = req.Head
	dept.Contact = req.Contact
	dept.Email = req.Email
	dept.Location = req.Location
	dept.Description = req.Description
	dept.ImageURL = req.ImageURL
}
