package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ecity-api/internal/domain"
	"ecity-api/internal/dto"
	"ecity-api/internal/repository"
)

// UserService is the admin view of user accounts
type UserService interface {
	ListUsers(ctx context.Context) ([]*dto.UserResponse, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, req *dto.UpdateRoleRequest) (*dto.UserResponse, error)
	SetRoleByEmail(ctx context.Context, email string, role domain.Role) (*dto.UserResponse, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) UserService {
	return &userServiceImpl{userRepo: userRepo, logger: logger}
}

func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, internalError("Failed to list users", err)
	}
	result := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, dto.NewUserResponse(u))
	}
	return result, nil
}

// UpdateRole changes a user's role
func (s *userServiceImpl) UpdateRole(ctx context.Context, userID uuid.UUID, req *dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRole(ctx, userID, domain.Role(req.Role)); err != nil {
		return nil, lookupError(err, "User not found", "Failed to update role")
	}
	s.logger.Info("User role changed", zap.String("user_id", userID.String()), zap.String("role", req.Role))

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User not found", "Failed to fetch user")
	}
	return dto.NewUserResponse(user), nil
}

// SetRoleByEmail is the operator path for bootstrapping the first admin
func (s *userServiceImpl) SetRoleByEmail(ctx context.Context, email string, role domain.Role) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, lookupError(err, "User not found", "Failed to fetch user")
	}
	return s.UpdateRole(ctx, user.ID, &dto.UpdateRoleRequest{Role: string(role)})
}
