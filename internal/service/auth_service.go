package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecity-api/internal/auth"
	"ecity-api/internal/domain"
	"ecity-api/internal/dto"
	"ecity-api/internal/repository"
	"ecity-api/internal/response"
)

const invalidCredentials = "Invalid email or password"

// TokenIssuer signs access tokens for users
type TokenIssuer interface {
	Generate(user *domain.User) (string, error)
}

// AuthService registers and authenticates users
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authServiceImpl struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a citizen account. A taken e-mail is a conflict.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, response.NewConflictError("Email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internalError("Failed to check email", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, internalError("Failed to register", err)
	}

	user := &domain.User{
		Email:    req.Email,
		Password: hash,
		Name:     req.Name,
		Role:     domain.RoleCitizen,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, response.NewConflictError("Email is already registered")
		}
		return nil, internalError("Failed to register", err)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return s.authResponse(user)
}

// Login checks e-mail and password. Accounts without a password (OAuth only)
// cannot log in this way.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorizedError(invalidCredentials)
		}
		return nil, internalError("Failed to log in", err)
	}

	if !auth.ComparePassword(user.Password, req.Password) {
		return nil, response.NewUnauthorizedError(invalidCredentials)
	}

	return s.authResponse(user)
}

// Me returns the caller's profile
func (s *authServiceImpl) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User not found", "Failed to fetch user")
	}
	return dto.NewUserResponse(user), nil
}

func (s *authServiceImpl) authResponse(user *domain.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, internalError("Failed to issue token", err)
	}
	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}
