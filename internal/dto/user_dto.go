package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ecity-api/internal/domain"
)

// RegisterRequest represents a new citizen account
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50" example:"Asha Patel"`
	Email    string `json:"email" validate:"required,email,max=255" example:"asha@example.com"`
	Password string `json:"password" validate:"required,min=6,max=72" example:"secret123"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// LoginRequest represents e-mail and password credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"asha@example.com"`
	Password string `json:"password" validate:"required" example:"secret123"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// UpdateRoleRequest changes a user's role
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=citizen admin" example:"admin"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// UserResponse is a user's own profile
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// UserSummary is the public part of a profile shown next to issues and comments
type UserSummary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar,omitempty"`
	Role   string    `json:"role"`
}

// NewUserSummary returns nil for a nil user (anonymous reports)
func NewUserSummary(u *domain.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:     u.ID,
		Name:   u.Name,
		Avatar: u.Avatar,
		Role:   string(u.Role),
	}
}
