package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ecity-api/internal/domain"
)

// CreateCommentRequest represents the request to comment on an issue
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500" example:"Same problem on my street"`
}

func (r *CreateCommentRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
}

// CommentResponse represents a comment joined with its author's public profile
type CommentResponse struct {
	ID        uuid.UUID    `json:"id"`
	IssueID   uuid.UUID    `json:"issueId"`
	Content   string       `json:"content"`
	User      *UserSummary `json:"user,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

func NewCommentResponse(c *domain.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		IssueID:   c.IssueID,
		Content:   c.Content,
		User:      NewUserSummary(c.User),
		CreatedAt: c.CreatedAt,
	}
}
