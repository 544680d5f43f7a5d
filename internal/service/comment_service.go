package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ecity-api/internal/domain"
	"ecity-api/internal/dto"
	"ecity-api/internal/metrics"
	"ecity-api/internal/repository"
)

// CommentService defines the interface for comment business logic
type CommentService interface {
	AddComment(ctx context.Context, issueID, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, issueID uuid.UUID) ([]*dto.CommentResponse, error)
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepository
	issueRepo   repository.IssueRepository
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(commentRepo repository.CommentRepository, issueRepo repository.IssueRepository, m *metrics.Metrics, logger *zap.Logger) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		issueRepo:   issueRepo,
		metrics:     m,
		logger:      logger,
	}
}

// AddComment creates a comment on an existing issue and returns it with the
// author's public profile
func (s *commentServiceImpl) AddComment(ctx context.Context, issueID, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.issueRepo.FindByID(ctx, issueID); err != nil {
		return nil, lookupError(err, "Issue not found", "Failed to verify issue")
	}

	comment := &domain.Comment{
		IssueID: issueID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, internalError("Failed to create comment", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementCommentCreated()
	}

	created, err := s.commentRepo.FindByID(ctx, comment.ID)
	if err != nil {
		s.logger.Warn("Failed to reload created comment", zap.String("comment_id", comment.ID.String()), zap.Error(err))
		return dto.NewCommentResponse(comment), nil
	}
	return dto.NewCommentResponse(created), nil
}

// ListComments returns an issue's comments, oldest first
func (s *commentServiceImpl) ListComments(ctx context.Context, issueID uuid.UUID) ([]*dto.CommentResponse, error) {
	if _, err := s.issueRepo.FindByID(ctx, issueID); err != nil {
		return nil, lookupError(err, "Issue not found", "Failed to verify issue")
	}

	comments, err := s.commentRepo.FindByIssueID(ctx, issueID)
	if err != nil {
		return nil, internalError("Failed to fetch comments", err)
	}

	result := make([]*dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		result = append(result, dto.NewCommentResponse(c))
	}
	return result, nil
}
