package handler

import (
	"context"

	"github.com/google/uuid"

	"ecity-api/internal/auth"
	"ecity-api/internal/dto"
	"ecity-api/internal/service"
)

// MockIssueService is a mock implementation of IssueService
type MockIssueService struct {
	CreateIssueFunc      func(ctx context.Context, req *dto.CreateIssueRequest, reporterID *uuid.UUID, image *service.ImageUpload) (*dto.IssueResponse, error)
	ListIssuesFunc       func(ctx context.Context, query *dto.IssueListQuery) (*dto.IssueListResponse, error)
	GetIssueFunc         func(ctx context.Context, id uuid.UUID) (*dto.IssueResponse, error)
	TransitionStatusFunc func(ctx context.Context, id uuid.UUID, req *dto.UpdateIssueStatusRequest, actor auth.Identity) (*dto.IssueResponse, error)
	UpvoteFunc           func(ctx context.Context, id uuid.UUID) (*dto.UpvoteResponse, error)
	DeleteIssueFunc      func(ctx context.Context, id uuid.UUID, actor auth.Identity) error
	GetStatusHistoryFunc func(ctx context.Context, id uuid.UUID) ([]*dto.StatusChangeResponse, error)
}

func (m *MockIssueService) CreateIssue(ctx context.Context, req *dto.CreateIssueRequest, reporterID *uuid.UUID, image *service.ImageUpload) (*dto.IssueResponse, error) {
	if m.CreateIssueFunc != nil {
		return m.CreateIssueFunc(ctx, req, reporterID, image)
	}
	return &dto.IssueResponse{ID: uuid.New(), Title: req.Title, Status: "pending"}, nil
}

func (m *MockIssueService) ListIssues(ctx context.Context, query *dto.IssueListQuery) (*dto.IssueListResponse, error) {
	if m.ListIssuesFunc != nil {
		return m.ListIssuesFunc(ctx, query)
	}
	return &dto.IssueListResponse{Issues: []*dto.IssueResponse{}, Page: 1, Limit: 20}, nil
}

func (m *MockIssueService) GetIssue(ctx context.Context, id uuid.UUID) (*dto.IssueResponse, error) {
	if m.GetIssueFunc != nil {
		return m.GetIssueFunc(ctx, id)
	}
	return &dto.IssueResponse{ID: id}, nil
}

func (m *MockIssueService) TransitionStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateIssueStatusRequest, actor auth.Identity) (*dto.IssueResponse, error) {
	if m.TransitionStatusFunc != nil {
		return m.TransitionStatusFunc(ctx, id, req, actor)
	}
	return &dto.IssueResponse{ID: id, Status: req.Status}, nil
}

func (m *MockIssueService) Upvote(ctx context.Context, id uuid.UUID) (*dto.UpvoteResponse, error) {
	if m.UpvoteFunc != nil {
		return m.UpvoteFunc(ctx, id)
	}
	return &dto.UpvoteResponse{ID: id, Upvotes: 1}, nil
}

func (m *MockIssueService) DeleteIssue(ctx context.Context, id uuid.UUID, actor auth.Identity) error {
	if m.DeleteIssueFunc != nil {
		return m.DeleteIssueFunc(ctx, id, actor)
	}
	return nil
}

func (m *MockIssueService) GetStatusHistory(ctx context.Context, id uuid.UUID) ([]*dto.StatusChangeResponse, error) {
	if m.GetStatusHistoryFunc != nil {
		return m.GetStatusHistoryFunc(ctx, id)
	}
	return nil, nil
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	GetStatsFunc      func(ctx context.Context, reporterID *uuid.UUID) (*dto.StatsResponse, error)
	CategoryStatsFunc func(ctx context.Context) ([]dto.CategoryStat, error)
	StatusStatsFunc   func(ctx context.Context) ([]dto.StatusStat, error)
	TrendFunc         func(ctx context.Context, days int) ([]dto.TrendPoint, error)
}

func (m *MockStatsService) GetStats(ctx context.Context, reporterID *uuid.UUID) (*dto.StatsResponse, error) {
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc(ctx, reporterID)
	}
	return &dto.StatsResponse{}, nil
}

func (m *MockStatsService) CategoryStats(ctx context.Context) ([]dto.CategoryStat, error) {
	if m.CategoryStatsFunc != nil {
		return m.CategoryStatsFunc(ctx)
	}
	return nil, nil
}

func (m *MockStatsService) StatusStats(ctx context.Context) ([]dto.StatusStat, error) {
	if m.StatusStatsFunc != nil {
		return m.StatusStatsFunc(ctx)
	}
	return nil, nil
}

func (m *MockStatsService) Trend(ctx context.Context, days int) ([]dto.TrendPoint, error) {
	if m.TrendFunc != nil {
		return m.TrendFunc(ctx, days)
	}
	return nil, nil
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	AddCommentFunc   func(ctx context.Context, issueID, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListCommentsFunc func(ctx context.Context, issueID uuid.UUID) ([]*dto.CommentResponse, error)
}

func (m *MockCommentService) AddComment(ctx context.Context, issueID, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, issueID, userID, req)
	}
	return &dto.CommentResponse{ID: uuid.New(), IssueID: issueID, Content: req.Content}, nil
}

func (m *MockCommentService) ListComments(ctx context.Context, issueID uuid.UUID) ([]*dto.CommentResponse, error) {
	if m.ListCommentsFunc != nil {
		return m.ListCommentsFunc(ctx, issueID)
	}
	return []*dto.CommentResponse{}, nil
}
