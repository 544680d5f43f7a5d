package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"ecity-api/internal/auth"
	"ecity-api/internal/client"
	"ecity-api/internal/domain"
	"ecity-api/internal/dto"
	"ecity-api/internal/lifecycle"
	"ecity-api/internal/metrics"
	"ecity-api/internal/realtime"
	"ecity-api/internal/repository"
	"ecity-api/internal/response"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ImageUpload is an optional photo attached to a new issue
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// IssueService defines the interface for issue business logic
type IssueService interface {
	CreateIssue(ctx context.Context, req *dto.CreateIssueRequest, reporterID *uuid.UUID, image *ImageUpload) (*dto.IssueResponse, error)
	ListIssues(ctx context.Context, query *dto.IssueListQuery) (*dto.IssueListResponse, error)
	GetIssue(ctx context.Context, id uuid.UUID) (*dto.IssueResponse, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateIssueStatusRequest, actor auth.Identity) (*dto.IssueResponse, error)
	Upvote(ctx context.Context, id uuid.UUID) (*dto.UpvoteResponse, error)
	DeleteIssue(ctx context.Context, id uuid.UUID, actor auth.Identity) error
	GetStatusHistory(ctx context.Context, id uuid.UUID) ([]*dto.StatusChangeResponse, error)
}

// issueServiceImpl is the implementation of IssueService
type issueServiceImpl struct {
	issueRepo repository.IssueRepository
	images    client.ImageStore
	events    EventPublisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewIssueService creates a new instance of IssueService. images and events may be nil.
func NewIssueService(
	issueRepo repository.IssueRepository,
	images client.ImageStore,
	events EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) IssueService {
	return &issueServiceImpl{
		issueRepo: issueRepo,
		images:    images,
		events:    events,
		metrics:   m,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateIssue validates and stores a new report in status pending. An image
// that cannot be stored is logged and dropped.
func (s *issueServiceImpl) CreateIssue(ctx context.Context, req *dto.CreateIssueRequest, reporterID *uuid.UUID, image *ImageUpload) (*dto.IssueResponse, error) {
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	issue := &domain.Issue{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.IssueCategory(req.Category),
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      domain.IssueStatusPending,
		Upvotes:     0,
		ReporterID:  reporterID,
	}

	if image != nil {
		url, err := s.storeImage(ctx, image)
		if err != nil {
			s.logger.Warn("Issue image not stored, creating issue without it",
				zap.String("file_name", image.FileName),
				zap.Error(err))
		} else {
			issue.ImageURL = url
		}
	}

	if err := s.issueRepo.Create(ctx, issue); err != nil {
		return nil, internalError("Failed to create issue", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementIssueCreated(string(issue.Category))
	}
	s.publish(realtime.EventIssueCreated, issue.ID, issue.Status, nil)

	created, err := s.issueRepo.FindByID(ctx, issue.ID)
	if err != nil {
		s.logger.Warn("Failed to reload created issue", zap.String("issue_id", issue.ID.String()), zap.Error(err))
		return dto.NewIssueResponse(issue), nil
	}
	return dto.NewIssueResponse(created), nil
}

func (s *issueServiceImpl) storeImage(ctx context.Context, image *ImageUpload) (string, error) {
	if s.images == nil {
		return "", client.ErrStorageNotConfigured
	}
	ext, err := client.ValidateImage(image.FileName, image.ContentType, image.Size)
	if err != nil {
		return "", err
	}
	key := s.images.GenerateFileKey(ext, s.now())
	return s.images.UploadFile(ctx, key, image.Reader, image.Size, image.ContentType)
}

// ListIssues returns one page of issues, newest first
func (s *issueServiceImpl) ListIssues(ctx context.Context, query *dto.IssueListQuery) (*dto.IssueListResponse, error) {
	if err := dto.Validate(query); err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := repository.IssueFilter{
		Category: domain.IssueCategory(query.Category),
		Status:   domain.IssueStatus(query.Status),
		Search:   query.Search,
		Page:     page,
		Limit:    limit,
	}
	if query.UserID != "" {
		id, err := uuid.Parse(query.UserID)
		if err != nil {
			return nil, response.NewValidationError("User id must be a valid ID", "userId")
		}
		filter.ReporterID = &id
	}

	issues, total, err := s.issueRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, internalError("Failed to list issues", err)
	}

	resp := &dto.IssueListResponse{
		Issues: make([]*dto.IssueResponse, 0, len(issues)),
		Total:  total,
		Page:   page,
		Limit:  limit,
	}
	for _, issue := range issues {
		resp.Issues = append(resp.Issues, dto.NewIssueResponse(issue))
	}
	return resp, nil
}

// GetIssue retrieves an issue by ID
func (s *issueServiceImpl) GetIssue(ctx context.Context, id uuid.UUID) (*dto.IssueResponse, error) {
	issue, err := s.issueRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Issue not found", "Failed to fetch issue")
	}
	return dto.NewIssueResponse(issue), nil
}

// TransitionStatus moves an issue to the requested status. Only admins may
// do this. The supplied supplementary fields are merged, nothing is cleared,
// and an audit row is written with the update.
func (s *issueServiceImpl) TransitionStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateIssueStatusRequest, actor auth.Identity) (*dto.IssueResponse, error) {
	if !actor.IsAdmin() {
		return nil, response.NewForbiddenError("Admin access required")
	}

	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	transition := req.ToTransition()
	if err := lifecycle.Validate(transition); err != nil {
		var verr *lifecycle.ValidationError
		if errors.As(err, &verr) {
			return nil, response.NewValidationError(verr.Error(), verr.FieldNames()...)
		}
		return nil, response.NewValidationError(err.Error())
	}

	issue, err := s.issueRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Issue not found", "Failed to fetch issue")
	}

	from := issue.Status
	updates, changes := lifecycle.Apply(issue, transition, s.now())

	changesJSON, err := json.Marshal(changes)
	if err != nil {
		return nil, internalError("Failed to record status change", err)
	}
	change := &domain.IssueStatusChange{
		IssueID:    issue.ID,
		FromStatus: from,
		ToStatus:   transition.Target,
		ActorID:    actor.UserID,
		Changes:    datatypes.JSON(changesJSON),
	}

	if err := s.issueRepo.UpdateStatus(ctx, issue.ID, updates, change); err != nil {
		return nil, lookupError(err, "Issue not found", "Failed to update issue status")
	}

	s.logger.Info("Issue status changed",
		zap.String("issue_id", issue.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(transition.Target)),
		zap.String("actor_id", actor.UserID.String()))

	if s.metrics != nil {
		s.metrics.RecordStatusTransition(string(from), string(transition.Target))
	}
	s.publish(realtime.EventIssueStatusChanged, issue.ID, transition.Target, nil)

	updated, err := s.issueRepo.FindByID(ctx, issue.ID)
	if err != nil {
		s.logger.Warn("Failed to reload issue after status change", zap.String("issue_id", issue.ID.String()), zap.Error(err))
		return dto.NewIssueResponse(issue), nil
	}
	return dto.NewIssueResponse(updated), nil
}

// Upvote adds one to the issue's upvote count and returns the new count.
// Votes are not de-duplicated per user.
func (s *issueServiceImpl) Upvote(ctx context.Context, id uuid.UUID) (*dto.UpvoteResponse, error) {
	count, err := s.issueRepo.IncrementUpvotes(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Issue not found", "Failed to upvote issue")
	}

	if s.metrics != nil {
		s.metrics.IncrementUpvotes()
	}
	s.publish(realtime.EventIssueUpvoted, id, "", &count)

	return &dto.UpvoteResponse{ID: id, Upvotes: count}, nil
}

// DeleteIssue removes an issue with its comments and status history. The
// stored image is removed on a best-effort basis.
func (s *issueServiceImpl) DeleteIssue(ctx context.Context, id uuid.UUID, actor auth.Identity) error {
	if !actor.IsAdmin() {
		return response.NewForbiddenError("Admin access required")
	}

	issue, err := s.issueRepo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "Issue not found", "Failed to fetch issue")
	}

	if err := s.issueRepo.DeleteWithComments(ctx, id); err != nil {
		return lookupError(err, "Issue not found", "Failed to delete issue")
	}

	if issue.ImageURL != "" && s.images != nil {
		if key, ok := s.images.KeyFromURL(issue.ImageURL); ok {
			if err := s.images.DeleteFile(ctx, key); err != nil {
				s.logger.Warn("Failed to delete issue image",
					zap.String("issue_id", id.String()),
					zap.String("file_key", key),
					zap.Error(err))
			}
		}
	}

	s.logger.Info("Issue deleted", zap.String("issue_id", id.String()), zap.String("actor_id", actor.UserID.String()))
	s.publish(realtime.EventIssueDeleted, id, "", nil)
	return nil
}

// GetStatusHistory returns the audit trail of an issue, oldest first
func (s *issueServiceImpl) GetStatusHistory(ctx context.Context, id uuid.UUID) ([]*dto.StatusChangeResponse, error) {
	if _, err := s.issueRepo.FindByID(ctx, id); err != nil {
		return nil, lookupError(err, "Issue not found", "Failed to fetch issue")
	}

	changes, err := s.issueRepo.FindStatusHistory(ctx, id)
	if err != nil {
		return nil, internalError("Failed to fetch status history", err)
	}

	result := make([]*dto.StatusChangeResponse, 0, len(changes))
	for _, c := range changes {
		entry := &dto.StatusChangeResponse{
			ID:         c.ID,
			IssueID:    c.IssueID,
			FromStatus: string(c.FromStatus),
			ToStatus:   string(c.ToStatus),
			ActorID:    c.ActorID,
			CreatedAt:  c.CreatedAt,
		}
		if len(c.Changes) > 0 {
			if err := json.Unmarshal(c.Changes, &entry.Changes); err != nil {
				s.logger.Warn("Unreadable status change payload", zap.String("change_id", c.ID.String()), zap.Error(err))
			}
		}
		result = append(result, entry)
	}
	return result, nil
}

func (s *issueServiceImpl) publish(t realtime.EventType, id uuid.UUID, status domain.IssueStatus, upvotes *int) {
	if s.events == nil {
		return
	}
	s.events.Publish(realtime.Event{
		Type:      t,
		IssueID:   id,
		Status:    string(status),
		Upvotes:   upvotes,
		Timestamp: s.now(),
	})
}
