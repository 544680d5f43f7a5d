package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"ecity-api/internal/domain"
	"ecity-api/internal/dto"
	"ecity-api/internal/repository"
)

// AnnouncementService manages public notices
type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, authorID uuid.UUID, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	ListAnnouncements(ctx context.Context) ([]*dto.AnnouncementResponse, error)
	UpdateAnnouncement(ctx context.Context, id uuid.UUID, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	DeleteAnnouncement(ctx context.Context, id uuid.UUID) error
}

type announcementServiceImpl struct {
	repo repository.AnnouncementRepository
}

func NewAnnouncementService(repo repository.AnnouncementRepository) AnnouncementService {
	return &announcementServiceImpl{repo: repo}
}

func (s *announcementServiceImpl) CreateAnnouncement(ctx context.Context, authorID uuid.UUID, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	priority := domain.AnnouncementPriority(req.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	a := &domain.Announcement{
		Title:    req.Title,
		Content:  req.Content,
		Priority: priority,
		AuthorID: authorID,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, internalError("Failed to create announcement", err)
	}

	return s.reload(ctx, a)
}

func (s *announcementServiceImpl) ListAnnouncements(ctx context.Context) ([]*dto.AnnouncementResponse, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, internalError("Failed to list announcements", err)
	}
	result := make([]*dto.AnnouncementResponse, 0, len(items))
	for _, a := range items {
		result = append(result, dto.NewAnnouncementResponse(a))
	}
	return result, nil
}

// UpdateAnnouncement changes only the supplied fields
func (s *announcementServiceImpl) UpdateAnnouncement(ctx context.Context, id uuid.UUID, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	req.Normalize()
	if req.Priority != nil {
		p := strings.ToLower(*req.Priority)
		req.Priority = &p
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Announcement not found", "Failed to fetch announcement")
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.Priority != nil {
		a.Priority = domain.AnnouncementPriority(*req.Priority)
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, internalError("Failed to update announcement", err)
	}
	return dto.NewAnnouncementResponse(a), nil
}

func (s *announcementServiceImpl) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "Announcement not found", "Failed to delete announcement")
	}
	return nil
}

func (s *announcementServiceImpl) reload(ctx context.Context, a *domain.Announcement) (*dto.AnnouncementResponse, error) {
	loaded, err := s.repo.FindByID(ctx, a.ID)
	if err != nil {
		return dto.NewAnnouncementResponse(a), nil
	}
	return dto.NewAnnouncementResponse(loaded), nil
}
