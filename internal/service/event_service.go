package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"ecity-api/internal/domain"
	"ecity-api/internal/dto"
	"ecity-api/internal/repository"
)

// EventService manages community events
type EventService interface {
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error)
	ListEvents(ctx context.Context) ([]*dto.EventResponse, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	JoinEvent(ctx context.Context, id uuid.UUID) (*dto.JoinEventResponse, error)
}

type eventServiceImpl struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) EventService {
	return &eventServiceImpl{repo: repo}
}

func (s *eventServiceImpl) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	eventType := domain.EventType(req.Type)
	if eventType == "" {
		eventType = domain.EventTypeCommunity
	}

	e := &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date.UTC(),
		Location:    req.Location,
		Organizer:   req.Organizer,
		Type:        eventType,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, internalError("Failed to create event", err)
	}
	return dto.NewEventResponse(e), nil
}

func (s *eventServiceImpl) GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Event not found", "Failed to fetch event")
	}
	return dto.NewEventResponse(e), nil
}

// ListEvents returns events ordered by date
func (s *eventServiceImpl) ListEvents(ctx context.Context) ([]*dto.EventResponse, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, internalError("Failed to list events", err)
	}
	result := make([]*dto.EventResponse, 0, len(events))
	for _, e := range events {
		result = append(result, dto.NewEventResponse(e))
	}
	return result, nil
}

// UpdateEvent changes only the supplied fields
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	req.Normalize()
	if req.Type != nil {
		t := strings.ToLower(*req.Type)
		req.Type = &t
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Event not found", "Failed to fetch event")
	}

	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Date != nil {
		e.Date = req.Date.UTC()
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.Organizer != nil {
		e.Organizer = *req.Organizer
	}
	if req.Type != nil {
		e.Type = domain.EventType(*req.Type)
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, internalError("Failed to update event", err)
	}
	return dto.NewEventResponse(e), nil
}

func (s *eventServiceImpl) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "Event not found", "Failed to delete event")
	}
	return nil
}

// JoinEvent adds one participant
func (s *eventServiceImpl) JoinEvent(ctx context.Context, id uuid.UUID) (*dto.JoinEventResponse, error) {
	n, err := s.repo.IncrementParticipants(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Event not found", "Failed to join event")
	}
	return &dto.JoinEventResponse{ID: id, Participants: n}, nil
}
