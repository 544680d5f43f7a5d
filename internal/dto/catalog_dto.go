package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ecity-api/internal/domain"
)

// DepartmentRequest creates or replaces a department
type DepartmentRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200" example:"Public Works"`
	Head        string `json:"head" validate:"max=200"`
	Contact     string `json:"contact" validate:"max=100"`
	Email       string `json:"email" validate:"omitempty,email"`
	Location    string `json:"location" validate:"max=200"`
	Description string `json:"description" validate:"max=2000"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

func (r *DepartmentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Head = strings.TrimSpace(r.Head)
	r.Contact = strings.TrimSpace(r.Contact)
	r.Email = strings.TrimSpace(r.Email)
	r.Location = strings.TrimSpace(r.Location)
	r.Description = strings.TrimSpace(r.Description)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
}

type DepartmentResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Head        string    `json:"head,omitempty"`
	Contact     string    `json:"contact,omitempty"`
	Email       string    `json:"email,omitempty"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewDepartmentResponse(d *domain.Department) *DepartmentResponse {
	return &DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Head:        d.Head,
		Contact:     d.Contact,
		Email:       d.Email,
		Location:    d.Location,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// CreateAnnouncementRequest publishes a notice
type CreateAnnouncementRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=200" example:"Water supply interruption"`
	Content  string `json:"content" validate:"required,min=1,max=5000"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high" example:"high"`
}

func (r *CreateAnnouncementRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
	r.Priority = strings.ToLower(strings.TrimSpace(r.Priority))
}

// UpdateAnnouncementRequest changes only the supplied fields
type UpdateAnnouncementRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=3,max=200"`
	Content  *string `json:"content" validate:"omitempty,min=1,max=5000"`
	Priority *string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

func (r *UpdateAnnouncementRequest) Normalize() {
	r.Title = trimPtr(r.Title)
	r.Content = trimPtr(r.Content)
	r.Priority = trimPtr(r.Priority)
}

type AnnouncementResponse struct {
	ID        uuid.UUID    `json:"id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Priority  string       `json:"priority"`
	Author    *UserSummary `json:"author,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func NewAnnouncementResponse(a *domain.Announcement) *AnnouncementResponse {
	return &AnnouncementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Priority:  string(a.Priority),
		Author:    NewUserSummary(a.Author),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// CreateEventRequest schedules a community event
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,min=3,max=200" example:"Lake cleanup drive"`
	Description string    `json:"description" validate:"max=2000"`
	Date        time.Time `json:"date" validate:"required" example:"2024-06-01T09:00:00Z"`
	Location    string    `json:"location" validate:"required,max=200" example:"Sankey Tank"`
	Organizer   string    `json:"organizer" validate:"max=200"`
	Type        string    `json:"type" validate:"omitempty,oneof=community cleanup meeting awareness other" example:"cleanup"`
}

func (r *CreateEventRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)
	r.Organizer = strings.TrimSpace(r.Organizer)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
}

// UpdateEventRequest changes only the supplied fields
type UpdateEventRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location" validate:"omitempty,min=1,max=200"`
	Organizer   *string    `json:"organizer" validate:"omitempty,max=200"`
	Type        *string    `json:"type" validate:"omitempty,oneof=community cleanup meeting awareness other"`
}

func (r *UpdateEventRequest) Normalize() {
	r.Title = trimPtr(r.Title)
	r.Description = trimPtr(r.Description)
	r.Location = trimPtr(r.Location)
	r.Organizer = trimPtr(r.Organizer)
	r.Type = trimPtr(r.Type)
}

type EventResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Date         time.Time `json:"date"`
	Location     string    `json:"location"`
	Organizer    string    `json:"organizer,omitempty"`
	Type         string    `json:"type"`
	Participants int       `json:"participants"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewEventResponse(e *domain.Event) *EventResponse {
	return &EventResponse{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Date:         e.Date,
		Location:     e.Location,
		Organizer:    e.Organizer,
		Type:         string(e.Type),
		Participants: e.Participants,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// JoinEventResponse carries the participant count after joining
type JoinEventResponse struct {
	ID           uuid.UUID `json:"id"`
	Participants int       `json:"participants"`
}
