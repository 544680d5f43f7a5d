package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ecity-api/internal/domain"
	"ecity-api/internal/lifecycle"
)

// CreateIssueRequest represents a citizen's report
// @Description Request body for reporting an issue. Sent as JSON or multipart/form-data with an optional "image" file.
type CreateIssueRequest struct {
	Title       string   `json:"title" form:"title" validate:"required,min=5,max=100" example:"Broken streetlight here"`
	Description string   `json:"description" form:"description" validate:"required,min=10,max=1000" example:"The streetlight at the corner has been out for a week"`
	Category    string   `json:"category" form:"category" validate:"required,oneof=infrastructure sanitation electricity water roads other" example:"electricity"`
	Location    string   `json:"location" form:"location" validate:"required,min=3,max=200" example:"5th Avenue and Main"`
	Latitude    *float64 `json:"latitude,omitempty" form:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude,omitempty" form:"longitude" validate:"omitempty,longitude"`
}

// Normalize trims text fields and lowercases the category
func (r *CreateIssueRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
	r.Location = strings.TrimSpace(r.Location)
}

// IssueListQuery holds the filters of GET /issues
type IssueListQuery struct {
	Category string `form:"category" json:"category" validate:"omitempty,oneof=infrastructure sanitation electricity water roads other"`
	Status   string `form:"status" json:"status" validate:"omitempty,oneof=pending in-progress resolved rejected"`
	Search   string `form:"search" json:"search" validate:"max=200"`
	UserID   string `form:"userId" json:"userId" validate:"omitempty,uuid"`
	Page     int    `form:"page" json:"page" validate:"min=0"`
	Limit    int    `form:"limit" json:"limit" validate:"min=0,max=100"`
}

// UpdateIssueStatusRequest moves an issue to a new status and merges the
// supplementary fields that status uses
// @Description in-progress requires assignedOfficer, assignedDepartment and actionTaken;
// @Description resolved requires resolutionOfficer and resolutionRemarks; rejected requires rejectionReason.
type UpdateIssueStatusRequest struct {
	Status string `json:"status" example:"resolved"`

	AssignedOfficer     *string    `json:"assignedOfficer,omitempty" validate:"omitempty,max=200"`
	AssignedDepartment  *string    `json:"assignedDepartment,omitempty" validate:"omitempty,max=200"`
	EstimatedCompletion *time.Time `json:"estimatedCompletion,omitempty"`
	ActionTaken         *string    `json:"actionTaken,omitempty" validate:"omitempty,max=2000"`
	ProgressUpdate      *string    `json:"progressUpdate,omitempty" validate:"omitempty,max=2000"`

	ResolutionTime    *time.Time `json:"resolutionTime,omitempty"`
	ResolutionRemarks *string    `json:"resolutionRemarks,omitempty" validate:"omitempty,max=2000" example:"Replaced the bulb"`
	ResolutionOfficer *string    `json:"resolutionOfficer,omitempty" validate:"omitempty,max=200" example:"Officer Rao"`
	CostIncurred      *float64   `json:"costIncurred,omitempty"`
	ResourcesUsed     *string    `json:"resourcesUsed,omitempty" validate:"omitempty,max=2000"`

	RejectionReason       *string `json:"rejectionReason,omitempty" validate:"omitempty,max=2000"`
	AlternativeSuggestion *string `json:"alternativeSuggestion,omitempty" validate:"omitempty,max=2000"`

	Escalated *bool `json:"escalated,omitempty"`
}

// ToTransition converts the request into a normalized lifecycle transition
func (r *UpdateIssueStatusRequest) ToTransition() *lifecycle.Transition {
	t := &lifecycle.Transition{
		Target:                domain.IssueStatus(strings.ToLower(strings.TrimSpace(r.Status))),
		AssignedOfficer:       r.AssignedOfficer,
		AssignedDepartment:    r.AssignedDepartment,
		EstimatedCompletion:   r.EstimatedCompletion,
		ActionTaken:           r.ActionTaken,
		ProgressUpdate:        r.ProgressUpdate,
		ResolutionTime:        r.ResolutionTime,
		ResolutionRemarks:     r.ResolutionRemarks,
		ResolutionOfficer:     r.ResolutionOfficer,
		CostIncurred:          r.CostIncurred,
		ResourcesUsed:         r.ResourcesUsed,
		RejectionReason:       r.RejectionReason,
		AlternativeSuggestion: r.AlternativeSuggestion,
		Escalated:             r.Escalated,
	}
	lifecycle.Normalize(t)
	return t
}

// IssueResponse represents an issue with its reporter's public profile
type IssueResponse struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Location    string       `json:"location"`
	Latitude    *float64     `json:"latitude,omitempty"`
	Longitude   *float64     `json:"longitude,omitempty"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Status      string       `json:"status"`
	Upvotes     int          `json:"upvotes"`
	Escalated   bool         `json:"escalated"`
	Reporter    *UserSummary `json:"reporter,omitempty"`

	AssignedOfficer     *string    `json:"assignedOfficer,omitempty"`
	AssignedDepartment  *string    `json:"assignedDepartment,omitempty"`
	EstimatedCompletion *time.Time `json:"estimatedCompletion,omitempty"`
	ActionTaken         *string    `json:"actionTaken,omitempty"`
	ProgressUpdate      *string    `json:"progressUpdate,omitempty"`

	ResolutionTime    *time.Time `json:"resolutionTime,omitempty"`
	ResolutionRemarks *string    `json:"resolutionRemarks,omitempty"`
	ResolutionOfficer *string    `json:"resolutionOfficer,omitempty"`
	CostIncurred      *float64   `json:"costIncurred,omitempty"`
	ResourcesUsed     *string    `json:"resourcesUsed,omitempty"`

	RejectionReason       *string `json:"rejectionReason,omitempty"`
	AlternativeSuggestion *string `json:"alternativeSuggestion,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewIssueResponse converts a domain issue
func NewIssueResponse(issue *domain.Issue) *IssueResponse {
	return &IssueResponse{
		ID:                    issue.ID,
		Title:                 issue.Title,
		Description:           issue.Description,
		Category:              string(issue.Category),
		Location:              issue.Location,
		Latitude:              issue.Latitude,
		Longitude:             issue.Longitude,
		ImageURL:              issue.ImageURL,
		Status:                string(issue.Status),
		Upvotes:               issue.Upvotes,
		Escalated:             issue.Escalated,
		Reporter:              NewUserSummary(issue.Reporter),
		AssignedOfficer:       issue.AssignedOfficer,
		AssignedDepartment:    issue.AssignedDepartment,
		EstimatedCompletion:   issue.EstimatedCompletion,
		ActionTaken:           issue.ActionTaken,
		ProgressUpdate:        issue.ProgressUpdate,
		ResolutionTime:        issue.ResolutionTime,
		ResolutionRemarks:     issue.ResolutionRemarks,
		ResolutionOfficer:     issue.ResolutionOfficer,
		CostIncurred:          issue.CostIncurred,
		ResourcesUsed:         issue.ResourcesUsed,
		RejectionReason:       issue.RejectionReason,
		AlternativeSuggestion: issue.AlternativeSuggestion,
		CreatedAt:             issue.CreatedAt,
		UpdatedAt:             issue.UpdatedAt,
	}
}

// IssueListResponse is one page of issues
type IssueListResponse struct {
	Issues []*IssueResponse `json:"issues"`
	Total  int64            `json:"total"`
	Page   int              `json:"page"`
	Limit  int              `json:"limit"`
}

// UpvoteResponse carries the count after an upvote
type UpvoteResponse struct {
	ID      uuid.UUID `json:"id"`
	Upvotes int       `json:"upvotes"`
}

// StatusChangeResponse is one entry of an issue's audit trail
type StatusChangeResponse struct {
	ID         uuid.UUID              `json:"id"`
	IssueID    uuid.UUID              `json:"issueId"`
	FromStatus string                 `json:"fromStatus"`
	ToStatus   string                 `json:"toStatus"`
	ActorID    uuid.UUID              `json:"actorId"`
	Changes    map[string]interface{} `json:"changes,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}
