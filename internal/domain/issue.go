package domain

import (
	"time"

	"github.com/google/uuid"
)

// IssueStatus is the lifecycle state of a reported issue
type IssueStatus string

const (
	IssueStatusPending    IssueStatus = "pending"
	IssueStatusInProgress IssueStatus = "in-progress"
	IssueStatusResolved   IssueStatus = "resolved"
	IssueStatusRejected   IssueStatus = "rejected"
)

// IssueStatuses lists every status in display order
var IssueStatuses = []IssueStatus{
	IssueStatusPending,
	IssueStatusInProgress,
	IssueStatusResolved,
	IssueStatusRejected,
}

// IsValid reports whether s is one of the four lifecycle states
func (s IssueStatus) IsValid() bool {
	switch s {
	case IssueStatusPending, IssueStatusInProgress, IssueStatusResolved, IssueStatusRejected:
		return true
	}
	return false
}

// IssueCategory classifies what kind of civic problem was reported
type IssueCategory string

const (
	CategoryInfrastructure IssueCategory = "infrastructure"
	CategorySanitation     IssueCategory = "sanitation"
	CategoryElectricity    IssueCategory = "electricity"
	CategoryWater          IssueCategory = "water"
	CategoryRoads          IssueCategory = "roads"
	CategoryOther          IssueCategory = "other"
)

var IssueCategories = []IssueCategory{
	CategoryInfrastructure,
	CategorySanitation,
	CategoryElectricity,
	CategoryWater,
	CategoryRoads,
	CategoryOther,
}

func (c IssueCategory) IsValid() bool {
	for _, known := range IssueCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Issue is a civic problem reported by a citizen (or anonymously).
// The optional groups of fields are filled in as the issue moves through
// in-progress, resolved and rejected; they are never cleared.
type Issue struct {
	BaseModel
	Title       string        `gorm:"type:varchar(100);not null" json:"title"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Category    IssueCategory `gorm:"type:varchar(32);not null;index:idx_issues_category" json:"category"`
	Location    string        `gorm:"type:varchar(200);not null" json:"location"`
	Latitude    *float64      `json:"latitude,omitempty"`
	Longitude   *float64      `json:"longitude,omitempty"`
	ImageURL    string        `gorm:"type:text" json:"imageUrl,omitempty"`
	Status      IssueStatus   `gorm:"type:varchar(20);not null;default:'pending';index:idx_issues_status" json:"status"`
	Upvotes     int           `gorm:"not null;default:0" json:"upvotes"`
	Escalated   bool          `gorm:"not null;default:false" json:"escalated"`
	ReporterID  *uuid.UUID    `gorm:"type:uuid;index:idx_issues_reporter_id" json:"reporterId,omitempty"`
	Reporter    *User         `gorm:"foreignKey:ReporterID;constraint:OnDelete:SET NULL" json:"reporter,omitempty"`

	// in-progress
	AssignedOfficer     *string    `gorm:"type:varchar(200)" json:"assignedOfficer,omitempty"`
	AssignedDepartment  *string    `gorm:"type:varchar(200)" json:"assignedDepartment,omitempty"`
	EstimatedCompletion *time.Time `json:"estimatedCompletion,omitempty"`
	ActionTaken         *string    `gorm:"type:text" json:"actionTaken,omitempty"`
	ProgressUpdate      *string    `gorm:"type:text" json:"progressUpdate,omitempty"`

	// resolved
	ResolutionTime    *time.Time `json:"resolutionTime,omitempty"`
	ResolutionRemarks *string    `gorm:"type:text" json:"resolutionRemarks,omitempty"`
	ResolutionOfficer *string    `gorm:"type:varchar(200)" json:"resolutionOfficer,omitempty"`
	CostIncurred      *float64   `json:"costIncurred,omitempty"`
	ResourcesUsed     *string    `gorm:"type:text" json:"resourcesUsed,omitempty"`

	// rejected
	RejectionReason       *string `gorm:"type:text" json:"rejectionReason,omitempty"`
	AlternativeSuggestion *string `gorm:"type:text" json:"alternativeSuggestion,omitempty"`
}

// TableName specifies the table name for Issue
func (Issue) TableName() string {
	return "issues"
}
