package domain

import "github.com/google/uuid"

type AnnouncementPriority string

const (
	PriorityLow    AnnouncementPriority = "low"
	PriorityMedium AnnouncementPriority = "medium"
	PriorityHigh   AnnouncementPriority = "high"
)

func (p AnnouncementPriority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Announcement is a notice published by an administrator
type Announcement struct {
	BaseModel
	Title    string               `gorm:"type:varchar(200);not null" json:"title"`
	Content  string               `gorm:"type:text;not null" json:"content"`
	Priority AnnouncementPriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	AuthorID uuid.UUID            `gorm:"type:uuid;not null;index:idx_announcements_author_id" json:"authorId"`
	Author   *User                `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Announcement) TableName() string {
	return "announcements"
}
