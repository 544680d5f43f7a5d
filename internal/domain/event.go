package domain

import "time"

type EventType string

const (
	EventTypeCommunity EventType = "community"
	EventTypeCleanup   EventType = "cleanup"
	EventTypeMeeting   EventType = "meeting"
	EventTypeAwareness EventType = "awareness"
	EventTypeOther     EventType = "other"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventTypeCommunity, EventTypeCleanup, EventTypeMeeting, EventTypeAwareness, EventTypeOther:
		return true
	}
	return false
}

// Event is a community event citizens can join
type Event struct {
	BaseModel
	Title        string    `gorm:"type:varchar(200);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	Date         time.Time `gorm:"not null;index:idx_events_date" json:"date"`
	Location     string    `gorm:"type:varchar(200);not null" json:"location"`
	Organizer    string    `gorm:"type:varchar(200)" json:"organizer,omitempty"`
	Type         EventType `gorm:"type:varchar(20);not null;default:'community'" json:"type"`
	Participants int       `gorm:"not null;default:0" json:"participants"`
}

func (Event) TableName() string {
	return "events"
}
