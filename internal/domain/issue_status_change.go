package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// IssueStatusChange is one entry of an issue's audit trail. It is written in
// the same transaction as the status update it records.
type IssueStatusChange struct {
	BaseModel
	IssueID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_issue_status_changes_issue_id" json:"issueId"`
	FromStatus IssueStatus    `gorm:"type:varchar(20);not null" json:"fromStatus"`
	ToStatus   IssueStatus    `gorm:"type:varchar(20);not null" json:"toStatus"`
	ActorID    uuid.UUID      `gorm:"type:uuid;not null" json:"actorId"`
	Changes    datatypes.JSON `json:"changes,omitempty"`
	Issue      Issue          `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE" json:"-"`
}

func (IssueStatusChange) TableName() string {
	return "issue_status_changes"
}
