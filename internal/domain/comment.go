package domain

import "github.com/google/uuid"

// Comment represents a comment on an issue
type Comment struct {
	BaseModel
	IssueID uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_issue_id" json:"issueId"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_user_id" json:"userId"`
	Content string    `gorm:"type:varchar(500);not null" json:"content"`
	Issue   Issue     `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE" json:"-"`
	User    *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
