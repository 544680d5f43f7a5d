package domain

// Department is a municipal department issues can be assigned to.
// Issues reference departments by name only.
type Department struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null;uniqueIndex:idx_departments_name" json:"name"`
	Head        string `gorm:"type:varchar(200)" json:"head,omitempty"`
	Contact     string `gorm:"type:varchar(100)" json:"contact,omitempty"`
	Email       string `gorm:"type:varchar(255)" json:"email,omitempty"`
	Location    string `gorm:"type:varchar(200)" json:"location,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string `gorm:"type:text" json:"imageUrl,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}
