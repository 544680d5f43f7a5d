package domain

// Role separates citizens from municipal administrators
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleAdmin   Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleCitizen || r == RoleAdmin
}

// User is a registered account. Password holds a bcrypt hash and is empty
// for accounts linked only through Google.
type User struct {
	BaseModel
	Email    string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email" json:"email"`
	Password string  `gorm:"type:varchar(255)" json:"-"`
	Name     string  `gorm:"type:varchar(50);not null" json:"name"`
	Role     Role    `gorm:"type:varchar(20);not null;default:'citizen'" json:"role"`
	GoogleID *string `gorm:"type:varchar(255);uniqueIndex:idx_users_google_id" json:"googleId,omitempty"`
	Avatar   string  `gorm:"type:text" json:"avatar,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
