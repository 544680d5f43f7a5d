package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ecity-api/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "failed to open database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Department{},
		&domain.Issue{},
		&domain.Comment{},
		&domain.IssueStatusChange{},
		&domain.Announcement{},
		&domain.Event{},
	))
	return db
}

func newTestIssue(title string, category domain.IssueCategory) *domain.Issue {
	return &domain.Issue{
		Title:       title,
		Description: "A description long enough to pass validation",
		Category:    category,
		Location:    "Main Street",
		Status:      domain.IssueStatusPending,
	}
}

func newTestUser(email string, role domain.Role) *domain.User {
	return &domain.User{
		Email: email,
		Name:  "Test User",
		Role:  role,
	}
}
