package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecity-api/internal/domain"
)

// IssueFilter narrows FindAll. Empty fields do not filter.
type IssueFilter struct {
	Category   domain.IssueCategory
	Status     domain.IssueStatus
	Search     string
	ReporterID *uuid.UUID
	Page       int
	Limit      int
}

// GroupCount is one row of a GROUP BY count query
type GroupCount struct {
	Key   string `gorm:"column:group_key"`
	Count int64  `gorm:"column:group_count"`
}

// IssueRepository defines the interface for issue data access
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error)
	FindAll(ctx context.Context, filter IssueFilter) ([]*domain.Issue, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, updates map[string]interface{}, change *domain.IssueStatusChange) error
	IncrementUpvotes(ctx context.Context, id uuid.UUID) (int, error)
	DeleteWithComments(ctx context.Context, id uuid.UUID) error
	FindStatusHistory(ctx context.Context, id uuid.UUID) ([]*domain.IssueStatusChange, error)
	CountByStatus(ctx context.Context, reporterID *uuid.UUID) ([]GroupCount, error)
	CountByCategory(ctx context.Context) ([]GroupCount, error)
	FindCreatedAtSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

// issueRepositoryImpl is the GORM implementation of IssueRepository
type issueRepositoryImpl struct {
	db *gorm.DB
}

// NewIssueRepository creates a new instance of IssueRepository
func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepositoryImpl{db: db}
}

// Create creates a new issue
func (r *issueRepositoryImpl) Create(ctx context.Context, issue *domain.Issue) error {
	return r.db.WithContext(ctx).Omit("Reporter").Create(issue).Error
}

// FindByID finds an issue by its ID together with its reporter
func (r *issueRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	var issue domain.Issue
	if err := r.db.WithContext(ctx).
		Preload("Reporter").
		Where("id = ?", id).
		First(&issue).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

// FindAll returns one page of issues, newest first, and the total matching count
func (r *issueRepositoryImpl) FindAll(ctx context.Context, filter IssueFilter) ([]*domain.Issue, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Issue{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ReporterID != nil {
		query = query.Where("reporter_id = ?", *filter.ReporterID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var issues []*domain.Issue
	q := query.Preload("Reporter").Order("created_at DESC")
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}
	if err := q.Find(&issues).Error; err != nil {
		return nil, 0, err
	}

	return issues, total, nil
}

// UpdateStatus applies column updates and records the audit row in one transaction
func (r *issueRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, updates map[string]interface{}, change *domain.IssueStatusChange) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Issue{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if change != nil {
			if err := tx.Omit("Issue").Create(change).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// IncrementUpvotes atomically adds one upvote and returns the new count
func (r *issueRepositoryImpl) IncrementUpvotes(ctx context.Context, id uuid.UUID) (int, error) {
	var issue domain.Issue
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Issue{}).
			Where("id = ?", id).
			UpdateColumn("upvotes", gorm.Expr("upvotes + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Select("upvotes").Where("id = ?", id).First(&issue).Error
	})
	if err != nil {
		return 0, err
	}
	return issue.Upvotes, nil
}

// DeleteWithComments removes the issue, its comments and its status history atomically
func (r *issueRepositoryImpl) DeleteWithComments(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("issue_id = ?", id).Delete(&domain.IssueStatusChange{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&domain.Issue{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// FindStatusHistory returns the audit trail of an issue, oldest first
func (r *issueRepositoryImpl) FindStatusHistory(ctx context.Context, id uuid.UUID) ([]*domain.IssueStatusChange, error) {
	var changes []*domain.IssueStatusChange
	if err := r.db.WithContext(ctx).
		Where("issue_id = ?", id).
		Order("created_at ASC").
		Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

// CountByStatus groups issue counts by status, optionally for one reporter
func (r *issueRepositoryImpl) CountByStatus(ctx context.Context, reporterID *uuid.UUID) ([]GroupCount, error) {
	query := r.db.WithContext(ctx).Model(&domain.Issue{})
	if reporterID != nil {
		query = query.Where("reporter_id = ?", *reporterID)
	}

	var rows []GroupCount
	if err := query.
		Select("status AS group_key, COUNT(*) AS group_count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByCategory groups issue counts by category
func (r *issueRepositoryImpl) CountByCategory(ctx context.Context) ([]GroupCount, error) {
	var rows []GroupCount
	if err := r.db.WithContext(ctx).Model(&domain.Issue{}).
		Select("category AS group_key, COUNT(*) AS group_count").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindCreatedAtSince returns the creation timestamps of issues created at or after since
func (r *issueRepositoryImpl) FindCreatedAtSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var stamps []time.Time
	if err := r.db.WithContext(ctx).Model(&domain.Issue{}).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Pluck("created_at", &stamps).Error; err != nil {
		return nil, err
	}
	return stamps, nil
}
