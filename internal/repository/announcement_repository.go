package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecity-api/internal/domain"
)

// AnnouncementRepository defines the interface for announcement data access
type AnnouncementRepository interface {
	Create(ctx context.Context, a *domain.Announcement) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error)
	FindAll(ctx context.Context) ([]*domain.Announcement, error)
	Update(ctx context.Context, a *domain.Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type announcementRepositoryImpl struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new instance of AnnouncementRepository
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepositoryImpl{db: db}
}

func (r *announcementRepositoryImpl) Create(ctx context.Context, a *domain.Announcement) error {
	return r.db.WithContext(ctx).Omit("Author").Create(a).Error
}

func (r *announcementRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	var a domain.Announcement
	if err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindAll returns announcements newest first
func (r *announcementRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Announcement, error) {
	var list []*domain.Announcement
	if err := r.db.WithContext(ctx).Preload("Author").Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *announcementRepositoryImpl) Update(ctx context.Context, a *domain.Announcement) error {
	return r.db.WithContext(ctx).Omit("Author").Save(a).Error
}

func (r *announcementRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Announcement{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
