package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecity-api/internal/domain"
)

// EventRepository defines the interface for event data access
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	FindAll(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementParticipants(ctx context.Context, id uuid.UUID) (int, error)
}

type eventRepositoryImpl struct {
	db *gorm.DB
}

// NewEventRepository creates a new instance of EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepositoryImpl{db: db}
}

func (r *eventRepositoryImpl) Create(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *eventRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var e domain.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// FindAll returns events ordered by date, soonest first
func (r *eventRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Event, error) {
	var list []*domain.Event
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *eventRepositoryImpl) Update(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *eventRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Event{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementParticipants atomically adds one participant and returns the new count
func (r *eventRepositoryImpl) IncrementParticipants(ctx context.Context, id uuid.UUID) (int, error) {
	var event domain.Event
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Event{}).
			Where("id = ?", id).
			UpdateColumn("participants", gorm.Expr("participants + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Select("participants").Where("id = ?", id).First(&event).Error
	})
	if err != nil {
		return 0, err
	}
	return event.Participants, nil
}
