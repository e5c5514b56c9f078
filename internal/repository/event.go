package repository

import (
	"context"
	"errors"

	"github.com/clairelorenzo/app-backend-6104/internal/cache"
	"github.com/clairelorenzo/app-backend-6104/internal/models"

	"gorm.io/gorm"
)

// EventRepository defines persistence operations for scheduled events.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, ownerID *uint, limit, offset int) ([]models.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository returns a new EventRepository implementation.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	key := cache.EventKey(id)

	err := cache.Aside(ctx, key, &event, cache.EventTTL, func() error {
		if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Event", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateEvent(ctx, event.ID)
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Event{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Event", id)
	}
	cache.InvalidateEvent(ctx, id)
	return nil
}

// List returns events soonest first, optionally scoped to one owner.
func (r *eventRepository) List(ctx context.Context, ownerID *uint, limit, offset int) ([]models.Event, error) {
	var events []models.Event
	query := r.db.WithContext(ctx)
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	}
	if err := query.
		Order("start_time ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}
