package service

import (
	"context"
	"time"

	"github.com/clairelorenzo/app-backend-6104/internal/models"
	"github.com/clairelorenzo/app-backend-6104/internal/observability"
	"github.com/clairelorenzo/app-backend-6104/internal/repository"
)

const maxEventNameLen = 200

type EventService struct {
	eventRepo repository.EventRepository
}

type CreateEventInput struct {
	UserID    uint
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Type      models.EventType
}

type UpdateEventInput struct {
	UserID    uint
	EventID   uint
	Name      *string
	StartTime *time.Time
	EndTime   *time.Time
	Type      *models.EventType
}

type DeleteEventInput struct {
	UserID  uint
	EventID uint
}

func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

func validateEventWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return models.NewValidationError("Start and end times are required")
	}
	if !start.Before(end) {
		return models.NewValidationError("Event must start before it ends")
	}
	return nil
}

func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (*models.Event, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(in.Name) > maxEventNameLen {
		return nil, models.NewValidationError("Event name too long (max 200 characters)")
	}
	if !in.Type.IsValid() {
		return nil, models.NewValidationError("Event type must be one of: focus, social")
	}
	if err := validateEventWindow(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	event := &models.Event{
		OwnerID:   in.UserID,
		Name:      in.Name,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Type:      in.Type,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	observability.RecordContentCreated("event")
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context, ownerID *uint, limit, offset int) ([]models.Event, error) {
	return s.eventRepo.List(ctx, ownerID, limit, offset)
}

// UpdateEvent applies a partial update, then re-checks the schedule window so
// an update can never leave an event that ends before it starts.
func (s *EventService) UpdateEvent(ctx context.Context, in UpdateEventInput) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}

	if event.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own events")
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, models.NewValidationError("Name is required")
		}
		if len(*in.Name) > maxEventNameLen {
			return nil, models.NewValidationError("Event name too long (max 200 characters)")
		}
		event.Name = *in.Name
	}
	if in.Type != nil {
		if !in.Type.IsValid() {
			return nil, models.NewValidationError("Event type must be one of: focus, social")
		}
		event.Type = *in.Type
	}
	if in.StartTime != nil {
		event.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		event.EndTime = *in.EndTime
	}
	if err := validateEventWindow(event.StartTime, event.EndTime); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, in DeleteEventInput) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}

	if event.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only delete your own events")
	}

	if err := s.eventRepo.Delete(ctx, in.EventID); err != nil {
		return nil, err
	}
	return event, nil
}
