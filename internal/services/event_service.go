package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/itlightning/dateparse"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/api/internal/helpers"
	"github.com/campushub/api/internal/models"
)

type EventService struct {
	eventRepo        models.EventRepo
	registrationRepo models.RegistrationRepo
	cld              *cloudinary.Cloudinary
	logger           *slog.Logger
}

func NewEventService(
	eventRepo models.EventRepo,
	registrationRepo models.RegistrationRepo,
	cld *cloudinary.Cloudinary,
	logger *slog.Logger,
) *EventService {
	return &EventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		cld:              cld,
		logger:           logger,
	}
}

func (es *EventService) CreateEvent(ctx context.Context, event *models.Event, createdBy primitive.ObjectID) (*models.Event, error) {
	if event.Status == "" {
		event.Status = models.EventStatusApproved
	}
	if err := models.Validate.Struct(event); err != nil {
		return nil, &ValidationError{Msg: "required fields missing: " + err.Error()}
	}

	// Normalize the listed date to YYYY-MM-DD so listings sort correctly.
	parsed, err := dateparse.ParseAny(event.Date)
	if err != nil {
		return nil, &ValidationError{Msg: "invalid event date format"}
	}
	event.Date = parsed.Format("2006-01-02")

	if event.Poster != "" && es.cld != nil {
		url, err := helpers.UploadPoster(ctx, es.cld, event.Poster)
		if err != nil {
			return nil, err
		}
		event.Poster = url
	}

	now := time.Now()
	event.CreatedBy = createdBy
	event.CreatedAt = now
	event.UpdatedAt = now
	event.Extra = nil

	return es.eventRepo.CreateEvent(ctx, event)
}

func (es *EventService) UpdateEvent(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*models.Event, error) {
	if date, ok := fields["date"].(string); ok && date != "" {
		parsed, err := dateparse.ParseAny(date)
		if err != nil {
			return nil, &ValidationError{Msg: "invalid event date format"}
		}
		fields["date"] = parsed.Format("2006-01-02")
	}
	if status, ok := fields["status"].(string); ok {
		if err := models.Validate.Var(status, "oneof=pending approved rejected"); err != nil {
			return nil, &ValidationError{Msg: "invalid event status"}
		}
	}

	event, err := es.eventRepo.UpdateEvent(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, &NotFoundError{Resource: "event"}
	}
	return event, nil
}

// DeleteEvent removes the event and every registration pointing at it.
func (es *EventService) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	if err := es.eventRepo.DeleteEvent(ctx, id); err != nil {
		return err
	}
	return es.registrationRepo.DeleteRegistrationsByEvent(ctx, id)
}

// ListEvents returns events (optionally filtered by status) sorted by date,
// each with its registration count.
func (es *EventService) ListEvents(ctx context.Context, status string) ([]*models.EventWithCount, error) {
	events, err := es.eventRepo.ListEvents(ctx, status)
	if err != nil {
		return nil, err
	}

	listed := make([]*models.EventWithCount, 0, len(events))
	for _, event := range events {
		count, err := es.registrationRepo.CountRegistrations(ctx, bson.M{"event": event.ID})
		if err != nil {
			return nil, err
		}
		listed = append(listed, &models.EventWithCount{Event: *event, RegisteredCount: count})
	}
	return listed, nil
}

func (es *EventService) GetEvent(ctx context.Context, id primitive.ObjectID) (*models.EventWithCount, error) {
	event, err := es.eventRepo.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, &NotFoundError{Resource: "event"}
	}

	count, err := es.registrationRepo.CountRegistrations(ctx, bson.M{"event": event.ID})
	if err != nil {
		return nil, err
	}
	return &models.EventWithCount{Event: *event, RegisteredCount: count}, nil
}
