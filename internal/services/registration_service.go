package services

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/api/internal/helpers"
	"github.com/campushub/api/internal/models"
)

type RegistrationService struct {
	registrationRepo models.RegistrationRepo
	eventRepo        models.EventRepo
	userRepo         models.UserRepo
	logger           *slog.Logger
}

func NewRegistrationService(
	registrationRepo models.RegistrationRepo,
	eventRepo models.EventRepo,
	userRepo models.UserRepo,
	logger *slog.Logger,
) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// Register creates a pending registration for the student, one per
// (user, event).
func (rs *RegistrationService) Register(ctx context.Context, eventID, userID primitive.ObjectID, details models.RegistrationDetails) (*models.Registration, error) {
	event, err := rs.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, &NotFoundError{Resource: "event"}
	}

	existing, err := rs.registrationRepo.FindRegistration(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &ValidationError{Msg: "already registered"}
	}

	now := time.Now()
	reg := &models.Registration{
		User:        userID,
		Event:       eventID,
		College:     details.College,
		Department:  details.Department,
		YearOfStudy: details.YearOfStudy,
		Status:      models.RegistrationStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return rs.registrationRepo.CreateRegistration(ctx, reg)
}

// Cancel removes the caller's own registration for an event.
func (rs *RegistrationService) Cancel(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Registration, error) {
	return rs.registrationRepo.DeleteRegistration(ctx, eventID, userID)
}

func (rs *RegistrationService) ListMine(ctx context.Context, userID primitive.ObjectID) ([]*models.RegistrationWithRefs, error) {
	regs, err := rs.registrationRepo.ListRegistrations(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	return rs.join(ctx, regs)
}

func (rs *RegistrationService) ListAll(ctx context.Context) ([]*models.RegistrationWithRefs, error) {
	regs, err := rs.registrationRepo.ListRegistrations(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	return rs.join(ctx, regs)
}

func (rs *RegistrationService) Approve(ctx context.Context, id primitive.ObjectID) (*models.Registration, error) {
	return rs.setStatus(ctx, id, models.RegistrationStatusApproved)
}

func (rs *RegistrationService) Reject(ctx context.Context, id primitive.ObjectID) (*models.Registration, error) {
	return rs.setStatus(ctx, id, models.RegistrationStatusRejected)
}

func (rs *RegistrationService) setStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Registration, error) {
	reg, err := rs.registrationRepo.UpdateRegistrationStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, &NotFoundError{Resource: "registration"}
	}
	return reg, nil
}

// Delete removes a registration when the caller is its owner, an admin, or
// the creator of the event it belongs to.
func (rs *RegistrationService) Delete(ctx context.Context, id primitive.ObjectID, caller *helpers.SessionUser) error {
	reg, err := rs.registrationRepo.GetRegistrationByID(ctx, id)
	if err != nil {
		return err
	}
	if reg == nil {
		return &NotFoundError{Resource: "registration"}
	}

	allowed := caller.IsAdmin() || caller.IsOwner(reg.User.Hex())
	if !allowed {
		event, err := rs.eventRepo.GetEventByID(ctx, reg.Event)
		if err != nil {
			return err
		}
		if event != nil && !event.CreatedBy.IsZero() && caller.IsOwner(event.CreatedBy.Hex()) {
			allowed = true
		}
	}
	if !allowed {
		return &PermissionError{Msg: "access denied: insufficient permissions"}
	}

	return rs.registrationRepo.DeleteRegistrationByID(ctx, id)
}

func (rs *RegistrationService) join(ctx context.Context, regs []*models.Registration) ([]*models.RegistrationWithRefs, error) {
	userIDs := make([]primitive.ObjectID, 0, len(regs))
	eventIDs := make([]primitive.ObjectID, 0, len(regs))
	seenUsers := map[primitive.ObjectID]bool{}
	seenEvents := map[primitive.ObjectID]bool{}
	for _, reg := range regs {
		if !seenUsers[reg.User] {
			seenUsers[reg.User] = true
			userIDs = append(userIDs, reg.User)
		}
		if !seenEvents[reg.Event] {
			seenEvents[reg.Event] = true
			eventIDs = append(eventIDs, reg.Event)
		}
	}

	users, err := rs.userRepo.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	events, err := rs.eventRepo.GetEventsByIDs(ctx, eventIDs)
	if err != nil {
		return nil, err
	}

	joined := make([]*models.RegistrationWithRefs, 0, len(regs))
	for _, reg := range regs {
		joined = append(joined, &models.RegistrationWithRefs{
			Registration: *reg,
			UserRef:      users[reg.User],
			EventRef:     events[reg.Event],
		})
	}
	return joined, nil
}
