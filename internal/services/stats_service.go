package services

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/api/internal/models"
	"github.com/campushub/api/internal/stats"
)

type StatsService struct {
	feedbackRepo     models.FeedbackRepo
	eventRepo        models.EventRepo
	registrationRepo models.RegistrationRepo
	userRepo         models.UserRepo
	logger           *slog.Logger
}

func NewStatsService(
	feedbackRepo models.FeedbackRepo,
	eventRepo models.EventRepo,
	registrationRepo models.RegistrationRepo,
	userRepo models.UserRepo,
	logger *slog.Logger,
) *StatsService {
	return &StatsService{
		feedbackRepo:     feedbackRepo,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// AdminReport assembles the flat analytics payload for the admin dashboard:
// raw event/registration counts over the full collections, and all rating
// metrics over the commented feedback set after the visibility filter.
func (ss *StatsService) AdminReport(ctx context.Context) (*stats.Report, error) {
	counts, err := ss.counts(ctx)
	if err != nil {
		return nil, err
	}

	feedbacks, err := ss.feedbackRepo.ListFeedbackWithComments(ctx)
	if err != nil {
		return nil, err
	}

	joined, err := ss.join(ctx, feedbacks)
	if err != nil {
		return nil, err
	}

	return stats.BuildReport(joined, counts), nil
}

func (ss *StatsService) counts(ctx context.Context) (stats.Counts, error) {
	var counts stats.Counts
	var err error

	if counts.TotalEvents, err = ss.eventRepo.CountEvents(ctx, ""); err != nil {
		return counts, err
	}
	if counts.ApprovedEvents, err = ss.eventRepo.CountEvents(ctx, models.EventStatusApproved); err != nil {
		return counts, err
	}
	if counts.PendingEvents, err = ss.eventRepo.CountEvents(ctx, models.EventStatusPending); err != nil {
		return counts, err
	}
	if counts.RejectedEvents, err = ss.eventRepo.CountEvents(ctx, models.EventStatusRejected); err != nil {
		return counts, err
	}

	if counts.TotalRegistrations, err = ss.registrationRepo.CountRegistrations(ctx, bson.M{}); err != nil {
		return counts, err
	}
	if counts.PendingRegistrations, err = ss.registrationRepo.CountRegistrations(ctx, bson.M{"status": models.RegistrationStatusPending}); err != nil {
		return counts, err
	}
	if counts.ApprovedRegistrations, err = ss.registrationRepo.CountRegistrations(ctx, bson.M{"status": models.RegistrationStatusApproved}); err != nil {
		return counts, err
	}
	return counts, nil
}

func (ss *StatsService) join(ctx context.Context, feedbacks []*models.Feedback) ([]*models.FeedbackWithRefs, error) {
	userIDs := make([]primitive.ObjectID, 0, len(feedbacks))
	eventIDs := make([]primitive.ObjectID, 0, len(feedbacks))
	seenUsers := map[primitive.ObjectID]bool{}
	seenEvents := map[primitive.ObjectID]bool{}
	for _, fb := range feedbacks {
		if !seenUsers[fb.User] {
			seenUsers[fb.User] = true
			userIDs = append(userIDs, fb.User)
		}
		if !seenEvents[fb.Event] {
			seenEvents[fb.Event] = true
			eventIDs = append(eventIDs, fb.Event)
		}
	}

	users, err := ss.userRepo.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	events, err := ss.eventRepo.GetEventsByIDs(ctx, eventIDs)
	if err != nil {
		return nil, err
	}

	joined := make([]*models.FeedbackWithRefs, 0, len(feedbacks))
	for _, fb := range feedbacks {
		joined = append(joined, &models.FeedbackWithRefs{
			Feedback: *fb,
			UserRef:  users[fb.User],
			EventRef: events[fb.Event],
		})
	}
	return joined, nil
}
