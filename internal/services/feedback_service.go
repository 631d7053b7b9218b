package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/api/internal/eventdate"
	"github.com/campushub/api/internal/models"
	"github.com/campushub/api/internal/stats"
)

// FeedbackResult is the submit/fetch response payload: the saved feedback
// joined with display fields, plus the recomputed per-event summary.
type FeedbackResult struct {
	Feedback *models.FeedbackWithRefs `json:"feedback"`
	Stats    stats.Summary            `json:"stats"`
}

type EventFeedbackList struct {
	Feedbacks []*models.FeedbackWithRefs `json:"feedbacks"`
	Stats     stats.Summary              `json:"stats"`
}

type FeedbackService struct {
	feedbackRepo     models.FeedbackRepo
	eventRepo        models.EventRepo
	registrationRepo models.RegistrationRepo
	userRepo         models.UserRepo
	logger           *slog.Logger

	// now is swappable so the past-event rule is testable.
	now func() time.Time
}

func NewFeedbackService(
	feedbackRepo models.FeedbackRepo,
	eventRepo models.EventRepo,
	registrationRepo models.RegistrationRepo,
	userRepo models.UserRepo,
	logger *slog.Logger,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo:     feedbackRepo,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		logger:           logger,
		now:              time.Now,
	}
}

// SubmitFeedback is the write-path eligibility gate. Preconditions, checked
// in order: the rating converts to an integer in [1,5]; the event exists;
// its resolved occurrence (if any) is strictly in the past; the caller holds
// an attended-equivalent registration. An unresolvable event date does not
// block submission. The write itself is an upsert keyed on (event, user), so
// repeat submissions never duplicate.
func (fs *FeedbackService) SubmitFeedback(ctx context.Context, eventID, userID primitive.ObjectID, rating any, comment string) (*FeedbackResult, error) {
	numericRating, err := coerceRating(rating)
	if err != nil {
		return nil, err
	}

	event, err := fs.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, &NotFoundError{Resource: "event"}
	}

	if occurrence, ok := eventdate.Resolve(event.DateFields()); ok {
		if !occurrence.Before(fs.now()) {
			fs.logger.Warn("feedback blocked: event not in past",
				"event_id", eventID.Hex(),
				"parsed_date", occurrence.Format(time.RFC3339),
			)
			return nil, &FutureEventError{Occurrence: occurrence}
		}
	}
	// no parsable date: not blocked

	registration, err := fs.registrationRepo.FindRegistrationWithStatus(ctx, eventID, userID, models.AttendedStatuses)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		anyReg, err := fs.registrationRepo.FindRegistration(ctx, eventID, userID)
		if err != nil {
			return nil, err
		}
		permErr := &PermissionError{
			Msg:               "only participants who attended this event can give feedback",
			RegistrationFound: anyReg != nil,
		}
		if anyReg != nil {
			permErr.RegistrationStatus = anyReg.Status
		}
		fs.logger.Warn("feedback attempt rejected: registration missing or wrong status",
			"event_id", eventID.Hex(),
			"user_id", userID.Hex(),
			"registration_found", permErr.RegistrationFound,
			"registration_status", permErr.RegistrationStatus,
		)
		return nil, permErr
	}

	feedback, err := fs.feedbackRepo.UpsertFeedback(ctx, eventID, userID, numericRating, comment, fs.now())
	if err != nil {
		return nil, err
	}

	joined, err := fs.join(ctx, []*models.Feedback{feedback})
	if err != nil {
		return nil, err
	}

	all, err := fs.feedbackRepo.ListFeedbackByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &FeedbackResult{
		Feedback: joined[0],
		Stats:    stats.Aggregate(all),
	}, nil
}

// GetEventFeedback returns all feedback for an event, newest first, with the
// event's rating summary.
func (fs *FeedbackService) GetEventFeedback(ctx context.Context, eventID primitive.ObjectID) (*EventFeedbackList, error) {
	event, err := fs.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, &NotFoundError{Resource: "event"}
	}

	feedbacks, err := fs.feedbackRepo.ListFeedbackByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	joined, err := fs.join(ctx, feedbacks)
	if err != nil {
		return nil, err
	}

	return &EventFeedbackList{
		Feedbacks: joined,
		Stats:     stats.Aggregate(feedbacks),
	}, nil
}

// GetMyFeedback returns the caller's own feedback for an event, nil when
// none has been submitted yet. Students use this to prefill the feedback
// form with what they already said.
func (fs *FeedbackService) GetMyFeedback(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Feedback, error) {
	event, err := fs.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, &NotFoundError{Resource: "event"}
	}
	return fs.feedbackRepo.FindFeedback(ctx, eventID, userID)
}

// join resolves the user and event references of a feedback batch with two
// $in lookups instead of per-record queries.
func (fs *FeedbackService) join(ctx context.Context, feedbacks []*models.Feedback) ([]*models.FeedbackWithRefs, error) {
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

	users, err := fs.userRepo.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	events, err := fs.eventRepo.GetEventsByIDs(ctx, eventIDs)
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

// coerceRating accepts whatever the JSON body carried for "rating" and
// demands an integer in [1,5].
func coerceRating(rating any) (int, error) {
	if rating == nil {
		return 0, &ValidationError{Msg: "rating is required"}
	}

	var value float64
	switch v := rating.(type) {
	case int:
		value = float64(v)
	case int64:
		value = float64(v)
	case float64:
		value = v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, &ValidationError{Msg: "rating must be a number between 1 and 5"}
		}
		value = f
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, &ValidationError{Msg: "rating is required"}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, &ValidationError{Msg: "rating must be a number between 1 and 5"}
		}
		value = f
	default:
		return 0, &ValidationError{Msg: "rating must be a number between 1 and 5"}
	}

	if value != math.Trunc(value) || value < 1 || value > 5 {
		return 0, &ValidationError{Msg: "rating must be a number between 1 and 5"}
	}
	return int(value), nil
}
