package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/api/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type feedbackFixture struct {
	store   *memStore
	service *FeedbackService
	event   *models.Event
	user    *models.User
}

// newFeedbackFixture sets up a past event with an approved registration for
// one student, with the clock pinned to 2024-06-01.
func newFeedbackFixture(t *testing.T) *feedbackFixture {
	t.Helper()

	store := newMemStore()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, &models.User{Name: "Ama Mensah", Email: "ama@campus.edu", Role: "STUDENT"})
	require.NoError(t, err)

	event, err := store.CreateEvent(ctx, &models.Event{
		Name:     "Tech Expo",
		Date:     "2024-01-15",
		Time:     "10:00",
		Status:   models.EventStatusApproved,
		Category: "tech",
	})
	require.NoError(t, err)

	_, err = store.CreateRegistration(ctx, &models.Registration{
		Event:  event.ID,
		User:   user.ID,
		Status: models.RegistrationStatusApproved,
	})
	require.NoError(t, err)

	service := NewFeedbackService(store, store, store, store, testLogger())
	service.now = func() time.Time {
		return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.Local)
	}

	return &feedbackFixture{store: store, service: service, event: event, user: user}
}

func TestSubmitFeedbackSuccess(t *testing.T) {
	fx := newFeedbackFixture(t)

	result, err := fx.service.SubmitFeedback(context.Background(), fx.event.ID, fx.user.ID, 4, "great talks")
	require.NoError(t, err)

	require.NotNil(t, result.Feedback)
	assert.Equal(t, 4, result.Feedback.Feedback.Rating)
	assert.Equal(t, "great talks", result.Feedback.Feedback.Comment)
	assert.Equal(t, "Ama Mensah", result.Feedback.UserName())
	assert.Equal(t, "Tech Expo", result.Feedback.EventName())

	assert.Equal(t, 1, result.Stats.TotalFeedbacks)
	assert.Equal(t, float64(4), result.Stats.AverageRating)
	assert.Equal(t, 1, result.Stats.Distribution[4])
}

func TestSubmitFeedbackUpsertKeepsCreatedAt(t *testing.T) {
	fx := newFeedbackFixture(t)
	ctx := context.Background()

	t1 := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.Local)
	t2 := t1.Add(48 * time.Hour)

	fx.service.now = func() time.Time { return t1 }
	_, err := fx.service.SubmitFeedback(ctx, fx.event.ID, fx.user.ID, 2, "meh")
	require.NoError(t, err)

	fx.service.now = func() time.Time { return t2 }
	result, err := fx.service.SubmitFeedback(ctx, fx.event.ID, fx.user.ID, 5, "changed my mind")
	require.NoError(t, err)

	// still a single record, updated in place
	require.Len(t, fx.store.feedbacks, 1)
	assert.Equal(t, 1, result.Stats.TotalFeedbacks)

	saved := result.Feedback.Feedback
	assert.Equal(t, 5, saved.Rating)
	assert.Equal(t, "changed my mind", saved.Comment)
	assert.True(t, saved.CreatedAt.Equal(t1), "first submission's createdAt must survive")
	assert.True(t, saved.UpdatedAt.Equal(t2))
}

func TestSubmitFeedbackFutureEventBlocked(t *testing.T) {
	fx := newFeedbackFixture(t)
	fx.event.Date = "2099-01-15"

	_, err := fx.service.SubmitFeedback(context.Background(), fx.event.ID, fx.user.ID, 5, "")

	var futureErr *FutureEventError
	require.ErrorAs(t, err, &futureErr)
	assert.Equal(t, 2099, futureErr.Occurrence.Year())
	assert.Empty(t, fx.store.feedbacks, "blocked submission must not write")
}

func TestSubmitFeedbackFutureHourOnlyDateBlocked(t *testing.T) {
	fx := newFeedbackFixture(t)
	// hour-only datetimes must still resolve, not fall through to the
	// permissive no-date path
	fx.event.Date = "2099-01-01 18"

	_, err := fx.service.SubmitFeedback(context.Background(), fx.event.ID, fx.user.ID, 5, "")

	var futureErr *FutureEventError
	require.ErrorAs(t, err, &futureErr)
	assert.Equal(t, 2099, futureErr.Occurrence.Year())
	assert.Empty(t, fx.store.feedbacks)
}

func TestSubmitFeedbackEventOnSameDayBlocked(t *testing.T) {
	fx := newFeedbackFixture(t)
	// occurrence resolves to end of day, after the pinned noon clock
	fx.event.Date = "2024-06-01"

	_, err := fx.service.SubmitFeedback(context.Background(), fx.event.ID, fx.user.ID, 5, "")

	var futureErr *FutureEventError
	require.ErrorAs(t, err, &futureErr)
}

func TestSubmitFeedbackUnresolvableDateAllowed(t *testing.T) {
	fx := newFeedbackFixture(t)
	fx.event.Date = ""
	fx.event.Time = ""

	result, err := fx.service.SubmitFeedback(context.Background(), fx.event.ID, fx.user.ID, 3, "")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Feedback.Feedback.Rating)
}

func TestSubmitFeedbackEventNotFound(t *testing.T) {
	fx := newFeedbackFixture(t)

	_, err := fx.service.SubmitFeedback(context.Background(), primitive.NewObjectID(), fx.user.ID, 3, "")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "event", notFound.Resource)
}

func TestSubmitFeedbackWithoutRegistration(t *testing.T) {
	fx := newFeedbackFixture(t)
	stranger := primitive.NewObjectID()

	_, err := fx.service.SubmitFeedback(context.Background(), fx.event.ID, stranger, 3, "")

	var permErr *PermissionError
	require.ErrorAs(t, err, &permErr)
	assert.False(t, permErr.RegistrationFound)
	assert.Empty(t, permErr.RegistrationStatus)
	assert.Empty(t, fx.store.feedbacks)
}

func TestSubmitFeedbackPendingRegistrationRejected(t *testing.T) {
	fx := newFeedbackFixture(t)
	fx.store.registrations[0].Status = models.RegistrationStatusPending

	_, err := fx.service.SubmitFeedback(context.Background(), fx.event.ID, fx.user.ID, 3, "")

	var permErr *PermissionError
	require.ErrorAs(t, err, &permErr)
	assert.True(t, permErr.RegistrationFound)
	assert.Equal(t, models.RegistrationStatusPending, permErr.RegistrationStatus)
}

func TestSubmitFeedbackAttendedEquivalentStatuses(t *testing.T) {
	for _, status := range models.AttendedStatuses {
		t.Run(status, func(t *testing.T) {
			fx := newFeedbackFixture(t)
			fx.store.registrations[0].Status = status

			_, err := fx.service.SubmitFeedback(context.Background(), fx.event.ID, fx.user.ID, 5, "")
			assert.NoError(t, err)
		})
	}
}

func TestSubmitFeedbackRatingValidatedFirst(t *testing.T) {
	fx := newFeedbackFixture(t)
	// even a nonexistent event fails on the rating first
	_, err := fx.service.SubmitFeedback(context.Background(), primitive.NewObjectID(), fx.user.ID, 9, "")

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestGetEventFeedback(t *testing.T) {
	fx := newFeedbackFixture(t)
	ctx := context.Background()

	other, err := fx.store.CreateUser(ctx, &models.User{Name: "Kojo Owusu", Email: "kojo@campus.edu", Role: "STUDENT"})
	require.NoError(t, err)
	_, err = fx.store.CreateRegistration(ctx, &models.Registration{Event: fx.event.ID, User: other.ID, Status: "attended"})
	require.NoError(t, err)

	t1 := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.Local)
	fx.service.now = func() time.Time { return t1 }
	_, err = fx.service.SubmitFeedback(ctx, fx.event.ID, fx.user.ID, 4, "good")
	require.NoError(t, err)

	fx.service.now = func() time.Time { return t1.Add(time.Hour) }
	_, err = fx.service.SubmitFeedback(ctx, fx.event.ID, other.ID, 2, "queues")
	require.NoError(t, err)

	list, err := fx.service.GetEventFeedback(ctx, fx.event.ID)
	require.NoError(t, err)

	require.Len(t, list.Feedbacks, 2)
	// newest first
	assert.Equal(t, "Kojo Owusu", list.Feedbacks[0].UserName())
	assert.Equal(t, "Ama Mensah", list.Feedbacks[1].UserName())

	assert.Equal(t, 2, list.Stats.TotalFeedbacks)
	assert.Equal(t, 3.0, list.Stats.AverageRating)
	assert.Equal(t, map[int]int{1: 0, 2: 1, 3: 0, 4: 1, 5: 0}, list.Stats.Distribution)
}

func TestGetMyFeedback(t *testing.T) {
	fx := newFeedbackFixture(t)
	ctx := context.Background()

	// nothing submitted yet
	fb, err := fx.service.GetMyFeedback(ctx, fx.event.ID, fx.user.ID)
	require.NoError(t, err)
	assert.Nil(t, fb)

	_, err = fx.service.SubmitFeedback(ctx, fx.event.ID, fx.user.ID, 4, "good")
	require.NoError(t, err)

	fb, err = fx.service.GetMyFeedback(ctx, fx.event.ID, fx.user.ID)
	require.NoError(t, err)
	require.NotNil(t, fb)
	assert.Equal(t, 4, fb.Rating)
	assert.Equal(t, "good", fb.Comment)

	// another student sees their own (empty) slot, not this one
	fb, err = fx.service.GetMyFeedback(ctx, fx.event.ID, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, fb)

	_, err = fx.service.GetMyFeedback(ctx, primitive.NewObjectID(), fx.user.ID)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestGetEventFeedbackUnknownEvent(t *testing.T) {
	fx := newFeedbackFixture(t)

	_, err := fx.service.GetEventFeedback(context.Background(), primitive.NewObjectID())

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCoerceRating(t *testing.T) {
	valid := map[string]any{
		"int":                4,
		"int64":              int64(5),
		"whole float":        float64(3),
		"json number":        json.Number("2"),
		"string":             "1",
		"string with spaces": " 5 ",
	}
	for name, raw := range valid {
		t.Run("valid "+name, func(t *testing.T) {
			got, err := coerceRating(raw)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, 1)
			assert.LessOrEqual(t, got, 5)
		})
	}

	invalid := map[string]any{
		"nil":        nil,
		"zero":       0,
		"too high":   6,
		"fractional": 4.5,
		"empty":      "",
		"word":       "great",
		"bool":       true,
		"slice":      []int{4},
	}
	for name, raw := range invalid {
		t.Run("invalid "+name, func(t *testing.T) {
			_, err := coerceRating(raw)
			var valErr *ValidationError
			assert.ErrorAs(t, err, &valErr)
		})
	}
}
