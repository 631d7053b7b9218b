package services

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/api/internal/models"
)

// memStore is an in-memory stand-in for the four repo interfaces, good
// enough for exercising service logic without a database.
type memStore struct {
	users         map[primitive.ObjectID]*models.User
	events        map[primitive.ObjectID]*models.Event
	registrations []*models.Registration
	feedbacks     []*models.Feedback
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[primitive.ObjectID]*models.User{},
		events: map[primitive.ObjectID]*models.Event{},
	}
}

var (
	_ models.UserRepo         = (*memStore)(nil)
	_ models.EventRepo        = (*memStore)(nil)
	_ models.RegistrationRepo = (*memStore)(nil)
	_ models.FeedbackRepo     = (*memStore)(nil)
)

// UserRepo

func (m *memStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.users[id], nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	out := map[primitive.ObjectID]*models.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (m *memStore) UpdatePassword(_ context.Context, id primitive.ObjectID, hashed string) error {
	if u, ok := m.users[id]; ok {
		u.Password = hashed
	}
	return nil
}

// EventRepo

func (m *memStore) CreateEvent(_ context.Context, event *models.Event) (*models.Event, error) {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	m.events[event.ID] = event
	return event, nil
}

func (m *memStore) GetEventByID(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	return m.events[id], nil
}

func (m *memStore) GetEventsByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Event, error) {
	out := map[primitive.ObjectID]*models.Event{}
	for _, id := range ids {
		if e, ok := m.events[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

func (m *memStore) ListEvents(_ context.Context, status string) ([]*models.Event, error) {
	var out []*models.Event
	for _, e := range m.events {
		if status == "" || e.Status == status {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *memStore) UpdateEvent(_ context.Context, id primitive.ObjectID, fields map[string]any) (*models.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	if status, ok := fields["status"].(string); ok {
		e.Status = status
	}
	if date, ok := fields["date"].(string); ok {
		e.Date = date
	}
	e.UpdatedAt = time.Now()
	return e, nil
}

func (m *memStore) DeleteEvent(_ context.Context, id primitive.ObjectID) error {
	delete(m.events, id)
	return nil
}

func (m *memStore) CountEvents(_ context.Context, status string) (int64, error) {
	var n int64
	for _, e := range m.events {
		if status == "" || e.Status == status {
			n++
		}
	}
	return n, nil
}

// RegistrationRepo

func (m *memStore) CreateRegistration(_ context.Context, reg *models.Registration) (*models.Registration, error) {
	if reg.ID.IsZero() {
		reg.ID = primitive.NewObjectID()
	}
	m.registrations = append(m.registrations, reg)
	return reg, nil
}

func (m *memStore) GetRegistrationByID(_ context.Context, id primitive.ObjectID) (*models.Registration, error) {
	for _, r := range m.registrations {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindRegistration(_ context.Context, eventID, userID primitive.ObjectID) (*models.Registration, error) {
	for _, r := range m.registrations {
		if r.Event == eventID && r.User == userID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindRegistrationWithStatus(_ context.Context, eventID, userID primitive.ObjectID, statuses []string) (*models.Registration, error) {
	for _, r := range m.registrations {
		if r.Event != eventID || r.User != userID {
			continue
		}
		for _, s := range statuses {
			if r.Status == s {
				return r, nil
			}
		}
	}
	return nil, nil
}

func (m *memStore) ListRegistrations(_ context.Context, filter bson.M) ([]*models.Registration, error) {
	var out []*models.Registration
	for _, r := range m.registrations {
		if matchRegistration(r, filter) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) UpdateRegistrationStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Registration, error) {
	for _, r := range m.registrations {
		if r.ID == id {
			r.Status = status
			r.UpdatedAt = time.Now()
			return r, nil
		}
	}
	return nil, nil
}

func (m *memStore) DeleteRegistrationByID(_ context.Context, id primitive.ObjectID) error {
	for i, r := range m.registrations {
		if r.ID == id {
			m.registrations = append(m.registrations[:i], m.registrations[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memStore) DeleteRegistration(_ context.Context, eventID, userID primitive.ObjectID) (*models.Registration, error) {
	for i, r := range m.registrations {
		if r.Event == eventID && r.User == userID {
			m.registrations = append(m.registrations[:i], m.registrations[i+1:]...)
			return r, nil
		}
	}
	return nil, nil
}

func (m *memStore) DeleteRegistrationsByEvent(_ context.Context, eventID primitive.ObjectID) error {
	kept := m.registrations[:0]
	for _, r := range m.registrations {
		if r.Event != eventID {
			kept = append(kept, r)
		}
	}
	m.registrations = kept
	return nil
}

func (m *memStore) CountRegistrations(_ context.Context, filter bson.M) (int64, error) {
	var n int64
	for _, r := range m.registrations {
		if matchRegistration(r, filter) {
			n++
		}
	}
	return n, nil
}

func matchRegistration(r *models.Registration, filter bson.M) bool {
	for key, want := range filter {
		switch key {
		case "event":
			if id, ok := want.(primitive.ObjectID); !ok || r.Event != id {
				return false
			}
		case "user":
			if id, ok := want.(primitive.ObjectID); !ok || r.User != id {
				return false
			}
		case "status":
			if s, ok := want.(string); !ok || r.Status != s {
				return false
			}
		}
	}
	return true
}

// FeedbackRepo

func (m *memStore) UpsertFeedback(_ context.Context, eventID, userID primitive.ObjectID, rating int, comment string, now time.Time) (*models.Feedback, error) {
	for _, fb := range m.feedbacks {
		if fb.Event == eventID && fb.User == userID {
			fb.Rating = rating
			fb.Comment = comment
			fb.UpdatedAt = now
			cp := *fb
			return &cp, nil
		}
	}
	fb := &models.Feedback{
		ID:        primitive.NewObjectID(),
		Event:     eventID,
		User:      userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.feedbacks = append(m.feedbacks, fb)
	cp := *fb
	return &cp, nil
}

func (m *memStore) FindFeedback(_ context.Context, eventID, userID primitive.ObjectID) (*models.Feedback, error) {
	for _, fb := range m.feedbacks {
		if fb.Event == eventID && fb.User == userID {
			return fb, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListFeedbackByEvent(_ context.Context, eventID primitive.ObjectID) ([]*models.Feedback, error) {
	var out []*models.Feedback
	for _, fb := range m.feedbacks {
		if fb.Event == eventID {
			cp := *fb
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) ListFeedbackWithComments(_ context.Context) ([]*models.Feedback, error) {
	var out []*models.Feedback
	for _, fb := range m.feedbacks {
		if fb.Comment != "" {
			cp := *fb
			out = append(out, &cp)
		}
	}
	return out, nil
}
