package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is a single rating+comment a student left for an event. At most
// one per (event, user) pair, enforced by a unique index; repeat submissions
// update in place.
type Feedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Event     primitive.ObjectID `bson:"event" json:"event"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Rating    int                `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

// FeedbackWithRefs joins a feedback record with its user and event documents
// for display. Either join may be nil when the referenced document is gone.
type FeedbackWithRefs struct {
	Feedback Feedback `json:"feedback"`
	UserRef  *User    `json:"user,omitempty"`
	EventRef *Event   `json:"event,omitempty"`
}

func (f *FeedbackWithRefs) UserName() string {
	if f.UserRef != nil {
		if name := f.UserRef.DisplayName(); name != "" {
			return name
		}
	}
	return "Unknown"
}

func (f *FeedbackWithRefs) EventName() string {
	if f.EventRef != nil {
		return f.EventRef.DisplayName()
	}
	return "Unknown Event"
}
