package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventStatusPending  = "pending"
	EventStatusApproved = "approved"
	EventStatusRejected = "rejected"
)

// Event documents created through the API carry a normalized Date
// (YYYY-MM-DD) plus a free-form Time. Imported and legacy documents may
// instead carry any of the occurrence fields the resolver knows about
// (startDate, eventDate, ...), which land in Extra via bson inline decoding.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Date        string             `bson:"date" json:"date" validate:"required"`
	Time        string             `bson:"time" json:"time" validate:"required"`
	Category    string             `bson:"category" json:"category" validate:"required"`
	College     string             `bson:"college" json:"college" validate:"required"`
	Location    string             `bson:"location" json:"location" validate:"required"`
	Prizes      string             `bson:"prizes,omitempty" json:"prizes,omitempty"`
	Eligibility string             `bson:"eligibility,omitempty" json:"eligibility,omitempty"`
	EntryFee    float64            `bson:"entryFee,omitempty" json:"entry_fee,omitempty"`
	Status      string             `bson:"status" json:"status" validate:"omitempty,oneof=pending approved rejected"`
	Poster      string             `bson:"poster,omitempty" json:"poster,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"createdBy,omitempty" json:"created_by,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`

	Extra map[string]any `bson:",inline" json:"-"`
}

// DateFields collects the candidate occurrence fields for the resolver.
// Typed struct fields keep createdAt/updatedAt out of the inline map, so the
// result never contains bookkeeping timestamps.
func (e *Event) DateFields() map[string]any {
	fields := make(map[string]any, len(e.Extra)+2)
	for k, v := range e.Extra {
		fields[k] = v
	}
	if e.Date != "" {
		fields["date"] = e.Date
	}
	if e.Time != "" {
		fields["time"] = e.Time
	}
	return fields
}

// DisplayName tolerates legacy documents that used "title" instead of "name".
func (e *Event) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	if title, ok := e.Extra["title"].(string); ok && title != "" {
		return title
	}
	return "Unknown Event"
}

// EventWithCount is an event joined with its registration count for listings.
type EventWithCount struct {
	Event           `bson:",inline"`
	RegisteredCount int64 `json:"registered_count"`
}
