package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RegistrationStatusPending  = "pending"
	RegistrationStatusApproved = "approved"
	RegistrationStatusRejected = "rejected"
)

// AttendedStatuses are the registration statuses accepted as proof of
// participation by the feedback gate. Approved is what this system writes;
// the rest tolerate records imported from other attendance trackers.
var AttendedStatuses = []string{
	"approved",
	"attended",
	"present",
	"checked-in",
	"checked_in",
	"confirmed",
	"participated",
}

type Registration struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Event       primitive.ObjectID `bson:"event" json:"event"`
	College     string             `bson:"college" json:"college"`
	Department  string             `bson:"department" json:"department"`
	YearOfStudy string             `bson:"yearOfStudy" json:"year_of_study"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`
}

// RegistrationDetails is the optional student profile snapshot captured at
// registration time.
type RegistrationDetails struct {
	College     string `json:"college"`
	Department  string `json:"department"`
	YearOfStudy string `json:"year_of_study"`
}

// RegistrationWithRefs joins a registration with its user and event for
// admin and "my registrations" listings.
type RegistrationWithRefs struct {
	Registration Registration `json:"registration"`
	UserRef      *User        `json:"user,omitempty"`
	EventRef     *Event       `json:"event,omitempty"`
}
