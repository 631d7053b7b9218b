package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin     = "ADMIN"
	RoleStudent   = "STUDENT"
	RoleOrganizer = "ORGANIZER"
)

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Email       string             `bson:"email" json:"email" validate:"required,email"`
	Password    string             `bson:"password" json:"-"`
	Role        string             `bson:"role" json:"role" validate:"omitempty,oneof=ADMIN STUDENT ORGANIZER"`
	IsVerified  bool               `bson:"isVerified" json:"is_verified"`
	College     string             `bson:"college" json:"college"`
	Department  string             `bson:"department" json:"department"`
	YearOfStudy string             `bson:"yearOfStudy" json:"year_of_study"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
}

// DisplayName is what feedback listings and analytics show for a user.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// PublicUser strips credentials for API responses.
type PublicUser struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  string             `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
