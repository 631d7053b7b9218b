package helpers

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type AuthClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SessionUser is the resolved caller identity stored on the request context
// after the auth middleware has verified the token and loaded the profile.
type SessionUser struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (su *SessionUser) IsAdmin() bool {
	return strings.EqualFold(su.Role, "admin")
}

// IsOrganizer reports the organizer role, which is treated as
// admin-equivalent on admin-gated routes.
func (su *SessionUser) IsOrganizer() bool {
	return strings.EqualFold(su.Role, "organizer")
}

func (su *SessionUser) IsStudent() bool {
	return strings.EqualFold(su.Role, "student")
}

func (su *SessionUser) IsOwner(userID string) bool {
	return su.UserID == userID
}
