package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// IsValidRole reports whether role belongs to the closed role set.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// Account holds the login credentials of a user. Username doubles as the
// profile's userId.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserProfile is the normalized voter profile.
type UserProfile struct {
	UserID              string    `json:"userId" bson:"_id"`
	Name                string    `json:"name" bson:"name"`
	ProfilePicture      string    `json:"profilePicture" bson:"profile_picture"`
	State               string    `json:"state" bson:"state"`
	LocalGovernment     string    `json:"localGovernment" bson:"local_government"`
	Role                string    `json:"role" bson:"role"`
	RegisteredElections []string  `json:"registeredElections" bson:"registered_elections"`
	UpdatedAt           time.Time `json:"updatedAt,omitempty" bson:"updated_at"`
}

func (u *UserProfile) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsRegisteredFor reports whether electionID appears in the profile's
// registered elections.
func (u *UserProfile) IsRegisteredFor(electionID string) bool {
	for _, id := range u.RegisteredElections {
		if id == electionID {
			return true
		}
	}
	return false
}

// SameRegion compares two region names ignoring case and surrounding space.
func SameRegion(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
