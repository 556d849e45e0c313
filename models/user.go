package models

import "time"

// ClubRole is a user's role inside a single club.
type ClubRole string

const (
	RoleAdmin  ClubRole = "admin"
	RoleStaff  ClubRole = "staff"
	RoleMember ClubRole = "member"
)

// User is the account document, keyed by lowercased email.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ClubMember binds a user to a club with a role. Stored under
// clubs/{clubId}/members/{userId}.
type ClubMember struct {
	UserID   string    `json:"userId"`
	ClubID   string    `json:"clubId"`
	Role     ClubRole  `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}
