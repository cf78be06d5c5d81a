package domain

import "time"

type UserRole string

const (
	RoleProvider UserRole = "provider"
	RoleSeeker   UserRole = "seeker"
)

// User is kept minimal: the engine receives the acting party's id and role
// from the auth layer and never touches credentials.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
