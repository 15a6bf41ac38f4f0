package models

import "time"

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a registered account
type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	Role          string
	OAuthProvider string
	OAuthSubject  string
	CreatedAt     time.Time
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
