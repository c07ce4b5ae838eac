package domain

import "time"

// User is the domain model for registered accounts. Role is resolved from
// the user_roles join at read time.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
