package entity

import (
	"time"
)

// User is the aggregate root for the user lifecycle domain.
// PasswordHash holds a bcrypt digest and must never appear in an
// outward representation.
//
// IsActive transitions true -> false exactly once (soft delete); no
// operation reactivates a user.
type User struct {
	ID           string
	Name         string
	LastName     string
	Email        string
	Age          *int
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
