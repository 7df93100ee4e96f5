package domain

import (
	"time"
)

// User is a household member owning records.
type User struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Active         bool
}
