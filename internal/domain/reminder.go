package domain

import (
	"fmt"
	"strings"
	"time"
)

// Reminder is a user-authored note. Not a money record; it never enters
// aggregation. Stored server-side like every other entity.
type Reminder struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ID        string
	UserID    string
	Text      string
}

// Validate checks reminder invariants.
func (r *Reminder) Validate() error {
	if r.UserID == "" {
		return ErrMissingUser
	}

	text := strings.TrimSpace(r.Text)
	if text == "" {
		return fmt.Errorf("%w: reminder text cannot be empty", ErrInvalidName)
	}

	if len(text) > MaxReminderLength {
		return fmt.Errorf("%w: reminder text exceeds %d characters", ErrInvalidName, MaxReminderLength)
	}

	return nil
}
