package usecase

import (
	"context"
	"strings"

	"github.com/iho/financo/internal/domain"
)

// ReminderUseCase handles household reminder notes.
type ReminderUseCase struct {
	reminderRepo ReminderRepository
	idGen        IDGenerator
	clock        domain.Clock
}

// NewReminderUseCase creates a new ReminderUseCase.
func NewReminderUseCase(reminderRepo ReminderRepository, idGen IDGenerator, clock domain.Clock) *ReminderUseCase {
	return &ReminderUseCase{
		reminderRepo: reminderRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

// CreateReminderInput represents input for creating a reminder.
type CreateReminderInput struct {
	UserID string
	Text   string
}

// Create stores a new reminder for the user.
func (uc *ReminderUseCase) Create(ctx context.Context, input CreateReminderInput) (*domain.Reminder, error) {
	now := uc.clock.Now().UTC()

	reminder := &domain.Reminder{
		ID:        uc.idGen.Generate(),
		UserID:    input.UserID,
		Text:      strings.TrimSpace(input.Text),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := reminder.Validate(); err != nil {
		return nil, err
	}

	if err := uc.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, err
	}

	return reminder, nil
}

// Get retrieves a reminder by ID.
func (uc *ReminderUseCase) Get(ctx context.Context, id string) (*domain.Reminder, error) {
	return uc.reminderRepo.GetByID(ctx, id)
}

// ListByUser returns all reminders for a user, newest first.
func (uc *ReminderUseCase) ListByUser(ctx context.Context, userID string) ([]*domain.Reminder, error) {
	return uc.reminderRepo.ListByUser(ctx, userID)
}

// UpdateText replaces a reminder's text.
func (uc *ReminderUseCase) UpdateText(ctx context.Context, id, text string) (*domain.Reminder, error) {
	reminder, err := uc.reminderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reminder.Text = strings.TrimSpace(text)
	reminder.UpdatedAt = uc.clock.Now().UTC()

	if err := reminder.Validate(); err != nil {
		return nil, err
	}

	if err := uc.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, err
	}

	return reminder, nil
}

// Delete removes a reminder.
func (uc *ReminderUseCase) Delete(ctx context.Context, id string) error {
	return uc.reminderRepo.Delete(ctx, id)
}
