package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/financo/internal/domain"
)

// ReminderRepository implements usecase.ReminderRepository on
// PostgreSQL.
type ReminderRepository struct {
	pool *pgxpool.Pool
}

// NewReminderRepository creates a new ReminderRepository.
func NewReminderRepository(pool *pgxpool.Pool) *ReminderRepository {
	return &ReminderRepository{pool: pool}
}

// Create inserts a new reminder.
func (r *ReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	query := `
		INSERT INTO reminders (id, user_id, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		reminder.ID,
		reminder.UserID,
		reminder.Text,
		reminder.CreatedAt,
		reminder.UpdatedAt,
	)

	return err
}

// GetByID retrieves a reminder by ID.
func (r *ReminderRepository) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	query := `SELECT id, user_id, text, created_at, updated_at FROM reminders WHERE id = $1`

	var reminder domain.Reminder
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&reminder.ID,
		&reminder.UserID,
		&reminder.Text,
		&reminder.CreatedAt,
		&reminder.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReminderNotFound
	}
	if err != nil {
		return nil, err
	}

	return &reminder, nil
}

// ListByUser retrieves a user's reminders, newest first.
func (r *ReminderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Reminder, error) {
	query := `
		SELECT id, user_id, text, created_at, updated_at
		FROM reminders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*domain.Reminder
	for rows.Next() {
		var reminder domain.Reminder
		err := rows.Scan(
			&reminder.ID,
			&reminder.UserID,
			&reminder.Text,
			&reminder.CreatedAt,
			&reminder.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, &reminder)
	}

	return reminders, rows.Err()
}

// Update rewrites a reminder's text.
func (r *ReminderRepository) Update(ctx context.Context, reminder *domain.Reminder) error {
	query := `UPDATE reminders SET text = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, reminder.ID, reminder.Text, reminder.UpdatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrReminderNotFound
	}

	return nil
}

// Delete removes a reminder.
func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrReminderNotFound
	}

	return nil
}
