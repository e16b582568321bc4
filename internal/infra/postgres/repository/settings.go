package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/levkar/milim-bot/internal/domain/entities"
	"github.com/levkar/milim-bot/internal/infra/postgres"
)

var ErrSettingsNotFound = errors.New("settings not found")

// SettingsRepository provides access to user settings data in the database.
type SettingsRepository struct {
	db postgres.DBTX
}

// NewSettingsRepository creates a new SettingsRepository with the provided database pool.
func NewSettingsRepository(db postgres.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Create creates default settings for a user.
func (r *SettingsRepository) Create(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO user_settings (user_id, words_per_day, reminder_enabled, reminder_hour_utc, created_at, updated_at)
		VALUES ($1, $2, TRUE, 9, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID, entities.DefaultWordsPerDay)
	if err != nil {
		return fmt.Errorf("create settings: %w", err)
	}

	return nil
}

// GetByUserID retrieves settings for a user.
func (r *SettingsRepository) GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	query := `
		SELECT user_id, words_per_day, reminder_enabled, reminder_hour_utc, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var settings entities.UserSettings
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.WordsPerDay,
		&settings.ReminderEnabled,
		&settings.ReminderHourUTC,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &settings, nil
}

// UpdateWordsPerDay changes the daily batch size.
func (r *SettingsRepository) UpdateWordsPerDay(ctx context.Context, userID int64, wordsPerDay int) error {
	query := `
		UPDATE user_settings
		SET words_per_day = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.db.Exec(ctx, query, userID, wordsPerDay)
	if err != nil {
		return fmt.Errorf("update words per day: %w", err)
	}

	return nil
}

// UpdateReminderHour changes the hour (UTC) of the daily delivery.
func (r *SettingsRepository) UpdateReminderHour(ctx context.Context, userID int64, hour int) error {
	query := `
		UPDATE user_settings
		SET reminder_hour_utc = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.db.Exec(ctx, query, userID, hour)
	if err != nil {
		return fmt.Errorf("update reminder hour: %w", err)
	}

	return nil
}

// ToggleReminder flips the reminder flag and returns the new value.
func (r *SettingsRepository) ToggleReminder(ctx context.Context, userID int64) (bool, error) {
	query := `
		UPDATE user_settings
		SET reminder_enabled = NOT reminder_enabled, updated_at = NOW()
		WHERE user_id = $1
		RETURNING reminder_enabled
	`

	var enabled bool
	if err := r.db.QueryRow(ctx, query, userID).Scan(&enabled); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrSettingsNotFound
		}
		return false, fmt.Errorf("toggle reminder: %w", err)
	}

	return enabled, nil
}

// MarkDelivered records that today's batch was sent, so the scheduler
// does not deliver twice within one day.
func (r *SettingsRepository) MarkDelivered(ctx context.Context, userID int64) error {
	query := `
		UPDATE user_settings
		SET last_delivered_on = CURRENT_DATE, updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("mark delivered: %w", err)
	}

	return nil
}

// DueReminder pairs a chat with the batch size for a pending daily delivery.
type DueReminder struct {
	UserID      int64
	ChatID      int64
	WordsPerDay int
}

// GetDueReminders returns users whose reminder hour has arrived and who have
// not received today's batch yet.
func (r *SettingsRepository) GetDueReminders(ctx context.Context, hourUTC int) ([]*DueReminder, error) {
	query := `
		SELECT s.user_id, u.chat_id, s.words_per_day
		FROM user_settings s
		JOIN users u ON u.id = s.user_id
		WHERE s.reminder_enabled
		  AND u.is_active
		  AND s.reminder_hour_utc = $1
		  AND (s.last_delivered_on IS NULL OR s.last_delivered_on < CURRENT_DATE)
	`

	rows, err := r.db.Query(ctx, query, hourUTC)
	if err != nil {
		return nil, fmt.Errorf("get due reminders: %w", err)
	}
	defer rows.Close()

	var due []*DueReminder
	for rows.Next() {
		d := new(DueReminder)
		if err := rows.Scan(&d.UserID, &d.ChatID, &d.WordsPerDay); err != nil {
			return nil, fmt.Errorf("scan due reminder: %w", err)
		}
		due = append(due, d)
	}

	return due, rows.Err()
}
