package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/levkar/milim-bot/internal/domain/entities"
	"github.com/levkar/milim-bot/internal/infra/postgres"
)

var ErrLevelStateNotFound = errors.New("level state not found")

// LevelStateRepository provides access to the user's current level and
// cached mastery percentage.
type LevelStateRepository struct {
	db postgres.DBTX
}

// NewLevelStateRepository creates a new LevelStateRepository with the provided database pool.
func NewLevelStateRepository(db postgres.DBTX) *LevelStateRepository {
	return &LevelStateRepository{db: db}
}

// Get retrieves the level state of a user.
func (r *LevelStateRepository) Get(ctx context.Context, userID int64) (*entities.UserLevelState, error) {
	query := `
		SELECT user_id, current_level, mastery_percent, updated_at
		FROM user_level_states
		WHERE user_id = $1
	`

	var state entities.UserLevelState
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&state.UserID,
		&state.CurrentLevel,
		&state.MasteryPercent,
		&state.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLevelStateNotFound
		}
		return nil, fmt.Errorf("get level state: %w", err)
	}

	return &state, nil
}

// Set creates or replaces the level state of a user.
func (r *LevelStateRepository) Set(ctx context.Context, userID int64, level entities.Level, masteryPercent int) error {
	query := `
		INSERT INTO user_level_states (user_id, current_level, mastery_percent, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			current_level = EXCLUDED.current_level,
			mastery_percent = EXCLUDED.mastery_percent,
			updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query, userID, level, masteryPercent)
	if err != nil {
		return fmt.Errorf("set level state: %w", err)
	}

	return nil
}

// UpdateMastery refreshes only the cached mastery percentage.
func (r *LevelStateRepository) UpdateMastery(ctx context.Context, userID int64, masteryPercent int) error {
	query := `
		UPDATE user_level_states
		SET mastery_percent = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.db.Exec(ctx, query, userID, masteryPercent)
	if err != nil {
		return fmt.Errorf("update mastery: %w", err)
	}

	return nil
}
