package repository

import (
	"context"
	"fmt"

	"github.com/levkar/milim-bot/internal/infra/postgres"
)

// ResetRepository wipes a user's learning state for the /reset command.
// The attempt log is removed too: a reset account starts from a clean slate.
type ResetRepository struct {
	db postgres.DBTX
}

func NewResetRepository(db postgres.DBTX) *ResetRepository {
	return &ResetRepository{db: db}
}

func (r *ResetRepository) ResetUser(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM flow_states WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete flow_states: %w", err)
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM exercise_attempts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete exercise_attempts: %w", err)
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM user_word_states WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete user_word_states: %w", err)
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM user_level_states WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete user_level_states: %w", err)
	}

	return nil
}
