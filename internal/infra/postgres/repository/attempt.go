package repository

import (
	"context"
	"fmt"

	"github.com/levkar/milim-bot/internal/domain/entities"
	"github.com/levkar/milim-bot/internal/infra/postgres"
)

// AttemptRepository provides access to the append-only exercise attempt log.
type AttemptRepository struct {
	db postgres.DBTX
}

// NewAttemptRepository creates a new AttemptRepository with the provided database pool.
func NewAttemptRepository(db postgres.DBTX) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Append records one answered question. Attempts are never updated or deleted.
func (r *AttemptRepository) Append(ctx context.Context, a *entities.ExerciseAttempt) error {
	query := `
		INSERT INTO exercise_attempts (user_id, word_id, kind, is_correct, latency_ms, answered_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query, a.UserID, a.WordID, a.Kind, a.IsCorrect, a.LatencyMs, a.AnsweredAt)
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}

	return nil
}

// AccuracyStats summarizes the attempt log for one (user, word) pair.
// Kept as an alternative promotion signal; the live path promotes on the
// review counter.
type AccuracyStats struct {
	Attempts int
	Correct  int
}

// Accuracy computes attempt and correct counts from the log.
func (r *AttemptRepository) Accuracy(ctx context.Context, userID, wordID int64) (*AccuracyStats, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_correct)
		FROM exercise_attempts
		WHERE user_id = $1 AND word_id = $2
	`

	var stats AccuracyStats
	if err := r.db.QueryRow(ctx, query, userID, wordID).Scan(&stats.Attempts, &stats.Correct); err != nil {
		return nil, fmt.Errorf("attempt accuracy: %w", err)
	}

	return &stats, nil
}
