package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/levkar/milim-bot/internal/domain/entities"
	"github.com/levkar/milim-bot/internal/infra/postgres"
)

var ErrWordStateNotFound = errors.New("word state not found")

// WordStateRepository provides access to per-user word learning state.
type WordStateRepository struct {
	db postgres.DBTX
}

// NewWordStateRepository creates a new WordStateRepository with the provided database pool.
func NewWordStateRepository(db postgres.DBTX) *WordStateRepository {
	return &WordStateRepository{db: db}
}

// UpsertLearning creates the initial learning state for a presented word.
// It is a no-op if a state already exists, so concurrent duplicate requests
// never reset progress.
func (r *WordStateRepository) UpsertLearning(ctx context.Context, userID, wordID int64) error {
	query := `
		INSERT INTO user_word_states (user_id, word_id, status, review_count, first_seen_at)
		VALUES ($1, $2, 'learning', 0, NOW())
		ON CONFLICT (user_id, word_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID, wordID)
	if err != nil {
		return fmt.Errorf("upsert learning state: %w", err)
	}

	return nil
}

// Get retrieves the state of one word for one user.
func (r *WordStateRepository) Get(ctx context.Context, userID, wordID int64) (*entities.UserWordState, error) {
	query := `
		SELECT user_id, word_id, status, review_count, first_seen_at, mastered_at
		FROM user_word_states
		WHERE user_id = $1 AND word_id = $2
	`

	var state entities.UserWordState
	err := r.db.QueryRow(ctx, query, userID, wordID).Scan(
		&state.UserID,
		&state.WordID,
		&state.Status,
		&state.ReviewCount,
		&state.FirstSeenAt,
		&state.MasteredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWordStateNotFound
		}
		return nil, fmt.Errorf("get word state: %w", err)
	}

	return &state, nil
}

// IncrementReviewCount atomically adds one to the review counter and returns
// the resulting status and count. The increment runs server-side so that
// concurrent answers never lose updates.
func (r *WordStateRepository) IncrementReviewCount(ctx context.Context, userID, wordID int64) (entities.WordStatus, int, error) {
	query := `
		UPDATE user_word_states
		SET review_count = review_count + 1
		WHERE user_id = $1 AND word_id = $2
		RETURNING status, review_count
	`

	var status entities.WordStatus
	var count int
	err := r.db.QueryRow(ctx, query, userID, wordID).Scan(&status, &count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", 0, ErrWordStateNotFound
		}
		return "", 0, fmt.Errorf("increment review count: %w", err)
	}

	return status, count, nil
}

// SetStatus moves a word from one status to another. The update is
// conditional on the current status, so two overlapping promotions apply
// only once. It reports whether a row was actually updated.
func (r *WordStateRepository) SetStatus(
	ctx context.Context,
	userID, wordID int64,
	from, to entities.WordStatus,
	masteredAt *time.Time,
) (bool, error) {
	query := `
		UPDATE user_word_states
		SET status = $4, mastered_at = COALESCE($5, mastered_at)
		WHERE user_id = $1 AND word_id = $2 AND status = $3
	`

	tag, err := r.db.Exec(ctx, query, userID, wordID, from, to, masteredAt)
	if err != nil {
		return false, fmt.Errorf("set word status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// CountMastered returns how many words at the given level the user has mastered.
func (r *WordStateRepository) CountMastered(ctx context.Context, userID int64, level entities.Level) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM user_word_states uws
		JOIN words w ON w.id = uws.word_id
		WHERE uws.user_id = $1
		  AND uws.status = 'mastered'
		  AND w.level = $2
	`

	var count int
	if err := r.db.QueryRow(ctx, query, userID, level).Scan(&count); err != nil {
		return 0, fmt.Errorf("count mastered: %w", err)
	}

	return count, nil
}

// StatusCounts holds per-status word counts for one level, for progress display.
type StatusCounts struct {
	Learning  int
	Reviewing int
	Mastered  int
}

// CountByStatus returns per-status counts of the user's words at the given level.
func (r *WordStateRepository) CountByStatus(ctx context.Context, userID int64, level entities.Level) (*StatusCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE uws.status = 'learning'),
			COUNT(*) FILTER (WHERE uws.status = 'reviewing'),
			COUNT(*) FILTER (WHERE uws.status = 'mastered')
		FROM user_word_states uws
		JOIN words w ON w.id = uws.word_id
		WHERE uws.user_id = $1 AND w.level = $2
	`

	var counts StatusCounts
	err := r.db.QueryRow(ctx, query, userID, level).Scan(
		&counts.Learning,
		&counts.Reviewing,
		&counts.Mastered,
	)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	return &counts, nil
}

// RecentWordIDs returns IDs of the user's most recently presented words that
// are not yet mastered, newest first. Used to build exercise sessions.
func (r *WordStateRepository) RecentWordIDs(ctx context.Context, userID int64, limit int) ([]int64, error) {
	query := `
		SELECT word_id
		FROM user_word_states
		WHERE user_id = $1 AND status <> 'mastered'
		ORDER BY first_seen_at DESC, word_id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent word ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, limit)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan word id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
