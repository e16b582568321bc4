package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/levkar/milim-bot/internal/domain/entities"
	"github.com/levkar/milim-bot/internal/infra/postgres"
)

var ErrWordNotFound = errors.New("word not found")

// WordRepository provides access to the vocabulary in the database.
// Words are written by the seeding process and read-only afterwards.
type WordRepository struct {
	db postgres.DBTX
}

// NewWordRepository creates a new WordRepository with the provided database pool.
func NewWordRepository(db postgres.DBTX) *WordRepository {
	return &WordRepository{db: db}
}

// GetByID retrieves a single word by its ID.
func (r *WordRepository) GetByID(ctx context.Context, wordID int64) (*entities.Word, error) {
	query := `
		SELECT id, hebrew, transliteration, russian, level, frequency_rank
		FROM words
		WHERE id = $1
	`

	var w entities.Word
	err := r.db.QueryRow(ctx, query, wordID).Scan(
		&w.ID,
		&w.Hebrew,
		&w.Transliteration,
		&w.Russian,
		&w.Level,
		&w.FrequencyRank,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWordNotFound
		}
		return nil, fmt.Errorf("get word: %w", err)
	}

	return &w, nil
}

// CountAtLevel returns the total number of words at the given level.
func (r *WordRepository) CountAtLevel(ctx context.Context, level entities.Level) (int, error) {
	query := "SELECT COUNT(*) FROM words WHERE level = $1"

	var count int
	if err := r.db.QueryRow(ctx, query, level).Scan(&count); err != nil {
		return 0, fmt.Errorf("count words at level: %w", err)
	}

	return count, nil
}

// FindUnseen returns up to limit words at the given level that the user has
// no word state for yet, most common first. The (frequency_rank, id) ordering
// makes the ordering total, so repeated calls return the same words.
func (r *WordRepository) FindUnseen(ctx context.Context, userID int64, level entities.Level, limit int) ([]*entities.Word, error) {
	query := `
		SELECT w.id, w.hebrew, w.transliteration, w.russian, w.level, w.frequency_rank
		FROM words w
		LEFT JOIN user_word_states uws ON uws.word_id = w.id AND uws.user_id = $1
		WHERE w.level = $2
		  AND uws.word_id IS NULL
		ORDER BY w.frequency_rank ASC, w.id ASC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, userID, level, limit)
	if err != nil {
		return nil, fmt.Errorf("find unseen words: %w", err)
	}
	defer rows.Close()

	words := make([]*entities.Word, 0, limit)
	for rows.Next() {
		w := new(entities.Word)
		if err := rows.Scan(&w.ID, &w.Hebrew, &w.Transliteration, &w.Russian, &w.Level, &w.FrequencyRank); err != nil {
			return nil, fmt.Errorf("scan unseen word: %w", err)
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// GetRandomAtLevel returns up to limit random words at the given level,
// excluding the word with exceptID. Used for multiple choice distractors.
func (r *WordRepository) GetRandomAtLevel(ctx context.Context, level entities.Level, exceptID int64, limit int) ([]*entities.Word, error) {
	query := `
		SELECT id, hebrew, transliteration, russian, level, frequency_rank
		FROM words
		WHERE level = $1 AND id <> $2
		ORDER BY RANDOM()
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, level, exceptID, limit)
	if err != nil {
		return nil, fmt.Errorf("get random words: %w", err)
	}
	defer rows.Close()

	words := make([]*entities.Word, 0, limit)
	for rows.Next() {
		w := new(entities.Word)
		if err := rows.Scan(&w.ID, &w.Hebrew, &w.Transliteration, &w.Russian, &w.Level, &w.FrequencyRank); err != nil {
			return nil, fmt.Errorf("scan random word: %w", err)
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// GetByIDs retrieves words for the given IDs keyed by word ID.
func (r *WordRepository) GetByIDs(ctx context.Context, wordIDs []int64) (map[int64]*entities.Word, error) {
	query := `
		SELECT id, hebrew, transliteration, russian, level, frequency_rank
		FROM words
		WHERE id = ANY($1::int8[])
	`

	rows, err := r.db.Query(ctx, query, wordIDs)
	if err != nil {
		return nil, fmt.Errorf("get words by ids: %w", err)
	}
	defer rows.Close()

	res := make(map[int64]*entities.Word, len(wordIDs))
	for rows.Next() {
		w := new(entities.Word)
		if err := rows.Scan(&w.ID, &w.Hebrew, &w.Transliteration, &w.Russian, &w.Level, &w.FrequencyRank); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		res[w.ID] = w
	}

	return res, rows.Err()
}

// Insert adds a word to the vocabulary. Used by the seed importer.
func (r *WordRepository) Insert(ctx context.Context, w *entities.Word) error {
	query := `
		INSERT INTO words (hebrew, transliteration, russian, level, frequency_rank)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, w.Hebrew, w.Transliteration, w.Russian, w.Level, w.FrequencyRank)
	if err != nil {
		return fmt.Errorf("insert word: %w", err)
	}

	return nil
}
